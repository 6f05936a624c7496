package peopledao

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Person is an immutable person record.
//
// Person values are compared with Equal; interesting dates form an
// unordered set at millisecond precision, the resolution of a CQL timestamp.
type Person struct {
	firstName        string
	lastName         string
	age              int
	interestingDates []time.Time
}

// NewPerson creates a person.
//
// Dates are truncated to milliseconds, de-duplicated and copied, so later
// changes to the caller's slice are not visible.
//
// Parameters:
//   - firstName, lastName: Name parts
//   - age: Age in years
//   - dates: Interesting dates, in any order
//
// Returns:
//   - Person: The new value
func NewPerson(firstName, lastName string, age int, dates ...time.Time) Person {
	return Person{
		firstName:        firstName,
		lastName:         lastName,
		age:              age,
		interestingDates: normalizeDates(dates),
	}
}

func normalizeDates(dates []time.Time) []time.Time {
	if len(dates) == 0 {
		return nil
	}

	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.UTC().Truncate(time.Millisecond))
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })

	return slices.CompactFunc(out, func(a, b time.Time) bool { return a.Equal(b) })
}

// FirstName returns the first name.
func (p Person) FirstName() string { return p.firstName }

// LastName returns the last name.
func (p Person) LastName() string { return p.lastName }

// Age returns the age in years.
func (p Person) Age() int { return p.age }

// InterestingDates returns a copy of the dates in ascending order.
func (p Person) InterestingDates() []time.Time { return slices.Clone(p.interestingDates) }

// Equal reports whether both people have the same fields, comparing the
// dates as a set.
func (p Person) Equal(o Person) bool {
	return p.firstName == o.firstName &&
		p.lastName == o.lastName &&
		p.age == o.age &&
		slices.EqualFunc(p.interestingDates, o.interestingDates, func(a, b time.Time) bool { return a.Equal(b) })
}

// String implements fmt.Stringer.
func (p Person) String() string {
	dates := make([]string, len(p.interestingDates))
	for i, d := range p.interestingDates {
		dates[i] = d.Format(time.RFC3339Nano)
	}

	return fmt.Sprintf("Person{firstName=%q, lastName=%q, age=%d, interestingDates=[%s]}",
		p.firstName, p.lastName, p.age, strings.Join(dates, ", "))
}
