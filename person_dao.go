package peopledao

import (
	"context"

	"github.com/arloliu/peopledao/adapter/cql"
)

// Logical operation names of the person DAO.
const (
	OpStorePerson      = "storePerson"
	OpRetrieveByName   = "retrievePeopleByName"
	OpRetrieveAll      = "retrieveAllPeople"
	OpRetrieveAllNames = "retrieveAllNames"
)

// CQL statements of the person DAO.
const (
	InsertPersonCQL       = "insert into person(first_name, last_name, age, interesting_dates) values (?,?,?,?)"
	SelectPersonByNameCQL = "select * from person where first_name = ? and last_name = ?"
	SelectAllPeopleCQL    = "select * from person"
	SelectFirstNamesCQL   = "select first_name from person"
)

// PersonSchema is the column contract of the person table.
var PersonSchema = Schema{
	Table: "person",
	Columns: []ColumnSpec{
		{Name: "first_name", Type: cql.TypeText},
		{Name: "last_name", Type: cql.TypeText},
		{Name: "age", Type: cql.TypeInt},
		{Name: "interesting_dates", Type: cql.TypeSetTimestamp},
	},
}

// PersonDAO stores and retrieves Person records.
//
// Reads go through the retry loop starting at the configured read
// consistency; writes are issued once at the configured write consistency.
type PersonDAO struct {
	sessions *SessionManager
}

// NewPersonDAO creates a disconnected person DAO.
//
// Parameters:
//   - dialer: Transport used to open sessions (e.g., v1.NewDialer())
//   - cfg: Connection settings
//   - opts: Optional collaborators
//
// Returns:
//   - *PersonDAO: A new DAO; call Connect before use
//   - error: types.ErrNilDialer or an invalid config error
func NewPersonDAO(dialer cql.Dialer, cfg Config, opts ...Option) (*PersonDAO, error) {
	sessions, err := NewSessionManager(dialer, cfg, opts...)
	if err != nil {
		return nil, err
	}

	if err := sessions.Register(OpStorePerson, InsertPersonCQL); err != nil {
		return nil, err
	}
	if err := sessions.Register(OpRetrieveByName, SelectPersonByNameCQL); err != nil {
		return nil, err
	}

	return &PersonDAO{sessions: sessions}, nil
}

// Sessions returns the underlying session manager.
func (d *PersonDAO) Sessions() *SessionManager {
	return d.sessions
}

// Connect opens the session and prepares the DAO statements.
func (d *PersonDAO) Connect(ctx context.Context) error {
	return d.sessions.Connect(ctx)
}

// Disconnect releases the session.
func (d *PersonDAO) Disconnect() {
	d.sessions.Disconnect()
}

// Store writes a person.
//
// Returns:
//   - error: *types.UnableToStoreError on any datastore failure
func (d *PersonDAO) Store(ctx context.Context, p Person) error {
	prepared, err := d.sessions.Statement(OpStorePerson)
	if err != nil {
		return err
	}

	stmt, err := prepared.Bind(p.FirstName(), p.LastName(), p.Age(), p.InterestingDates())
	if err != nil {
		return err
	}

	return d.sessions.ExecuteWrite(ctx, OpStorePerson, stmt)
}

// RetrieveAll reads every person, in datastore order.
//
// Returns:
//   - []Person: The stored people
//   - error: *types.UnableToRetrieveError or *types.MappingError
func (d *PersonDAO) RetrieveAll(ctx context.Context) ([]Person, error) {
	return d.retrievePeople(ctx, OpRetrieveAll, SimpleStatement(SelectAllPeopleCQL))
}

// RetrieveByName reads the people with the given first and last name.
//
// Returns:
//   - []Person: Matching people, usually zero or one
//   - error: *types.UnableToRetrieveError or *types.MappingError
func (d *PersonDAO) RetrieveByName(ctx context.Context, firstName, lastName string) ([]Person, error) {
	prepared, err := d.sessions.Statement(OpRetrieveByName)
	if err != nil {
		return nil, err
	}

	stmt, err := prepared.Bind(firstName, lastName)
	if err != nil {
		return nil, err
	}

	return d.retrievePeople(ctx, OpRetrieveByName, stmt)
}

// RetrieveNames reads the first name of every person.
func (d *PersonDAO) RetrieveNames(ctx context.Context) ([]string, error) {
	rows, err := d.sessions.ExecuteRead(ctx, OpRetrieveAllNames, SimpleStatement(SelectFirstNamesCQL))
	if err != nil {
		return nil, err
	}

	return MapRows(rows, PersonSchema, func(r Row) (string, error) {
		return r.Text("first_name")
	})
}

func (d *PersonDAO) retrievePeople(ctx context.Context, op string, stmt Statement) ([]Person, error) {
	rows, err := d.sessions.ExecuteRead(ctx, op, stmt)
	if err != nil {
		return nil, err
	}

	return MapRows(rows, PersonSchema, personFromRow)
}

func personFromRow(r Row) (Person, error) {
	first, err := r.Text("first_name")
	if err != nil {
		return Person{}, err
	}
	last, err := r.Text("last_name")
	if err != nil {
		return Person{}, err
	}
	age, err := r.Int("age")
	if err != nil {
		return Person{}, err
	}
	dates, err := r.TimestampSet("interesting_dates")
	if err != nil {
		return Person{}, err
	}

	return NewPerson(first, last, age, dates...), nil
}
