package peopledao

import (
	"context"
	"slices"
	"sync"

	"github.com/arloliu/peopledao/adapter/cql"
	"github.com/arloliu/peopledao/types"
)

// PreparedStatement is a statement template parsed by the datastore.
//
// Handles are created during Connect and are only valid for the session
// that prepared them. They are never mutated.
type PreparedStatement struct {
	name       string
	template   string
	params     []cql.ColumnInfo
	columns    []cql.ColumnInfo
	generation uint64
}

// Name returns the logical operation name.
func (p *PreparedStatement) Name() string { return p.name }

// Template returns the CQL text.
func (p *PreparedStatement) Template() string { return p.template }

// Params returns the declared bind parameters in placeholder order.
func (p *PreparedStatement) Params() []cql.ColumnInfo { return slices.Clone(p.params) }

// Columns returns the declared result columns.
func (p *PreparedStatement) Columns() []cql.ColumnInfo { return slices.Clone(p.columns) }

// Bind substitutes positional values into the statement.
//
// Bind performs no I/O.
//
// Parameters:
//   - values: One value per declared parameter, in placeholder order
//
// Returns:
//   - Statement: An executable statement tied to the preparing session
//   - error: *types.BindArityError if the value count does not match
func (p *PreparedStatement) Bind(values ...any) (Statement, error) {
	if len(values) != len(p.params) {
		return Statement{}, &types.BindArityError{
			Operation: p.name,
			Expected:  len(p.params),
			Got:       len(values),
		}
	}

	return Statement{
		stmt: cql.Statement{
			Text:     p.template,
			Values:   slices.Clone(values),
			Prepared: true,
		},
		generation: p.generation,
	}, nil
}

// Statement is an executable statement.
//
// Obtain one from PreparedStatement.Bind, or from SimpleStatement for
// parameterless statements that are not prepared.
type Statement struct {
	stmt cql.Statement

	// generation of the session whose cache produced the statement; 0 for
	// simple statements, which are valid on any session.
	generation uint64
}

// SimpleStatement returns an unprepared statement.
//
// Parameters:
//   - text: CQL statement
//   - values: Positional values, if any
//
// Returns:
//   - Statement: An executable statement valid on any session
func SimpleStatement(text string, values ...any) Statement {
	return Statement{stmt: cql.Statement{Text: text, Values: slices.Clone(values)}}
}

// Text returns the CQL text.
func (s Statement) Text() string { return s.stmt.Text }

// Values returns a copy of the bound values.
func (s Statement) Values() []any { return slices.Clone(s.stmt.Values) }

// StatementCache holds the prepared statements of one session, keyed by
// logical operation name.
type StatementCache struct {
	generation uint64

	mu         sync.RWMutex
	statements map[string]*PreparedStatement
}

// NewStatementCache creates an empty cache for the session of the given generation.
func NewStatementCache(generation uint64) *StatementCache {
	return &StatementCache{
		generation: generation,
		statements: make(map[string]*PreparedStatement),
	}
}

// Prepare parses a template on the session and registers the handle.
//
// Parameters:
//   - ctx: Context for cancellation
//   - session: The session the handle will be valid for
//   - name: Logical operation name
//   - template: CQL statement with ? placeholders
//
// Returns:
//   - *PreparedStatement: The registered handle
//   - error: *types.PrepareError if the datastore rejects the template
func (c *StatementCache) Prepare(ctx context.Context, session cql.Session, name, template string) (*PreparedStatement, error) {
	info, err := session.Prepare(ctx, template)
	if err != nil {
		return nil, &types.PrepareError{Operation: name, Template: template, Cause: err}
	}

	p := &PreparedStatement{
		name:       name,
		template:   template,
		params:     info.Params,
		columns:    info.Columns,
		generation: c.generation,
	}

	c.mu.Lock()
	c.statements[name] = p
	c.mu.Unlock()

	return p, nil
}

// Get returns the handle registered under name.
func (c *StatementCache) Get(name string) (*PreparedStatement, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.statements[name]

	return p, ok
}

// Len returns the number of prepared statements.
func (c *StatementCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.statements)
}

// Generation returns the generation of the owning session.
func (c *StatementCache) Generation() uint64 {
	return c.generation
}
