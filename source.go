package sqlcraft

import (
	"fmt"
	"slices"
)

// Source is a data source usable in FROM and JOIN: a Table, a Select used as
// a derived table, or an aliased Subquery.
type Source interface {
	Expr
	// sourceSQL renders the source in FROM/JOIN position.
	sourceSQL() string
}

// Table is a named table reference with an optional alias, an optional
// partition selection and an optional list of defined columns. Defined
// columns are used to validate and default INTO column lists.
type Table struct {
	name      string
	alias     string
	columns   []string
	partition *Partition
}

// NewTable creates a table reference.
func NewTable(name string, columns ...string) (*Table, error) {
	t := &Table{}
	if err := t.SetName(name); err != nil {
		return nil, err
	}
	if len(columns) > 0 {
		if err := t.DefineColumns(columns...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// SetName sets the table name.
func (t *Table) SetName(name string) error {
	if err := required("table name", name); err != nil {
		return err
	}
	t.name = name
	return nil
}

// Name returns the table name, or ErrUnresolved when none was set.
func (t *Table) Name() (string, error) {
	if t.name == "" {
		return "", fmt.Errorf("%w: table name is not set", ErrUnresolved)
	}
	return t.name, nil
}

// SetAlias sets the table alias; an empty alias removes it.
func (t *Table) SetAlias(alias string) {
	t.alias = alias
}

// Alias returns the table alias, empty if none.
func (t *Table) Alias() string { return t.alias }

// DefineColumns declares the table's columns.
func (t *Table) DefineColumns(columns ...string) error {
	if len(columns) == 0 {
		return fmt.Errorf("%w: defined columns must not be empty", ErrInvalidArgument)
	}
	if err := validateNames("defined columns", columns); err != nil {
		return err
	}
	t.columns = slices.Clone(columns)
	return nil
}

// DefinedColumns returns the declared columns, or ErrUnresolved when none
// were declared.
func (t *Table) DefinedColumns() ([]string, error) {
	if len(t.columns) == 0 {
		return nil, fmt.Errorf("%w: table %q has no defined columns", ErrUnresolved, t.name)
	}
	return slices.Clone(t.columns), nil
}

// HasColumn reports whether column is among the defined columns.
func (t *Table) HasColumn(column string) bool {
	return slices.Contains(t.columns, column)
}

// SetPartition selects partitions of the table; nil removes the selection.
func (t *Table) SetPartition(p *Partition) {
	t.partition = p
}

// Partition returns the partition selection, nil if none.
func (t *Table) Partition() *Partition { return t.partition }

// SQL renders "name[ PARTITION (...)][ AS alias]".
func (t *Table) SQL() string {
	return joinClauses(t.name, t.partition.SQL(), optf(t.alias != "", "AS %s", t.alias))
}

// ref renders the table without its alias, for INTO and UPDATE targets.
func (t *Table) ref() string {
	return joinClauses(t.name, t.partition.SQL())
}

func (t *Table) sourceSQL() string { return t.SQL() }

// Subquery is a derived table: "(query) AS alias".
type Subquery struct {
	query Query
	alias string
}

// NewSubquery wraps a query as an aliased derived table.
func NewSubquery(query Query, alias string) (*Subquery, error) {
	if isNil(query) {
		return nil, fmt.Errorf("%w: subquery must not be nil", ErrInvalidArgument)
	}
	if err := required("subquery alias", alias); err != nil {
		return nil, err
	}
	return &Subquery{query: query, alias: alias}, nil
}

func (s *Subquery) Query() Query      { return s.query }
func (s *Subquery) Alias() string     { return s.alias }
func (s *Subquery) SQL() string       { return "(" + s.query.SQL() + ") AS " + s.alias }
func (s *Subquery) sourceSQL() string { return s.SQL() }
