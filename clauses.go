package sqlcraft

import (
	"fmt"
	"strconv"
	"strings"
)

// Clause types render "" from a nil receiver, so statements can render their
// optional clauses unconditionally and let joinClauses drop the empty ones.

// =============================================================================
// FROM
// =============================================================================

// From renders "FROM source".
type From struct {
	source Source
}

// NewFrom creates a FROM clause. The source is mandatory.
func NewFrom(source Source) (*From, error) {
	f := &From{}
	if err := f.SetSource(source); err != nil {
		return nil, err
	}
	return f, nil
}

// FromTable is shorthand for NewFrom over a plain table name.
func FromTable(name string) (*From, error) {
	t, err := NewTable(name)
	if err != nil {
		return nil, err
	}
	return NewFrom(t)
}

func (f *From) SetSource(source Source) error {
	if isNil(source) {
		return fmt.Errorf("%w: FROM source must not be nil", ErrInvalidArgument)
	}
	if err := checkCycle("FROM source", f, source); err != nil {
		return err
	}
	f.source = source
	return nil
}

func (f *From) Source() Source { return f.source }

func (f *From) SQL() string {
	if f == nil {
		return ""
	}
	return "FROM " + f.source.sourceSQL()
}

// =============================================================================
// INTO
// =============================================================================

// Into renders "INTO table[ (columns)]".
type Into struct {
	table   *Table
	columns []string
}

// NewInto creates an INTO clause. When the table has defined columns, the
// explicit columns must be among them, and an empty list falls back to them.
func NewInto(table *Table, columns ...string) (*Into, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: INTO table must not be nil", ErrInvalidArgument)
	}
	if err := validateNames("INTO columns", columns); err != nil {
		return nil, err
	}
	if len(table.columns) > 0 {
		for _, c := range columns {
			if !table.HasColumn(c) {
				return nil, fmt.Errorf("%w: column %q is not defined on table %q", ErrInvalidArgument, c, table.name)
			}
		}
	}
	return &Into{table: table, columns: append([]string(nil), columns...)}, nil
}

func (i *Into) Table() *Table { return i.table }

// Columns returns the explicit columns, or the table's defined columns.
func (i *Into) Columns() []string {
	if len(i.columns) > 0 {
		return append([]string(nil), i.columns...)
	}
	return append([]string(nil), i.table.columns...)
}

func (i *Into) SQL() string {
	cols := i.Columns()
	return joinClauses("INTO", i.table.ref(), optf(len(cols) > 0, "(%s)", strings.Join(cols, ", ")))
}

// =============================================================================
// SET
// =============================================================================

// Assignment is one "column = value" pair of a SET clause.
type Assignment struct {
	Column string
	Value  string
}

// Assign is shorthand for an Assignment literal.
func Assign(column, value string) Assignment {
	return Assignment{Column: column, Value: value}
}

// Set renders "SET a = 1, b = 'x'" in insertion order.
type Set struct {
	assignments []Assignment
}

// NewSet creates a SET clause. At least one assignment is required and
// columns must be unique.
func NewSet(assignments ...Assignment) (*Set, error) {
	if len(assignments) == 0 {
		return nil, fmt.Errorf("%w: SET requires at least one assignment", ErrInvalidArgument)
	}
	s := &Set{}
	for _, a := range assignments {
		if err := s.Add(a.Column, a.Value); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends an assignment. An empty value renders as ''.
func (s *Set) Add(column, value string) error {
	if err := required("SET column", column); err != nil {
		return err
	}
	for _, a := range s.assignments {
		if a.Column == column {
			return fmt.Errorf("%w: SET assigns %q twice", ErrInvalidArgument, column)
		}
	}
	s.assignments = append(s.assignments, Assignment{Column: column, Value: value})
	return nil
}

// Assignments returns a copy of the assignments in order.
func (s *Set) Assignments() []Assignment {
	return append([]Assignment(nil), s.assignments...)
}

func (s *Set) SQL() string {
	parts := make([]string, len(s.assignments))
	for i, a := range s.assignments {
		parts[i] = a.Column + " = " + Literal(a.Value)
	}
	return "SET " + strings.Join(parts, ", ")
}

// =============================================================================
// WHERE
// =============================================================================

// Where renders "WHERE predicate".
type Where struct {
	predicate Predicate
}

// NewWhere creates a WHERE clause over a complete predicate.
func NewWhere(p Predicate) (*Where, error) {
	if err := validatePredicate("WHERE predicate", p); err != nil {
		return nil, err
	}
	return &Where{predicate: p}, nil
}

func (w *Where) Predicate() Predicate { return w.predicate }

func (w *Where) SQL() string {
	if w == nil {
		return ""
	}
	return "WHERE " + w.predicate.SQL()
}

// =============================================================================
// GROUP BY
// =============================================================================

// GroupBy renders "GROUP BY columns[ HAVING predicate]".
type GroupBy struct {
	columns []Expr
	having  Predicate
}

// NewGroupBy creates a GROUP BY clause. At least one column is required.
func NewGroupBy(columns ...Expr) (*GroupBy, error) {
	g := &GroupBy{}
	if err := g.SetColumns(columns...); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GroupBy) SetColumns(columns ...Expr) error {
	if len(columns) == 0 {
		return fmt.Errorf("%w: GROUP BY requires at least one column", ErrInvalidArgument)
	}
	if err := validateColumns("GROUP BY columns", columns); err != nil {
		return err
	}
	for _, c := range columns {
		if err := checkCycle("GROUP BY column", g, c); err != nil {
			return err
		}
	}
	g.columns = append([]Expr(nil), columns...)
	return nil
}

// SetHaving sets the HAVING predicate; nil removes it.
func (g *GroupBy) SetHaving(p Predicate) error {
	if isNil(p) {
		g.having = nil
		return nil
	}
	if err := validatePredicate("HAVING predicate", p); err != nil {
		return err
	}
	if err := checkCycle("HAVING predicate", g, p); err != nil {
		return err
	}
	g.having = p
	return nil
}

func (g *GroupBy) Columns() []Expr  { return append([]Expr(nil), g.columns...) }
func (g *GroupBy) Having() Predicate { return g.having }

func (g *GroupBy) SQL() string {
	if g == nil {
		return ""
	}
	having := ""
	if g.having != nil {
		having = "HAVING " + g.having.SQL()
	}
	return joinClauses("GROUP BY", joinExprs(g.columns, ", "), having)
}

// =============================================================================
// ORDER BY
// =============================================================================

// OrderBy renders "ORDER BY a ASC, b DESC".
type OrderBy struct {
	items []*Ordering
}

// NewOrderBy creates an ORDER BY clause. At least one entry is required.
func NewOrderBy(items ...*Ordering) (*OrderBy, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: ORDER BY requires at least one column", ErrInvalidArgument)
	}
	for i, o := range items {
		if o == nil {
			return nil, fmt.Errorf("%w: ORDER BY entry %d is nil", ErrInvalidArgument, i)
		}
	}
	return &OrderBy{items: append([]*Ordering(nil), items...)}, nil
}

func (o *OrderBy) Items() []*Ordering { return append([]*Ordering(nil), o.items...) }

func (o *OrderBy) SQL() string {
	if o == nil {
		return ""
	}
	return "ORDER BY " + joinExprs(o.items, ", ")
}

// =============================================================================
// LIMIT
// =============================================================================

// Limit renders "LIMIT count[ OFFSET offset]".
type Limit struct {
	count  int
	offset int
}

// NewLimit creates a LIMIT clause. Count must be positive, offset not
// negative; a zero offset is omitted.
func NewLimit(count, offset int) (*Limit, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: LIMIT must be positive, got %d", ErrInvalidArgument, count)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: OFFSET must not be negative, got %d", ErrInvalidArgument, offset)
	}
	return &Limit{count: count, offset: offset}, nil
}

func (l *Limit) Count() int  { return l.count }
func (l *Limit) Offset() int { return l.offset }

func (l *Limit) SQL() string {
	if l == nil {
		return ""
	}
	return joinClauses("LIMIT "+strconv.Itoa(l.count), optf(l.offset > 0, "OFFSET %d", l.offset))
}

// =============================================================================
// PARTITION
// =============================================================================

// Partition renders the MySQL partition selection "PARTITION (p0, p1)".
// Attach it to a table with Table.SetPartition.
type Partition struct {
	names []string
}

// NewPartition creates a partition selection. Every name must be non-empty;
// one invalid entry rejects the whole list.
func NewPartition(names ...string) (*Partition, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: PARTITION requires at least one name", ErrInvalidArgument)
	}
	if err := validateNames("PARTITION names", names); err != nil {
		return nil, err
	}
	return &Partition{names: append([]string(nil), names...)}, nil
}

func (p *Partition) Names() []string { return append([]string(nil), p.names...) }

func (p *Partition) SQL() string {
	if p == nil {
		return ""
	}
	return "PARTITION (" + strings.Join(p.names, ", ") + ")"
}
