package sqlcraft

import "fmt"

// Statement is a complete SQL statement: Select, Insert, Update, Delete or
// SetOperation.
type Statement interface {
	Expr
	statement()
}

// Query is a statement producing rows: Select or SetOperation. Queries can be
// nested as IN needles and derived tables.
type Query interface {
	Statement
	query()
}

// Select represents
//
//	SELECT [DISTINCT] columns FROM source [JOIN ...] [WHERE ...] [GROUP BY ...] [ORDER BY ...] [LIMIT ...]
//
// Optional clauses that are unset contribute nothing to the output.
type Select struct {
	distinct bool
	columns  []Expr
	from     *From
	joins    []*Join
	where    *Where
	groupBy  *GroupBy
	orderBy  *OrderBy
	limit    *Limit
}

// NewSelect creates a SELECT over from. With no columns it selects *.
func NewSelect(from *From, columns ...Expr) (*Select, error) {
	s := &Select{}
	if err := s.SetFrom(from); err != nil {
		return nil, err
	}
	if err := s.SetColumns(columns...); err != nil {
		return nil, err
	}
	return s, nil
}

// SetFrom replaces the FROM clause, which is mandatory.
func (s *Select) SetFrom(from *From) error {
	if from == nil {
		return fmt.Errorf("%w: SELECT requires a FROM clause", ErrInvalidArgument)
	}
	if err := checkCycle("FROM clause", s, from); err != nil {
		return err
	}
	s.from = from
	return nil
}

// SetColumns replaces the select list; an empty list selects *.
func (s *Select) SetColumns(columns ...Expr) error {
	if err := validateColumns("SELECT columns", columns); err != nil {
		return err
	}
	for _, c := range columns {
		if err := checkCycle("SELECT column", s, c); err != nil {
			return err
		}
	}
	s.columns = append([]Expr(nil), columns...)
	return nil
}

func (s *Select) SetDistinct(distinct bool) { s.distinct = distinct }

// AddJoin appends a JOIN clause.
func (s *Select) AddJoin(j *Join) error {
	if j == nil {
		return fmt.Errorf("%w: join must not be nil", ErrInvalidArgument)
	}
	if err := checkCycle("JOIN clause", s, j); err != nil {
		return err
	}
	s.joins = append(s.joins, j)
	return nil
}

// SetWhere sets the WHERE clause; nil removes it.
func (s *Select) SetWhere(w *Where) error {
	if err := checkCycle("WHERE clause", s, w); err != nil {
		return err
	}
	s.where = w
	return nil
}

// SetGroupBy sets the GROUP BY clause; nil removes it.
func (s *Select) SetGroupBy(g *GroupBy) error {
	if err := checkCycle("GROUP BY clause", s, g); err != nil {
		return err
	}
	s.groupBy = g
	return nil
}

// SetOrderBy sets the ORDER BY clause; nil removes it.
func (s *Select) SetOrderBy(o *OrderBy) error {
	if err := checkCycle("ORDER BY clause", s, o); err != nil {
		return err
	}
	s.orderBy = o
	return nil
}

// SetLimit sets the LIMIT clause; nil removes it.
func (s *Select) SetLimit(l *Limit) { s.limit = l }

func (s *Select) Distinct() bool    { return s.distinct }
func (s *Select) Columns() []Expr   { return append([]Expr(nil), s.columns...) }
func (s *Select) From() *From       { return s.from }
func (s *Select) Joins() []*Join    { return append([]*Join(nil), s.joins...) }
func (s *Select) Where() *Where     { return s.where }
func (s *Select) GroupBy() *GroupBy { return s.groupBy }
func (s *Select) OrderBy() *OrderBy { return s.orderBy }
func (s *Select) Limit() *Limit     { return s.limit }

// SQL renders the statement on a single line.
func (s *Select) SQL() string {
	return joinClauses(
		"SELECT "+optf(s.distinct, "DISTINCT ")+columnsSQL(s.columns),
		s.from.SQL(),
		joinExprs(s.joins, " "),
		s.where.SQL(),
		s.groupBy.SQL(),
		s.orderBy.SQL(),
		s.limit.SQL(),
	)
}

func (s *Select) sourceSQL() string { return "(" + s.SQL() + ")" }
func (s *Select) insertSource()     {}
func (*Select) statement()          {}
func (*Select) query()              {}
