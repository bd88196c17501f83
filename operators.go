package sqlcraft

import (
	"fmt"
	"strings"
)

// Operator is implemented by fragments rendering as "{name} {symbol} {value}".
type Operator interface {
	Expr
	Name() string
	Symbol() string
	Value() string
}

// Negatable is implemented by operators that can be prefixed with NOT.
type Negatable interface {
	Negated() bool
	SetNegated(negated bool)
}

// Predicate is a fragment usable as a WHERE, HAVING or ON condition, or as a
// Condition operand. The set of predicates is closed: Raw, the comparison,
// BETWEEN, IN and LIKE operators, and Condition.
type Predicate interface {
	Expr
	predicate()
}

func renderOperator(o Operator) string {
	return o.Name() + " " + o.Symbol() + " " + o.Value()
}

// negation is the shared NOT capability.
type negation struct {
	negated bool
}

// Negated reports whether the operator renders with NOT.
func (n *negation) Negated() bool { return n.negated }

// SetNegated toggles the NOT prefix.
func (n *negation) SetNegated(negated bool) { n.negated = negated }

func (n *negation) apply(symbol string) string {
	if n.negated {
		return "NOT " + symbol
	}
	return symbol
}

// =============================================================================
// Comparison
// =============================================================================

// Sign selects the symbol of a Comparison.
type Sign int

const (
	Equal Sign = iota + 1
	NotEqual
	Greater
	GreaterOrEqual
	Less
	LessOrEqual
)

// Symbol renders the comparison sign, or "" for an unknown sign.
func (s Sign) Symbol() string {
	switch s {
	case Equal:
		return "="
	case NotEqual:
		return "<>"
	case Greater:
		return ">"
	case GreaterOrEqual:
		return ">="
	case Less:
		return "<"
	case LessOrEqual:
		return "<="
	default:
		return ""
	}
}

func (s Sign) String() string {
	if sym := s.Symbol(); sym != "" {
		return sym
	}
	return fmt.Sprintf("Sign(%d)", int(s))
}

// Comparison represents "name SIGN value".
// The value renders through Literal unless the comparison targets a column.
type Comparison struct {
	name     string
	sign     Sign
	value    string
	isColumn bool
}

// Compare creates a comparison against a literal value.
func Compare(name string, sign Sign, value string) (*Comparison, error) {
	c := &Comparison{}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	if err := c.SetSign(sign); err != nil {
		return nil, err
	}
	if err := c.SetValue(value); err != nil {
		return nil, err
	}
	return c, nil
}

// CompareCol creates a comparison between two columns, e.g. for JOIN ... ON.
func CompareCol(name string, sign Sign, column string) (*Comparison, error) {
	c, err := Compare(name, sign, column)
	if err != nil {
		return nil, err
	}
	c.isColumn = true
	return c, nil
}

// Eq creates "name = value".
func Eq(name, value string) (*Comparison, error) { return Compare(name, Equal, value) }

// Ne creates "name <> value".
func Ne(name, value string) (*Comparison, error) { return Compare(name, NotEqual, value) }

// Gt creates "name > value".
func Gt(name, value string) (*Comparison, error) { return Compare(name, Greater, value) }

// Gte creates "name >= value".
func Gte(name, value string) (*Comparison, error) { return Compare(name, GreaterOrEqual, value) }

// Lt creates "name < value".
func Lt(name, value string) (*Comparison, error) { return Compare(name, Less, value) }

// Lte creates "name <= value".
func Lte(name, value string) (*Comparison, error) { return Compare(name, LessOrEqual, value) }

// SetName sets the left-hand side.
func (c *Comparison) SetName(name string) error {
	if err := required("comparison name", name); err != nil {
		return err
	}
	c.name = name
	return nil
}

// SetSign sets the comparison sign. Unknown signs are rejected.
func (c *Comparison) SetSign(sign Sign) error {
	if sign.Symbol() == "" {
		return fmt.Errorf("%w: unknown comparison sign %d", ErrInvalidArgument, int(sign))
	}
	c.sign = sign
	return nil
}

// SetValue sets the right-hand side.
func (c *Comparison) SetValue(value string) error {
	if err := required("comparison value", value); err != nil {
		return err
	}
	c.value = value
	return nil
}

func (c *Comparison) Name() string   { return c.name }
func (c *Comparison) Sign() Sign     { return c.sign }
func (c *Comparison) Symbol() string { return c.sign.Symbol() }

// Value renders the right-hand side.
func (c *Comparison) Value() string {
	if c.isColumn {
		return c.value
	}
	return Literal(c.value)
}

func (c *Comparison) SQL() string { return renderOperator(c) }
func (*Comparison) predicate()    {}

// =============================================================================
// BETWEEN
// =============================================================================

// BetweenOp represents "name [NOT] BETWEEN from AND to".
type BetweenOp struct {
	negation
	name string
	from string
	to   string
}

// Between creates a range check. Both bounds are required.
func Between(name, from, to string) (*BetweenOp, error) {
	b := &BetweenOp{}
	if err := b.SetName(name); err != nil {
		return nil, err
	}
	if err := b.SetBounds(from, to); err != nil {
		return nil, err
	}
	return b, nil
}

// NotBetween creates a negated range check.
func NotBetween(name, from, to string) (*BetweenOp, error) {
	b, err := Between(name, from, to)
	if err != nil {
		return nil, err
	}
	b.SetNegated(true)
	return b, nil
}

func (b *BetweenOp) SetName(name string) error {
	if err := required("between name", name); err != nil {
		return err
	}
	b.name = name
	return nil
}

// SetBounds replaces both bounds; neither may be blank.
func (b *BetweenOp) SetBounds(from, to string) error {
	if err := required("between lower bound", from); err != nil {
		return err
	}
	if err := required("between upper bound", to); err != nil {
		return err
	}
	b.from, b.to = from, to
	return nil
}

func (b *BetweenOp) Name() string   { return b.name }
func (b *BetweenOp) From() string   { return b.from }
func (b *BetweenOp) To() string     { return b.to }
func (b *BetweenOp) Symbol() string { return b.apply("BETWEEN") }
func (b *BetweenOp) Value() string  { return Literal(b.from) + " AND " + Literal(b.to) }
func (b *BetweenOp) SQL() string    { return renderOperator(b) }
func (*BetweenOp) predicate()       {}

// =============================================================================
// IN
// =============================================================================

// Needle is what an IN operator searches: a List of literals, a SubQuery or
// a RawNeedle.
type Needle interface {
	needleSQL() string
	validate() error
}

// List is a literal IN list. Entries render through Literal.
type List []string

func (l List) needleSQL() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = Literal(v)
	}
	return strings.Join(parts, ", ")
}

func (l List) validate() error {
	if len(l) == 0 {
		return fmt.Errorf("%w: IN list must not be empty", ErrInvalidArgument)
	}
	for i, v := range l {
		if err := required(fmt.Sprintf("IN list[%d]", i), v); err != nil {
			return err
		}
	}
	return nil
}

// SubQuery searches the rows of a nested query.
type SubQuery struct {
	Query Query
}

func (s SubQuery) needleSQL() string { return s.Query.SQL() }

func (s SubQuery) validate() error {
	if isNil(s.Query) {
		return fmt.Errorf("%w: IN sub-query must not be nil", ErrInvalidArgument)
	}
	return nil
}

// RawNeedle is pre-rendered SQL placed inside the IN parentheses.
type RawNeedle string

func (r RawNeedle) needleSQL() string { return string(r) }
func (r RawNeedle) validate() error   { return required("IN needle", string(r)) }

// InOp represents "name [NOT] IN (needle)".
type InOp struct {
	negation
	name   string
	needle Needle
}

// In creates a membership check.
func In(name string, needle Needle) (*InOp, error) {
	i := &InOp{}
	if err := i.SetName(name); err != nil {
		return nil, err
	}
	if err := i.SetNeedle(needle); err != nil {
		return nil, err
	}
	return i, nil
}

// NotIn creates a negated membership check.
func NotIn(name string, needle Needle) (*InOp, error) {
	i, err := In(name, needle)
	if err != nil {
		return nil, err
	}
	i.SetNegated(true)
	return i, nil
}

func (i *InOp) SetName(name string) error {
	if err := required("in name", name); err != nil {
		return err
	}
	i.name = name
	return nil
}

// SetNeedle replaces the searched values.
func (i *InOp) SetNeedle(needle Needle) error {
	if isNil(needle) {
		return fmt.Errorf("%w: IN needle must not be nil", ErrInvalidArgument)
	}
	if err := needle.validate(); err != nil {
		return err
	}
	if sq, ok := needle.(SubQuery); ok {
		if err := checkCycle("IN sub-query", i, sq.Query); err != nil {
			return err
		}
	}
	if l, ok := needle.(List); ok {
		needle = append(List(nil), l...)
	}
	i.needle = needle
	return nil
}

func (i *InOp) Name() string   { return i.name }
func (i *InOp) Needle() Needle { return i.needle }
func (i *InOp) Symbol() string { return i.apply("IN") }
func (i *InOp) Value() string  { return "(" + i.needle.needleSQL() + ")" }
func (i *InOp) SQL() string    { return renderOperator(i) }
func (*InOp) predicate()       {}

// =============================================================================
// LIKE
// =============================================================================

// LikeOp represents "name [NOT] LIKE 'pattern'". The pattern is always quoted.
type LikeOp struct {
	negation
	name    string
	pattern string
}

// Like creates a pattern match.
func Like(name, pattern string) (*LikeOp, error) {
	l := &LikeOp{}
	if err := l.SetName(name); err != nil {
		return nil, err
	}
	if err := l.SetPattern(pattern); err != nil {
		return nil, err
	}
	return l, nil
}

// NotLike creates a negated pattern match.
func NotLike(name, pattern string) (*LikeOp, error) {
	l, err := Like(name, pattern)
	if err != nil {
		return nil, err
	}
	l.SetNegated(true)
	return l, nil
}

func (l *LikeOp) SetName(name string) error {
	if err := required("like name", name); err != nil {
		return err
	}
	l.name = name
	return nil
}

func (l *LikeOp) SetPattern(pattern string) error {
	if err := required("like pattern", pattern); err != nil {
		return err
	}
	l.pattern = pattern
	return nil
}

func (l *LikeOp) Name() string    { return l.name }
func (l *LikeOp) Pattern() string { return l.pattern }
func (l *LikeOp) Symbol() string  { return l.apply("LIKE") }
func (l *LikeOp) Value() string   { return quoteString(l.pattern) }
func (l *LikeOp) SQL() string     { return renderOperator(l) }
func (*LikeOp) predicate()        {}

// =============================================================================
// Arithmetic
// =============================================================================

// ArithOp selects the symbol of an arithmetic expression.
type ArithOp int

const (
	Plus ArithOp = iota + 1
	Minus
	Multiply
	Divide
	Modulo
)

// Symbol renders the arithmetic operator, or "" for an unknown one.
func (a ArithOp) Symbol() string {
	switch a {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Modulo:
		return "%"
	default:
		return ""
	}
}

// ArithmeticExpr represents "left OP right". Both operands render bare, so it
// can combine columns and numbers in a select list.
type ArithmeticExpr struct {
	left  string
	op    ArithOp
	right string
}

// Arithmetic creates an arithmetic expression.
func Arithmetic(left string, op ArithOp, right string) (*ArithmeticExpr, error) {
	if err := required("arithmetic left operand", left); err != nil {
		return nil, err
	}
	if op.Symbol() == "" {
		return nil, fmt.Errorf("%w: unknown arithmetic operator %d", ErrInvalidArgument, int(op))
	}
	if err := required("arithmetic right operand", right); err != nil {
		return nil, err
	}
	return &ArithmeticExpr{left: left, op: op, right: right}, nil
}

func (a *ArithmeticExpr) Name() string   { return a.left }
func (a *ArithmeticExpr) Symbol() string { return a.op.Symbol() }
func (a *ArithmeticExpr) Value() string  { return a.right }
func (a *ArithmeticExpr) SQL() string    { return renderOperator(a) }

// =============================================================================
// Alias
// =============================================================================

// AliasExpr represents "expr AS alias".
type AliasExpr struct {
	expr  Expr
	alias string
}

// As aliases an expression, typically a function or arithmetic column.
func As(expr Expr, alias string) (*AliasExpr, error) {
	if isNil(expr) || strings.TrimSpace(expr.SQL()) == "" {
		return nil, fmt.Errorf("%w: aliased expression must not be empty", ErrInvalidArgument)
	}
	if err := required("alias", alias); err != nil {
		return nil, err
	}
	return &AliasExpr{expr: expr, alias: alias}, nil
}

func (a *AliasExpr) Name() string   { return a.expr.SQL() }
func (a *AliasExpr) Symbol() string { return "AS" }
func (a *AliasExpr) Value() string  { return a.alias }
func (a *AliasExpr) SQL() string    { return renderOperator(a) }

// =============================================================================
// Ordering
// =============================================================================

// Direction is the sort direction of an Ordering.
type Direction int

const (
	Ascending Direction = iota + 1
	Descending
)

// Keyword renders ASC or DESC, or "" for an unknown direction.
func (d Direction) Keyword() string {
	switch d {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return ""
	}
}

// Ordering is one ORDER BY entry: "expr ASC|DESC".
type Ordering struct {
	expr      Expr
	direction Direction
}

// Order creates an ordering over any expression.
func Order(expr Expr, direction Direction) (*Ordering, error) {
	if isNil(expr) || strings.TrimSpace(expr.SQL()) == "" {
		return nil, fmt.Errorf("%w: ordering expression must not be empty", ErrInvalidArgument)
	}
	if direction.Keyword() == "" {
		return nil, fmt.Errorf("%w: unknown sort direction %d", ErrInvalidArgument, int(direction))
	}
	return &Ordering{expr: expr, direction: direction}, nil
}

// Asc orders by column ascending.
func Asc(column string) (*Ordering, error) { return Order(Col(column), Ascending) }

// Desc orders by column descending.
func Desc(column string) (*Ordering, error) { return Order(Col(column), Descending) }

func (o *Ordering) Direction() Direction { return o.direction }
func (o *Ordering) SQL() string          { return o.expr.SQL() + " " + o.direction.Keyword() }
