package sqlcraft

import (
	"fmt"
	"strings"
)

// Logic is the operator joining the two operands of a Condition.
// The zero value is AND.
type Logic int

const (
	LogicAnd Logic = iota
	LogicOr
)

// Keyword renders AND or OR, or "" for an unknown value.
func (l Logic) Keyword() string {
	switch l {
	case LogicAnd:
		return "AND"
	case LogicOr:
		return "OR"
	default:
		return ""
	}
}

// Condition is a binary logical composition: "(left AND right)" or
// "(left OR right)". Operands are predicates, including nested conditions,
// which render parenthesized in turn.
//
// A Condition holds at most two operands. Clauses only accept complete
// conditions, so an incomplete one can be built up with Add but never
// reaches a statement.
type Condition struct {
	logic    Logic
	operands []Predicate
}

// NewCondition creates a condition with up to two operands.
func NewCondition(logic Logic, operands ...Predicate) (*Condition, error) {
	c := &Condition{}
	if err := c.SetLogic(logic); err != nil {
		return nil, err
	}
	for _, p := range operands {
		if err := c.Add(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// And creates "(left AND right)".
func And(left, right Predicate) (*Condition, error) {
	return NewCondition(LogicAnd, left, right)
}

// Or creates "(left OR right)".
func Or(left, right Predicate) (*Condition, error) {
	return NewCondition(LogicOr, left, right)
}

// SetLogic sets the joining operator. Unknown values are rejected.
func (c *Condition) SetLogic(logic Logic) error {
	if logic.Keyword() == "" {
		return fmt.Errorf("%w: unknown logic operator %d", ErrInvalidArgument, int(logic))
	}
	c.logic = logic
	return nil
}

// Add appends an operand. A third operand fails with ErrOverflow.
func (c *Condition) Add(p Predicate) error {
	if len(c.operands) >= 2 {
		return fmt.Errorf("%w: condition already has two operands", ErrOverflow)
	}
	if isNil(p) {
		return fmt.Errorf("%w: condition operand must be a predicate or a condition, got nil", ErrTypeMismatch)
	}
	if strings.TrimSpace(p.SQL()) == "" {
		return fmt.Errorf("%w: condition operand must not be empty", ErrInvalidArgument)
	}
	if err := checkCycle("condition operand", c, p); err != nil {
		return err
	}
	c.operands = append(c.operands, p)
	return nil
}

// Logic returns the joining operator.
func (c *Condition) Logic() Logic { return c.logic }

// Operands returns a copy of the operands.
func (c *Condition) Operands() []Predicate {
	return append([]Predicate(nil), c.operands...)
}

// Complete reports whether the condition and all nested conditions hold
// exactly two operands.
func (c *Condition) Complete() bool {
	if len(c.operands) != 2 {
		return false
	}
	for _, p := range c.operands {
		if nested, ok := p.(*Condition); ok && !nested.Complete() {
			return false
		}
	}
	return true
}

func (c *Condition) SQL() string {
	if len(c.operands) == 0 {
		return ""
	}
	return "(" + joinExprs(c.operands, " "+c.logic.Keyword()+" ") + ")"
}

func (*Condition) predicate() {}

// validatePredicate checks a predicate handed to a clause.
func validatePredicate(field string, p Predicate) error {
	if isNil(p) {
		return fmt.Errorf("%w: %s must not be nil", ErrInvalidArgument, field)
	}
	if c, ok := p.(*Condition); ok && !c.Complete() {
		return fmt.Errorf("%w: %s holds an incomplete condition", ErrInvalidArgument, field)
	}
	if strings.TrimSpace(p.SQL()) == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidArgument, field)
	}
	return nil
}
