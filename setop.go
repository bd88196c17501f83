package sqlcraft

import "fmt"

type setOpKind int

const (
	opUnion setOpKind = iota + 1
	opIntersect
	opExcept
)

func (k setOpKind) keyword() string {
	switch k {
	case opUnion:
		return "UNION"
	case opIntersect:
		return "INTERSECT"
	case opExcept:
		return "EXCEPT"
	default:
		return ""
	}
}

// SetOperation combines two SELECT statements:
// "first UNION|INTERSECT|EXCEPT[ ALL] second".
//
// ALL only changes the rendered keyword; this package emits text and
// performs no deduplication.
type SetOperation struct {
	kind   setOpKind
	first  *Select
	second *Select
	all    bool
}

func newSetOperation(kind setOpKind, first, second *Select, all bool) (*SetOperation, error) {
	if first == nil || second == nil {
		return nil, fmt.Errorf("%w: %s requires two SELECT statements", ErrInvalidArgument, kind.keyword())
	}
	return &SetOperation{kind: kind, first: first, second: second, all: all}, nil
}

// Union creates "first UNION[ ALL] second".
func Union(first, second *Select, all bool) (*SetOperation, error) {
	return newSetOperation(opUnion, first, second, all)
}

// Intersect creates "first INTERSECT[ ALL] second".
func Intersect(first, second *Select, all bool) (*SetOperation, error) {
	return newSetOperation(opIntersect, first, second, all)
}

// Except creates "first EXCEPT[ ALL] second".
func Except(first, second *Select, all bool) (*SetOperation, error) {
	return newSetOperation(opExcept, first, second, all)
}

func (o *SetOperation) SetAll(all bool) { o.all = all }

func (o *SetOperation) All() bool       { return o.all }
func (o *SetOperation) First() *Select  { return o.first }
func (o *SetOperation) Second() *Select { return o.second }

// Keyword renders the operator keyword including ALL when set.
func (o *SetOperation) Keyword() string {
	return o.kind.keyword() + optf(o.all, " ALL")
}

func (o *SetOperation) SQL() string {
	return o.first.SQL() + " " + o.Keyword() + " " + o.second.SQL()
}

func (*SetOperation) statement() {}
func (*SetOperation) query()     {}
