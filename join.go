package sqlcraft

import "fmt"

// JoinKind selects the JOIN keyword.
type JoinKind int

const (
	InnerJoin JoinKind = iota + 1
	LeftJoin
	RightJoin
	CrossJoin
)

// Keyword renders the join keyword, or "" for an unknown kind.
func (k JoinKind) Keyword() string {
	switch k {
	case InnerJoin:
		return "INNER JOIN"
	case LeftJoin:
		return "LEFT JOIN"
	case RightJoin:
		return "RIGHT JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	default:
		return ""
	}
}

// Join renders "KIND JOIN target ON predicate". CROSS joins have no ON.
type Join struct {
	kind   JoinKind
	target Source
	on     Predicate
}

// NewJoin creates a join. Every kind except CrossJoin requires an ON
// predicate, and CrossJoin rejects one.
func NewJoin(kind JoinKind, target Source, on Predicate) (*Join, error) {
	if kind.Keyword() == "" {
		return nil, fmt.Errorf("%w: unknown join kind %d", ErrInvalidArgument, int(kind))
	}
	if isNil(target) {
		return nil, fmt.Errorf("%w: join target must not be nil", ErrInvalidArgument)
	}
	if kind == CrossJoin {
		if !isNil(on) {
			return nil, fmt.Errorf("%w: CROSS JOIN does not take an ON predicate", ErrInvalidArgument)
		}
		return &Join{kind: kind, target: target}, nil
	}
	if err := validatePredicate("join ON predicate", on); err != nil {
		return nil, err
	}
	return &Join{kind: kind, target: target, on: on}, nil
}

func (j *Join) Kind() JoinKind { return j.kind }
func (j *Join) Target() Source { return j.target }
func (j *Join) On() Predicate  { return j.on }

func (j *Join) SQL() string {
	if j.on == nil {
		return j.kind.Keyword() + " " + j.target.sourceSQL()
	}
	return j.kind.Keyword() + " " + j.target.sourceSQL() + " ON " + j.on.SQL()
}
