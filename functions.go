package sqlcraft

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Filter is the modifier of a filterable aggregate function.
type Filter int

const (
	// All is the default and renders as nothing.
	All Filter = iota
	// Distinct renders DISTINCT before the column.
	Distinct
)

func (f Filter) valid() bool { return f == All || f == Distinct }

func (f Filter) String() string {
	switch f {
	case All:
		return "ALL"
	case Distinct:
		return "DISTINCT"
	default:
		return fmt.Sprintf("Filter(%d)", int(f))
	}
}

// Filterable is implemented by aggregate functions accepting ALL/DISTINCT.
type Filterable interface {
	Filter() Filter
	SetFilter(filter Filter) error
}

// functionName derives the rendered name from a function identity.
// Casers are not safe for concurrent use, so one is built per call.
func functionName(identity string) string {
	return cases.Upper(language.Und).String(identity)
}

type aggregateKind string

const (
	kindAvg   aggregateKind = "avg"
	kindSum   aggregateKind = "sum"
	kindCount aggregateKind = "count"
	kindMin   aggregateKind = "min"
	kindMax   aggregateKind = "max"
)

// Aggregate renders "NAME(column)". MIN and MAX are plain aggregates.
type Aggregate struct {
	kind   aggregateKind
	column string
}

func newAggregate(kind aggregateKind, column string) (*Aggregate, error) {
	a := &Aggregate{kind: kind}
	if err := a.SetColumn(column); err != nil {
		return nil, err
	}
	return a, nil
}

// Min creates MIN(column).
func Min(column string) (*Aggregate, error) { return newAggregate(kindMin, column) }

// Max creates MAX(column).
func Max(column string) (*Aggregate, error) { return newAggregate(kindMax, column) }

// SetColumn sets the aggregated column.
func (a *Aggregate) SetColumn(column string) error {
	if err := required(string(a.kind)+" column", column); err != nil {
		return err
	}
	a.column = column
	return nil
}

func (a *Aggregate) Name() string   { return functionName(string(a.kind)) }
func (a *Aggregate) Column() string { return a.column }
func (a *Aggregate) SQL() string    { return a.Name() + "(" + a.column + ")" }

// FilteredAggregate renders "NAME([DISTINCT ]column)" for AVG, SUM and COUNT.
type FilteredAggregate struct {
	Aggregate
	filter Filter
}

func newFilteredAggregate(kind aggregateKind, column string, filter Filter) (*FilteredAggregate, error) {
	agg, err := newAggregate(kind, column)
	if err != nil {
		return nil, err
	}
	f := &FilteredAggregate{Aggregate: *agg}
	if err := f.SetFilter(filter); err != nil {
		return nil, err
	}
	return f, nil
}

// Avg creates AVG([DISTINCT ]column).
func Avg(column string, filter Filter) (*FilteredAggregate, error) {
	return newFilteredAggregate(kindAvg, column, filter)
}

// Sum creates SUM([DISTINCT ]column).
func Sum(column string, filter Filter) (*FilteredAggregate, error) {
	return newFilteredAggregate(kindSum, column, filter)
}

// Count creates COUNT([DISTINCT ]column). Use CountAll for COUNT(*).
func Count(column string, filter Filter) (*FilteredAggregate, error) {
	return newFilteredAggregate(kindCount, column, filter)
}

// CountAll creates COUNT(*).
func CountAll() *FilteredAggregate {
	return &FilteredAggregate{Aggregate: Aggregate{kind: kindCount, column: "*"}}
}

// Filter returns the current modifier.
func (f *FilteredAggregate) Filter() Filter { return f.filter }

// SetFilter sets the modifier. Unknown filter values are rejected.
func (f *FilteredAggregate) SetFilter(filter Filter) error {
	if !filter.valid() {
		return fmt.Errorf("%w: unknown filter %d", ErrInvalidArgument, int(filter))
	}
	f.filter = filter
	return nil
}

func (f *FilteredAggregate) SQL() string {
	return f.Name() + "(" + optf(f.filter == Distinct, "DISTINCT ") + f.column + ")"
}

// ScalarFunc renders a single-argument function such as UPPER(name).
type ScalarFunc struct {
	name   string
	column string
}

// Scalar creates a function call. The name is upper-cased.
func Scalar(name, column string) (*ScalarFunc, error) {
	if err := required("function name", name); err != nil {
		return nil, err
	}
	s := &ScalarFunc{name: functionName(name)}
	if err := s.SetColumn(column); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ScalarFunc) SetColumn(column string) error {
	if err := required(s.name+" column", column); err != nil {
		return err
	}
	s.column = column
	return nil
}

func (s *ScalarFunc) Name() string   { return s.name }
func (s *ScalarFunc) Column() string { return s.column }
func (s *ScalarFunc) SQL() string    { return s.name + "(" + s.column + ")" }
