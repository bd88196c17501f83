package sqlcraft

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Expr is the interface that all SQL fragment types implement.
type Expr interface {
	SQL() string
}

// Col represents a bare column identifier. Identifiers are never quoted.
type Col string

// SQL renders the column name.
func (c Col) SQL() string {
	return string(c)
}

// Raw is an escape hatch for arbitrary SQL. It renders as-is and can be used
// wherever a column or a predicate is expected.
type Raw string

// SQL renders the raw SQL as-is.
func (r Raw) SQL() string {
	return string(r)
}

func (Raw) predicate() {}

// Cols converts column names into a column list.
func Cols(names ...string) []Expr {
	cols := make([]Expr, len(names))
	for i, n := range names {
		cols[i] = Col(n)
	}
	return cols
}

var numericPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// IsNumeric reports whether v is rendered as a bare numeric literal.
func IsNumeric(v string) bool {
	return numericPattern.MatchString(v)
}

// Literal renders a value operand. Numeric values render bare, everything
// else is single-quoted with embedded quotes doubled.
//
//	Literal("42")    // 42
//	Literal("-1.5")  // -1.5
//	Literal("bob")   // 'bob'
//	Literal("it's")  // 'it''s'
func Literal(v string) string {
	if IsNumeric(v) {
		return v
	}
	return quoteString(v)
}

// quoteString always quotes, regardless of the value's shape.
func quoteString(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// QuoteIdent renders a double-quoted, dot-separated identifier such as
// "public"."users". Builder values never quote identifiers themselves; use
// this to produce the name passed to NewTable or Col when quoting is needed.
func QuoteIdent(parts ...string) string {
	return pgx.Identifier(parts).Sanitize()
}

// Must panics if err is non-nil and returns v otherwise.
// It is intended for statically known fragments, like template.Must.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// required rejects blank values for a named field.
func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidArgument, field)
	}
	return nil
}

// isNil reports whether e is nil or a typed nil pointer.
func isNil(e any) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// validateColumns checks that every entry of a column list renders to
// something.
func validateColumns(field string, cols []Expr) error {
	for i, c := range cols {
		if isNil(c) {
			return fmt.Errorf("%w: %s[%d] is nil", ErrInvalidArgument, field, i)
		}
		if strings.TrimSpace(c.SQL()) == "" {
			return fmt.Errorf("%w: %s[%d] must not be empty", ErrInvalidArgument, field, i)
		}
	}
	return nil
}

// validateNames checks a list of identifiers for blanks and duplicates.
func validateNames(field string, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for i, n := range names {
		if err := required(fmt.Sprintf("%s[%d]", field, i), n); err != nil {
			return err
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("%w: %s contains %q twice", ErrInvalidArgument, field, n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

// columnsSQL renders a column list, or * when it is empty.
func columnsSQL(cols []Expr) string {
	if len(cols) == 0 {
		return "*"
	}
	return joinExprs(cols, ", ")
}

func joinExprs[E Expr](exprs []E, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.SQL()
	}
	return strings.Join(parts, sep)
}

// joinClauses joins rendered clauses with single spaces, skipping the ones
// that rendered empty.
func joinClauses(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

// optf returns the formatted string if cond is true, empty string otherwise.
func optf(cond bool, format string, args ...any) string {
	if !cond {
		return ""
	}
	return fmt.Sprintf(format, args...)
}
