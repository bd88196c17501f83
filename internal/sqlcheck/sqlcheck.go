// Package sqlcheck verifies that rendered SQL is accepted by a real SQL
// grammar. It is a check on sqlcraft output only: parse trees are discarded
// and never turned back into builder values.
package sqlcheck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pthm/sqlcraft"
)

// Sentinel errors for checker failures.
var (
	// ErrSyntax is returned when a parser rejects a statement.
	ErrSyntax = errors.New("sqlcheck: syntax error")

	// ErrUnknownParser is returned by New for an unsupported parser name or
	// an unsupported combination of options.
	ErrUnknownParser = errors.New("sqlcheck: unknown parser")
)

// IsSyntaxErr returns true if err is or wraps ErrSyntax.
func IsSyntaxErr(err error) bool {
	return errors.Is(err, ErrSyntax)
}

// Parser names accepted by New.
const (
	ParserTiDB     = "tidb"
	ParserVitess   = "vitess"
	ParserPostgres = "postgres"
)

// Parsers lists the parser names accepted by New.
var Parsers = []string{ParserTiDB, ParserVitess, ParserPostgres}

// Checker verifies a single SQL statement.
type Checker interface {
	// Name identifies the grammar, e.g. "tidb".
	Name() string
	// Check returns an error wrapping ErrSyntax if sql is not exactly one
	// statement accepted by the grammar.
	Check(sql string) error
}

// New returns the checker registered under name. ansiQuotes tells the
// checker that identifiers may be double-quoted (see sqlcraft.QuoteIdent).
func New(name string, ansiQuotes bool) (Checker, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ParserTiDB:
		return NewTiDB(ansiQuotes), nil
	case ParserVitess:
		if ansiQuotes {
			return nil, fmt.Errorf("%w: %s does not accept double-quoted identifiers", ErrUnknownParser, ParserVitess)
		}
		return NewVitess(), nil
	case ParserPostgres:
		return NewPostgres(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownParser, name, strings.Join(Parsers, ", "))
	}
}

// CheckStatement renders stmt and checks the result.
func CheckStatement(c Checker, stmt sqlcraft.Statement) error {
	return c.Check(stmt.SQL())
}

func syntaxErr(parser, sql string, err error) error {
	return fmt.Errorf("%w (%s): %v: %s", ErrSyntax, parser, err, sql)
}

func statementCountErr(parser, sql string, n int) error {
	return fmt.Errorf("%w (%s): expected one statement, got %d: %s", ErrSyntax, parser, n, sql)
}
