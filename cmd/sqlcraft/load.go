package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/pthm/sqlcraft"
	"github.com/pthm/sqlcraft/internal/cli"
	"github.com/pthm/sqlcraft/internal/querydoc"
	"github.com/pthm/sqlcraft/internal/sqlcheck"
)

const stdinName = "<stdin>"

// input is the parsed contents of one query file.
type input struct {
	name string
	docs []*querydoc.Document
}

// readInputs parses each file in order. No files means standard input.
func readInputs(in io.Reader, files []string) ([]input, error) {
	if len(files) == 0 {
		if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			return nil, cli.ConfigError("no query files given and stdin is a terminal", nil)
		}
		docs, err := querydoc.Parse(in)
		if err != nil {
			return nil, classify("parsing "+stdinName, err)
		}
		return []input{{name: stdinName, docs: docs}}, nil
	}

	out := make([]input, 0, len(files))
	for _, path := range files {
		docs, err := querydoc.ParseFile(path)
		if err != nil {
			return nil, classify("parsing query file", err)
		}
		out = append(out, input{name: path, docs: docs})
	}
	return out, nil
}

// newChecker returns the configured checker, or nil when checking is off.
func newChecker(enabled bool, parser string, quote bool) (sqlcheck.Checker, error) {
	if !enabled {
		return nil, nil
	}
	c, err := sqlcheck.New(parser, quote)
	if err != nil {
		return nil, cli.ConfigError("selecting parser", err)
	}
	return c, nil
}

// classify maps a failure to the exit code of the stage that produced it.
func classify(msg string, err error) error {
	switch {
	case querydoc.IsDocumentErr(err):
		return cli.DocumentError(msg, err)
	case sqlcheck.IsSyntaxErr(err):
		return cli.SyntaxError(msg, err)
	case isBuildErr(err):
		return cli.BuildError(msg, err)
	default:
		return cli.GeneralError(msg, err)
	}
}

func isBuildErr(err error) bool {
	return sqlcraft.IsInvalidArgumentErr(err) ||
		sqlcraft.IsTypeMismatchErr(err) ||
		sqlcraft.IsOverflowErr(err) ||
		sqlcraft.IsUnresolvedErr(err)
}

func label(in input, d *querydoc.Document, i int) string {
	return fmt.Sprintf("%s: %s", in.name, d.Label(i))
}
