// Package cli provides shared configuration and utilities for the sqlcraft CLI.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Exit codes. Each non-zero code names the stage of the render pipeline
// that failed: configuration, query document parsing, statement building,
// or the parser check of the rendered SQL.
const (
	ExitSuccess  = 0
	ExitGeneral  = 1
	ExitConfig   = 2 // sqlcraft.yaml, env or flags
	ExitDocument = 3 // query document is malformed
	ExitBuild    = 4 // document is well-formed but the builder rejected it
	ExitSyntax   = 5 // rendered SQL failed the parser check
)

var stageNames = map[int]string{
	ExitConfig:   "config",
	ExitDocument: "document",
	ExitBuild:    "build",
	ExitSyntax:   "syntax",
}

var stageHints = map[int]string{
	ExitConfig: "run 'sqlcraft config show --source' to see which settings were loaded, " +
		"or 'sqlcraft init' to create sqlcraft.yaml",
	ExitSyntax: "run 'sqlcraft check' for a per-statement report",
}

// Stage returns the pipeline stage for an exit code, or "" for
// ExitSuccess and ExitGeneral.
func Stage(code int) string {
	return stageNames[code]
}

// ExitError carries the exit code of the stage that failed alongside the
// underlying builder, parser or I/O error.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// PrintError writes err to w prefixed with its stage, followed by a hint
// for stages that have one, and returns the exit code to use.
func PrintError(w io.Writer, err error) int {
	code := ExitGeneral
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
	}

	prefix := "sqlcraft"
	if stage := Stage(code); stage != "" {
		prefix += " " + stage
	}
	fmt.Fprintf(w, "%s error: %v\n", prefix, err)
	if hint := stageHints[code]; hint != "" {
		fmt.Fprintf(w, "hint: %s\n", hint)
	}
	return code
}

// ExitWithError prints err to stderr and exits with its stage's code.
func ExitWithError(err error) {
	os.Exit(PrintError(os.Stderr, err))
}

func newExitError(code int, msg string, err error) *ExitError {
	return &ExitError{Code: code, Message: msg, Err: err}
}

// ConfigError reports a bad config file, environment variable or flag.
func ConfigError(msg string, err error) *ExitError {
	return newExitError(ExitConfig, msg, err)
}

// DocumentError reports a query document that could not be decoded.
func DocumentError(msg string, err error) *ExitError {
	return newExitError(ExitDocument, msg, err)
}

// BuildError reports a statement the sqlcraft builder refused to construct.
func BuildError(msg string, err error) *ExitError {
	return newExitError(ExitBuild, msg, err)
}

// SyntaxError reports rendered SQL the configured parser rejected.
func SyntaxError(msg string, err error) *ExitError {
	return newExitError(ExitSyntax, msg, err)
}

// GeneralError creates an ExitError with ExitGeneral code.
func GeneralError(msg string, err error) *ExitError {
	return newExitError(ExitGeneral, msg, err)
}
