// Package report collects per-statement check results and prints them.
//
// Example usage:
//
//	var r report.Report
//	r.AddCheck(report.CheckResult{Category: "queries.yaml", Name: "adults", Status: report.StatusPass})
//	r.Print(os.Stdout, report.PrintOptions{Verbose: true})
//	if r.HasErrors() {
//		os.Exit(cli.ExitSyntax)
//	}
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status represents the result of a check.
type Status int

const (
	// StatusPass indicates the statement built and parsed.
	StatusPass Status = iota
	// StatusWarn indicates a failure that was downgraded.
	StatusWarn
	// StatusFail indicates the statement did not build or parse.
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns a status indicator symbol for terminal output.
func (s Status) Symbol() string {
	switch s {
	case StatusPass:
		return "✓"
	case StatusWarn:
		return "⚠"
	case StatusFail:
		return "✗"
	default:
		return "?"
	}
}

var symbolStyles = map[Status]lipgloss.Style{
	StatusPass: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	StatusWarn: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	StatusFail: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
}

var (
	categoryStyle = lipgloss.NewStyle().Bold(true)
	detailStyle   = lipgloss.NewStyle().Faint(true)
)

// CheckResult represents the outcome for a single statement.
type CheckResult struct {
	// Category groups results, usually by source file.
	Category string

	// Name is the document label.
	Name string

	// Status is the check outcome.
	Status Status

	// Message is a human-readable description of the result.
	Message string

	// Details holds the rendered SQL, shown in verbose output.
	Details string
}

// Report contains all check results.
type Report struct {
	Checks []CheckResult

	// Summary counts.
	Passed   int
	Warnings int
	Errors   int
}

// AddCheck adds a check result and updates summary counts.
func (r *Report) AddCheck(check CheckResult) {
	r.Checks = append(r.Checks, check)
	switch check.Status {
	case StatusPass:
		r.Passed++
	case StatusWarn:
		r.Warnings++
	case StatusFail:
		r.Errors++
	}
}

// PrintOptions controls report output.
type PrintOptions struct {
	// Verbose prints details under each result.
	Verbose bool

	// Quiet omits passing results.
	Quiet bool

	// Color styles symbols and headings with ANSI sequences.
	Color bool
}

// Print writes the report to the given writer.
func (r *Report) Print(w io.Writer, opts PrintOptions) {
	render := func(s lipgloss.Style, text string) string {
		if !opts.Color {
			return text
		}
		return s.Render(text)
	}

	categories := make(map[string][]CheckResult)
	var categoryOrder []string
	for _, check := range r.Checks {
		if _, exists := categories[check.Category]; !exists {
			categoryOrder = append(categoryOrder, check.Category)
		}
		categories[check.Category] = append(categories[check.Category], check)
	}

	for _, cat := range categoryOrder {
		var lines []CheckResult
		for _, check := range categories[cat] {
			if opts.Quiet && check.Status == StatusPass {
				continue
			}
			lines = append(lines, check)
		}
		if len(lines) == 0 {
			continue
		}

		_, _ = fmt.Fprintf(w, "\n%s\n", render(categoryStyle, cat))
		for _, check := range lines {
			line := check.Name
			if check.Message != "" {
				line += ": " + check.Message
			}
			_, _ = fmt.Fprintf(w, "  %s %s\n", render(symbolStyles[check.Status], check.Status.Symbol()), line)
			if opts.Verbose && check.Details != "" {
				for _, l := range strings.Split(check.Details, "\n") {
					_, _ = fmt.Fprintf(w, "      %s\n", render(detailStyle, l))
				}
			}
		}
	}

	_, _ = fmt.Fprintf(w, "\nSummary: %d passed, %d warnings, %d errors\n",
		r.Passed, r.Warnings, r.Errors)
}

// HasErrors returns true if any check failed.
func (r *Report) HasErrors() bool {
	return r.Errors > 0
}
