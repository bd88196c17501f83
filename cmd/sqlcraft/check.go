package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/sqlcraft/internal/cli"
	"github.com/pthm/sqlcraft/internal/querydoc"
	"github.com/pthm/sqlcraft/internal/report"
	"github.com/pthm/sqlcraft/internal/sqlcheck"
)

var (
	checkParser  string
	checkLenient bool
	checkNoColor bool
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Build and syntax-check query documents",
	Long: `Build every statement in the given query documents and verify the
rendered SQL with a SQL parser, reporting a result per statement.

Unlike render, check keeps going after a failure. It exits non-zero if any
statement fails to build, or fails to parse unless --lenient is set.`,
	Example: `  # Check the documents in queries_dir
  sqlcraft check

  # Check a file against the PostgreSQL grammar, showing the SQL
  sqlcraft check -v --parser postgres queries/users.yaml

  # Report parse failures as warnings
  sqlcraft check --lenient --parser vitess`,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := cfg.QueryFiles(args)
		if err != nil {
			return cli.ConfigError("resolving query files", err)
		}

		quote := cfg.Render.QuoteIdentifiers
		checker, err := newChecker(true, resolveString(checkParser, cfg.Check.Parser), quote)
		if err != nil {
			return err
		}

		inputs, err := readInputs(cmd.InOrStdin(), files)
		if err != nil {
			return err
		}

		r := checkInputs(inputs, checker, quote, checkLenient)
		r.Print(cmd.OutOrStdout(), report.PrintOptions{
			Verbose: verbose > 0,
			Quiet:   quiet,
			Color:   !checkNoColor,
		})

		if r.HasErrors() {
			return cli.SyntaxError(fmt.Sprintf("%d of %d statements failed", r.Errors, len(r.Checks)), nil)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkParser, "parser", "", "parser to check with: tidb, vitess or postgres")
	checkCmd.Flags().BoolVar(&checkLenient, "lenient", false, "report parse failures as warnings")
	checkCmd.Flags().BoolVar(&checkNoColor, "no-color", false, "disable colored output")
}

// checkInputs records one result per document. Build failures always fail;
// parse failures are warnings when lenient is set.
func checkInputs(inputs []input, checker sqlcheck.Checker, quote, lenient bool) *report.Report {
	var r report.Report
	for _, in := range inputs {
		for i, d := range in.docs {
			result := report.CheckResult{Category: in.name, Name: d.Label(i)}

			stmt, err := d.Build(querydoc.Options{QuoteIdentifiers: quote})
			if err != nil {
				result.Status = report.StatusFail
				result.Message = err.Error()
				r.AddCheck(result)
				continue
			}

			result.Details = stmt.SQL()
			if err := checker.Check(result.Details); err != nil {
				result.Status = report.StatusFail
				if lenient {
					result.Status = report.StatusWarn
				}
				result.Message = err.Error()
			}
			r.AddCheck(result)
		}
	}
	return &r
}
