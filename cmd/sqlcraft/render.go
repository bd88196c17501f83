package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm/sqlcraft/internal/cli"
	"github.com/pthm/sqlcraft/internal/querydoc"
	"github.com/pthm/sqlcraft/internal/sqlcheck"
)

var (
	renderCheck      bool
	renderParser     string
	renderQuote      bool
	renderTerminator string
)

var renderCmd = &cobra.Command{
	Use:   "render [files...]",
	Short: "Render query documents to SQL",
	Long: `Render every statement in the given query documents to SQL.

Without arguments, the documents in queries_dir are rendered, or standard
input when queries_dir is not set. Nothing is written unless every statement
builds (and, with --check, parses).`,
	Example: `  # Render a file
  sqlcraft render queries/users.yaml

  # Render from stdin and verify with the PostgreSQL grammar
  cat users.yaml | sqlcraft render --check --parser postgres

  # Render with quoted identifiers and no terminator
  sqlcraft render --quote-identifiers --terminator "" queries/users.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := cfg.QueryFiles(args)
		if err != nil {
			return cli.ConfigError("resolving query files", err)
		}

		opts := renderOptions{
			quote:      resolveBool(renderQuote, cfg.Render.QuoteIdentifiers),
			terminator: cfg.Render.Terminator,
			labels:     verbose > 0,
		}
		if cmd.Flags().Changed("terminator") {
			opts.terminator = renderTerminator
		}
		opts.checker, err = newChecker(
			resolveBool(renderCheck, cfg.Check.Enabled),
			resolveString(renderParser, cfg.Check.Parser),
			opts.quote,
		)
		if err != nil {
			return err
		}

		inputs, err := readInputs(cmd.InOrStdin(), files)
		if err != nil {
			return err
		}
		return renderInputs(cmd.OutOrStdout(), inputs, opts)
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderCheck, "check", false, "verify each statement with a SQL parser")
	renderCmd.Flags().StringVar(&renderParser, "parser", "", "parser used by --check: tidb, vitess or postgres")
	renderCmd.Flags().BoolVar(&renderQuote, "quote-identifiers", false, "render names as double-quoted identifiers")
	renderCmd.Flags().StringVar(&renderTerminator, "terminator", "", "text appended to each statement (default from config)")
}

type renderOptions struct {
	quote      bool
	terminator string
	checker    sqlcheck.Checker
	// labels prefixes each statement with a comment naming its document.
	labels     bool
}

// renderInputs builds every document and writes the SQL once all succeed.
func renderInputs(w io.Writer, inputs []input, opts renderOptions) error {
	var sb strings.Builder
	for _, in := range inputs {
		for i, d := range in.docs {
			name := label(in, d, i)
			stmt, err := d.Build(querydoc.Options{QuoteIdentifiers: opts.quote})
			if err != nil {
				return classify("building "+name, err)
			}
			sql := stmt.SQL()
			if opts.checker != nil {
				if err := opts.checker.Check(sql); err != nil {
					return classify("checking "+name, err)
				}
			}
			if opts.labels {
				fmt.Fprintf(&sb, "-- %s\n", name)
			}
			sb.WriteString(sql)
			sb.WriteString(opts.terminator)
			sb.WriteByte('\n')
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return cli.GeneralError("writing output", err)
	}
	return nil
}
