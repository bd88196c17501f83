package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/pthm/sqlcraft/internal/cli"
	"github.com/pthm/sqlcraft/internal/sqlcheck"
)

var (
	initYes   bool
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sqlcraft.yaml",
	Long: `Create a sqlcraft.yaml in the current directory, or at the path given by
--config. Settings are prompted for unless --yes is set.`,
	Example: `  # Answer prompts
  sqlcraft init

  # Write defaults without prompting
  sqlcraft init --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveString(cfgFile, "sqlcraft.yaml")
		if _, err := os.Stat(path); err == nil && !initForce {
			return cli.ConfigError(fmt.Sprintf("%s already exists (use --force to overwrite)", path), nil)
		}

		c := cli.DefaultConfig()
		if !initYes {
			if err := promptConfig(&c); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return cli.GeneralError("reading answers", err)
			}
		}

		if err := writeConfig(path, &c); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "write defaults without prompting")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

func promptConfig(c *cli.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Queries directory").
				Description("Documents rendered when no files are given. Leave empty to read stdin.").
				Value(&c.QueriesDir),
			huh.NewConfirm().
				Title("Quote identifiers?").
				Value(&c.Render.QuoteIdentifiers),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Check rendered SQL with a parser?").
				Value(&c.Check.Enabled),
			huh.NewSelect[string]().
				Title("Parser").
				Options(huh.NewOptions(sqlcheck.Parsers...)...).
				Value(&c.Check.Parser),
		),
	)
	return form.Run()
}

// writeConfig validates c and writes it as YAML.
func writeConfig(path string, c *cli.Config) error {
	if err := c.Validate(); err != nil {
		return cli.ConfigError("invalid configuration", err)
	}
	out, err := yaml.Marshal(c)
	if err != nil {
		return cli.GeneralError("encoding configuration", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return cli.GeneralError("writing "+path, err)
	}
	return nil
}
