package main

import (
	"github.com/spf13/cobra"

	"github.com/pthm/sqlcraft/internal/cli"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "sqlcraft",
	Short: "Programmatic SQL query builder",
	Long: `sqlcraft - Programmatic SQL query builder

sqlcraft builds SELECT, INSERT, UPDATE and DELETE statements from YAML query
documents and renders them as SQL text, optionally verifying the output with
a SQL parser.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for help/completion/version/init commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" || cmd.Name() == "init" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}

		return nil
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

// Command group IDs
const (
	groupQueries = "queries"
	groupUtility = "utility"
)

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover sqlcraft.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupQueries, Title: "Queries:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	renderCmd.GroupID = groupQueries
	checkCmd.GroupID = groupQueries
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(checkCmd)

	initCmd.GroupID = groupUtility
	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// resolveString returns the first non-empty string from the provided values.
// Used to implement precedence: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveBool returns true if any of the provided values is true.
// Used for boolean flags where any true value should win.
func resolveBool(values ...bool) bool {
	for _, v := range values {
		if v {
			return true
		}
	}
	return false
}
