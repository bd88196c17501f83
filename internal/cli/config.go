package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/pthm/sqlcraft/internal/sqlcheck"
)

const (
	maxWalkDepth = 25
)

// configNames are the file names searched during auto-discovery, in order.
var configNames = []string{"sqlcraft.yaml", "sqlcraft.yml"}

// Config represents the sqlcraft configuration from sqlcraft.yaml.
type Config struct {
	// QueriesDir holds the query documents rendered when no files are given.
	QueriesDir string `mapstructure:"queries_dir" json:"queries_dir"`

	Render RenderConfig `mapstructure:"render" json:"render"`
	Check  CheckConfig  `mapstructure:"check" json:"check"`
}

// RenderConfig holds rendering settings.
type RenderConfig struct {
	QuoteIdentifiers bool   `mapstructure:"quote_identifiers" json:"quote_identifiers"`
	Terminator       string `mapstructure:"terminator" json:"terminator"`
}

// CheckConfig holds syntax verification settings.
type CheckConfig struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled"`
	Parser  string `mapstructure:"parser" json:"parser"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	// 1. Set defaults first (lowest precedence)
	setDefaults(v)

	// 2. Set up environment variable binding
	v.SetEnvPrefix("SQLCRAFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 3. Find and load config file
	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	// 4. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, configPath, err
	}

	return &cfg, configPath, nil
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{Terminator: ";"},
		Check:  CheckConfig{Parser: sqlcheck.ParserTiDB},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("queries_dir", d.QueriesDir)

	v.SetDefault("render.quote_identifiers", d.Render.QuoteIdentifiers)
	v.SetDefault("render.terminator", d.Render.Terminator)

	v.SetDefault("check.enabled", d.Check.Enabled)
	v.SetDefault("check.parser", d.Check.Parser)
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for sqlcraft.yaml or sqlcraft.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// Check for repo boundary (.git file or directory)
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil // No config found, use defaults
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	parser := strings.ToLower(strings.TrimSpace(c.Check.Parser))
	if !slices.Contains(sqlcheck.Parsers, parser) {
		return fmt.Errorf("check.parser must be one of %s, got %q", strings.Join(sqlcheck.Parsers, ", "), c.Check.Parser)
	}
	if c.Check.Enabled {
		if _, err := sqlcheck.New(parser, c.Render.QuoteIdentifiers); err != nil {
			return fmt.Errorf("check.parser %s cannot be used with render.quote_identifiers: %w", parser, err)
		}
	}
	if strings.ContainsAny(c.Render.Terminator, "\n\r") {
		return fmt.Errorf("render.terminator must be a single line")
	}
	return nil
}

// QueryFiles returns the documents to process: args when given, otherwise
// the *.yaml and *.yml files of queries_dir in lexical order. An empty result
// means standard input.
func (c *Config) QueryFiles(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if c.QueriesDir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(c.QueriesDir)
	if err != nil {
		return nil, fmt.Errorf("reading queries_dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(c.QueriesDir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no query documents in %s", c.QueriesDir)
	}
	return files, nil
}
