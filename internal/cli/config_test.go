package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldCwd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })
	require.NoError(t, os.Chdir(dir))
}

// gitRoot creates a temp directory marked as a repository root.
func gitRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	return root
}

func TestFindConfigFile_ExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "custom.yaml")
	err := os.WriteFile(tmpFile, []byte("queries_dir: queries"), 0o644)
	require.NoError(t, err)

	path, err := findConfigFile(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, tmpFile, path)
}

func TestFindConfigFile_ExplicitPathNotFound(t *testing.T) {
	_, err := findConfigFile("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestFindConfigFile_AutoDiscovery(t *testing.T) {
	root := gitRoot(t)

	configPath := filepath.Join(root, "sqlcraft.yaml")
	err := os.WriteFile(configPath, []byte("queries_dir: queries"), 0o644)
	require.NoError(t, err)

	nested := filepath.Join(root, "deep", "nested")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	path, err := findConfigFile("")
	require.NoError(t, err)

	// Resolve symlinks for comparison (macOS /var -> /private/var)
	expectedPath, _ := filepath.EvalSymlinks(configPath)
	actualPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, expectedPath, actualPath)
}

func TestFindConfigFile_PrefersYamlOverYml(t *testing.T) {
	root := gitRoot(t)

	yamlPath := filepath.Join(root, "sqlcraft.yaml")
	ymlPath := filepath.Join(root, "sqlcraft.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("queries_dir: a"), 0o644))
	require.NoError(t, os.WriteFile(ymlPath, []byte("queries_dir: b"), 0o644))
	chdir(t, root)

	path, err := findConfigFile("")
	require.NoError(t, err)

	expectedPath, _ := filepath.EvalSymlinks(yamlPath)
	actualPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, expectedPath, actualPath)
}

func TestFindConfigFile_StopsAtGitRoot(t *testing.T) {
	root := t.TempDir()
	err := os.WriteFile(filepath.Join(root, "sqlcraft.yaml"), []byte("queries_dir: above"), 0o644)
	require.NoError(t, err)

	project := filepath.Join(root, "project")
	require.NoError(t, os.MkdirAll(project, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(project, ".git"), 0o755))
	chdir(t, project)

	path, err := findConfigFile("")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestFindConfigFile_NoConfigReturnsEmpty(t *testing.T) {
	chdir(t, gitRoot(t))

	path, err := findConfigFile("")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, gitRoot(t))

	cfg, configPath, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, configPath)

	assert.Empty(t, cfg.QueriesDir)
	assert.False(t, cfg.Render.QuoteIdentifiers)
	assert.Equal(t, ";", cfg.Render.Terminator)
	assert.False(t, cfg.Check.Enabled)
	assert.Equal(t, "tidb", cfg.Check.Parser)
}

func TestDefaultConfig_Valid(t *testing.T) {
	d := DefaultConfig()
	require.NoError(t, d.Validate())
	assert.Equal(t, ";", d.Render.Terminator)
	assert.Equal(t, "tidb", d.Check.Parser)
}

func TestLoadConfig_FromFile(t *testing.T) {
	root := gitRoot(t)

	configPath := filepath.Join(root, "sqlcraft.yaml")
	err := os.WriteFile(configPath, []byte(`
queries_dir: queries
render:
  quote_identifiers: true
check:
  enabled: true
  parser: postgres
`), 0o644)
	require.NoError(t, err)
	chdir(t, root)

	cfg, foundPath, err := LoadConfig("")
	require.NoError(t, err)

	expectedPath, _ := filepath.EvalSymlinks(configPath)
	actualPath, _ := filepath.EvalSymlinks(foundPath)
	assert.Equal(t, expectedPath, actualPath)

	assert.Equal(t, "queries", cfg.QueriesDir)
	assert.True(t, cfg.Render.QuoteIdentifiers)
	assert.True(t, cfg.Check.Enabled)
	assert.Equal(t, "postgres", cfg.Check.Parser)

	// Defaults still apply for unset values
	assert.Equal(t, ";", cfg.Render.Terminator)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	root := gitRoot(t)
	err := os.WriteFile(filepath.Join(root, "sqlcraft.yaml"), []byte("queries_dir: file"), 0o644)
	require.NoError(t, err)
	chdir(t, root)

	t.Setenv("SQLCRAFT_QUERIES_DIR", "env")

	cfg, _, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.QueriesDir)
}

func TestLoadConfig_NestedEnvVars(t *testing.T) {
	chdir(t, gitRoot(t))

	t.Setenv("SQLCRAFT_CHECK_PARSER", "vitess")
	t.Setenv("SQLCRAFT_CHECK_ENABLED", "true")

	cfg, _, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "vitess", cfg.Check.Parser)
	assert.True(t, cfg.Check.Enabled)
}

func TestLoadConfig_InvalidParser(t *testing.T) {
	root := gitRoot(t)
	err := os.WriteFile(filepath.Join(root, "sqlcraft.yaml"), []byte("check:\n  parser: oracle\n"), 0o644)
	require.NoError(t, err)
	chdir(t, root)

	_, _, err = LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check.parser must be one of")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{Render: RenderConfig{Terminator: ";"}, Check: CheckConfig{Parser: "tidb"}},
		},
		{
			name: "parser case and spacing ignored",
			cfg:  Config{Check: CheckConfig{Parser: " Postgres "}},
		},
		{
			name:    "unknown parser",
			cfg:     Config{Check: CheckConfig{Parser: "sqlite"}},
			wantErr: "check.parser",
		},
		{
			name: "vitess without quoting",
			cfg:  Config{Check: CheckConfig{Enabled: true, Parser: "vitess"}},
		},
		{
			name:    "vitess with quoting",
			cfg:     Config{Render: RenderConfig{QuoteIdentifiers: true}, Check: CheckConfig{Enabled: true, Parser: "vitess"}},
			wantErr: "render.quote_identifiers",
		},
		{
			name: "vitess with quoting when unchecked",
			cfg:  Config{Render: RenderConfig{QuoteIdentifiers: true}, Check: CheckConfig{Parser: "vitess"}},
		},
		{
			name:    "multiline terminator",
			cfg:     Config{Render: RenderConfig{Terminator: ";\n"}, Check: CheckConfig{Parser: "tidb"}},
			wantErr: "render.terminator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_QueryFiles(t *testing.T) {
	t.Run("args win", func(t *testing.T) {
		cfg := &Config{QueriesDir: "ignored"}
		files, err := cfg.QueryFiles([]string{"a.yaml", "b.yaml"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.yaml", "b.yaml"}, files)
	})

	t.Run("no dir means stdin", func(t *testing.T) {
		files, err := (&Config{}).QueryFiles(nil)
		require.NoError(t, err)
		assert.Nil(t, files)
	})

	t.Run("yaml files in lexical order", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"b.yml", "a.yaml", "notes.txt"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

		files, err := (&Config{QueriesDir: dir}).QueryFiles(nil)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yml")}, files)
	})

	t.Run("empty dir", func(t *testing.T) {
		_, err := (&Config{QueriesDir: t.TempDir()}).QueryFiles(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no query documents")
	})

	t.Run("missing dir", func(t *testing.T) {
		_, err := (&Config{QueriesDir: filepath.Join(t.TempDir(), "missing")}).QueryFiles(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading queries_dir")
	})
}
