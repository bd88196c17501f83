package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError(t *testing.T) {
	inner := assert.AnError
	tests := []struct {
		name string
		err  *ExitError
		code int
	}{
		{"config", ConfigError("loading configuration", inner), ExitConfig},
		{"document", DocumentError("parsing queries.yaml", inner), ExitDocument},
		{"build", BuildError("building adults", inner), ExitBuild},
		{"syntax", SyntaxError("checking adults", inner), ExitSyntax},
		{"general", GeneralError("writing output", inner), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.ErrorIs(t, tt.err, inner)
			assert.Equal(t, tt.err.Message+": "+inner.Error(), tt.err.Error())
		})
	}

	assert.Equal(t, "bare", (&ExitError{Code: ExitGeneral, Message: "bare"}).Error())
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		code  int
		first string
		hint  bool
	}{
		{
			name:  "config",
			err:   ConfigError("loading configuration", fmt.Errorf("bad yaml")),
			code:  ExitConfig,
			first: "sqlcraft config error: loading configuration: bad yaml",
			hint:  true,
		},
		{
			name:  "build",
			err:   BuildError("queries.yaml: adults", fmt.Errorf("condition already has two operands")),
			code:  ExitBuild,
			first: "sqlcraft build error: queries.yaml: adults: condition already has two operands",
		},
		{
			name:  "syntax wrapped",
			err:   fmt.Errorf("render: %w", SyntaxError("1 of 3 statements failed", nil)),
			code:  ExitSyntax,
			first: "sqlcraft syntax error: render: 1 of 3 statements failed",
			hint:  true,
		},
		{
			name:  "plain error",
			err:   fmt.Errorf("disk full"),
			code:  ExitGeneral,
			first: "sqlcraft error: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.code, PrintError(&buf, tt.err))

			lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
			assert.Equal(t, tt.first, string(lines[0]))
			if tt.hint {
				assert.Len(t, lines, 2)
				assert.Contains(t, string(lines[1]), "hint: ")
			} else {
				assert.Len(t, lines, 1)
			}
		})
	}
}

func TestStage(t *testing.T) {
	assert.Equal(t, "document", Stage(ExitDocument))
	assert.Equal(t, "", Stage(ExitGeneral))
	assert.Equal(t, "", Stage(ExitSuccess))
}
