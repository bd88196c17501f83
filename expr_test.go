package sqlcraft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteral(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"integer", "42", "42"},
		{"negative", "-7", "-7"},
		{"decimal", "3.14", "3.14"},
		{"leading dot", ".5", ".5"},
		{"exponent", "1e5", "1e5"},
		{"string", "bob", "'bob'"},
		{"embedded quote", "it's", "'it''s'"},
		{"empty", "", "''"},
		{"padded number", " 1", "' 1'"},
		{"hex is not numeric", "0x10", "'0x10'"},
		{"nan is not numeric", "NaN", "'NaN'"},
		{"date", "2024-01-01", "'2024-01-01'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Literal(tt.value))
		})
	}
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"users"`, QuoteIdent("users"))
	assert.Equal(t, `"public"."users"`, QuoteIdent("public", "users"))
	assert.Equal(t, `"odd""name"`, QuoteIdent(`odd"name`))
}

func TestColAndRaw(t *testing.T) {
	assert.Equal(t, "name", Col("name").SQL())
	assert.Equal(t, "a = b", Raw("a = b").SQL())

	cols := Cols("id", "name")
	require.Len(t, cols, 2)
	assert.Equal(t, "id, name", columnsSQL(cols))
	assert.Equal(t, "*", columnsSQL(nil))
}

func TestJoinClauses(t *testing.T) {
	assert.Equal(t, "SELECT * FROM t", joinClauses("SELECT *", "FROM t", "", ""))
	assert.Equal(t, "a b", joinClauses("", "a", "", "b"))
	assert.Equal(t, "", joinClauses("", ""))
}

func TestOptf(t *testing.T) {
	assert.Equal(t, "DISTINCT ", optf(true, "DISTINCT "))
	assert.Equal(t, "", optf(false, "DISTINCT "))
	assert.Equal(t, "OFFSET 10", optf(true, "OFFSET %d", 10))
}

func TestRequired(t *testing.T) {
	require.NoError(t, required("name", "x"))
	assert.ErrorIs(t, required("name", ""), ErrInvalidArgument)
	assert.ErrorIs(t, required("name", "   "), ErrInvalidArgument)
}

func TestMust(t *testing.T) {
	assert.Equal(t, "x", Must("x", nil))
	assert.Panics(t, func() { Must(NewTable("")) })
}

func TestIsNil(t *testing.T) {
	var table *Table
	var src Source = table
	assert.True(t, isNil(nil))
	assert.True(t, isNil(src))
	assert.False(t, isNil(Col("a")))
	assert.False(t, isNil(&Table{name: "t"}))
}
