package names_test

import (
	"strings"
	"testing"

	"github.com/db47h/logicsim/internal/names"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestParse(t *testing.T) {
	src := `
# comment
Plug.input = A
Plug.output = "Out put"
Circuit.AND='Et'
Settings.clock = Clock
`
	tbl, err := names.Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, "A", tbl.Get("Plug.input", "x"))
	assert.Equal(t, "Out put", tbl.Get("Plug.output", "x"))
	assert.Equal(t, "Et", tbl.Get("Circuit.AND", "x"))
	_, ok := tbl.Lookup("Settings.clock")
	assert.False(t, ok)
	assert.Equal(t, "fallback", tbl.Get("Circuit.missing", "fallback"))
}

func TestParse_errors(t *testing.T) {
	_, err := names.Parse(strings.NewReader("Plug.input\n"))
	assert.EqualError(t, err, "line 1: missing '='")
	_, err = names.Parse(strings.NewReader("\n = value\n"))
	assert.EqualError(t, err, "line 2: empty key")
}

func TestLoad(t *testing.T) {
	en, err := names.Load(language.English)
	require.NoError(t, err)
	assert.Equal(t, "In", en.Get("Plug.input", ""))
	assert.Equal(t, "AND", en.Get("Circuit.AND", ""))

	fr, err := names.Load(language.MustParse("fr-CA"))
	require.NoError(t, err)
	assert.Equal(t, language.French, fr.Tag())
	assert.Equal(t, "Entrée", fr.Get("Plug.input", ""))
	assert.Equal(t, "ET", fr.Get("Circuit.AND", ""))

	// unsupported locales fall back to English
	ja, err := names.Load(language.Japanese)
	require.NoError(t, err)
	assert.Equal(t, "Out", ja.Get("Plug.output", ""))
}
