package xkb

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLayout() *Layout {
	basic := NewPartial("basic")
	basic.Includes = []string{"dk(basic)"}
	basic.DisplayName = `Czech "programmer"`
	basic.Keys["AD01"] = OutputFromLevels(Literal('q'), Literal('Q'), Literal('\\'))
	basic.Keys["TLDE"] = OutputFromLevels(Literal(';'), Literal('°'), Dead("dead_caron"), Literal('ř'))

	return &Layout{Default: basic}
}

func TestWriteTo(t *testing.T) {
	var buf bytes.Buffer

	n, err := sampleLayout().WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	want := `default partial alphanumeric_keys
xkb_symbols "basic" {
    include "dk(basic)"
    name[Group1] = "Czech \"programmer\"";

    key <TLDE> { [ semicolon, degree, dead_caron, rcaron ] };
    key <AD01> { [ q, Q, backslash, NoSymbol ] };
};
`
	assert.Equal(t, want, buf.String())
}

func TestWriteParseRoundTrip(t *testing.T) {
	layout := sampleLayout()
	extra := NewPartial("extra")
	extra.Includes = []string{"dk(basic)", "level3(ralt_switch)"}
	extra.Keys["SPCE"] = OutputFromLevels(Literal(' '), Literal(' '), Literal('\u00a0'), Symbol("Multi_key"))
	layout.Partials = append(layout.Partials, extra)

	var buf bytes.Buffer
	_, err := layout.WriteTo(&buf)
	require.NoError(t, err)

	parsed, err := ParseBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, layout, parsed)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cz")

	require.NoError(t, WriteFile(sampleLayout(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `key <AD01> { [ q, Q, backslash, NoSymbol ] };`)

	err = WriteFile(sampleLayout(), filepath.Join(t.TempDir(), "missing", "cz"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
