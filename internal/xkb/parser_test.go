package xkb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dkSymbols = `
// Base for layouts converted from Windows.
default partial alphanumeric_keys
xkb_symbols "basic" {
    include "latin(type4)+level3(ralt_switch)"
    name[Group1] = "Dead keys base";

    key <AD01> { [ q, Q, at, NoSymbol ] };
    key <AC01> { [ a, A, ae, AE ] };
    key <AE06> { [ 6, asciicircum, dead_circumflex ] };
    override key <RALT> {
        type[Group1] = "TWO_LEVEL",
        symbols[Group1] = [ ISO_Level3_Shift, Multi_key ]
    };
    modifier_map Mod5 { <LVL3>, <MDSW> };
    key.type[Group1] = "FOUR_LEVEL";
};

partial alphanumeric_keys
xkb_symbols "intl" {
    include "dk(basic)"
    name[Group1] = "Dead keys intl";
    key <AB01> { [ z, Z ], [ y, Y ] };
    key <AD03> { [ e, E, EuroSign, { cent, sterling } ] };
};
`

func TestParse(t *testing.T) {
	layout, err := Parse(strings.NewReader(dkSymbols))
	require.NoError(t, err)
	require.NotNil(t, layout.Default)

	basic := layout.Default
	assert.Equal(t, "basic", basic.Name)
	assert.Equal(t, []string{"partial", "alphanumeric_keys"}, basic.Flags)
	assert.Equal(t, []string{"latin(type4)", "level3(ralt_switch)"}, basic.Includes)
	assert.Equal(t, "Dead keys base", basic.DisplayName)

	assert.Equal(t, OutputFromLevels(Literal('q'), Literal('Q'), Literal('@'), Literal(NoChar)), basic.Keys["AD01"])
	assert.Equal(t, OutputFromLevels(Literal('a'), Literal('A'), Literal('æ'), Literal('Æ')), basic.Keys["AC01"])
	assert.Equal(t, OutputFromLevels(Literal('6'), Literal('^'), Dead("dead_circumflex")), basic.Keys["AE06"])
	assert.Equal(t, OutputFromLevels(Symbol("ISO_Level3_Shift"), Symbol("Multi_key")), basic.Keys["RALT"])
	assert.Len(t, basic.Keys, 4)

	require.Len(t, layout.Partials, 1)
	intl, ok := layout.Partial("intl")
	require.True(t, ok)
	assert.Equal(t, []string{"dk(basic)"}, intl.Includes)
	assert.Equal(t, OutputFromLevels(Literal('z'), Literal('Z')), intl.Keys["AB01"])
	assert.Equal(t, OutputFromLevels(Literal('e'), Literal('E'), Literal('€'), Literal('¢')), intl.Keys["AD03"])

	assert.Equal(t, []string{"basic", "intl"}, layout.PartialNames())

	_, ok = layout.Partial("missing")
	assert.False(t, ok)
}

func TestParseDefaultFlagAfterFirstPartial(t *testing.T) {
	src := `
xkb_symbols "first" { key <AD01> { [ q ] }; };
default xkb_symbols "second" { key <AD02> { [ w ] }; };
`
	layout, err := ParseBytes([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "second", layout.Default.Name)
	require.Len(t, layout.Partials, 1)
	assert.Equal(t, "first", layout.Partials[0].Name)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"empty", "", 1},
		{"unterminated block", "xkb_symbols \"basic\" {\n key <AD01> { [ q ] };\n", 3},
		{"unterminated string", "xkb_symbols \"basic", 1},
		{"bad symbol list", "xkb_symbols \"basic\" {\n key <AD01> { [ q = ] };\n};", 2},
		{"missing brace", "xkb_symbols \"basic\"\n key", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.src))
			require.Error(t, err)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestSplitIncludes(t *testing.T) {
	assert.Equal(t, []string{"us"}, splitIncludes("us"))
	assert.Equal(t, []string{"latin(type4)", "inet(evdev)"}, splitIncludes("latin(type4)+inet(evdev)"))
	assert.Equal(t, []string{"pc", "us", "inet(evdev)"}, splitIncludes("pc+us|inet(evdev)"))
	assert.Nil(t, splitIncludes(""))
}
