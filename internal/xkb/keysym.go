package xkb

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	noSymbol      = "NoSymbol"
	deadPrefix    = "dead_"
	unicodeOffset = 0x01000000
)

//go:embed keysyms.yaml
var keysymsYAML []byte

// keysymFile is the schema of keysyms.yaml.
type keysymFile struct {
	Version string          `yaml:"version"`
	Keysyms map[string]rune `yaml:"keysyms"`
	Aliases map[string]rune `yaml:"aliases"`
}

// keysymTable maps X11 keysym names of characters to runes and back.
type keysymTable struct {
	runes map[string]rune
	names map[rune]string
}

var keysyms = sync.OnceValue(func() keysymTable {
	t, err := parseKeysymTable(keysymsYAML)
	if err != nil {
		panic(fmt.Sprintf("xkb: embedded keysym table: %v", err))
	}

	return t
})

func parseKeysymTable(data []byte) (keysymTable, error) {
	var f keysymFile

	if err := yaml.Unmarshal(data, &f); err != nil {
		return keysymTable{}, fmt.Errorf("failed to parse keysym table: %w", err)
	}

	t := keysymTable{
		runes: make(map[string]rune, len(f.Keysyms)+len(f.Aliases)),
		names: make(map[rune]string, len(f.Keysyms)),
	}

	for name, r := range f.Keysyms {
		if other, ok := t.names[r]; ok {
			return keysymTable{}, fmt.Errorf("keysyms %q and %q both name U+%04X", other, name, r)
		}

		t.runes[name] = r
		t.names[r] = name
	}

	for name, r := range f.Aliases {
		if _, ok := t.names[r]; !ok {
			return keysymTable{}, fmt.Errorf("alias %q names U+%04X, which has no keysym", name, r)
		}

		t.runes[name] = r
	}

	return t, nil
}

// DeadKeysyms lists the dead keysym names X11 defines.
var DeadKeysyms = []string{
	"dead_grave", "dead_acute", "dead_circumflex", "dead_tilde",
	"dead_perispomeni", "dead_macron", "dead_breve", "dead_abovedot",
	"dead_diaeresis", "dead_abovering", "dead_doubleacute", "dead_caron",
	"dead_cedilla", "dead_ogonek", "dead_iota", "dead_voiced_sound",
	"dead_semivoiced_sound", "dead_belowdot", "dead_hook", "dead_horn",
	"dead_stroke", "dead_abovecomma", "dead_psili", "dead_abovereversedcomma",
	"dead_dasia", "dead_doublegrave", "dead_belowring", "dead_belowmacron",
	"dead_belowcircumflex", "dead_belowtilde", "dead_belowbreve",
	"dead_belowdiaeresis", "dead_invertedbreve", "dead_belowcomma",
	"dead_currency", "dead_lowline", "dead_aboveverticalline",
	"dead_belowverticalline", "dead_longsolidusoverlay", "dead_a", "dead_A",
	"dead_e", "dead_E", "dead_i", "dead_I", "dead_o", "dead_O", "dead_u",
	"dead_U", "dead_small_schwa", "dead_capital_schwa", "dead_greek",
	"dead_hamza",
}

// ParseKeysym interprets one keysym name from a symbols file.
func ParseKeysym(s string) CharOrDead {
	switch {
	case s == noSymbol:
		return Literal(NoChar)
	case strings.HasPrefix(s, deadPrefix):
		return Dead(s)
	}

	if r, ok := keysyms().runes[s]; ok {
		return Literal(r)
	}

	if r, size := utf8.DecodeRuneInString(s); size == len(s) && r != utf8.RuneError {
		return Literal(r)
	}

	if len(s) >= 5 && s[0] == 'U' {
		if v, err := strconv.ParseUint(s[1:], 16, 32); err == nil && utf8.ValidRune(rune(v)) {
			return Literal(rune(v))
		}
	}

	if strings.HasPrefix(s, "0x") {
		if v, err := strconv.ParseUint(s[2:], 16, 32); err == nil {
			switch {
			case v >= unicodeOffset && utf8.ValidRune(rune(v-unicodeOffset)):
				return Literal(rune(v - unicodeOffset))
			case (v >= 0x20 && v <= 0x7e) || (v >= 0xa0 && v <= 0xff):
				return Literal(rune(v))
			}
		}
	}

	return Symbol(s)
}

// FormatKeysym returns the name ParseKeysym maps back to c.
func FormatKeysym(c CharOrDead) string {
	if c.Kind != KindLiteral {
		return c.Name
	}

	r := c.Char
	switch {
	case r == NoChar:
		return noSymbol
	case r < utf8.RuneSelf && isAlnum(byte(r)):
		return string(r)
	}

	if name, ok := keysyms().names[r]; ok {
		return name
	}

	return fmt.Sprintf("U%04X", r)
}

func isAlnum(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
