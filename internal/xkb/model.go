package xkb

import (
	"maps"
	"slices"
	"strings"
)

// NoChar is the literal written for a level that produces nothing.
// It is serialized as "NoSymbol".
const NoChar rune = 0

// CharOrDead is the output of one shift level: a literal character, a dead
// key, or an opaque named keysym.
type CharOrDead struct {
	Kind Kind
	// Char is set for KindLiteral.
	Char rune
	// Name is set for KindDead and KindSymbol.
	Name string
}

// Literal returns a literal character output.
func Literal(c rune) CharOrDead {
	return CharOrDead{Kind: KindLiteral, Char: c}
}

// Dead returns a dead key output. The name is the full keysym name,
// including its "dead_" prefix.
func Dead(name string) CharOrDead {
	return CharOrDead{Kind: KindDead, Name: name}
}

// Symbol returns an opaque named keysym output.
func Symbol(name string) CharOrDead {
	return CharOrDead{Kind: KindSymbol, Name: name}
}

// IsDead reports whether c is a dead key.
func (c CharOrDead) IsDead() bool {
	return c.Kind == KindDead
}

// String returns the keysym name used in symbols files.
func (c CharOrDead) String() string {
	return FormatKeysym(c)
}

// Character is the pair of outputs of one modifier tier.
type Character struct {
	Normal CharOrDead
	Shift  CharOrDead
}

// Output is everything a key produces in the first group.
type Output struct {
	Normal Character
	AltGr  Character
}

// Levels returns the four levels in symbols-file order.
func (o Output) Levels() [4]CharOrDead {
	return [4]CharOrDead{o.Normal.Normal, o.Normal.Shift, o.AltGr.Normal, o.AltGr.Shift}
}

// OutputFromLevels builds an Output from up to four levels. Missing levels
// are NoChar.
func OutputFromLevels(levels ...CharOrDead) Output {
	var l [4]CharOrDead
	for i := range l {
		if i < len(levels) {
			l[i] = levels[i]
		} else {
			l[i] = Literal(NoChar)
		}
	}

	return Output{
		Normal: Character{Normal: l[0], Shift: l[1]},
		AltGr:  Character{Normal: l[2], Shift: l[3]},
	}
}

// KeyCode names a physical key slot, e.g. "AD01". It is written in angle
// brackets in symbols files.
type KeyCode string

// String returns the bracketed key name.
func (k KeyCode) String() string {
	return "<" + string(k) + ">"
}

// physicalOrder lists the alphanumeric block row by row. Keys outside it
// sort after, by name.
var physicalOrder = []KeyCode{
	"TLDE", "AE01", "AE02", "AE03", "AE04", "AE05", "AE06", "AE07", "AE08", "AE09", "AE10", "AE11", "AE12", "AE13",
	"AD01", "AD02", "AD03", "AD04", "AD05", "AD06", "AD07", "AD08", "AD09", "AD10", "AD11", "AD12",
	"AC01", "AC02", "AC03", "AC04", "AC05", "AC06", "AC07", "AC08", "AC09", "AC10", "AC11", "AC12", "BKSL",
	"LSGT", "AB01", "AB02", "AB03", "AB04", "AB05", "AB06", "AB07", "AB08", "AB09", "AB10", "AB11",
	"SPCE", "KPDL",
}

var keyRank = func() map[KeyCode]int {
	rank := make(map[KeyCode]int, len(physicalOrder))
	for i, k := range physicalOrder {
		rank[k] = i
	}

	return rank
}()

// Compare orders key codes: the alphanumeric block in physical order first,
// then everything else alphabetically.
func (k KeyCode) Compare(other KeyCode) int {
	ri, iok := keyRank[k]
	rj, jok := keyRank[other]

	switch {
	case iok && jok:
		return ri - rj
	case iok:
		return -1
	case jok:
		return 1
	default:
		return strings.Compare(string(k), string(other))
	}
}

// Keymap maps key codes to their outputs. Iterate with Keys for a
// deterministic order.
type Keymap map[KeyCode]Output

// Keys returns the key codes in ascending order.
func (m Keymap) Keys() []KeyCode {
	return slices.SortedFunc(maps.Keys(m), KeyCode.Compare)
}

// Overlay copies every entry of other into m, replacing existing ones.
func (m Keymap) Overlay(other Keymap) {
	maps.Copy(m, other)
}

// Partial is a named group of key overrides that may include other partials.
type Partial struct {
	Name string
	// Flags are the header keywords other than "default",
	// e.g. "partial", "alphanumeric_keys".
	Flags []string
	// Includes are references of the form "path" or "path(part)", applied
	// in order before Keys.
	Includes []string
	// DisplayName is the Group1 name; empty when not set.
	DisplayName string
	Keys        Keymap
}

// NewPartial returns an empty alphanumeric partial.
func NewPartial(name string) *Partial {
	return &Partial{
		Name:  name,
		Flags: []string{"partial", "alphanumeric_keys"},
		Keys:  make(Keymap),
	}
}

// Layout is a whole symbols file.
type Layout struct {
	Default  *Partial
	Partials []*Partial
}

// Partial looks a partial up by name, the default one included.
func (l *Layout) Partial(name string) (*Partial, bool) {
	if l.Default != nil && l.Default.Name == name {
		return l.Default, true
	}

	for _, p := range l.Partials {
		if p.Name == name {
			return p, true
		}
	}

	return nil, false
}

// PartialNames lists the names of all partials, default first.
func (l *Layout) PartialNames() []string {
	var names []string
	if l.Default != nil {
		names = append(names, l.Default.Name)
	}

	for _, p := range l.Partials {
		names = append(names, p.Name)
	}

	return names
}
