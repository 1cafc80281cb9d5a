package klc

import (
	"fmt"
	"maps"
	"slices"
)

// NoChar marks a shift state with no character assigned.
const NoChar rune = 0

// ScanCode identifies a physical key on the Windows side.
type ScanCode uint16

// String returns the scan code in the two digit hex form KLC files use.
func (s ScanCode) String() string {
	return fmt.Sprintf("%02x", uint16(s))
}

// Key holds the characters of one scan code. Unassigned states are NoChar.
type Key struct {
	VirtualKey string
	// CapsLock is the raw "Cap" column: "0", "1", "SGCap", ...
	CapsLock     string
	Normal       rune
	Shift        rune
	CtrlAlt      rune
	ShiftCtrlAlt rune
}

// CharSet is a set of characters.
type CharSet map[rune]struct{}

// NewCharSet returns a set holding rs.
func NewCharSet(rs ...rune) CharSet {
	s := make(CharSet, len(rs))
	for _, r := range rs {
		s.Add(r)
	}

	return s
}

// Add inserts r.
func (s CharSet) Add(r rune) {
	s[r] = struct{}{}
}

// Contains reports whether r is in the set. A nil set is empty.
func (s CharSet) Contains(r rune) bool {
	_, ok := s[r]
	return ok
}

// Sorted returns the members in ascending order.
func (s CharSet) Sorted() []rune {
	return slices.Sorted(maps.Keys(s))
}

// Layout is a parsed KLC file.
type Layout struct {
	// ID is the layout identifier from the KBD line, e.g. "kbdus".
	ID string
	// Name is the description from the KBD line; ID when absent.
	Name string

	Copyright  string
	Company    string
	LocaleName string
	LocaleID   string
	Version    string

	Keys map[ScanCode]Key

	// DeadKeyTriggers holds every character marked "@" in LAYOUT or
	// opening a DEADKEY table.
	DeadKeyTriggers CharSet
	// DeadKeys maps a trigger to its base → composed character table.
	DeadKeys map[rune]map[rune]rune
	// DeadKeyNames holds the KEYNAME_DEAD descriptions, e.g. "ACUTE ACCENT".
	DeadKeyNames map[rune]string
}

// ScanCodes returns the scan codes of Keys in ascending order.
func (l *Layout) ScanCodes() []ScanCode {
	return slices.Sorted(maps.Keys(l.Keys))
}
