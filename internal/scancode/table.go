// Package scancode translates Windows scan codes into XKB key names.
//
// The table is static and embedded in the binary; see table.yaml.
package scancode

import (
	_ "embed"
	"fmt"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"klc2xkb/internal/klc"
	"klc2xkb/internal/xkb"
)

//go:embed table.yaml
var tableYAML []byte

// tableFile is the schema of table.yaml.
type tableFile struct {
	Version string            `yaml:"version"`
	Keys    map[string]string `yaml:"keys"`
}

// Table maps scan codes to key codes.
type Table map[klc.ScanCode]xkb.KeyCode

var defaultTable = sync.OnceValue(func() Table {
	t, err := ParseTable(tableYAML)
	if err != nil {
		panic(fmt.Sprintf("scancode: embedded table: %v", err))
	}

	return t
})

// Default returns the built-in table.
func Default() Table {
	return defaultTable()
}

// Translate looks sc up in the built-in table.
func Translate(sc klc.ScanCode) (xkb.KeyCode, bool) {
	return Default().Translate(sc)
}

// Translate looks sc up in t.
func (t Table) Translate(sc klc.ScanCode) (xkb.KeyCode, bool) {
	kc, ok := t[sc]
	return kc, ok
}

// ParseTable decodes a YAML table of hex scan codes to key names.
func ParseTable(data []byte) (Table, error) {
	var f tableFile

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scan code table: %w", err)
	}

	t := make(Table, len(f.Keys))
	for hex, name := range f.Keys {
		sc, err := strconv.ParseUint(hex, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid scan code %q: %w", hex, err)
		}

		if name == "" {
			return nil, fmt.Errorf("scan code %q has no key name", hex)
		}

		t[klc.ScanCode(sc)] = xkb.KeyCode(name)
	}

	return t, nil
}
