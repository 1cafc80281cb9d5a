package diagnostic

import (
	"fmt"
	"strings"
)

// Codes of the diagnostics a conversion produces.
const (
	CodeUnmappedKey    = "UNMAPPED_KEY"
	CodeSameAsBaseline = "SAME_AS_BASELINE"
)

// Diagnostics holds everything reported for one conversion, or for a run
// after merging.
type Diagnostics struct {
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of finding.
	Code    string
	Message string
	// ScanCode is the Windows scan code concerned, in hex, if any.
	ScanCode string
	// KeyCode is the XKB key concerned, if any.
	KeyCode string
}

// Severity ranks diagnostics.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

func (d *Diagnostics) add(sev Severity, code, message, scanCode, keyCode string) {
	diag := Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		ScanCode: scanCode,
		KeyCode:  keyCode,
	}

	if sev == SeverityWarning {
		d.Warnings = append(d.Warnings, diag)
	} else {
		d.Infos = append(d.Infos, diag)
	}
}

// AddWarning records a warning.
func (d *Diagnostics) AddWarning(code, message, scanCode, keyCode string) {
	d.add(SeverityWarning, code, message, scanCode, keyCode)
}

// AddInfo records an informational note.
func (d *Diagnostics) AddInfo(code, message, scanCode, keyCode string) {
	d.add(SeverityInfo, code, message, scanCode, keyCode)
}

// Merge appends everything from other.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Count returns how many diagnostics carry code, across both severities.
func (d *Diagnostics) Count(code string) int {
	n := 0

	for _, list := range [][]Diagnostic{d.Warnings, d.Infos} {
		for _, diag := range list {
			if diag.Code == code {
				n++
			}
		}
	}

	return n
}

// String formats the diagnostic as "[sc 1c <AD01>] [CODE] message".
func (d Diagnostic) String() string {
	var where []string
	if d.ScanCode != "" {
		where = append(where, "sc "+d.ScanCode)
	}

	if d.KeyCode != "" {
		where = append(where, "<"+d.KeyCode+">")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(where) > 0 {
		return "[" + strings.Join(where, " ") + "] " + msg
	}

	return msg
}
