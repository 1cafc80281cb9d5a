package klc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ParseError reports a malformed KLC line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}

	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

type section int

const (
	sectionNone section = iota
	sectionShiftState
	sectionLayout
	sectionDeadKey
	sectionKeyNameDead
	sectionSkip
)

// Shift states KLC files number their columns with.
const (
	stateBase         = 0
	stateShift        = 1
	stateCtrl         = 2
	stateCtrlAlt      = 6
	stateShiftCtrlAlt = 7
)

var skippedSections = map[string]bool{
	"ATTRIBUTES":    true,
	"MODIFIERS":     true,
	"KEYNAME":       true,
	"KEYNAME_EXT":   true,
	"DESCRIPTIONS":  true,
	"LANGUAGENAMES": true,
	"LIGATURE":      true,
}

// ParseFile opens and parses the KLC file at path.
func ParseFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening layout source: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a KLC document. UTF-16 input must start with a byte order
// mark; anything else is read as UTF-8.
func Parse(r io.Reader) (*Layout, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	p := &parser{
		layout: &Layout{
			Keys:            make(map[ScanCode]Key),
			DeadKeyTriggers: make(CharSet),
			DeadKeys:        make(map[rune]map[rune]rune),
			DeadKeyNames:    make(map[rune]string),
		},
		shiftStates: []int{stateBase, stateShift, stateCtrl, stateCtrlAlt, stateShiftCtrlAlt},
	}

	sc := bufio.NewScanner(decoded)
	for sc.Scan() {
		p.line++

		done, err := p.parseLine(sc.Text())
		if err != nil {
			return nil, err
		}

		if done {
			break
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading layout source: %w", err)
	}

	if !p.sawKBD {
		return nil, &ParseError{Msg: "missing KBD line"}
	}

	return p.layout, nil
}

type parser struct {
	layout      *Layout
	line        int
	section     section
	sawKBD      bool
	shiftStates []int
	deadKey     rune
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

// parseLine handles one line and reports whether ENDKBD was reached.
func (p *parser) parseLine(line string) (bool, error) {
	fields := splitFields(line)
	if len(fields) == 0 {
		return false, nil
	}

	keyword := fields[0]
	switch {
	case keyword == "ENDKBD":
		return true, nil
	case keyword == "KBD":
		if len(fields) < 2 {
			return false, p.errorf("KBD line without layout identifier")
		}

		p.sawKBD = true
		p.layout.ID = fields[1]
		p.layout.Name = fields[1]

		if len(fields) > 2 && fields[2] != "" {
			p.layout.Name = fields[2]
		}

		p.section = sectionNone
	case keyword == "COPYRIGHT", keyword == "COMPANY", keyword == "LOCALENAME",
		keyword == "LOCALEID", keyword == "VERSION":
		p.setHeader(keyword, strings.Join(fields[1:], " "))
		p.section = sectionNone
	case keyword == "SHIFTSTATE":
		p.section = sectionShiftState
		p.shiftStates = nil
	case keyword == "LAYOUT":
		p.section = sectionLayout
	case keyword == "DEADKEY":
		if len(fields) < 2 {
			return false, p.errorf("DEADKEY line without trigger")
		}

		trigger, _, err := parseChar(fields[1])
		if err != nil {
			return false, p.errorf("dead key trigger: %v", err)
		}

		p.deadKey = trigger
		p.layout.DeadKeyTriggers.Add(trigger)

		if p.layout.DeadKeys[trigger] == nil {
			p.layout.DeadKeys[trigger] = make(map[rune]rune)
		}

		p.section = sectionDeadKey
	case keyword == "KEYNAME_DEAD":
		p.section = sectionKeyNameDead
	case skippedSections[keyword]:
		p.section = sectionSkip
	default:
		return false, p.parseRow(fields)
	}

	return false, nil
}

func (p *parser) setHeader(keyword, value string) {
	switch keyword {
	case "COPYRIGHT":
		p.layout.Copyright = value
	case "COMPANY":
		p.layout.Company = value
	case "LOCALENAME":
		p.layout.LocaleName = value
	case "LOCALEID":
		p.layout.LocaleID = value
	case "VERSION":
		p.layout.Version = value
	}
}

func (p *parser) parseRow(fields []string) error {
	switch p.section {
	case sectionShiftState:
		state, err := strconv.Atoi(fields[0])
		if err != nil {
			return p.errorf("invalid shift state %q", fields[0])
		}

		p.shiftStates = append(p.shiftStates, state)
	case sectionLayout:
		return p.parseLayoutRow(fields)
	case sectionDeadKey:
		if len(fields) < 2 {
			return p.errorf("dead key row needs a base and a composed character")
		}

		base, _, err := parseChar(fields[0])
		if err != nil {
			return p.errorf("dead key base: %v", err)
		}

		composed, _, err := parseChar(fields[1])
		if err != nil {
			return p.errorf("dead key result: %v", err)
		}

		p.layout.DeadKeys[p.deadKey][base] = composed
	case sectionKeyNameDead:
		if len(fields) < 2 {
			return p.errorf("dead key name row needs a character and a name")
		}

		c, _, err := parseChar(fields[0])
		if err != nil {
			return p.errorf("dead key name: %v", err)
		}

		p.layout.DeadKeyNames[c] = fields[1]
	case sectionNone:
		return p.errorf("unexpected %q outside of any section", fields[0])
	}

	return nil
}

func (p *parser) parseLayoutRow(fields []string) error {
	// Continuation rows of SGCap keys carry -1 as scan code.
	if fields[0] == "-1" {
		return nil
	}

	if len(fields) < 3 {
		return p.errorf("layout row needs scan code, virtual key and cap columns")
	}

	sc, err := strconv.ParseUint(fields[0], 16, 16)
	if err != nil {
		return p.errorf("invalid scan code %q", fields[0])
	}

	key := Key{VirtualKey: fields[1], CapsLock: fields[2]}

	for i, col := range fields[3:] {
		if i >= len(p.shiftStates) {
			break
		}

		c, dead, err := parseChar(col)
		if err != nil {
			return p.errorf("scan code %s: %v", ScanCode(sc), err)
		}

		if dead {
			p.layout.DeadKeyTriggers.Add(c)
		}

		switch p.shiftStates[i] {
		case stateBase:
			key.Normal = c
		case stateShift:
			key.Shift = c
		case stateCtrlAlt:
			key.CtrlAlt = c
		case stateShiftCtrlAlt:
			key.ShiftCtrlAlt = c
		}
	}

	p.layout.Keys[ScanCode(sc)] = key

	return nil
}

// parseChar decodes one character column: "-1" or "%%" for none, a single
// character, or a hex code point, optionally followed by the "@" dead key
// marker.
func parseChar(s string) (rune, bool, error) {
	if s == "-1" || s == "%%" {
		return NoChar, false, nil
	}

	dead := false
	if len(s) > 1 && strings.HasSuffix(s, "@") {
		s = s[:len(s)-1]
		dead = true
	}

	if r, size := utf8.DecodeRuneInString(s); size == len(s) && r != utf8.RuneError {
		return r, dead, nil
	}

	if len(s) >= 4 && len(s) <= 6 {
		if v, err := strconv.ParseUint(s, 16, 32); err == nil && utf8.ValidRune(rune(v)) {
			return rune(v), dead, nil
		}
	}

	return NoChar, false, fmt.Errorf("invalid character %q", s)
}

// splitFields splits a line on whitespace. Quoted strings form one field
// without their quotes. A field starting with "//", or with ";" followed by
// more text, begins a comment.
func splitFields(line string) []string {
	var fields []string

	for {
		line = strings.TrimLeft(line, " \t\r")
		if line == "" {
			return fields
		}

		if line[0] == '"' {
			end := strings.IndexByte(line[1:], '"')
			if end < 0 {
				return append(fields, line[1:])
			}

			fields = append(fields, line[1:end+1])
			line = line[end+2:]

			continue
		}

		end := strings.IndexAny(line, " \t\r")
		if end < 0 {
			end = len(line)
		}

		field := line[:end]
		if strings.HasPrefix(field, "//") || (strings.HasPrefix(field, ";") && len(field) > 1) {
			return fields
		}

		fields = append(fields, field)
		line = line[end:]
	}
}
