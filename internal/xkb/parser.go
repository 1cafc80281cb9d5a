package xkb

import (
	"fmt"
	"io"
	"strings"
)

// ParseError reports malformed symbols input.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse reads a symbols file.
func Parse(r io.Reader) (*Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading symbols: %w", err)
	}

	return ParseBytes(data)
}

// ParseBytes parses a symbols file held in memory. The partial flagged
// "default" becomes Layout.Default; without one the first partial does.
func ParseBytes(data []byte) (*Layout, error) {
	p := &parser{lex: &lexer{src: data, line: 1}}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var (
		layout   Layout
		explicit bool
	)

	for p.tok.kind != tokEOF {
		part, isDefault, err := p.parsePartial()
		if err != nil {
			return nil, err
		}

		switch {
		case isDefault && !explicit:
			if layout.Default != nil {
				layout.Partials = append([]*Partial{layout.Default}, layout.Partials...)
			}

			layout.Default = part
			explicit = true
		case layout.Default == nil:
			layout.Default = part
		default:
			layout.Partials = append(layout.Partials, part)
		}
	}

	if layout.Default == nil {
		return nil, &ParseError{Line: p.tok.line, Msg: "no xkb_symbols block"}
	}

	return &layout, nil
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}

	p.tok = tok

	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.tok.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) is(kind tokenKind, text string) bool {
	return p.tok.kind == kind && p.tok.text == text
}

func (p *parser) expect(kind tokenKind, text string) error {
	if !p.is(kind, text) {
		return p.errorf("expected %q, found %q", text, p.tok.text)
	}

	return p.advance()
}

// skipOptional consumes the current token when it matches.
func (p *parser) skipOptional(kind tokenKind, text string) error {
	if p.is(kind, text) {
		return p.advance()
	}

	return nil
}

func (p *parser) parsePartial() (*Partial, bool, error) {
	part := &Partial{Keys: make(Keymap)}
	isDefault := false

	for p.tok.kind == tokIdent && p.tok.text != "xkb_symbols" {
		if p.tok.text == "default" {
			isDefault = true
		} else {
			part.Flags = append(part.Flags, p.tok.text)
		}

		if err := p.advance(); err != nil {
			return nil, false, err
		}
	}

	if err := p.expect(tokIdent, "xkb_symbols"); err != nil {
		return nil, false, err
	}

	if p.tok.kind == tokString {
		part.Name = p.tok.text
		if err := p.advance(); err != nil {
			return nil, false, err
		}
	}

	if err := p.expect(tokPunct, "{"); err != nil {
		return nil, false, err
	}

	for !p.is(tokPunct, "}") {
		if p.tok.kind == tokEOF {
			return nil, false, p.errorf("unterminated xkb_symbols %q", part.Name)
		}

		if err := p.parseStatement(part); err != nil {
			return nil, false, err
		}
	}

	if err := p.advance(); err != nil {
		return nil, false, err
	}

	if err := p.skipOptional(tokPunct, ";"); err != nil {
		return nil, false, err
	}

	return part, isDefault, nil
}

func (p *parser) parseStatement(part *Partial) error {
	if p.tok.kind != tokIdent {
		return p.skipStatement()
	}

	switch p.tok.text {
	case "include", "augment", "override", "replace":
		if err := p.advance(); err != nil {
			return err
		}

		switch {
		case p.tok.kind == tokString:
			part.Includes = append(part.Includes, splitIncludes(p.tok.text)...)
			if err := p.advance(); err != nil {
				return err
			}

			return p.skipOptional(tokPunct, ";")
		case p.is(tokIdent, "key"):
			return p.parseKeyStatement(part)
		default:
			return p.skipStatement()
		}
	case "key":
		return p.parseKeyStatement(part)
	case "name":
		return p.parseName(part)
	default:
		return p.skipStatement()
	}
}

func (p *parser) parseName(part *Partial) error {
	if err := p.advance(); err != nil {
		return err
	}

	group := ""
	if p.is(tokPunct, "[") {
		if err := p.advance(); err != nil {
			return err
		}

		group = p.tok.text
		if err := p.advance(); err != nil {
			return err
		}

		if err := p.expect(tokPunct, "]"); err != nil {
			return err
		}
	}

	if err := p.expect(tokPunct, "="); err != nil {
		return err
	}

	if p.tok.kind != tokString {
		return p.errorf("expected group name string, found %q", p.tok.text)
	}

	if group == "" || strings.EqualFold(group, "Group1") {
		part.DisplayName = p.tok.text
	}

	if err := p.advance(); err != nil {
		return err
	}

	return p.skipOptional(tokPunct, ";")
}

// parseKeyStatement parses "key <NAME> { ... };". The current token is the
// "key" keyword.
func (p *parser) parseKeyStatement(part *Partial) error {
	if err := p.advance(); err != nil {
		return err
	}

	if p.tok.kind != tokKeyName {
		return p.skipStatement()
	}

	code := KeyCode(p.tok.text)
	if err := p.advance(); err != nil {
		return err
	}

	if err := p.expect(tokPunct, "{"); err != nil {
		return err
	}

	var levels []CharOrDead
	found := false

	for !p.is(tokPunct, "}") {
		syms, isSymbols, err := p.parseKeyItem()
		if err != nil {
			return err
		}

		if isSymbols && !found {
			levels = syms
			found = true
		}

		if p.is(tokPunct, ",") {
			if err := p.advance(); err != nil {
				return err
			}
		} else if !p.is(tokPunct, "}") {
			return p.errorf("expected \",\" or \"}\" in key %s, found %q", code, p.tok.text)
		}
	}

	if err := p.advance(); err != nil {
		return err
	}

	if found {
		part.Keys[code] = OutputFromLevels(levels...)
	}

	return p.skipOptional(tokPunct, ";")
}

// parseKeyItem parses one comma separated item of a key body. It reports
// whether the item carried first-group symbols.
func (p *parser) parseKeyItem() ([]CharOrDead, bool, error) {
	if p.is(tokPunct, "[") {
		syms, err := p.parseSymbolList()
		return syms, true, err
	}

	if p.tok.kind != tokIdent {
		return nil, false, p.errorf("unexpected %q in key body", p.tok.text)
	}

	field := p.tok.text
	if err := p.advance(); err != nil {
		return nil, false, err
	}

	group := ""
	if p.is(tokPunct, "[") {
		if err := p.advance(); err != nil {
			return nil, false, err
		}

		group = p.tok.text
		if err := p.advance(); err != nil {
			return nil, false, err
		}

		if err := p.expect(tokPunct, "]"); err != nil {
			return nil, false, err
		}
	}

	if err := p.expect(tokPunct, "="); err != nil {
		return nil, false, err
	}

	if field == "symbols" && p.is(tokPunct, "[") {
		syms, err := p.parseSymbolList()
		isGroup1 := group == "" || strings.EqualFold(group, "Group1")

		return syms, isGroup1, err
	}

	// Any other value: type[Group1] = "FOUR_LEVEL", actions, vmods.
	depth := 0
	for depth > 0 || !(p.is(tokPunct, ",") || p.is(tokPunct, "}")) {
		if p.tok.kind == tokEOF {
			return nil, false, p.errorf("unterminated key body")
		}

		switch {
		case p.is(tokPunct, "(") || p.is(tokPunct, "["):
			depth++
		case p.is(tokPunct, ")") || p.is(tokPunct, "]"):
			depth--
		}

		if err := p.advance(); err != nil {
			return nil, false, err
		}
	}

	return nil, false, nil
}

// parseSymbolList parses "[ a, A, { b, c }, ... ]". Of a braced multi-keysym
// level only the first keysym is kept.
func (p *parser) parseSymbolList() ([]CharOrDead, error) {
	if err := p.expect(tokPunct, "["); err != nil {
		return nil, err
	}

	var syms []CharOrDead

	for !p.is(tokPunct, "]") {
		switch {
		case p.tok.kind == tokIdent:
			syms = append(syms, ParseKeysym(p.tok.text))
		case p.is(tokPunct, "{"):
			first := true
			for !p.is(tokPunct, "}") {
				if err := p.advance(); err != nil {
					return nil, err
				}

				if p.tok.kind == tokIdent && first {
					syms = append(syms, ParseKeysym(p.tok.text))
					first = false
				}

				if p.tok.kind == tokEOF {
					return nil, p.errorf("unterminated keysym group")
				}
			}
		case p.is(tokPunct, ","):
		case p.tok.kind == tokEOF:
			return nil, p.errorf("unterminated symbol list")
		default:
			return nil, p.errorf("unexpected %q in symbol list", p.tok.text)
		}

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	return syms, p.advance()
}

// skipStatement consumes tokens up to and including the next ";" at
// nesting depth zero. A closing "}" at depth zero ends the statement
// without being consumed.
func (p *parser) skipStatement() error {
	depth := 0

	for {
		switch {
		case p.tok.kind == tokEOF:
			return p.errorf("unexpected end of input")
		case p.tok.kind != tokPunct:
		case p.tok.text == "{" || p.tok.text == "[" || p.tok.text == "(":
			depth++
		case p.tok.text == "}" && depth == 0:
			return nil
		case p.tok.text == "}" || p.tok.text == "]" || p.tok.text == ")":
			depth = max(depth-1, 0)
		case p.tok.text == ";" && depth == 0:
			return p.advance()
		}

		if err := p.advance(); err != nil {
			return err
		}
	}
}

// splitIncludes breaks a compound include such as "latin(type4)+inet(evdev)"
// into its references.
func splitIncludes(s string) []string {
	var refs []string

	for _, ref := range strings.FieldsFunc(s, func(r rune) bool { return r == '+' || r == '|' }) {
		if ref = strings.TrimSpace(ref); ref != "" {
			refs = append(refs, ref)
		}
	}

	return refs
}
