package xkb

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

const filePerm = 0o644

// WriteTo serializes the layout as a symbols file, default partial first.
func (l *Layout) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	if l.Default != nil {
		writePartial(&buf, l.Default, true)
	}

	for _, p := range l.Partials {
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}

		writePartial(&buf, p, false)
	}

	return buf.WriteTo(w)
}

// WriteFile writes the layout to path, replacing any existing file.
func WriteFile(l *Layout, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("creating symbols file: %w", err)
	}

	if _, err := l.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing symbols file %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing symbols file %s: %w", path, err)
	}

	return nil
}

func writePartial(buf *bytes.Buffer, p *Partial, isDefault bool) {
	flags := p.Flags
	if isDefault {
		flags = append([]string{"default"}, flags...)
	}

	if len(flags) > 0 {
		buf.WriteString(strings.Join(flags, " "))
		buf.WriteByte('\n')
	}

	fmt.Fprintf(buf, "xkb_symbols %s {\n", quote(p.Name))

	for _, inc := range p.Includes {
		fmt.Fprintf(buf, "    include %s\n", quote(inc))
	}

	if p.DisplayName != "" {
		fmt.Fprintf(buf, "    name[Group1] = %s;\n", quote(p.DisplayName))
	}

	if len(p.Keys) > 0 {
		buf.WriteByte('\n')
	}

	for _, code := range p.Keys.Keys() {
		levels := p.Keys[code].Levels()

		names := make([]string, len(levels))
		for i, l := range levels {
			names[i] = FormatKeysym(l)
		}

		fmt.Fprintf(buf, "    key %s { [ %s ] };\n", code, strings.Join(names, ", "))
	}

	buf.WriteString("};\n")
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}
