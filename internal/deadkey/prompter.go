package deadkey

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"klc2xkb/internal/klc"
	"klc2xkb/internal/match"
	"klc2xkb/internal/xkb"
)

// Prompter asks the operator to name each trigger character it is given.
// It blocks until a full line is read. End of input counts as a blank
// answer.
type Prompter struct {
	in           *bufio.Reader
	out          io.Writer
	descriptions map[rune]string
	compositions map[rune]map[rune]rune
	logger       *slog.Logger
}

// maxCompositions caps the compositions shown per question.
const maxCompositions = 6

// PrompterOption configures a Prompter.
type PrompterOption func(*Prompter)

// WithDescriptions supplies the layout's own names for its dead keys, shown
// next to the question.
func WithDescriptions(desc map[rune]string) PrompterOption {
	return func(p *Prompter) {
		p.descriptions = desc
	}
}

// WithCompositions supplies the layout's dead key tables. A few of the
// trigger's compositions are shown next to the question.
func WithCompositions(tables map[rune]map[rune]rune) PrompterOption {
	return func(p *Prompter) {
		p.compositions = tables
	}
}

// WithLogger sets the logger used for name hints.
func WithLogger(logger *slog.Logger) PrompterOption {
	return func(p *Prompter) {
		p.logger = logger
	}
}

// NewPrompter returns a Prompter reading answers from in and writing
// questions to out. A *bufio.Reader is used as is, so prompters created in
// turn over the same one do not lose buffered answers.
func NewPrompter(in io.Reader, out io.Writer, opts ...PrompterOption) *Prompter {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}

	p := &Prompter{
		in:     br,
		out:    out,
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Classify asks about c when it is a trigger. The answer is not validated;
// a name X11 does not define only earns a warning naming the closest one.
func (p *Prompter) Classify(c rune, triggers klc.CharSet) (xkb.CharOrDead, error) {
	if !triggers.Contains(c) {
		return xkb.Literal(c), nil
	}

	fmt.Fprintf(p.out, "Deadkey `%c' detected.", c)

	if desc, ok := p.descriptions[c]; ok {
		fmt.Fprintf(p.out, " Windows calls it %q.", desc)

		if guess := match.KeysymFromDescription(desc); guess != "" && IsKnown(Prefix+guess) {
			fmt.Fprintf(p.out, " Suggested name: %s", guess)
		}
	}

	if table := p.compositions[c]; len(table) > 0 {
		fmt.Fprintf(p.out, "\nIt composes: %s", formatCompositions(table))
	}

	fmt.Fprint(p.out, "\nPlease enter x11 deadkey name (leave empty to ignore the deadkey): "+Prefix)

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return xkb.CharOrDead{}, fmt.Errorf("reading dead key name: %w", err)
	}

	out := FromAnswer(c, line)
	if out.IsDead() && !IsKnown(out.Name) {
		if best, ok := match.Closest(out.Name, xkb.DeadKeysyms); ok {
			p.logger.Warn("unknown dead key name, keeping it", "name", out.Name, "closest", best.Name)
		}
	}

	return out, nil
}

// formatCompositions lists table as "a → á, e → é", by base character.
func formatCompositions(table map[rune]rune) string {
	bases := klc.NewCharSet(slices.Collect(maps.Keys(table))...).Sorted()

	parts := make([]string, 0, min(len(bases), maxCompositions)+1)
	for i, base := range bases {
		if i == maxCompositions {
			parts = append(parts, "...")
			break
		}

		parts = append(parts, fmt.Sprintf("%c → %c", base, table[base]))
	}

	return strings.Join(parts, ", ")
}
