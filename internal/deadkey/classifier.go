package deadkey

import (
	"errors"
	"slices"
	"strings"

	"klc2xkb/internal/klc"
	"klc2xkb/internal/xkb"
)

// Prefix is prepended to every name the operator enters.
const Prefix = "dead_"

// ErrNoAnswer is returned by Scripted when it runs out of answers.
var ErrNoAnswer = errors.New("no scripted answer left")

// Classifier maps one output character to a literal or a dead key.
// Characters outside triggers are always literal.
type Classifier interface {
	Classify(c rune, triggers klc.CharSet) (xkb.CharOrDead, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(c rune, triggers klc.CharSet) (xkb.CharOrDead, error)

// Classify calls f(c, triggers).
func (f ClassifierFunc) Classify(c rune, triggers klc.CharSet) (xkb.CharOrDead, error) {
	return f(c, triggers)
}

// Literal treats every character as an ordinary one.
var Literal = ClassifierFunc(func(c rune, _ klc.CharSet) (xkb.CharOrDead, error) {
	return xkb.Literal(c), nil
})

// FromAnswer turns an operator answer for c into an output. A blank answer
// keeps c literal; anything else is trimmed and prefixed with Prefix.
func FromAnswer(c rune, answer string) xkb.CharOrDead {
	name := strings.TrimSpace(answer)
	if name == "" {
		return xkb.Literal(c)
	}

	return xkb.Dead(Prefix + name)
}

// IsKnown reports whether name is a dead keysym X11 defines.
func IsKnown(name string) bool {
	return slices.Contains(xkb.DeadKeysyms, name)
}

// Scripted answers trigger characters from a fixed list, in order.
type Scripted struct {
	Answers []string
	// Asked records every trigger character that consumed an answer.
	Asked []rune
}

// Classify consumes the next answer when c is a trigger.
func (s *Scripted) Classify(c rune, triggers klc.CharSet) (xkb.CharOrDead, error) {
	if !triggers.Contains(c) {
		return xkb.Literal(c), nil
	}

	if len(s.Answers) == 0 {
		return xkb.CharOrDead{}, ErrNoAnswer
	}

	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	s.Asked = append(s.Asked, c)

	return FromAnswer(c, answer), nil
}
