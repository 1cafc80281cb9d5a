package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultPart is the partial a reference without parentheses names.
const DefaultPart = "basic"

// ErrMalformedReference is returned for references that do not follow the
// "path" or "path(part)" grammar.
var ErrMalformedReference = errors.New("malformed reference")

// Reference names one partial of one symbols document.
type Reference struct {
	Path string
	Part string
}

// String returns the canonical "path(part)" form.
func (r Reference) String() string {
	return r.Path + "(" + r.Part + ")"
}

// ParseReference splits s into its path and part. "layout" yields
// ("layout", "basic") and "layout(intl)" yields ("layout", "intl").
func ParseReference(s string) (Reference, error) {
	s = strings.TrimSpace(s)

	open := strings.IndexByte(s, '(')
	if open < 0 {
		if s == "" || strings.ContainsRune(s, ')') {
			return Reference{}, fmt.Errorf("%w: %q", ErrMalformedReference, s)
		}

		return Reference{Path: s, Part: DefaultPart}, nil
	}

	if open == 0 || !strings.HasSuffix(s, ")") {
		return Reference{}, fmt.Errorf("%w: %q", ErrMalformedReference, s)
	}

	part := s[open+1 : len(s)-1]
	if part == "" || strings.ContainsAny(part, "()") {
		return Reference{}, fmt.Errorf("%w: %q", ErrMalformedReference, s)
	}

	return Reference{Path: s[:open], Part: part}, nil
}
