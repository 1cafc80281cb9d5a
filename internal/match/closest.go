package match

import (
	"strings"
	"unicode"
)

// Candidate is a scored name.
type Candidate struct {
	Name  string
	Score float64
}

// Closest returns the candidate most similar to name. Ties go to the
// candidate listed first. It returns false when candidates is empty.
func Closest(name string, candidates []string) (Candidate, bool) {
	var (
		best  Candidate
		found bool
	)

	for _, c := range candidates {
		score := Similarity(strings.ToLower(name), strings.ToLower(c))
		if !found || score > best.Score {
			best = Candidate{Name: c, Score: score}
			found = true
		}
	}

	return best, found
}

// descriptionNoise are words of Windows dead key descriptions that X11
// keysym names leave out.
var descriptionNoise = map[string]bool{
	"accent": true,
	"sign":   true,
	"mark":   true,
	"symbol": true,
	"dead":   true,
}

// KeysymFromDescription turns a description such as "ACUTE ACCENT" or
// "DOT ABOVE" into keysym-like form ("acute", "dot_above").
func KeysymFromDescription(desc string) string {
	words := strings.FieldsFunc(strings.ToLower(desc), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	kept := words[:0]
	for _, w := range words {
		if !descriptionNoise[w] {
			kept = append(kept, w)
		}
	}

	return strings.Join(kept, "_")
}
