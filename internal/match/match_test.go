package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"acute", "acute", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"acute", "acutte", 1},
		{"caron", "carn", 1},
		{"grave", "grav", 1},
		{"ř", "r", 1},
		{"háček", "hacek", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a), "symmetry")
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("caron", "caron"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.8, Similarity("caron", "baron"), 1e-9)
}

func TestClosest(t *testing.T) {
	names := []string{"dead_grave", "dead_acute", "dead_caron", "dead_cedilla"}

	got, ok := Closest("dead_acut", names)
	require.True(t, ok)
	assert.Equal(t, "dead_acute", got.Name)
	assert.InDelta(t, 0.9, got.Score, 1e-9)

	got, ok = Closest("DEAD_CARON", names)
	require.True(t, ok)
	assert.Equal(t, "dead_caron", got.Name)
	assert.InDelta(t, 1.0, got.Score, 1e-9)

	_, ok = Closest("x", nil)
	assert.False(t, ok)
}

func TestKeysymFromDescription(t *testing.T) {
	assert.Equal(t, "acute", KeysymFromDescription("ACUTE ACCENT"))
	assert.Equal(t, "caron", KeysymFromDescription("CARON"))
	assert.Equal(t, "dot_above", KeysymFromDescription("DOT ABOVE"))
	assert.Equal(t, "circumflex", KeysymFromDescription("CIRCUMFLEX ACCENT"))
	assert.Equal(t, "ring_above", KeysymFromDescription("Ring-Above"))
	assert.Equal(t, "", KeysymFromDescription("ACCENT"))
}

func BenchmarkLevenshtein(b *testing.B) {
	for b.Loop() {
		Levenshtein("dead_belowcircumflex", "dead_abovereversedcomma")
	}
}
