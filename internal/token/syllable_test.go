package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyllabify(t *testing.T) {
	tests := []struct {
		word     string
		expected []string
	}{
		{"strength", []string{"stre", "ngth"}},
		{"hello", []string{"he", "llo"}},
		{"aeiou", []string{"a", "e", "i", "o", "u"}},
		{"rhythm", []string{"rhy", "thm"}},
		{"tsk", []string{"tsk"}},
		{"a", []string{"a"}},
		{"Y", []string{"Y"}},
		{"BANANA", []string{"BA", "NA", "NA"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.expected, Syllabify(tt.word))
		})
	}
}

func TestSyllabifyRoundTrip(t *testing.T) {
	// Concatenating the syllables must reconstruct the word exactly,
	// for every word over the supported alphabet.
	words := []string{
		"strength", "apostrophe'd", "xylophone", "zzz", "Queue",
		"don't", "v2_beta", "yyyy", "crwth", "Onomatopoeia",
	}

	for _, w := range words {
		t.Run(w, func(t *testing.T) {
			assert.Equal(t, w, strings.Join(Syllabify(w), ""))
		})
	}
}

func TestSyllabifyNoVowelsSingleSyllable(t *testing.T) {
	for _, w := range []string{"tsk", "zzz", "n", "_"} {
		syls := Syllabify(w)
		assert.Len(t, syls, 1, "word %q", w)
		assert.Equal(t, w, syls[0])
	}
}
