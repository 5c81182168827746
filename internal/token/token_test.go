package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeWordMode(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{"plain words", "hello world", []string{"hello", "world"}},
		{"trailing punctuation kept", "hello world. bye!", []string{"hello", "world.", "bye!"}},
		{"punctuation run", "wait... what?!", []string{"wait...", "what?!"}},
		{"apostrophe in word", "don't stop", []string{"don't", "stop"}},
		{"digits and underscores", "v2_beta ships", []string{"v2_beta", "ships"}},
		{"semicolons and colons", "first; second: third", []string{"first;", "second:", "third"}},
		{"empty line", "", nil},
		{"whitespace only", "   \t  ", nil},
		{"punctuation only", "... !!! ???", nil},
		{"leading punctuation dropped", "...start end.", []string{"start", "end."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.line, ModeWord))
		})
	}
}

func TestTokenizeWordModePunctuationDistinct(t *testing.T) {
	// "end." and "end" are distinct tokens by design: downstream index
	// lookups compare the full token including its punctuation run.
	withDot := Tokenize("the end.", ModeWord)
	without := Tokenize("the end", ModeWord)

	require.Len(t, withDot, 2)
	require.Len(t, without, 2)
	assert.NotEqual(t, withDot[1], without[1])
}

func TestTokenizeSyllableMode(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{"single word", "strength", []string{"stre", "ngth"}},
		{"two words", "hello world", []string{"he", "llo", "wo", "rld"}},
		{"punctuation dropped", "go, now!", []string{"go", "no", "w"}},
		{"no vowels", "tsk tsk", []string{"tsk", "tsk"}},
		{"empty line", "", nil},
		{"punctuation only", ".,!?", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.line, ModeSyllable))
		})
	}
}

func TestTokenizeNormalizesNFC(t *testing.T) {
	// "café" written with a combining acute accent (NFD) must produce the
	// same token as the precomposed form, or index keys would split.
	nfd := "café"
	nfc := "café"

	assert.Equal(t, Tokenize(nfc, ModeWord), Tokenize(nfd, ModeWord))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "word", ModeWord.String())
	assert.Equal(t, "syllable", ModeSyllable.String())
	assert.Equal(t, "Word-Level", ModeWord.Label())
	assert.Equal(t, "Syllable-Level", ModeSyllable.Label())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("word")
	require.NoError(t, err)
	assert.Equal(t, ModeWord, m)

	m, err = ParseMode("syllable")
	require.NoError(t, err)
	assert.Equal(t, ModeSyllable, m)

	_, err = ParseMode("phoneme")
	assert.Error(t, err)
}
