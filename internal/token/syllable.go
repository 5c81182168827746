package token

import "unicode"

// Syllabify splits a word into syllables with the accumulate-on-vowel policy:
// runes are appended to a running buffer, and each vowel closes the buffer as
// a completed syllable. Trailing consonants after the last vowel form a final
// syllable, so a word with no vowels comes back as a single syllable.
//
// INVARIANT: concatenating the returned syllables in order reconstructs the
// input word exactly. The empty word yields no syllables.
//
// This is a heuristic split, not a linguistic model. "strength" splits as
// ["stre", "ngth"]: the vowel e closes the first syllable and the trailing
// consonant run forms the second.
func Syllabify(word string) []string {
	if word == "" {
		return nil
	}

	var out []string
	syl := make([]rune, 0, len(word))
	for _, r := range word {
		syl = append(syl, r)
		if isVowel(r) {
			out = append(out, string(syl))
			syl = syl[:0]
		}
	}
	if len(syl) > 0 {
		out = append(out, string(syl))
	}
	return out
}

// isVowel reports whether r is in the case-insensitive vowel set
// {a, e, i, o, u, y}.
func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
