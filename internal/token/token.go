package token

import (
	"fmt"
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// Mode selects the tokenization strategy. It is fixed per engine instance,
// never per call.
type Mode int

const (
	// ModeWord scans for words with their trailing punctuation run attached.
	// This is the default mode (zero value).
	ModeWord Mode = iota
	// ModeSyllable scans for bare words and splits each into syllables;
	// every syllable becomes its own token.
	ModeSyllable
)

// String returns the machine-readable mode name used in JSON output and
// profile files.
func (m Mode) String() string {
	switch m {
	case ModeSyllable:
		return "syllable"
	default:
		return "word"
	}
}

// Label returns the human-readable mode banner used in text reports.
func (m Mode) Label() string {
	switch m {
	case ModeSyllable:
		return "Syllable-Level"
	default:
		return "Word-Level"
	}
}

// ParseMode converts a mode name ("word" or "syllable") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "word":
		return ModeWord, nil
	case "syllable":
		return ModeSyllable, nil
	default:
		return ModeWord, fmt.Errorf("unknown tokenization mode %q (want \"word\" or \"syllable\")", s)
	}
}

// Token scanning patterns. A word body is a maximal run of letters, digits,
// underscores, or apostrophes; trailing punctuation is the run of sentence
// punctuation immediately after it.
var (
	wordPunctPattern = regexp.MustCompile(`[\p{L}\p{N}_']+[.,!?;:]*`)
	wordPattern      = regexp.MustCompile(`[\p{L}\p{N}_']+`)
)

// Tokenize splits one line into ordered tokens under the given mode.
//
// The line is NFC-normalized before scanning. An empty line, or a line
// holding only whitespace and punctuation, yields no tokens.
func Tokenize(line string, mode Mode) []string {
	line = norm.NFC.String(line)

	if mode == ModeSyllable {
		words := wordPattern.FindAllString(line, -1)
		var out []string
		for _, w := range words {
			out = append(out, Syllabify(w)...)
		}
		return out
	}

	return wordPunctPattern.FindAllString(line, -1)
}
