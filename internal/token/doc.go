// Package token provides the two-mode line tokenizer and the syllabifier.
//
// This package contains pure functions only. All other internal packages
// may import token; token imports nothing internal. This keeps tokenization
// the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Lines are NFC-normalized before scanning so that token identity does
//     not depend on the Unicode encoding of equivalent text
//   - Word mode keeps trailing punctuation on the token ("end." != "end")
//   - Syllable mode emits each syllable as its own token, punctuation dropped
//   - Syllabify is total: concatenating its output reconstructs the input
package token
