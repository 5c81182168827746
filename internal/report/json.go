package report

import (
	"encoding/json"
	"io"
)

// WriteJSON renders the report as indented JSON.
//
// The encoding is deterministic: encoding/json sorts map keys, and the
// Groups slice is already ordered ascending by count. The cheap checksum
// and the full content digest are always present; the raw clusters map
// appears only when the report captured it.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
