package engine

import "github.com/zeebo/blake3"

// source holds all per-source scan state. A source is created on first
// ingest, mutated only by later ingests and by verification (which stores
// the miss count), and never deleted within a process run.
//
// Owned exclusively by the Engine; touched only with the engine lock held.
type source struct {
	tokens   []string
	index    map[string]int // token -> first-occurrence position in tokens
	missing  int            // stored by the most recent verification
	clusters [][]string     // one entry per ingested line that produced tokens
	digest   *blake3.Hasher // streaming digest of all raw ingested text
}

func newSource() *source {
	return &source{
		index:  make(map[string]int),
		digest: newContentDigest(),
	}
}
