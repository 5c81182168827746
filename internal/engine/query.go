package engine

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Cluster previews cover the first clusterPreviewCount clusters, at most
// clusterPreviewTokens tokens each.
const (
	clusterPreviewCount  = 5
	clusterPreviewTokens = 3
)

// ScanComplete reports whether the source's index forms a complete,
// contiguous, no-gap coverage of its token stream: no token is missing from
// the index, the first token maps to position 0, and the last token maps to
// position len(tokens)-1.
//
// Recomputes and stores the source's miss count as a side effect. Returns
// false for unknown or empty sources.
func (e *Engine) ScanComplete(sourceKey string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scanCompleteLocked(sourceKey)
}

// VerifyAll computes ScanComplete for every known source.
//
// The returned map is unordered; callers that render it sort the keys.
// Miss counts for all sources are recomputed and stored as a side effect.
func (e *Engine) VerifyAll() map[string]bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	results := make(map[string]bool, len(e.sources))
	for key := range e.sources {
		results[key] = e.scanCompleteLocked(key)
	}
	return results
}

// scanCompleteLocked recomputes the miss count and evaluates the
// completeness predicate. Caller must hold e.mu.
func (e *Engine) scanCompleteLocked(sourceKey string) bool {
	src, ok := e.sources[sourceKey]
	if !ok || len(src.tokens) == 0 {
		return false
	}

	// Structurally the count is always zero since ingest indexes every new
	// token immediately; a nonzero value signals an implementation bug.
	missing := 0
	for _, tk := range src.tokens {
		if _, seen := src.index[tk]; !seen {
			missing++
		}
	}
	src.missing = missing

	first, firstOK := src.index[src.tokens[0]]
	last, lastOK := src.index[src.tokens[len(src.tokens)-1]]

	return missing == 0 &&
		firstOK && first == 0 &&
		lastOK && last == len(src.tokens)-1
}

// MissCount returns the miss count stored by the most recent verification
// of the source. Zero for unknown or never-verified sources.
func (e *Engine) MissCount(sourceKey string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, ok := e.sources[sourceKey]
	if !ok {
		return 0
	}
	return src.missing
}

// Dump returns the source's first, middle, and last token space-joined.
// A cheap content fingerprint, not a cryptographic checksum; see Digest
// for the real one. Empty string for unknown or empty sources.
//
// The middle token is tokens[len/2] (integer division), so a single-token
// source dumps its token three times.
func (e *Engine) Dump(sourceKey string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, ok := e.sources[sourceKey]
	if !ok || len(src.tokens) == 0 {
		return ""
	}

	first := src.tokens[0]
	mid := src.tokens[len(src.tokens)/2]
	last := src.tokens[len(src.tokens)-1]
	return strings.Join([]string{first, mid, last}, " ")
}

// TokenCount returns the number of tokens ingested into the source.
// Zero for unknown sources.
func (e *Engine) TokenCount(sourceKey string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, ok := e.sources[sourceKey]
	if !ok {
		return 0
	}
	return len(src.tokens)
}

// AvgTokenLength returns the mean token length in runes.
// 0.0 for unknown or empty sources.
func (e *Engine) AvgTokenLength(sourceKey string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, ok := e.sources[sourceKey]
	if !ok || len(src.tokens) == 0 {
		return 0.0
	}

	total := 0
	for _, tk := range src.tokens {
		total += utf8.RuneCountInString(tk)
	}
	return float64(total) / float64(len(src.tokens))
}

// FirstToken returns the first token of the source's stream.
// Empty string for unknown or empty sources.
func (e *Engine) FirstToken(sourceKey string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, ok := e.sources[sourceKey]
	if !ok || len(src.tokens) == 0 {
		return ""
	}
	return src.tokens[0]
}

// LastToken returns the last token of the source's stream.
// Empty string for unknown or empty sources.
func (e *Engine) LastToken(sourceKey string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, ok := e.sources[sourceKey]
	if !ok || len(src.tokens) == 0 {
		return ""
	}
	return src.tokens[len(src.tokens)-1]
}

// ClusterCount returns the number of line clusters the source holds.
// Zero for unknown sources.
func (e *Engine) ClusterCount(sourceKey string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, ok := e.sources[sourceKey]
	if !ok {
		return 0
	}
	return len(src.clusters)
}

// ClusterSummary returns a preview of the source's clusters: the first
// three tokens of each of the first five clusters, space-joined per
// cluster. Nil for unknown sources.
func (e *Engine) ClusterSummary(sourceKey string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, ok := e.sources[sourceKey]
	if !ok {
		return nil
	}

	clusters := src.clusters
	if len(clusters) > clusterPreviewCount {
		clusters = clusters[:clusterPreviewCount]
	}

	summary := make([]string, 0, len(clusters))
	for _, c := range clusters {
		if len(c) > clusterPreviewTokens {
			c = c[:clusterPreviewTokens]
		}
		summary = append(summary, strings.Join(c, " "))
	}
	return summary
}

// Clusters returns a copy of the source's line clusters in ingestion
// order. The copy prevents callers from mutating engine state. Nil for
// unknown sources.
func (e *Engine) Clusters(sourceKey string) [][]string {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, ok := e.sources[sourceKey]
	if !ok {
		return nil
	}

	out := make([][]string, len(src.clusters))
	for i, c := range src.clusters {
		out[i] = append([]string(nil), c...)
	}
	return out
}

// Sources returns all known source keys in lexicographic order.
func (e *Engine) Sources() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys := make([]string, 0, len(e.sources))
	for key := range e.sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
