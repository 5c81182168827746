// Package report builds and renders verification reports over a scan engine.
//
// Build takes a complete snapshot of the engine's verification state; the
// renderers in text.go and json.go turn that snapshot into the log format,
// the console format, or JSON. Rendering is deterministic: source keys are
// always walked in sorted order.
package report

import (
	"sort"

	"github.com/roach88/fullscan/internal/engine"
)

// Options select the optional report sections.
//
// The flags gate the human-readable text surfaces; JSON output always
// carries the full snapshot except for the raw cluster lists, whose
// capture is gated by Clusters.
type Options struct {
	Dump     bool // show the first/middle/last checksum in console output
	Metrics  bool // show token counts and average token length
	Clusters bool // show cluster counts and previews; capture raw clusters
}

// SourceResult is the per-source verification outcome.
type SourceResult struct {
	Complete     bool     `json:"complete"`
	Missing      int      `json:"missing"`
	First        string   `json:"first"`
	Last         string   `json:"last"`
	Checksum     string   `json:"checksum"`
	Digest       string   `json:"digest"`
	Tokens       int      `json:"tokens"`
	AvgLength    float64  `json:"avg_length"`
	ClusterCount int      `json:"cluster_count"`
	Preview      []string `json:"preview,omitempty"`
}

// ClusterGroup lists the sources sharing one cluster count.
type ClusterGroup struct {
	Count   int      `json:"count"`
	Sources []string `json:"sources"`
}

// Report is a complete verification snapshot of one engine run.
type Report struct {
	Mode      string                  `json:"tokenization_mode"`
	ModeLabel string                  `json:"-"`
	RunID     string                  `json:"run_id"`
	Failures  int                     `json:"failures"`
	Missing   int                     `json:"missing"`
	Results   map[string]SourceResult `json:"results"`
	Groups    []ClusterGroup          `json:"cluster_groups"`
	Clusters  map[string][][]string   `json:"clusters,omitempty"`

	// Sources holds the result keys in sorted order so renderers do not
	// re-derive it.
	Sources []string `json:"-"`
	Options Options  `json:"-"`
}

// Build verifies every source and snapshots the engine state into a Report.
//
// Verification recomputes and stores miss counts, so building a report is
// a mutating operation from the engine's point of view.
func Build(eng *engine.Engine, opts Options) *Report {
	results := eng.VerifyAll()

	r := &Report{
		Mode:      eng.Mode().String(),
		ModeLabel: eng.Mode().Label(),
		RunID:     eng.RunID(),
		Results:   make(map[string]SourceResult, len(results)),
		Sources:   eng.Sources(),
		Options:   opts,
	}

	for _, src := range r.Sources {
		complete := results[src]
		missing := eng.MissCount(src)
		if !complete {
			r.Failures++
		}
		r.Missing += missing

		r.Results[src] = SourceResult{
			Complete:     complete,
			Missing:      missing,
			First:        eng.FirstToken(src),
			Last:         eng.LastToken(src),
			Checksum:     eng.Dump(src),
			Digest:       eng.Digest(src),
			Tokens:       eng.TokenCount(src),
			AvgLength:    eng.AvgTokenLength(src),
			ClusterCount: eng.ClusterCount(src),
			Preview:      eng.ClusterSummary(src),
		}
	}

	r.Groups = buildGroups(r)

	if opts.Clusters {
		r.Clusters = make(map[string][][]string, len(r.Sources))
		for _, src := range r.Sources {
			r.Clusters[src] = eng.Clusters(src)
		}
	}

	return r
}

// buildGroups groups sources by cluster count, ascending by count. Source
// lists inside a group stay sorted because r.Sources is sorted.
func buildGroups(r *Report) []ClusterGroup {
	byCount := make(map[int][]string)
	for _, src := range r.Sources {
		cnt := r.Results[src].ClusterCount
		byCount[cnt] = append(byCount[cnt], src)
	}

	counts := make([]int, 0, len(byCount))
	for cnt := range byCount {
		counts = append(counts, cnt)
	}
	sort.Ints(counts)

	groups := make([]ClusterGroup, 0, len(counts))
	for _, cnt := range counts {
		groups = append(groups, ClusterGroup{Count: cnt, Sources: byCount[cnt]})
	}
	return groups
}
