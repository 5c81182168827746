package engine

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/roach88/fullscan/internal/token"
)

// Engine is the multi-source scan engine.
//
// Each named source owns an append-only token stream, a first-occurrence
// index, a stored miss count, and the line clusters the stream was built
// from. The tokenization mode is fixed at construction and applies to every
// source the engine ever sees.
//
// Thread-safety model:
//   - every method that touches source state holds the engine mutex for
//     the whole call; mode and run ID are immutable after New
//   - concurrent Ingest calls to the same or different sources are
//     linearizable with respect to each other
//   - the mutex is non-reentrant: public methods never call public methods
type Engine struct {
	mu      sync.Mutex
	mode    token.Mode
	runID   string
	runGen  RunIDGenerator
	sources map[string]*source
}

// Option allows configuration of engine parameters.
type Option func(*Engine)

// WithRunIDGenerator sets the generator used to stamp the engine's run ID.
//
// Default: UUIDv7Generator.
// Use NewFixedGenerator("run-1") for deterministic test output.
func WithRunIDGenerator(gen RunIDGenerator) Option {
	return func(e *Engine) {
		e.runGen = gen
	}
}

// New creates an Engine with the given tokenization mode.
//
// The mode is fixed for the lifetime of the engine; there is no per-call
// mode switch. Options can be passed to configure the engine
// (e.g., WithRunIDGenerator).
func New(mode token.Mode, opts ...Option) *Engine {
	e := &Engine{
		mode:    mode,
		runGen:  UUIDv7Generator{},
		sources: make(map[string]*source),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.runID = e.runGen.Generate()

	slog.Debug("engine created", "mode", e.mode, "run_id", e.runID)
	return e
}

// Mode returns the tokenization mode the engine was constructed with.
func (e *Engine) Mode() token.Mode {
	return e.mode
}

// RunID returns the identifier stamped on this engine instance at
// construction. Report headers carry it so log lines from different runs
// can be correlated after rotation.
func (e *Engine) RunID() string {
	return e.runID
}

// Ingest tokenizes raw text and appends the result to the named source.
//
// The raw text is trimmed of leading and trailing whitespace once, then
// split on newline boundaries. Each line that produces at least one token
// appends those tokens to the source's stream, records first occurrences
// in the index, and adds one cluster. Lines that produce no tokens (empty,
// punctuation-only) leave no trace.
//
// The source is created on first use. Ingest never fails on well-formed
// string input and has no return value beyond success.
func (e *Engine) Ingest(sourceKey, raw string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, ok := e.sources[sourceKey]
	if !ok {
		src = newSource()
		e.sources[sourceKey] = src
	}

	// The digest covers the raw text as handed to Ingest, before trimming.
	// Call boundaries do not affect it; only the concatenated content does.
	src.digest.Write([]byte(raw))

	lines := strings.Split(strings.TrimSpace(raw), "\n")
	appended := 0
	for _, line := range lines {
		tokens := token.Tokenize(line, e.mode)
		if len(tokens) == 0 {
			continue
		}

		start := len(src.tokens)
		src.tokens = append(src.tokens, tokens...)
		for i, tk := range tokens {
			if _, seen := src.index[tk]; !seen {
				src.index[tk] = start + i
			}
		}
		src.clusters = append(src.clusters, tokens)
		appended += len(tokens)
	}

	slog.Debug("source ingested",
		"source", sourceKey,
		"lines", len(lines),
		"tokens_appended", appended,
		"tokens_total", len(src.tokens),
		"clusters_total", len(src.clusters),
	)
}
