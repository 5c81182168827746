package testutil

// FixedRunID generates the same run ID every time.
//
// This enables deterministic test execution and golden snapshot comparison.
// The same scenario with the same FixedRunID produces byte-identical report
// headers.
//
// Unlike engine.FixedGenerator, which returns IDs in sequence and panics
// when exhausted, this generator always returns the same ID. That suits
// scenarios that construct any number of engines.
//
// Thread-safety: FixedRunID is stateless and safe for concurrent use.
type FixedRunID struct {
	id string
}

// NewFixedRunID creates a new fixed run ID generator.
//
// The ID is typically set in the scenario YAML:
//
//	run_id: "test-run-00000000-0000-0000-0000-000000000001"
//
// If id is empty, Generate() returns "test-run-default".
func NewFixedRunID(id string) *FixedRunID {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunID{id: id}
}

// Generate returns the fixed run ID.
//
// Implements engine.RunIDGenerator interface.
func (g *FixedRunID) Generate() string {
	return g.id
}
