package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares its console output
// against the golden file testdata/golden/{scenario.Name}.golden.
//
// Console output is deterministic: it contains no timestamps, digests,
// or generated run IDs, so the comparison is stable across runs. To
// regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if scenario execution fails. A golden mismatch fails
// the test via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result's console output against a
// golden file. Useful when a scenario has already run and the caller
// wants the snapshot comparison without re-running it.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, []byte(result.Console))
}
