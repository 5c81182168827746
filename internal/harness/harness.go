package harness

import (
	"bytes"
	"fmt"

	"github.com/roach88/fullscan/internal/engine"
	"github.com/roach88/fullscan/internal/report"
	"github.com/roach88/fullscan/internal/testutil"
	"github.com/roach88/fullscan/internal/token"
)

// Run executes a scenario against a fresh engine and returns the
// collected outcome.
//
// Scenarios never observe each other's state: every run builds its own
// engine with a fixed run ID generator. Assertion and expectation
// failures land in the result's Errors slice; the returned error covers
// only setup problems such as an unparseable mode.
func Run(scenario *Scenario) (*Result, error) {
	mode := token.ModeWord
	if scenario.Mode != "" {
		m, err := token.ParseMode(scenario.Mode)
		if err != nil {
			return nil, err
		}
		mode = m
	}

	eng := engine.New(mode,
		engine.WithRunIDGenerator(testutil.NewFixedRunID(scenario.RunID)))

	for _, src := range scenario.Sources {
		eng.Ingest(src.Name, src.Text)
	}

	rep := report.Build(eng, report.Options{
		Dump:     scenario.Report.Dump,
		Metrics:  scenario.Report.Metrics,
		Clusters: scenario.Report.Clusters,
	})

	var console bytes.Buffer
	if err := report.WriteConsole(&console, rep); err != nil {
		return nil, fmt.Errorf("failed to render console report: %w", err)
	}

	result := NewResult()
	result.Console = console.String()
	result.Report = rep

	for i, a := range scenario.Assertions {
		if err := checkAssertion(eng, rep, a); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	if scenario.Expect != nil && scenario.Expect.Console != result.Console {
		diff, err := unifiedDiff("expected", "actual",
			scenario.Expect.Console, result.Console)
		if err != nil {
			return nil, fmt.Errorf("failed to diff console output: %w", err)
		}
		result.AddError("console output mismatch:\n" + diff)
	}

	return result, nil
}
