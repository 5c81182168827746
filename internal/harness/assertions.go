package harness

import (
	"fmt"
	"reflect"

	"github.com/roach88/fullscan/internal/engine"
	"github.com/roach88/fullscan/internal/report"
)

// AssertionError is returned when an assertion fails. It carries the
// expected and actual outcomes in rendered form.
type AssertionError struct {
	Type     string // assertion type for categorization
	Expected string // human-readable expected outcome
	Actual   string // human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

// checkAssertion evaluates one assertion against the run outcome.
// The scenario was validated at load time, so an unknown type here means
// the assertion was built in code rather than loaded from YAML.
func checkAssertion(eng *engine.Engine, rep *report.Report, a Assertion) error {
	switch a.Type {
	case AssertComplete:
		return assertComplete(eng, a)
	case AssertTokenCount:
		return assertTokenCount(eng, a)
	case AssertClusterCount:
		return assertClusterCount(eng, a)
	case AssertChecksum:
		return assertChecksum(eng, a)
	case AssertPreview:
		return assertPreview(eng, a)
	case AssertFailures:
		return assertFailures(rep, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertComplete checks the full-read predicate for one source.
func assertComplete(eng *engine.Engine, a Assertion) error {
	got := eng.ScanComplete(a.Source)
	if got != *a.Want {
		return &AssertionError{
			Type:     AssertComplete,
			Expected: fmt.Sprintf("%s complete=%t", a.Source, *a.Want),
			Actual:   fmt.Sprintf("complete=%t with %d missing", got, eng.MissCount(a.Source)),
		}
	}
	return nil
}

// assertTokenCount checks the exact token count for one source.
func assertTokenCount(eng *engine.Engine, a Assertion) error {
	got := eng.TokenCount(a.Source)
	if got != a.Count {
		return &AssertionError{
			Type:     AssertTokenCount,
			Expected: fmt.Sprintf("%s holds %d tokens", a.Source, a.Count),
			Actual:   fmt.Sprintf("%d tokens", got),
		}
	}
	return nil
}

// assertClusterCount checks the exact cluster count for one source.
func assertClusterCount(eng *engine.Engine, a Assertion) error {
	got := eng.ClusterCount(a.Source)
	if got != a.Count {
		return &AssertionError{
			Type:     AssertClusterCount,
			Expected: fmt.Sprintf("%s holds %d clusters", a.Source, a.Count),
			Actual:   fmt.Sprintf("%d clusters", got),
		}
	}
	return nil
}

// assertChecksum checks the first/middle/last dump string for one source.
func assertChecksum(eng *engine.Engine, a Assertion) error {
	got := eng.Dump(a.Source)
	if got != a.Value {
		return &AssertionError{
			Type:     AssertChecksum,
			Expected: fmt.Sprintf("%s dumps %q", a.Source, a.Value),
			Actual:   fmt.Sprintf("%q", got),
		}
	}
	return nil
}

// assertPreview checks the cluster summary lines for one source.
func assertPreview(eng *engine.Engine, a Assertion) error {
	got := eng.ClusterSummary(a.Source)
	want := a.Tokens

	// An omitted tokens list and an empty summary both mean "nothing to
	// preview"; DeepEqual would treat nil and empty as different.
	if len(got) == 0 && len(want) == 0 {
		return nil
	}
	if !reflect.DeepEqual(got, want) {
		return &AssertionError{
			Type:     AssertPreview,
			Expected: fmt.Sprintf("%s previews %q", a.Source, want),
			Actual:   fmt.Sprintf("%q", got),
		}
	}
	return nil
}

// assertFailures checks the report-level failed source count.
func assertFailures(rep *report.Report, a Assertion) error {
	if rep.Failures != a.Count {
		return &AssertionError{
			Type:     AssertFailures,
			Expected: fmt.Sprintf("%d failed sources", a.Count),
			Actual:   fmt.Sprintf("%d failed sources with %d missing tokens", rep.Failures, rep.Missing),
		}
	}
	return nil
}
