package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fullscan/internal/token"
)

// Assertion types supported by scenarios.
const (
	// AssertComplete checks the full-read predicate for one source.
	AssertComplete = "complete"

	// AssertTokenCount checks the exact token count for one source.
	AssertTokenCount = "token_count"

	// AssertClusterCount checks the exact cluster count for one source.
	AssertClusterCount = "cluster_count"

	// AssertChecksum checks the first/middle/last dump string.
	AssertChecksum = "checksum"

	// AssertPreview checks the cluster summary lines.
	AssertPreview = "preview"

	// AssertFailures checks the report-level failed source count.
	AssertFailures = "failures"
)

// Scenario defines a complete scan scenario.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario verifies.
	Description string `yaml:"description"`

	// Mode selects the tokenization mode, "word" or "syllable".
	// Empty defaults to word mode.
	Mode string `yaml:"mode,omitempty"`

	// RunID pins the run identifier for deterministic report headers.
	// Empty defaults to "test-run-default".
	RunID string `yaml:"run_id,omitempty"`

	// Report selects which optional report sections to build.
	Report ReportOptions `yaml:"report,omitempty"`

	// Sources lists the texts to ingest, in order. A name may appear
	// more than once; later entries accumulate into the same source.
	Sources []SourceStep `yaml:"sources"`

	// Assertions are evaluated after all sources are ingested.
	Assertions []Assertion `yaml:"assertions"`

	// Expect optionally pins the exact rendered console output.
	Expect *Expectation `yaml:"expect,omitempty"`
}

// ReportOptions mirrors the optional report sections a scan can enable.
type ReportOptions struct {
	// Dump includes the first/middle/last checksum per source.
	Dump bool `yaml:"dump,omitempty"`

	// Metrics includes token counts and average token length.
	Metrics bool `yaml:"metrics,omitempty"`

	// Clusters includes cluster counts and previews.
	Clusters bool `yaml:"clusters,omitempty"`
}

// SourceStep is one ingestion step.
type SourceStep struct {
	// Name is the source key.
	Name string `yaml:"name"`

	// Text is the raw text to ingest. May be empty to model a source
	// that yielded no content.
	Text string `yaml:"text"`
}

// Assertion describes one expected outcome of a run.
type Assertion struct {
	// Type selects the assertion, one of the Assert* constants.
	Type string `yaml:"type"`

	// Source is the source key the assertion applies to. Required for
	// every type except failures.
	Source string `yaml:"source,omitempty"`

	// Want is the expected result of the full-read check. Required for
	// complete assertions.
	Want *bool `yaml:"want,omitempty"`

	// Count is the expected count for token_count, cluster_count, and
	// failures assertions.
	Count int `yaml:"count,omitempty"`

	// Value is the expected dump string for checksum assertions.
	Value string `yaml:"value,omitempty"`

	// Tokens are the expected cluster summary lines for preview
	// assertions.
	Tokens []string `yaml:"tokens,omitempty"`
}

// Expectation pins rendered output for exact comparison.
type Expectation struct {
	// Console is the expected console rendering of the report. A
	// mismatch fails the run with a unified diff.
	Console string `yaml:"console"`
}

// LoadScenario reads and validates a scenario from a YAML file.
//
// Unknown YAML fields are rejected so typos in scenario files surface as
// load errors instead of silently ignored configuration.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks structural requirements before a run.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Mode != "" {
		if _, err := token.ParseMode(s.Mode); err != nil {
			return err
		}
	}

	if len(s.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	for i, src := range s.Sources {
		if src.Name == "" {
			return fmt.Errorf("sources[%d]: name is required", i)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("at least one assertion is required")
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}

	if s.Expect != nil && s.Expect.Console == "" {
		return fmt.Errorf("expect: console is required")
	}

	return nil
}

// validateAssertion checks per-type field requirements.
func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertComplete:
		if a.Source == "" {
			return fmt.Errorf("%s: source is required", a.Type)
		}
		if a.Want == nil {
			return fmt.Errorf("%s: want is required", a.Type)
		}
	case AssertTokenCount, AssertClusterCount:
		if a.Source == "" {
			return fmt.Errorf("%s: source is required", a.Type)
		}
		if a.Count < 0 {
			return fmt.Errorf("%s: count must not be negative", a.Type)
		}
	case AssertChecksum, AssertPreview:
		if a.Source == "" {
			return fmt.Errorf("%s: source is required", a.Type)
		}
	case AssertFailures:
		if a.Source != "" {
			return fmt.Errorf("%s: source must not be set", a.Type)
		}
		if a.Count < 0 {
			return fmt.Errorf("%s: count must not be negative", a.Type)
		}
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
