package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// validScenario returns a minimal scenario that passes validation.
// Tests mutate a copy to probe individual rules.
func validScenario() *Scenario {
	return &Scenario{
		Name:        "valid",
		Description: "A valid scenario",
		Sources: []SourceStep{
			{Name: "a.txt", Text: "hello"},
		},
		Assertions: []Assertion{
			{Type: AssertTokenCount, Source: "a.txt", Count: 1},
		},
	}
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenarioFile(t, `
name: load_valid
description: "Loads every field"
mode: syllable
run_id: scan-0042
report:
  dump: true
  metrics: true
sources:
  - name: word.txt
    text: "strength"
assertions:
  - type: complete
    source: word.txt
    want: true
  - type: token_count
    source: word.txt
    count: 2
expect:
  console: "word.txt\n"
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	require.NotNil(t, scenario)

	assert.Equal(t, "load_valid", scenario.Name)
	assert.Equal(t, "Loads every field", scenario.Description)
	assert.Equal(t, "syllable", scenario.Mode)
	assert.Equal(t, "scan-0042", scenario.RunID)
	assert.True(t, scenario.Report.Dump)
	assert.True(t, scenario.Report.Metrics)
	assert.False(t, scenario.Report.Clusters)

	require.Len(t, scenario.Sources, 1)
	assert.Equal(t, "word.txt", scenario.Sources[0].Name)
	assert.Equal(t, "strength", scenario.Sources[0].Text)

	require.Len(t, scenario.Assertions, 2)
	assert.Equal(t, AssertComplete, scenario.Assertions[0].Type)
	require.NotNil(t, scenario.Assertions[0].Want)
	assert.True(t, *scenario.Assertions[0].Want)
	assert.Equal(t, 2, scenario.Assertions[1].Count)

	require.NotNil(t, scenario.Expect)
	assert.Equal(t, "word.txt\n", scenario.Expect.Console)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Nil(t, scenario)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_BadYAML(t *testing.T) {
	path := writeScenarioFile(t, "{{ not yaml")

	scenario, err := LoadScenario(path)
	require.Error(t, err)
	assert.Nil(t, scenario)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_RejectsUnknownFields(t *testing.T) {
	path := writeScenarioFile(t, `
name: strict
description: "Typo in a field name"
sorces:
  - name: a.txt
    text: "hello"
assertions:
  - type: failures
    count: 0
`)

	scenario, err := LoadScenario(path)
	require.Error(t, err)
	assert.Nil(t, scenario)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_InvalidScenario(t *testing.T) {
	path := writeScenarioFile(t, `
name: no_assertions
description: "Sources but nothing to check"
sources:
  - name: a.txt
    text: "hello"
`)

	scenario, err := LoadScenario(path)
	require.Error(t, err)
	assert.Nil(t, scenario)
	assert.Contains(t, err.Error(), "invalid scenario")
	assert.Contains(t, err.Error(), "at least one assertion is required")
}

func TestValidateScenario(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Scenario)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(s *Scenario) {},
		},
		{
			name:    "missing name",
			mutate:  func(s *Scenario) { s.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			mutate:  func(s *Scenario) { s.Description = "" },
			wantErr: "description is required",
		},
		{
			name:    "unknown mode",
			mutate:  func(s *Scenario) { s.Mode = "sentence" },
			wantErr: "unknown tokenization mode",
		},
		{
			name:    "no sources",
			mutate:  func(s *Scenario) { s.Sources = nil },
			wantErr: "at least one source is required",
		},
		{
			name:    "unnamed source",
			mutate:  func(s *Scenario) { s.Sources[0].Name = "" },
			wantErr: "sources[0]: name is required",
		},
		{
			name:    "no assertions",
			mutate:  func(s *Scenario) { s.Assertions = nil },
			wantErr: "at least one assertion is required",
		},
		{
			name: "unknown assertion type",
			mutate: func(s *Scenario) {
				s.Assertions[0].Type = "frobnicate"
			},
			wantErr: `assertions[0]: unknown assertion type "frobnicate"`,
		},
		{
			name: "missing assertion type",
			mutate: func(s *Scenario) {
				s.Assertions[0].Type = ""
			},
			wantErr: "type is required",
		},
		{
			name: "complete without want",
			mutate: func(s *Scenario) {
				s.Assertions[0] = Assertion{Type: AssertComplete, Source: "a.txt"}
			},
			wantErr: "complete: want is required",
		},
		{
			name: "complete without source",
			mutate: func(s *Scenario) {
				want := true
				s.Assertions[0] = Assertion{Type: AssertComplete, Want: &want}
			},
			wantErr: "complete: source is required",
		},
		{
			name: "checksum without source",
			mutate: func(s *Scenario) {
				s.Assertions[0] = Assertion{Type: AssertChecksum, Value: "x"}
			},
			wantErr: "checksum: source is required",
		},
		{
			name: "negative token count",
			mutate: func(s *Scenario) {
				s.Assertions[0].Count = -1
			},
			wantErr: "token_count: count must not be negative",
		},
		{
			name: "failures with source",
			mutate: func(s *Scenario) {
				s.Assertions[0] = Assertion{Type: AssertFailures, Source: "a.txt"}
			},
			wantErr: "failures: source must not be set",
		},
		{
			name: "expect without console",
			mutate: func(s *Scenario) {
				s.Expect = &Expectation{}
			},
			wantErr: "expect: console is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := validScenario()
			tt.mutate(scenario)

			err := validateScenario(scenario)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
