// Package harness executes scan scenarios for deterministic end-to-end
// testing.
//
// A scenario declares a tokenization mode, an ordered list of text
// sources, and assertions about the verification outcome. The harness
// ingests every source into a fresh engine, builds a report, renders the
// console form, and evaluates the assertions. Failures are collected
// rather than returned one at a time, so a single run reports everything
// that broke.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: greeting_word_mode
//	description: "Word mode keeps trailing punctuation"
//	mode: word
//	report:
//	  dump: true
//	  metrics: true
//	sources:
//	  - name: greeting.txt
//	    text: "hello world. bye!"
//	assertions:
//	  - type: complete
//	    source: greeting.txt
//	    want: true
//	  - type: checksum
//	    source: greeting.txt
//	    value: "hello world. bye!"
//
// # Assertion Types
//
//   - complete: the source passes or fails the full-read check
//   - token_count: exact token count for a source
//   - cluster_count: exact line cluster count for a source
//   - checksum: the first/middle/last dump string for a source
//   - preview: the cluster summary lines for a source
//   - failures: the report-level count of failed sources
//
// # Deterministic Testing
//
// Every run uses a fixed run ID (the scenario's run_id, or
// "test-run-default" when unset), so the same scenario produces the same
// report on every execution. Console output carries no timestamps,
// digests, or generated identifiers, which makes it safe for golden
// snapshot comparison via RunWithGolden.
package harness
