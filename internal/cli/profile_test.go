package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileValidateValid(t *testing.T) {
	path := writeProfileFile(t, `
profile: quick: {}
profile: strict: {
	mode: "syllable"
	log: path: "scan.log"
}
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewProfileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate", path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ 2 profile(s) valid")
}

func TestProfileValidateValidJSON(t *testing.T) {
	path := writeProfileFile(t, `
profile: strict: {
	mode: "syllable"
	log: path: "scan.log"
}
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewProfileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate", path})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["valid"])

	profiles, ok := data["profiles"].([]interface{})
	require.True(t, ok)
	require.Len(t, profiles, 1)

	strict, ok := profiles[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "strict", strict["name"])
	assert.Equal(t, "syllable", strict["mode"])
	assert.Equal(t, "scan.log", strict["log"])
}

func TestProfileValidateMissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewProfileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate", "/nonexistent/profiles.cue"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)
	assert.Contains(t, buf.String(), "not found")
}

func TestProfileValidateInvalidProfile(t *testing.T) {
	path := writeProfileFile(t, `
profile: bad: {
	mode: "sentence"
}
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewProfileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate", path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, "✗ Validation failed")
	assert.Contains(t, output, ErrCodeMode)
	assert.Contains(t, output, "sentence")
}

func TestProfileValidateCollectsAllErrors(t *testing.T) {
	path := writeProfileFile(t, `
profile: one: {
	mode: "sentence"
}
profile: two: {
	log: {
		path:  "scan.log"
		codec: "zstd"
	}
}
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewProfileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate", path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 error(s)")

	output := buf.String()
	assert.Contains(t, output, ErrCodeMode)
	assert.Contains(t, output, ErrCodeLog)
}

func TestProfileValidateInvalidJSON(t *testing.T) {
	path := writeProfileFile(t, `
profile: bad: {
	mode: "sentence"
}
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewProfileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate", path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeMode, resp.Error.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["valid"])
}
