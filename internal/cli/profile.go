package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ProfileSummary is the JSON shape for one validated profile.
type ProfileSummary struct {
	Name string `json:"name"`
	Mode string `json:"mode"`
	Log  string `json:"log,omitempty"`
}

// ProfileError is the JSON shape for one profile validation error.
type ProfileError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ProfileValidationResult holds profile validation results.
type ProfileValidationResult struct {
	Valid    bool             `json:"valid"`
	Profiles []ProfileSummary `json:"profiles,omitempty"`
	Errors   []ProfileError   `json:"errors,omitempty"`
}

// NewProfileCommand creates the profile command group.
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect scan profile files",
	}

	cmd.AddCommand(newProfileValidateCommand(rootOpts))

	return cmd
}

// newProfileValidateCommand creates the profile validate command.
func newProfileValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <profile-file>",
		Short: "Validate a CUE profile file",
		Long: `Validate every profile in a CUE file without running a scan.

Checks that each profile's mode, report options, and log sink settings
compile to a usable configuration. Errors are reported with source
positions.

Example:
  fullscan profile validate profiles.cue
  fullscan profile validate --format json profiles.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runProfileValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result, loadErrors := LoadProfiles(path, LoadModeCollectAll)

	// File-level failures (missing file, unparseable CUE) are command errors.
	if result == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", loadErr.Code, loadErr.Message))
		}
		_ = formatter.Error(ErrCodeGeneric, loadErrors[0].Error(), nil)
		return NewExitError(ExitCommandError, loadErrors[0].Error())
	}

	if len(loadErrors) > 0 {
		return outputProfileErrors(formatter, loadErrors)
	}

	for _, p := range result.Profiles {
		formatter.VerboseLog("Validated profile: %s (mode=%s)", p.Name, p.Mode)
	}

	return outputProfileSuccess(formatter, result)
}

// outputProfileSuccess outputs successful validation results.
func outputProfileSuccess(formatter *OutputFormatter, result *LoadResult) error {
	if formatter.Format == "json" {
		out := ProfileValidationResult{Valid: true}
		for _, p := range result.Profiles {
			summary := ProfileSummary{Name: p.Name, Mode: p.Mode.String()}
			if p.Log != nil {
				summary.Log = p.Log.Path
			}
			out.Profiles = append(out.Profiles, summary)
		}
		return formatter.Success(out)
	}

	fmt.Fprintf(formatter.Writer, "✓ %d profile(s) valid\n", len(result.Profiles))
	return nil
}

// outputProfileErrors outputs profile validation errors.
func outputProfileErrors(formatter *OutputFormatter, loadErrors []error) error {
	profileErrors := make([]ProfileError, 0, len(loadErrors))
	for _, err := range loadErrors {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			pe := ProfileError{Code: loadErr.Code, Message: loadErr.Message}
			if loadErr.Pos.IsValid() {
				pe.Line = loadErr.Pos.Line()
			}
			profileErrors = append(profileErrors, pe)
			continue
		}
		profileErrors = append(profileErrors, ProfileError{Code: ErrCodeGeneric, Message: err.Error()})
	}

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ProfileValidationResult{Valid: false, Errors: profileErrors},
			Error: &CLIError{
				Code:    profileErrors[0].Code,
				Message: profileErrors[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(profileErrors)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, pe := range profileErrors {
		if pe.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", pe.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", pe.Code, pe.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(profileErrors)))
}
