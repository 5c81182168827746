package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuetoken "cuelang.org/go/cue/token"

	"github.com/roach88/fullscan/internal/profile"
)

// LoadMode controls how errors are handled during profile loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the results of loading a profile file.
type LoadResult struct {
	Profiles []*profile.Profile
	CUEValue cue.Value // The raw CUE value for additional processing
}

// LoadError represents an error that occurred during profile loading.
type LoadError struct {
	Code    string
	Message string
	Pos     cuetoken.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadProfiles loads and compiles scan profiles from a CUE file.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
//
// A nil result signals a file-level failure (missing file, unparseable
// CUE, no profile block); a non-nil result with errors carries the
// profiles that did compile alongside the per-profile failures.
func LoadProfiles(path string, mode LoadMode) (*LoadResult, []error) {
	// Verify file exists
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("profile file not found: %s", path)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing profile file: %v", err)}}
	}
	if info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a file: %s", path)}}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error reading profile file: %v", err)}}
	}

	// Compile CUE source
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("compiling profile file: %v", err)}}
	}

	profilesVal := value.LookupPath(cue.ParsePath("profile"))
	if !profilesVal.Exists() {
		return nil, []error{&LoadError{Code: ErrCodeNoProfiles, Message: "no profiles defined (want profile: <name>: {...})"}}
	}

	result := &LoadResult{CUEValue: value}
	var errs []error

	iter, iterErr := profilesVal.Fields()
	if iterErr != nil {
		return nil, []error{&LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("iterating profiles: %v", iterErr)}}
	}
	for iter.Next() {
		p, compileErr := profile.CompileProfile(iter.Value())
		if compileErr != nil {
			errs = append(errs, convertCompileError(compileErr, "profile."+iter.Label()))
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		result.Profiles = append(result.Profiles, p)
	}

	if len(result.Profiles) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeNoProfiles, Message: "no profiles found in file"})
	}

	return result, errs
}

// Select returns the named profile, or the only profile when name is empty.
func (r *LoadResult) Select(name string) (*profile.Profile, error) {
	if name == "" {
		if len(r.Profiles) == 1 {
			return r.Profiles[0], nil
		}
		return nil, fmt.Errorf("profile file defines %d profiles; choose one with --profile-name", len(r.Profiles))
	}
	for _, p := range r.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("profile %q not found (have: %s)", name, strings.Join(r.profileNames(), ", "))
}

// profileNames lists the loaded profile names in file order.
func (r *LoadResult) profileNames() []string {
	names := make([]string, 0, len(r.Profiles))
	for _, p := range r.Profiles {
		names = append(names, p.Name)
	}
	return names
}

// convertCompileError converts a profile compile error to a LoadError with position info.
func convertCompileError(err error, context string) *LoadError {
	var compileErr *profile.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric    = "E001" // Generic/unknown error
	ErrCodeNotFound   = "E002" // Profile file not found
	ErrCodeParse      = "E003" // CUE compile failed
	ErrCodeNoProfiles = "E004" // No profiles defined

	// Profile validation errors
	ErrCodeMode   = "E101" // Invalid tokenization mode
	ErrCodeReport = "E102" // Invalid report options
	ErrCodeLog    = "E103" // Invalid log sink configuration
)

// MapFieldToErrorCode maps a profile compile error field to an error code.
func MapFieldToErrorCode(field string) string {
	switch {
	case field == "mode":
		return ErrCodeMode
	case strings.HasPrefix(field, "report"):
		return ErrCodeReport
	case strings.HasPrefix(field, "log"):
		return ErrCodeLog
	default:
		return ErrCodeGeneric
	}
}
