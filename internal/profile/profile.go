package profile

import (
	"fmt"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	cuetoken "cuelang.org/go/cue/token"

	"github.com/roach88/fullscan/internal/logsink"
	"github.com/roach88/fullscan/internal/report"
	"github.com/roach88/fullscan/internal/token"
)

// Profile is a named scan configuration.
type Profile struct {
	Name   string
	Mode   token.Mode
	Report report.Options
	Log    *LogConfig // nil when the profile writes no log
}

// LogConfig configures the report log sink.
type LogConfig struct {
	Path     string
	Append   bool
	MaxSize  int64
	Compress bool
	Codec    logsink.Codec
}

// CompileProfile parses a CUE value into a Profile.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the profile struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`profile: strict: { mode: "syllable" }`)
//	p, err := CompileProfile(v.LookupPath(cue.ParsePath("profile.strict")))
func CompileProfile(v cue.Value) (*Profile, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	p := &Profile{Mode: token.ModeWord}

	// Parse profile name from struct label (the path selector)
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		p.Name = labels[len(labels)-1].String()
	}

	// Parse mode (optional, defaults to word)
	modeVal := v.LookupPath(cue.ParsePath("mode"))
	if modeVal.Exists() {
		s, err := modeVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		mode, err := token.ParseMode(s)
		if err != nil {
			return nil, &CompileError{
				Field:   "mode",
				Message: err.Error(),
				Pos:     modeVal.Pos(),
			}
		}
		p.Mode = mode
	}

	// Parse report options (optional, all default off)
	opts, err := parseReport(v)
	if err != nil {
		return nil, err
	}
	p.Report = opts

	// Parse log sink config (optional)
	p.Log, err = parseLog(v)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// parseReport extracts report visibility options from the profile.
func parseReport(v cue.Value) (report.Options, error) {
	var opts report.Options

	rv := v.LookupPath(cue.ParsePath("report"))
	if !rv.Exists() {
		return opts, nil // report is optional
	}

	var err error
	if opts.Dump, err = parseBool(rv, "dump"); err != nil {
		return opts, err
	}
	if opts.Metrics, err = parseBool(rv, "metrics"); err != nil {
		return opts, err
	}
	if opts.Clusters, err = parseBool(rv, "clusters"); err != nil {
		return opts, err
	}
	return opts, nil
}

// parseLog extracts the log sink config from the profile.
func parseLog(v cue.Value) (*LogConfig, error) {
	lv := v.LookupPath(cue.ParsePath("log"))
	if !lv.Exists() {
		return nil, nil // log is optional
	}

	lc := &LogConfig{
		MaxSize:  logsink.DefaultMaxSize,
		Compress: true,
		Codec:    logsink.CodecGzip,
	}

	// Parse path (required once log is configured)
	pathVal := lv.LookupPath(cue.ParsePath("path"))
	if !pathVal.Exists() {
		return nil, &CompileError{
			Field:   "log.path",
			Message: "path is required when log is configured",
			Pos:     lv.Pos(),
		}
	}
	path, err := pathVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	lc.Path = path

	if lc.Append, err = parseBool(lv, "append"); err != nil {
		return nil, err
	}

	// Parse max_size (optional, must be positive)
	msVal := lv.LookupPath(cue.ParsePath("max_size"))
	if msVal.Exists() {
		n, err := msVal.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		if n <= 0 {
			return nil, &CompileError{
				Field:   "log.max_size",
				Message: "must be a positive byte count",
				Pos:     msVal.Pos(),
			}
		}
		lc.MaxSize = n
	}

	// Parse compress (optional, defaults on)
	cmpVal := lv.LookupPath(cue.ParsePath("compress"))
	if cmpVal.Exists() {
		if lc.Compress, err = cmpVal.Bool(); err != nil {
			return nil, formatCUEError(err)
		}
	}

	// Parse codec (optional, defaults to gzip)
	codecVal := lv.LookupPath(cue.ParsePath("codec"))
	if codecVal.Exists() {
		s, err := codecVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		codec, err := logsink.ParseCodec(s)
		if err != nil {
			return nil, &CompileError{
				Field:   "log.codec",
				Message: err.Error(),
				Pos:     codecVal.Pos(),
			}
		}
		lc.Codec = codec
	}

	return lc, nil
}

// parseBool reads an optional bool field, defaulting to false.
func parseBool(parent cue.Value, field string) (bool, error) {
	fv := parent.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return false, nil
	}
	b, err := fv.Bool()
	if err != nil {
		return false, formatCUEError(err)
	}
	return b, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     cuetoken.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
