package cli

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/fullscan/internal/engine"
	"github.com/roach88/fullscan/internal/logsink"
	"github.com/roach88/fullscan/internal/profile"
	"github.com/roach88/fullscan/internal/report"
	"github.com/roach88/fullscan/internal/token"
)

// ScanOptions holds flags for the scan command.
type ScanOptions struct {
	*RootOptions
	Syllables   bool
	Words       bool
	Dump        bool
	Metrics     bool
	Clusters    bool
	JSON        bool
	LogPath     string
	Append      bool
	MaxLogSize  int64
	NoCompress  bool
	LogCodec    string
	Profile     string
	ProfileName string

	// RunIDGenerator allows overriding the run-ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDGenerator engine.RunIDGenerator

	// Clock allows overriding report timestamps (for testing).
	// If nil, defaults to time.Now.
	Clock func() time.Time
}

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scan <file>...",
		Short: "Ingest files and verify full-read integrity",
		Long: `Ingest one or more text files and verify that every source was read
completely: each token stream must be fully covered by its first-occurrence
index, anchored at both ends.

Files are tokenized by word (trailing punctuation retained) or by syllable.
Non-file arguments are skipped with a notice; the scan continues. The exit
code is 1 when any source fails verification.

Example:
  fullscan scan notes.txt chapters/*.txt
  fullscan scan --syllables --metrics --clusters poem.txt
  fullscan scan --log scan.log --max-log-size 2097152 *.txt
  fullscan scan --profile profiles.cue --profile-name strict *.txt`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Syllables, "syllables", false, "tokenize by syllable")
	cmd.Flags().BoolVar(&opts.Words, "words", false, "tokenize by word (default)")
	cmd.Flags().BoolVar(&opts.Dump, "dump", false, "show the first/middle/last checksum per source")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "show token count and average token length per source")
	cmd.Flags().BoolVar(&opts.Clusters, "clusters", false, "show line-cluster counts and previews per source")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "emit the report as JSON (same as --format json)")
	cmd.Flags().StringVar(&opts.LogPath, "log", "", "write the report to this log file")
	cmd.Flags().BoolVar(&opts.Append, "append", false, "append to the log file instead of overwriting")
	cmd.Flags().Int64Var(&opts.MaxLogSize, "max-log-size", logsink.DefaultMaxSize, "rotate the log when it exceeds this many bytes")
	cmd.Flags().BoolVar(&opts.NoCompress, "no-compress", false, "keep rotated log backups uncompressed")
	cmd.Flags().StringVar(&opts.LogCodec, "log-codec", "gzip", "compression codec for rotated backups (gzip|xz)")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "load scan settings from this CUE profile file")
	cmd.Flags().StringVar(&opts.ProfileName, "profile-name", "", "profile to use when the file defines several")

	return cmd
}

// scanConfig is the effective configuration after merging profile values
// with explicit flags. Flags win.
type scanConfig struct {
	mode   token.Mode
	report report.Options
	log    *profile.LogConfig
}

func runScan(opts *ScanOptions, files []string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	if opts.Syllables && opts.Words {
		return NewExitError(ExitCommandError, "--syllables and --words are mutually exclusive")
	}

	cfg, err := resolveScanConfig(opts, cmd)
	if err != nil {
		return err
	}

	gen := opts.RunIDGenerator
	if gen == nil {
		gen = engine.UUIDv7Generator{}
	}
	eng := engine.New(cfg.mode, engine.WithRunIDGenerator(gen))

	slog.Info("scan starting", "run", eng.RunID(), "mode", cfg.mode.String(), "files", len(files))

	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Skipping non-file: %s\n", path)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Skipping unreadable file: %s (%v)\n", path, err)
			continue
		}
		eng.Ingest(filepath.Base(path), string(data))
	}

	rep := report.Build(eng, cfg.report)

	format := opts.Format
	if opts.JSON {
		format = "json"
	}
	if format == "json" {
		if err := report.WriteJSON(cmd.OutOrStdout(), rep); err != nil {
			return WrapExitError(ExitCommandError, "failed to encode report", err)
		}
	} else {
		if err := report.WriteConsole(cmd.OutOrStdout(), rep); err != nil {
			return WrapExitError(ExitCommandError, "failed to write report", err)
		}
	}

	if cfg.log != nil {
		var buf bytes.Buffer
		if err := report.WriteLog(&buf, rep, opts.Clock); err != nil {
			return WrapExitError(ExitCommandError, "failed to render report log", err)
		}
		sink := logsink.NewSink(cfg.log.Path, sinkOptions(cfg.log, opts.Clock)...)
		written, err := sink.Write(buf.String())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to write report log", err)
		}
		slog.Info("report logged", "path", written)
	}

	if rep.Failures > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d source(s) failed verification", rep.Failures, len(rep.Sources)))
	}
	return nil
}

// resolveScanConfig merges profile settings (when given) with explicit
// flags. A flag the user actually set always overrides the profile.
func resolveScanConfig(opts *ScanOptions, cmd *cobra.Command) (*scanConfig, error) {
	cfg := &scanConfig{mode: token.ModeWord}

	if opts.Profile != "" {
		result, errs := LoadProfiles(opts.Profile, LoadModeFailFast)
		if len(errs) > 0 {
			return nil, WrapExitError(ExitCommandError, "failed to load profile", errs[0])
		}
		p, err := result.Select(opts.ProfileName)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to select profile", err)
		}
		slog.Debug("profile applied", "name", p.Name, "mode", p.Mode.String())
		cfg.mode = p.Mode
		cfg.report = p.Report
		cfg.log = p.Log
	} else if opts.ProfileName != "" {
		return nil, NewExitError(ExitCommandError, "--profile-name requires --profile")
	}

	if opts.Syllables {
		cfg.mode = token.ModeSyllable
	}
	if opts.Words {
		cfg.mode = token.ModeWord
	}

	flags := cmd.Flags()
	if flags.Changed("dump") {
		cfg.report.Dump = opts.Dump
	}
	if flags.Changed("metrics") {
		cfg.report.Metrics = opts.Metrics
	}
	if flags.Changed("clusters") {
		cfg.report.Clusters = opts.Clusters
	}

	if opts.LogPath != "" {
		if cfg.log == nil {
			cfg.log = &profile.LogConfig{
				MaxSize:  logsink.DefaultMaxSize,
				Compress: true,
				Codec:    logsink.CodecGzip,
			}
		}
		cfg.log.Path = opts.LogPath
	}
	if cfg.log != nil {
		if flags.Changed("append") {
			cfg.log.Append = opts.Append
		}
		if flags.Changed("max-log-size") {
			cfg.log.MaxSize = opts.MaxLogSize
		}
		if flags.Changed("no-compress") {
			cfg.log.Compress = !opts.NoCompress
		}
		if flags.Changed("log-codec") {
			codec, err := logsink.ParseCodec(opts.LogCodec)
			if err != nil {
				return nil, WrapExitError(ExitCommandError, "invalid --log-codec", err)
			}
			cfg.log.Codec = codec
		}
	}

	return cfg, nil
}

// sinkOptions converts a resolved log config into sink options.
func sinkOptions(lc *profile.LogConfig, clock func() time.Time) []logsink.SinkOption {
	sinkOpts := []logsink.SinkOption{
		logsink.WithMaxSize(lc.MaxSize),
		logsink.WithCodec(lc.Codec),
	}
	if lc.Append {
		sinkOpts = append(sinkOpts, logsink.WithAppend())
	}
	if !lc.Compress {
		sinkOpts = append(sinkOpts, logsink.WithoutCompression())
	}
	if clock != nil {
		sinkOpts = append(sinkOpts, logsink.WithClock(clock))
	}
	return sinkOpts
}
