package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fullscan/internal/logsink"
)

// RotateOptions holds flags for the rotate command.
type RotateOptions struct {
	*RootOptions
	MaxSize    int64
	NoCompress bool
	Codec      string
}

// NewRotateCommand creates the rotate command.
func NewRotateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RotateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rotate <log-path>",
		Short: "Rotate an oversized report log",
		Long: `Rotate the log file at the given path if it exceeds the size limit.

An oversized log is renamed to <path>.<UTC-timestamp>.bak and compressed;
the original path is printed and is ready for fresh writes. A log under
the limit (or a missing file) is left alone.

Example:
  fullscan rotate scan.log
  fullscan rotate --max-size 2097152 --codec xz scan.log
  fullscan rotate --no-compress scan.log`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRotate(opts, args[0], cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.MaxSize, "max-size", logsink.DefaultMaxSize, "rotation threshold in bytes")
	cmd.Flags().BoolVar(&opts.NoCompress, "no-compress", false, "keep the rotated backup uncompressed")
	cmd.Flags().StringVar(&opts.Codec, "codec", "gzip", "backup compression codec (gzip|xz)")

	return cmd
}

func runRotate(opts *RotateOptions, path string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	codec, err := logsink.ParseCodec(opts.Codec)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --codec", err)
	}

	active, err := logsink.Rotate(path, opts.MaxSize, !opts.NoCompress, codec)
	if err != nil {
		return WrapExitError(ExitCommandError, "rotation failed", err)
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{
			Format: opts.Format,
			Writer: cmd.OutOrStdout(),
		}
		return formatter.Success(map[string]string{"path": active})
	}

	fmt.Fprintln(cmd.OutOrStdout(), active)
	return nil
}
