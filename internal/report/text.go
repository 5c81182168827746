package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteLog renders the report in the log file format: mode banner, run ID,
// summary line, cluster groups, then one timestamped line per source in
// sorted key order.
//
// The now function supplies the per-line timestamps (RFC 3339, UTC); pass
// nil for wall-clock time. Tests inject a fixed clock for deterministic
// output.
func WriteLog(w io.Writer, r *Report, now func() time.Time) error {
	if now == nil {
		now = time.Now
	}

	fmt.Fprintf(w, "=== Tokenization Mode: %s ===\n", r.ModeLabel)
	fmt.Fprintf(w, "Run: %s\n", r.RunID)
	fmt.Fprintf(w, "Summary: %d failures, %d missing tokens\n", r.Failures, r.Missing)

	fmt.Fprintln(w, "=== Cluster Groups by Count ===")
	for _, g := range r.Groups {
		fmt.Fprintf(w, "%d clusters: %s\n", g.Count, strings.Join(g.Sources, ", "))
	}

	fmt.Fprintln(w, "=== Verification Results ===")
	for _, src := range r.Sources {
		res := r.Results[src]
		ts := now().UTC().Format(time.RFC3339)

		parts := []string{fmt.Sprintf("[%s] %s", ts, src)}
		if r.Options.Clusters {
			parts = append(parts,
				fmt.Sprintf("Clusters: %d", res.ClusterCount),
				fmt.Sprintf("Preview: %s", formatPreview(res.Preview)),
			)
		}
		parts = append(parts,
			fmt.Sprintf("Status: %s", logStatus(res)),
			fmt.Sprintf("First: %s", res.First),
			fmt.Sprintf("Last: %s", res.Last),
			fmt.Sprintf("Checksum: %s", res.Checksum),
			fmt.Sprintf("Digest: %s", truncateDigest(res.Digest)),
		)
		if r.Options.Metrics {
			parts = append(parts,
				fmt.Sprintf("Tokens: %d", res.Tokens),
				fmt.Sprintf("AvgLen: %.2f", res.AvgLength),
			)
		}

		if _, err := fmt.Fprintln(w, strings.Join(parts, " | ")); err != nil {
			return err
		}
	}

	return nil
}

// WriteConsole renders the report for terminal output: one block per
// source in sorted key order, optional sections per r.Options.
func WriteConsole(w io.Writer, r *Report) error {
	for _, src := range r.Sources {
		res := r.Results[src]

		if r.Options.Clusters {
			fmt.Fprintf(w, "%s | Clusters: %d | Preview: %s\n",
				src, res.ClusterCount, formatPreview(res.Preview))
		} else {
			fmt.Fprintln(w, src)
		}

		fmt.Fprintf(w, "  Status: %s\n", consoleStatus(res))
		if r.Options.Dump {
			fmt.Fprintf(w, "  Checksum: %s\n", res.Checksum)
		}
		if r.Options.Metrics {
			if _, err := fmt.Fprintf(w, "  Tokens: %d | Avg token length: %.2f\n",
				res.Tokens, res.AvgLength); err != nil {
				return err
			}
		}
	}

	return nil
}

// logStatus is the compact status used in log lines.
func logStatus(res SourceResult) string {
	if res.Complete {
		return "OK"
	}
	return fmt.Sprintf("FAIL (%d missing)", res.Missing)
}

// consoleStatus is the verbose status used in console output.
func consoleStatus(res SourceResult) string {
	if res.Complete {
		return "FULL READ CONFIRMED"
	}
	return fmt.Sprintf("Integrity fail (%d missing)", res.Missing)
}

// formatPreview renders a cluster preview as "[first second, third]".
func formatPreview(preview []string) string {
	return "[" + strings.Join(preview, ", ") + "]"
}

// truncateDigest shortens the content digest for log display.
// JSON output carries the full digest.
func truncateDigest(d string) string {
	if len(d) <= 12 {
		return d
	}
	return d[:12]
}
