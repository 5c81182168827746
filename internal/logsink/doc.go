// Package logsink writes rendered verification reports to a log file with
// size-based rotation and compression.
//
// The rotation contract:
//   - a file larger than maxSize is renamed to path.<UTC-timestamp>.bak
//   - with compression on, the .bak becomes .bak.gz (or .bak.xz with the
//     xz codec) and the uncompressed backup is removed
//   - the returned active path is always the original path, now free for
//     a fresh write
//
// Rotation never discards log content: every byte ever written is either
// in the active file or in exactly one backup.
//
// The scan engine never touches the filesystem; this package and the
// CLI's file reader are the only components that do.
package logsink
