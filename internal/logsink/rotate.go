package logsink

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// DefaultMaxSize is the rotation threshold when none is configured.
const DefaultMaxSize int64 = 1 << 20 // 1 MiB

// rotationStamp is the UTC timestamp layout embedded in backup names.
const rotationStamp = "20060102T150405Z"

// Rotate rotates the file at path when it exceeds maxSize.
//
// An oversized file is renamed to path.<UTC-timestamp>.bak. When compress
// is set, the .bak is compressed through the codec and the uncompressed
// backup removed. The returned active path is always the original path,
// ready for continued writing; if no rotation was needed it comes back
// unchanged.
//
// A missing file needs no rotation and is not an error. I/O faults during
// rename or compression are returned; the engine's state is never involved
// here, so a failed rotation corrupts nothing upstream.
func Rotate(path string, maxSize int64, compress bool, codec Codec) (string, error) {
	return rotateAt(path, maxSize, compress, codec, time.Now)
}

func rotateAt(path string, maxSize int64, compress bool, codec Codec, now func() time.Time) (string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() <= maxSize {
		return path, nil
	}

	backup := fmt.Sprintf("%s.%s.bak", path, now().UTC().Format(rotationStamp))
	if err := os.Rename(path, backup); err != nil {
		return "", fmt.Errorf("failed to rotate log: %w", err)
	}

	if compress {
		if err := compressFile(backup, backup+codec.Ext(), codec); err != nil {
			return "", err
		}
		if err := os.Remove(backup); err != nil {
			return "", fmt.Errorf("failed to remove uncompressed backup: %w", err)
		}
		backup += codec.Ext()
	}

	slog.Info("log rotated",
		"path", path,
		"backup", backup,
		"size", info.Size(),
		"max_size", maxSize,
	)
	return path, nil
}
