package logsink

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"
)

// Codec selects the compression applied to rotated logs.
type Codec int

const (
	// CodecGzip is the default rotation codec.
	CodecGzip Codec = iota
	// CodecXZ trades slower compression for smaller backups.
	CodecXZ
)

// String returns the flag-facing codec name.
func (c Codec) String() string {
	switch c {
	case CodecXZ:
		return "xz"
	default:
		return "gzip"
	}
}

// Ext returns the filename extension appended to compressed backups.
func (c Codec) Ext() string {
	switch c {
	case CodecXZ:
		return ".xz"
	default:
		return ".gz"
	}
}

// ParseCodec converts a flag value into a Codec.
func ParseCodec(s string) (Codec, error) {
	switch s {
	case "gzip":
		return CodecGzip, nil
	case "xz":
		return CodecXZ, nil
	default:
		return CodecGzip, fmt.Errorf("unknown log codec %q (want gzip or xz)", s)
	}
}

// compress writes src through the codec into dst.
func (c Codec) compress(dst io.Writer, src io.Reader) error {
	switch c {
	case CodecXZ:
		w, err := xz.NewWriter(dst)
		if err != nil {
			return fmt.Errorf("failed to create xz writer: %w", err)
		}
		if _, err := io.Copy(w, src); err != nil {
			return err
		}
		return w.Close()
	default:
		w := gzip.NewWriter(dst)
		if _, err := io.Copy(w, src); err != nil {
			return err
		}
		return w.Close()
	}
}

// compressFile compresses srcPath into dstPath, removing the partial
// destination on failure.
func compressFile(srcPath, dstPath string, codec Codec) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open rotated log: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	if err := codec.compress(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return fmt.Errorf("failed to compress rotated log: %w", err)
	}
	return dst.Close()
}
