package logsink

import (
	"fmt"
	"os"
	"time"
)

// Sink writes report text to a log file, rotating it first whenever the
// previous contents have outgrown the size limit.
type Sink struct {
	path       string
	maxSize    int64
	appendMode bool
	compress   bool
	codec      Codec
	now        func() time.Time
}

// SinkOption configures a Sink.
type SinkOption func(*Sink)

// WithMaxSize sets the rotation threshold in bytes.
func WithMaxSize(n int64) SinkOption {
	return func(s *Sink) {
		s.maxSize = n
	}
}

// WithAppend makes Write append to the active file instead of truncating.
func WithAppend() SinkOption {
	return func(s *Sink) {
		s.appendMode = true
	}
}

// WithoutCompression keeps rotated backups as plain .bak files.
func WithoutCompression() SinkOption {
	return func(s *Sink) {
		s.compress = false
	}
}

// WithCodec selects the compression codec for rotated backups.
func WithCodec(c Codec) SinkOption {
	return func(s *Sink) {
		s.codec = c
	}
}

// WithClock overrides the clock used to stamp backup names. Tests use this
// for deterministic rotation names.
func WithClock(now func() time.Time) SinkOption {
	return func(s *Sink) {
		s.now = now
	}
}

// NewSink creates a sink for the given path. Defaults: 1 MiB rotation
// threshold, truncate on write, gzip-compressed backups.
func NewSink(path string, opts ...SinkOption) *Sink {
	s := &Sink{
		path:     path,
		maxSize:  DefaultMaxSize,
		compress: true,
		codec:    CodecGzip,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the active log path.
func (s *Sink) Path() string {
	return s.path
}

// Write rotates the log if needed, then writes content to the active path.
// It returns the path actually written.
func (s *Sink) Write(content string) (string, error) {
	active, err := rotateAt(s.path, s.maxSize, s.compress, s.codec, s.now)
	if err != nil {
		return "", err
	}

	flags := os.O_CREATE | os.O_WRONLY
	if s.appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(active, flags, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to open log file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close log file: %w", err)
	}
	return active, nil
}
