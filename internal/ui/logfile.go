package ui

import (
	"io"
	"os"
	"path/filepath"
	"time"
)

// TimestampWriter prefixes each write with a timestamp.
// Used for full log files where timestamps should be added at the destination.
type TimestampWriter struct {
	w io.Writer
}

func NewTimestampWriter(w io.Writer) *TimestampWriter {
	return &TimestampWriter{w: w}
}

func (tw *TimestampWriter) Write(p []byte) (int, error) {
	timestamp := time.Now().Format("2006-01-02T15:04:05.000")
	n, err := tw.w.Write([]byte("[" + timestamp + "] " + string(p)))
	if err != nil {
		return 0, err
	}
	// caller expects the original length
	if n > 0 {
		return len(p), nil
	}
	return 0, nil
}

// Close forwards close to underlying writer if it supports it.
func (tw *TimestampWriter) Close() error {
	if c, ok := tw.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// OpenLogFile opens (appending) the run log at path, creating parents.
func OpenLogFile(path string) (*TimestampWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return NewTimestampWriter(f), nil
}
