// Package security guards archive extraction: entry names are validated
// against path traversal and decompressed bytes are bounded.
package security

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ValidateFilePath rejects archive entry names that would land outside
// baseDir: empty names, absolute paths, and anything carrying a ".."
// component. The joined path is checked against baseDir as well, so a
// name that slips past the pattern checks still cannot escape.
func ValidateFilePath(filePath, baseDir string) error {
	switch {
	case filePath == "":
		return fmt.Errorf("empty entry name")
	case strings.Contains(filePath, ".."):
		return fmt.Errorf("entry name contains %q", "..")
	case filepath.IsAbs(filePath):
		return fmt.Errorf("entry name is absolute")
	}

	base := filepath.Clean(baseDir)
	rel, err := filepath.Rel(base, filepath.Join(base, filePath))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("entry name escapes the destination directory")
	}
	return nil
}

// LimitedReader fails the read once more than its budget has flowed
// through. The source's self-reported sizes are never consulted.
type LimitedReader struct {
	r         io.Reader
	remaining int64
}

// NewLimitedReader bounds r at maxBytes total.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{r: r, remaining: maxBytes}
}

func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		return 0, fmt.Errorf("decompression size limit exceeded")
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}
