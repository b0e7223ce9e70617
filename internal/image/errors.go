package image

import "fmt"

// ReadError reports that a wallpaper could not be loaded: missing file,
// unreadable file, or an unsupported raster format. Fatal to an apply.
type ReadError struct {
	Path string
	Err  error
}

// Error returns the error message.
func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read image %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// NewReadError creates a ReadError.
func NewReadError(path string, err error) *ReadError {
	return &ReadError{Path: path, Err: err}
}
