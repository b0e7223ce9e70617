package apply

import "fmt"

// TargetWriteError reports a failed destination write for one target.
// Other targets keep applying; files the target wrote before the failure
// stay on disk and in the manifest so uninstall can revert them.
type TargetWriteError struct {
	Target string
	Path   string
	Err    error
}

func (e *TargetWriteError) Error() string {
	return fmt.Sprintf("target %s: writing %s: %v", e.Target, e.Path, e.Err)
}

func (e *TargetWriteError) Unwrap() error { return e.Err }

// NewTargetWriteError creates a TargetWriteError.
func NewTargetWriteError(target, path string, err error) *TargetWriteError {
	return &TargetWriteError{Target: target, Path: path, Err: err}
}

// ActivationError reports a failed activation step. The target's files
// are already written and recorded when this surfaces.
type ActivationError struct {
	Target string
	Step   string
	Err    error
}

func (e *ActivationError) Error() string {
	return fmt.Sprintf("target %s: activation %s: %v", e.Target, e.Step, e.Err)
}

func (e *ActivationError) Unwrap() error { return e.Err }

// NewActivationError creates an ActivationError.
func NewActivationError(target, step string, err error) *ActivationError {
	return &ActivationError{Target: target, Step: step, Err: err}
}

// ManifestCorruptError reports an unparseable manifest. Line is
// 1-indexed; 0 means the damage is not tied to a line.
type ManifestCorruptError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ManifestCorruptError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("manifest %s corrupt at line %d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("manifest %s corrupt: %s", e.Path, e.Reason)
}

// NewManifestCorruptError creates a ManifestCorruptError.
func NewManifestCorruptError(path string, line int, reason string) *ManifestCorruptError {
	return &ManifestCorruptError{Path: path, Line: line, Reason: reason}
}
