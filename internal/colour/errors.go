package colour

// GenerationError reports that a scheme could not be derived from the
// sampled colours. It is fatal to an apply: with no scheme there is
// nothing to render.
type GenerationError struct {
	Reason string
}

// Error returns the error message.
func (e *GenerationError) Error() string {
	return "palette generation failed: " + e.Reason
}

// NewGenerationError creates a GenerationError.
func NewGenerationError(reason string) *GenerationError {
	return &GenerationError{Reason: reason}
}
