package template

import "fmt"

// UnknownPlaceholderError reports a token whose role name is not in the
// scheme's role set. Rendering never silently drops a token: a template
// referencing a role that does not exist is a broken template.
type UnknownPlaceholderError struct {
	Token string
	Line  int
}

// Error returns the error message.
func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("unknown placeholder %s on line %d", e.Token, e.Line)
}

// NewUnknownPlaceholderError creates an UnknownPlaceholderError.
func NewUnknownPlaceholderError(token string, line int) *UnknownPlaceholderError {
	return &UnknownPlaceholderError{Token: token, Line: line}
}

// UnknownFormatError reports a token whose format suffix is not in the
// closed format set.
type UnknownFormatError struct {
	Format string
	Token  string
	Line   int
}

// Error returns the error message.
func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown format %q in %s on line %d", e.Format, e.Token, e.Line)
}

// NewUnknownFormatError creates an UnknownFormatError.
func NewUnknownFormatError(format, token string, line int) *UnknownFormatError {
	return &UnknownFormatError{Format: format, Token: token, Line: line}
}
