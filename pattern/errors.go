package pattern

import (
	"errors"
	"fmt"
)

// ErrSyntax is the sentinel all syntax errors match with errors.Is.
var ErrSyntax = errors.New("invalid path template")

// SyntaxError reports a malformed path template or token pattern.
// It is a configuration fault: route setup must fail, the error is
// never treated as an ordinary non-match.
type SyntaxError struct {
	Template string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pattern %q: %s: %v", e.Template, e.Message, e.Cause)
	}
	return fmt.Sprintf("pattern %q: %s", e.Template, e.Message)
}

// Unwrap returns the underlying error.
func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *SyntaxError) Is(target error) bool {
	if target == ErrSyntax {
		return true
	}
	_, ok := target.(*SyntaxError)
	return ok || errors.Is(e.Cause, target)
}
