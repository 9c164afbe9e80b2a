package route

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the sentinel all route configuration errors
// match with errors.Is.
var ErrInvalidConfig = errors.New("invalid route configuration")

// ConstraintError reports a context constraint whose regular
// expression fragment could not be compiled.
type ConstraintError struct {
	Variable string
	Fragment string
	Cause    error
}

// Error implements the error interface.
func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraint on %s: invalid fragment %q: %v", e.Variable, e.Fragment, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ConstraintError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *ConstraintError) Is(target error) bool {
	if target == ErrInvalidConfig {
		return true
	}
	_, ok := target.(*ConstraintError)
	return ok || errors.Is(e.Cause, target)
}

// ConfigError reports an invalid value in a declarative route spec.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("route config %s: %s", e.Field, e.Message)
}

// Is checks if the error matches the target.
func (e *ConfigError) Is(target error) bool {
	if target == ErrInvalidConfig {
		return true
	}
	_, ok := target.(*ConfigError)
	return ok
}
