package dice

import "fmt"

// ParseError reports malformed dice notation. It always carries the
// original input and the offending token or characters so callers can
// show the user exactly what to correct.
type ParseError struct {
	Input  string // original expression text
	Reason string // human-readable cause naming the offending token
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing dice expression %q: %s", e.Input, e.Reason)
}

func parseErrorf(input, format string, args ...any) *ParseError {
	return &ParseError{Input: input, Reason: fmt.Sprintf(format, args...)}
}

// ValidationError reports a semantically invalid operation argument,
// such as a non-positive iteration count or an unreachable target.
// Parse failures are never ValidationErrors.
type ValidationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string { return e.Reason }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
