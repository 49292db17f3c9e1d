package lookup

import (
	"errors"

	"fieldpath/internal/diagnostic"
)

// ErrNotFound is matched by every *Error.
var ErrNotFound = errors.New("not found")

// Error reports a failed lookup.
type Error struct {
	diagnostic.Diagnostic
}

func (e *Error) Error() string {
	return e.Diagnostic.String()
}

func (e *Error) Unwrap() error {
	return ErrNotFound
}

// Code returns the diagnostic code of err if it is a lookup error.
func Code(err error) string {
	var le *Error
	if errors.As(err, &le) {
		return le.Code
	}

	return ""
}

func newError(code, message, typeName, path string, suggestions []string) *Error {
	return &Error{Diagnostic: diagnostic.Diagnostic{
		Severity:    diagnostic.DiagnosticError,
		Code:        code,
		Message:     message,
		Type:        typeName,
		Path:        path,
		Suggestions: suggestions,
	}}
}
