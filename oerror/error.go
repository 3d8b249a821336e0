package oerror

import "fmt"

// StrideError is the error type returned by stride packages.
type StrideError struct {
	Err string
}

// New returns a StrideError with a message formatted from the arguments passed.
func New(format string, args ...any) *StrideError {
	if len(args) == 0 {
		return &StrideError{Err: format}
	}
	return &StrideError{Err: fmt.Sprintf(format, args...)}
}

func (e *StrideError) Error() string {
	return e.Err
}
