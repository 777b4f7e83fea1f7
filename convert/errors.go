package convert

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error returned by this package matches exactly one of
// them with errors.Is.
var (
	ErrLoad      = errors.New("failed to load image")
	ErrWriteOpen = errors.New("failed to open output for writing")
	ErrWrite     = errors.New("failed to write dump")
	ErrReadOpen  = errors.New("failed to open dump")
	ErrRead      = errors.New("failed to read dump")
	ErrMalformed = errors.New("malformed dump")
	ErrSave      = errors.New("failed to save image")
)

// Error is a failed conversion step on one file.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v '%s': %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newError(kind error, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// KindOf returns the error kind of err, or nil when err did not come from a
// conversion step.
func KindOf(err error) error {
	var convErr *Error
	if errors.As(err, &convErr) {
		return convErr.Kind
	}
	return nil
}
