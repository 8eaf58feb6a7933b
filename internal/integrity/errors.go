package integrity

import (
	"errors"
	"fmt"
)

const (
	missingOutputMessageConstant       = "export directory missing"
	missingOutputErrorTemplateConstant = "audit: %s missing"
	ioErrorTemplateConstant            = "%s %s: %v"
)

// ErrMissingOutput is wrapped by every MissingOutputError.
var ErrMissingOutput = errors.New(missingOutputMessageConstant)

// MissingOutputError reports an audit against an export directory that does not exist.
type MissingOutputError struct {
	Directory string
}

// Error returns the message shown to the user.
func (missingOutputError *MissingOutputError) Error() string {
	return fmt.Sprintf(missingOutputErrorTemplateConstant, missingOutputError.Directory)
}

// Unwrap returns ErrMissingOutput so callers can use errors.Is.
func (missingOutputError *MissingOutputError) Unwrap() error {
	return ErrMissingOutput
}

// IOError reports a failure reading an artifact or writing the manifest.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

// Error returns the failed operation, the path, and the cause.
func (ioError *IOError) Error() string {
	return fmt.Sprintf(ioErrorTemplateConstant, ioError.Operation, ioError.Path, ioError.Err)
}

// Unwrap exposes the underlying cause.
func (ioError *IOError) Unwrap() error {
	return ioError.Err
}
