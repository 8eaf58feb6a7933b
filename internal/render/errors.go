package render

import (
	"errors"
	"fmt"
)

const (
	backendUnavailableMessageConstant  = "paginated backend unavailable"
	renderBackendErrorTemplateConstant = "paginated rendering of %s failed: %v"
)

// ErrBackendUnavailable reports a renderer constructed without a paginated backend.
var ErrBackendUnavailable = errors.New(backendUnavailableMessageConstant)

// RenderBackendError describes a failed paginated attempt. The renderer recovers from it
// by switching to plain text.
type RenderBackendError struct {
	Path string
	Err  error
}

// Error describes the failed attempt.
func (renderBackendError *RenderBackendError) Error() string {
	return fmt.Sprintf(renderBackendErrorTemplateConstant, renderBackendError.Path, renderBackendError.Err)
}

// Unwrap exposes the backend failure.
func (renderBackendError *RenderBackendError) Unwrap() error {
	return renderBackendError.Err
}
