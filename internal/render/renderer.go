package render

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/aeon/internal/filesystem"
)

const (
	pdfExtensionConstant      = ".pdf"
	markdownExtensionConstant = ".md"
	plainTitlePrefixConstant  = "# "
	plainSeparatorConstant    = "\n\n"
	plainTerminatorConstant   = "\n"

	paginatedRenderedMessageConstant = "rendered paginated document"
	plainFallbackMessageConstant     = "paginated rendering unavailable, writing plain text"
	plainRenderedMessageConstant     = "rendered plain document"
	logFieldPathConstant             = "path"
	logFieldTitleConstant            = "title"
)

// Renderer writes report documents through the filesystem boundary.
type Renderer struct {
	writer  filesystem.AtomicWriter
	backend PaginatedBackend
	logger  *zap.Logger
}

// NewRenderer constructs a Renderer. A nil backend disables paginated output;
// a nil logger discards diagnostics.
func NewRenderer(fileSystem afero.Fs, backend PaginatedBackend, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		writer:  filesystem.NewAtomicWriter(fileSystem),
		backend: backend,
		logger:  logger,
	}
}

// Render writes the document and returns the path that was actually produced:
// outputPath for a paginated document, otherwise the plain text path.
func (renderer *Renderer) Render(outputPath string, title string, body string) (string, error) {
	if IsPaginatedPath(outputPath) {
		backendError := renderer.renderPaginated(outputPath, title, body)
		if backendError == nil {
			renderer.logger.Debug(paginatedRenderedMessageConstant, zap.String(logFieldPathConstant, outputPath), zap.String(logFieldTitleConstant, title))
			return outputPath, nil
		}
		renderer.logger.Debug(plainFallbackMessageConstant, zap.String(logFieldPathConstant, outputPath), zap.Error(backendError))
	}

	plainPath := PlainPath(outputPath)
	if writeError := renderer.writer.WriteFile(plainPath, []byte(PlainContent(title, body)), filesystem.DefaultFilePermissions); writeError != nil {
		return "", writeError
	}
	renderer.logger.Debug(plainRenderedMessageConstant, zap.String(logFieldPathConstant, plainPath), zap.String(logFieldTitleConstant, title))
	return plainPath, nil
}

// renderPaginated produces the whole document in memory before anything touches the target path.
func (renderer *Renderer) renderPaginated(outputPath string, title string, body string) *RenderBackendError {
	if renderer.backend == nil {
		return &RenderBackendError{Path: outputPath, Err: ErrBackendUnavailable}
	}

	buffer := &bytes.Buffer{}
	if layoutError := renderer.backend.Render(buffer, title, WrapLines(body, LineWidth)); layoutError != nil {
		return &RenderBackendError{Path: outputPath, Err: layoutError}
	}
	if writeError := renderer.writer.WriteFile(outputPath, buffer.Bytes(), filesystem.DefaultFilePermissions); writeError != nil {
		return &RenderBackendError{Path: outputPath, Err: writeError}
	}
	return nil
}

// IsPaginatedPath reports whether outputPath requests a PDF document.
func IsPaginatedPath(outputPath string) bool {
	return strings.EqualFold(filepath.Ext(outputPath), pdfExtensionConstant)
}

// PlainPath swaps a PDF extension for Markdown and leaves other paths untouched.
func PlainPath(outputPath string) string {
	if !IsPaginatedPath(outputPath) {
		return outputPath
	}
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + markdownExtensionConstant
}

// PlainContent formats the plain text rendition of a document.
func PlainContent(title string, body string) string {
	return plainTitlePrefixConstant + title + plainSeparatorConstant + body + plainTerminatorConstant
}
