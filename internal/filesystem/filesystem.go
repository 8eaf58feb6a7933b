package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	temporaryFilePatternTemplateConstant = ".%s.*.tmp"
	temporaryCreateErrorTemplateConstant = "failed to create temporary file for %s: %w"
	temporaryWriteErrorTemplateConstant  = "failed to write %s: %w"
	temporarySyncErrorTemplateConstant   = "failed to sync %s: %w"
	temporaryCloseErrorTemplateConstant  = "failed to close temporary file for %s: %w"
	permissionsErrorTemplateConstant     = "failed to set permissions on %s: %w"
	renameErrorTemplateConstant          = "failed to move %s into place: %w"
	directoryCreateErrorTemplateConstant = "failed to create directory %s: %w"

	// DefaultFilePermissions is applied to ledger documents, reports, and manifests.
	DefaultFilePermissions os.FileMode = 0o644
	// DefaultDirectoryPermissions is applied to created export directories.
	DefaultDirectoryPermissions os.FileMode = 0o755
)

// NewOSFileSystem returns the operating system backed filesystem.
func NewOSFileSystem() afero.Fs {
	return afero.NewOsFs()
}

// Resolve substitutes the operating system filesystem for a nil filesystem.
func Resolve(fileSystem afero.Fs) afero.Fs {
	if fileSystem == nil {
		return NewOSFileSystem()
	}
	return fileSystem
}

// AtomicWriter persists whole files through a temporary sibling followed by a rename,
// so readers observe either the previous content or the complete new content.
type AtomicWriter struct {
	fileSystem afero.Fs
}

// NewAtomicWriter constructs an AtomicWriter over the provided filesystem.
func NewAtomicWriter(fileSystem afero.Fs) AtomicWriter {
	return AtomicWriter{fileSystem: Resolve(fileSystem)}
}

// WriteFile replaces targetPath with content.
func (writer AtomicWriter) WriteFile(targetPath string, content []byte, permissions os.FileMode) error {
	temporaryFile, createError := afero.TempFile(writer.fileSystem, filepath.Dir(targetPath), fmt.Sprintf(temporaryFilePatternTemplateConstant, filepath.Base(targetPath)))
	if createError != nil {
		return fmt.Errorf(temporaryCreateErrorTemplateConstant, targetPath, createError)
	}
	temporaryPath := temporaryFile.Name()

	if _, writeError := temporaryFile.Write(content); writeError != nil {
		_ = temporaryFile.Close()
		_ = writer.fileSystem.Remove(temporaryPath)
		return fmt.Errorf(temporaryWriteErrorTemplateConstant, targetPath, writeError)
	}

	if syncError := temporaryFile.Sync(); syncError != nil {
		_ = temporaryFile.Close()
		_ = writer.fileSystem.Remove(temporaryPath)
		return fmt.Errorf(temporarySyncErrorTemplateConstant, targetPath, syncError)
	}

	if closeError := temporaryFile.Close(); closeError != nil {
		_ = writer.fileSystem.Remove(temporaryPath)
		return fmt.Errorf(temporaryCloseErrorTemplateConstant, targetPath, closeError)
	}

	if chmodError := writer.fileSystem.Chmod(temporaryPath, permissions); chmodError != nil {
		_ = writer.fileSystem.Remove(temporaryPath)
		return fmt.Errorf(permissionsErrorTemplateConstant, targetPath, chmodError)
	}

	if renameError := writer.fileSystem.Rename(temporaryPath, targetPath); renameError != nil {
		_ = writer.fileSystem.Remove(temporaryPath)
		return fmt.Errorf(renameErrorTemplateConstant, targetPath, renameError)
	}

	return nil
}

// EnsureDirectory creates directoryPath and any missing parents.
func EnsureDirectory(fileSystem afero.Fs, directoryPath string) error {
	if mkdirError := Resolve(fileSystem).MkdirAll(directoryPath, DefaultDirectoryPermissions); mkdirError != nil {
		return fmt.Errorf(directoryCreateErrorTemplateConstant, directoryPath, mkdirError)
	}
	return nil
}
