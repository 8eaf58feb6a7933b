package integrity

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/temirov/aeon/internal/filesystem"
	"github.com/temirov/aeon/internal/utils"
)

const (
	// ManifestFileName is the audit manifest written inside the export directory.
	ManifestFileName = "AEON_AUDIT.json"

	walkOperationConstant   = "walk"
	statOperationConstant   = "stat"
	encodeOperationConstant = "encode manifest"
	writeOperationConstant  = "write manifest"
	manifestIndentConstant  = "  "
)

// ManifestEntry records the digest of one artifact.
type ManifestEntry struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
}

// Manifest summarizes the export directory at one point in time.
type Manifest struct {
	Time    string          `json:"time"`
	Version string          `json:"version"`
	Files   []ManifestEntry `json:"files"`
}

// ManifestBuilder walks export directories and persists manifests.
type ManifestBuilder struct {
	fileSystem afero.Fs
	hasher     Hasher
	writer     filesystem.AtomicWriter
	clock      utils.Clock
}

// NewManifestBuilder constructs a ManifestBuilder. Nil collaborators select production defaults.
func NewManifestBuilder(fileSystem afero.Fs, clock utils.Clock) *ManifestBuilder {
	resolvedFileSystem := filesystem.Resolve(fileSystem)
	return &ManifestBuilder{
		fileSystem: resolvedFileSystem,
		hasher:     NewHasher(resolvedFileSystem),
		writer:     filesystem.NewAtomicWriter(resolvedFileSystem),
		clock:      utils.ResolveClock(clock),
	}
}

// Build hashes every file below exportDirectory. It fails with MissingOutputError when the
// directory is absent and with IOError when any file cannot be read.
func (builder *ManifestBuilder) Build(exportDirectory string, ledgerVersion string) (Manifest, error) {
	directoryInformation, statError := builder.fileSystem.Stat(exportDirectory)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return Manifest{}, &MissingOutputError{Directory: exportDirectory}
		}
		return Manifest{}, &IOError{Operation: statOperationConstant, Path: exportDirectory, Err: statError}
	}
	if !directoryInformation.IsDir() {
		return Manifest{}, &MissingOutputError{Directory: exportDirectory}
	}

	manifest := Manifest{
		Time:    utils.FormatUTCTimestamp(builder.clock.Now()),
		Version: ledgerVersion,
		Files:   make([]ManifestEntry, 0),
	}

	walkError := afero.Walk(builder.fileSystem, exportDirectory, func(walkedPath string, information os.FileInfo, visitError error) error {
		if visitError != nil {
			return &IOError{Operation: walkOperationConstant, Path: walkedPath, Err: visitError}
		}
		isFile, resolveError := builder.isFile(walkedPath, information)
		if resolveError != nil {
			return resolveError
		}
		if !isFile {
			return nil
		}
		digest, hashError := builder.hasher.HashFile(walkedPath)
		if hashError != nil {
			return hashError
		}
		manifest.Files = append(manifest.Files, ManifestEntry{Path: filepath.ToSlash(walkedPath), SHA256: digest})
		return nil
	})
	if walkError != nil {
		return Manifest{}, walkError
	}

	return manifest, nil
}

// Write stores the manifest as exportDirectory/AEON_AUDIT.json, replacing any previous manifest.
func (builder *ManifestBuilder) Write(exportDirectory string, manifest Manifest) (string, error) {
	manifestPath := filepath.Join(exportDirectory, ManifestFileName)

	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", manifestIndentConstant)
	if encodeError := encoder.Encode(manifest); encodeError != nil {
		return "", &IOError{Operation: encodeOperationConstant, Path: manifestPath, Err: encodeError}
	}

	if writeError := builder.writer.WriteFile(manifestPath, buffer.Bytes(), filesystem.DefaultFilePermissions); writeError != nil {
		return "", &IOError{Operation: writeOperationConstant, Path: manifestPath, Err: writeError}
	}
	return manifestPath, nil
}

// isFile reports whether the walked entry should be hashed. Symbolic links are followed
// when they point at files; links to directories are skipped, matching an unfollowed walk.
func (builder *ManifestBuilder) isFile(walkedPath string, information os.FileInfo) (bool, error) {
	if information.IsDir() {
		return false, nil
	}
	if information.Mode()&os.ModeSymlink == 0 {
		return true, nil
	}
	targetInformation, statError := builder.fileSystem.Stat(walkedPath)
	if statError != nil {
		return false, &IOError{Operation: statOperationConstant, Path: walkedPath, Err: statError}
	}
	return !targetInformation.IsDir(), nil
}
