package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/spf13/afero"

	"github.com/temirov/aeon/internal/filesystem"
)

const (
	// ChunkSize is the number of bytes read per iteration while hashing.
	ChunkSize = 8192

	hashOpenOperationConstant = "open"
	hashReadOperationConstant = "hash"
)

// Hasher produces SHA-256 digests of file contents.
type Hasher struct {
	fileSystem afero.Fs
}

// NewHasher constructs a Hasher. A nil filesystem selects the operating system filesystem.
func NewHasher(fileSystem afero.Fs) Hasher {
	return Hasher{fileSystem: filesystem.Resolve(fileSystem)}
}

// HashFile returns the lowercase hexadecimal SHA-256 digest of the file at filePath.
// Memory use does not depend on the file size.
func (hasher Hasher) HashFile(filePath string) (string, error) {
	file, openError := hasher.fileSystem.Open(filePath)
	if openError != nil {
		return "", &IOError{Operation: hashOpenOperationConstant, Path: filePath, Err: openError}
	}
	defer file.Close()

	return HashReader(filePath, file)
}

// HashReader digests everything readable from reader. label identifies the source in errors.
func HashReader(label string, reader io.Reader) (string, error) {
	digest := sha256.New()
	if _, copyError := io.CopyBuffer(onlyWriter{digest}, onlyReader{reader}, make([]byte, ChunkSize)); copyError != nil {
		return "", &IOError{Operation: hashReadOperationConstant, Path: label, Err: copyError}
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

// onlyReader and onlyWriter hide ReaderFrom/WriterTo so io.CopyBuffer uses the fixed buffer.
type onlyReader struct {
	io.Reader
}

type onlyWriter struct {
	io.Writer
}
