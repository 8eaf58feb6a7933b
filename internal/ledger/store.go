package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"strings"

	"github.com/spf13/afero"

	"github.com/temirov/aeon/internal/filesystem"
)

const (
	jsonIndentConstant = "  "
)

// Mutation changes a loaded document in memory. Returning an error prevents the save.
type Mutation func(document *Document) error

// Store reads and writes ledger documents through the filesystem boundary.
type Store struct {
	fileSystem afero.Fs
	writer     filesystem.AtomicWriter
}

// NewStore constructs a Store. A nil filesystem selects the operating system filesystem.
func NewStore(fileSystem afero.Fs) *Store {
	resolvedFileSystem := filesystem.Resolve(fileSystem)
	return &Store{
		fileSystem: resolvedFileSystem,
		writer:     filesystem.NewAtomicWriter(resolvedFileSystem),
	}
}

// Load parses the ledger at ledgerPath and resolves its location.
func (store *Store) Load(ledgerPath string) (*Document, error) {
	if len(strings.TrimSpace(ledgerPath)) == 0 {
		return nil, newConfigError(ledgerPath, reasonLedgerUnreadableConstant, ErrLedgerPathRequired)
	}

	content, readError := afero.ReadFile(store.fileSystem, ledgerPath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return nil, newConfigError(ledgerPath, reasonLedgerUnreadableConstant, ErrLedgerNotFound)
		}
		return nil, newConfigError(ledgerPath, reasonLedgerUnreadableConstant, readError)
	}

	root, decodeError := decodeRoot(ledgerPath, content)
	if decodeError != nil {
		return nil, decodeError
	}

	document, documentError := NewDocument(root)
	if documentError != nil {
		var configError *ConfigError
		if errors.As(documentError, &configError) {
			configError.Path = ledgerPath
		}
		return nil, documentError
	}
	document.sourcePath = ledgerPath
	return document, nil
}

// Save writes the document to ledgerPath in the shape it was loaded with.
func (store *Store) Save(ledgerPath string, document *Document) error {
	encoded, encodeError := Encode(document)
	if encodeError != nil {
		return newConfigError(ledgerPath, reasonLedgerEncodeConstant, encodeError)
	}
	if writeError := store.writer.WriteFile(ledgerPath, encoded, filesystem.DefaultFilePermissions); writeError != nil {
		return newConfigError(ledgerPath, reasonLedgerWriteConstant, writeError)
	}
	return nil
}

// Update loads the ledger, applies mutation, and saves the result. Nothing is written when
// the mutation fails, so a rejected command leaves the ledger file untouched.
func (store *Store) Update(ledgerPath string, mutation Mutation) (*Document, error) {
	if mutation == nil {
		return nil, errors.New(mutationRequiredMessageConstant)
	}
	document, loadError := store.Load(ledgerPath)
	if loadError != nil {
		return nil, loadError
	}
	if mutationError := mutation(document); mutationError != nil {
		return document, mutationError
	}
	if saveError := store.Save(ledgerPath, document); saveError != nil {
		return document, saveError
	}
	return document, nil
}

// Encode serializes the document with two-space indentation and a trailing newline.
func Encode(document *Document) ([]byte, error) {
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", jsonIndentConstant)
	if encodeError := encoder.Encode(document.payload()); encodeError != nil {
		return nil, encodeError
	}
	return buffer.Bytes(), nil
}

func decodeRoot(ledgerPath string, content []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.UseNumber()

	var decoded any
	if decodeError := decoder.Decode(&decoded); decodeError != nil {
		return nil, newConfigError(ledgerPath, reasonLedgerMalformedConstant, decodeError)
	}
	var trailing any
	if trailingError := decoder.Decode(&trailing); !errors.Is(trailingError, io.EOF) {
		return nil, newConfigError(ledgerPath, reasonTrailingContentConstant, trailingError)
	}

	root, isObject := decoded.(map[string]any)
	if !isObject {
		return nil, newConfigError(ledgerPath, reasonLedgerNotObjectConstant, nil)
	}
	return root, nil
}
