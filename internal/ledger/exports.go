package ledger

import "strings"

const (
	// DefaultPath is the ledger document used when no path is configured.
	DefaultPath = "AEON.json"
	// DefaultExportDirectory receives build artifacts when neither the ledger nor the configuration names one.
	DefaultExportDirectory = "dist"

	exportsFieldConstant = "exports"
)

// DefaultDocumentNames lists the report file names in build order: master book, field notes, timeline.
func DefaultDocumentNames() []string {
	return []string{
		"Vault_Project_Master_Book.pdf",
		"Vault_Project_Master_Codex_FieldNotes.pdf",
		"Vault_Project_Timeline.pdf",
	}
}

// Exports is the exports section of the ledger.
type Exports struct {
	Directory string   `mapstructure:"dir"`
	Documents []string `mapstructure:"pdf"`
}

// Exports decodes the exports section. An absent section yields the zero value.
func (document *Document) Exports() (Exports, error) {
	var exports Exports
	if decodeError := document.Decode(&exports, exportsFieldConstant); decodeError != nil {
		return Exports{}, decodeError
	}
	return exports, nil
}

// ExportDirectory returns the ledger's directory, then fallback, then DefaultExportDirectory.
func (exports Exports) ExportDirectory(fallback string) string {
	if trimmed := strings.TrimSpace(exports.Directory); len(trimmed) > 0 {
		return trimmed
	}
	if trimmed := strings.TrimSpace(fallback); len(trimmed) > 0 {
		return trimmed
	}
	return DefaultExportDirectory
}

// DocumentNames returns one file name per report. Missing or blank entries take the default
// for their position and entries beyond the known reports are ignored.
func (exports Exports) DocumentNames() []string {
	names := DefaultDocumentNames()
	for index := range names {
		if index >= len(exports.Documents) {
			break
		}
		if trimmed := strings.TrimSpace(exports.Documents[index]); len(trimmed) > 0 {
			names[index] = trimmed
		}
	}
	return names
}
