package audit

import (
	"strings"

	"github.com/temirov/aeon/internal/ledger"
)

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	ExportDirectory string `mapstructure:"export_dir"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{ExportDirectory: ledger.DefaultExportDirectory}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.ExportDirectory = strings.TrimSpace(configuration.ExportDirectory)
	if len(sanitized.ExportDirectory) == 0 {
		sanitized.ExportDirectory = ledger.DefaultExportDirectory
	}
	return sanitized
}
