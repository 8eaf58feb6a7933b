package reports

import (
	"strings"

	"github.com/temirov/aeon/internal/ledger"
)

// CommandConfiguration captures persistent settings for the build command.
type CommandConfiguration struct {
	PDF             bool   `mapstructure:"pdf"`
	ExportDirectory string `mapstructure:"export_dir"`
}

// DefaultCommandConfiguration returns baseline configuration values for the build command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		PDF:             true,
		ExportDirectory: ledger.DefaultExportDirectory,
	}
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.ExportDirectory = strings.TrimSpace(configuration.ExportDirectory)
	if len(sanitized.ExportDirectory) == 0 {
		sanitized.ExportDirectory = ledger.DefaultExportDirectory
	}
	return sanitized
}
