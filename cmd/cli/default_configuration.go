package cli

import (
	_ "embed"

	"github.com/temirov/aeon/internal/audit"
	"github.com/temirov/aeon/internal/ledger"
	"github.com/temirov/aeon/internal/reports"
	"github.com/temirov/aeon/internal/seals"
	"github.com/temirov/aeon/internal/utils"
)

//go:embed default_config.yaml
var embeddedDefaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns a copy of the embedded default configuration and its type.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte(nil), embeddedDefaultConfigurationContent...), configurationTypeConstant
}

// DefaultApplicationConfiguration mirrors the embedded defaults in typed form.
func DefaultApplicationConfiguration() ApplicationConfiguration {
	return ApplicationConfiguration{
		Common: ApplicationCommonConfiguration{
			LogLevel:  string(utils.LogLevelWarn),
			LogFormat: string(utils.LogFormatConsole),
		},
		Tools: ApplicationToolsConfiguration{
			Ledger: LedgerConfiguration{Path: ledger.DefaultPath},
			Build:  reports.DefaultCommandConfiguration(),
			Seal:   seals.DefaultCommandConfiguration(),
		},
	}
}

// defaultConfigurationValues registers every key with viper so environment overrides apply
// even when no configuration file mentions them.
func defaultConfigurationValues() map[string]any {
	defaults := DefaultApplicationConfiguration()
	return map[string]any{
		commonLogLevelConfigKeyConstant:       defaults.Common.LogLevel,
		commonLogFormatConfigKeyConstant:      defaults.Common.LogFormat,
		ledgerPathConfigKeyConstant:           defaults.Tools.Ledger.Path,
		buildPDFConfigKeyConstant:             defaults.Tools.Build.PDF,
		buildExportDirectoryConfigKeyConstant: defaults.Tools.Build.ExportDirectory,
		sealAttributionConfigKeyConstant:      defaults.Tools.Seal.Attribution,
	}
}

func (configuration ApplicationConfiguration) auditConfiguration() audit.CommandConfiguration {
	return audit.CommandConfiguration{ExportDirectory: configuration.Tools.Build.ExportDirectory}
}
