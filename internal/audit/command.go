package audit

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/aeon/internal/integrity"
	"github.com/temirov/aeon/internal/ledger"
	"github.com/temirov/aeon/internal/utils"
)

const (
	commandNameConstant              = "audit"
	commandShortDescriptionConstant  = "Write a SHA-256 manifest of the export directory"
	commandLongDescriptionConstant   = "audit hashes every file below the export directory and writes AEON_AUDIT.json there. It fails when the export directory is missing and never modifies the ledger."
	flagExportDirNameConstant        = "export-dir"
	flagExportDirDescriptionConstant = "Export directory used when the ledger does not set exports.dir"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current audit configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            afero.Fs
	Clock                 utils.Clock
	ManifestWriter        ManifestWriter
}

// Build constructs the cobra command for export audits.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(flagExportDirNameConstant, builder.resolveConfiguration().ExportDirectory, flagExportDirDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	if command.Flags().Changed(flagExportDirNameConstant) {
		configuration.ExportDirectory, _ = command.Flags().GetString(flagExportDirNameConstant)
		configuration = configuration.sanitize()
	}

	service := NewService(ledger.NewStore(builder.FileSystem), builder.resolveManifestWriter(), command.OutOrStdout(), builder.resolveLogger())
	_, runError := service.Run(Options{
		LedgerPath:      builder.resolveLedgerPath(command),
		ExportDirectory: configuration.ExportDirectory,
	})
	return runError
}

func (builder *CommandBuilder) resolveManifestWriter() ManifestWriter {
	if builder.ManifestWriter != nil {
		return builder.ManifestWriter
	}
	return integrity.NewManifestBuilder(builder.FileSystem, builder.Clock)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLedgerPath(command *cobra.Command) string {
	ledgerPath, available := utils.NewCommandContextAccessor().LedgerPath(command.Context())
	if !available {
		return ledger.DefaultPath
	}
	return ledgerPath
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
