package reports

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/aeon/internal/ledger"
	"github.com/temirov/aeon/internal/render"
	"github.com/temirov/aeon/internal/utils"
)

const (
	commandUseConstant               = "build"
	commandShortDescriptionConstant  = "Render the master book, field notes, and timeline"
	commandLongDescriptionConstant   = "build requires governance.enforced to be true. It renders three reports into the export directory as PDF, or as Markdown when PDF output is unavailable, and then advances the ledger's minor version."
	flagPDFNameConstant              = "pdf"
	flagPDFDescriptionConstant       = "Attempt PDF output before falling back to Markdown"
	flagExportDirNameConstant        = "export-dir"
	flagExportDirDescriptionConstant = "Export directory used when the ledger does not set exports.dir"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current build configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the build cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            afero.Fs
	Clock                 utils.Clock
	Renderer              DocumentRenderer
}

// Build constructs the build command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	defaults := builder.resolveConfiguration()
	command.Flags().Bool(flagPDFNameConstant, defaults.PDF, flagPDFDescriptionConstant)
	command.Flags().String(flagExportDirNameConstant, defaults.ExportDirectory, flagExportDirDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	if command.Flags().Changed(flagPDFNameConstant) {
		configuration.PDF, _ = command.Flags().GetBool(flagPDFNameConstant)
	}
	if command.Flags().Changed(flagExportDirNameConstant) {
		configuration.ExportDirectory, _ = command.Flags().GetString(flagExportDirNameConstant)
		configuration = configuration.sanitize()
	}

	logger := builder.resolveLogger()
	service := NewService(
		ledger.NewStore(builder.FileSystem),
		builder.resolveRenderer(configuration, logger),
		builder.FileSystem,
		builder.Clock,
		command.OutOrStdout(),
		logger,
	)

	_, buildError := service.Build(Options{
		LedgerPath:      builder.resolveLedgerPath(command),
		ExportDirectory: configuration.ExportDirectory,
	})
	return buildError
}

func (builder *CommandBuilder) resolveRenderer(configuration CommandConfiguration, logger *zap.Logger) DocumentRenderer {
	if builder.Renderer != nil {
		return builder.Renderer
	}
	var backend render.PaginatedBackend
	if configuration.PDF {
		backend = render.NewPDFBackend()
	}
	return render.NewRenderer(builder.FileSystem, backend, logger)
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
