package seals

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/aeon/internal/ledger"
	"github.com/temirov/aeon/internal/utils"
)

const (
	commandUseConstant                 = "seal NAME"
	commandShortDescriptionConstant    = "Record a named seal and advance the version"
	commandLongDescriptionConstant     = "seal requires governance.enforced to be true. It appends the seal to seals_log with a UTC timestamp and attribution, adds the name to codex.seals, and advances the ledger's minor version."
	flagAttributionNameConstant        = "attribution"
	flagAttributionDescriptionConstant = "Name recorded as the sealing party"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current seal configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the seal cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            afero.Fs
	Clock                 utils.Clock
}

// Build constructs the seal command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(flagAttributionNameConstant, builder.resolveConfiguration().Attribution, flagAttributionDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	attribution := builder.resolveConfiguration().Attribution
	if command.Flags().Changed(flagAttributionNameConstant) {
		attribution, _ = command.Flags().GetString(flagAttributionNameConstant)
	}

	service := NewService(ledger.NewStore(builder.FileSystem), builder.Clock, command.OutOrStdout(), builder.resolveLogger())
	_, sealError := service.Seal(Options{
		LedgerPath:  builder.resolveLedgerPath(command),
		Name:        arguments[0],
		Attribution: attribution,
	})
	return sealError
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
