package anchors

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/aeon/internal/ledger"
	"github.com/temirov/aeon/internal/utils"
)

const (
	commandUseConstant              = "init"
	commandShortDescriptionConstant = "Ensure the well-known identity anchors exist"
	commandLongDescriptionConstant  = "init adds the well-known anchor phrases to identity.anchors when their keys are missing. It never duplicates a key and does not change the ledger version."
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the init cobra command.
type CommandBuilder struct {
	LoggerProvider LoggerProvider
	FileSystem     afero.Fs
	Anchors        []Anchor
}

// Build constructs the init command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	service := NewService(ledger.NewStore(builder.FileSystem), builder.Anchors, command.OutOrStdout(), builder.resolveLogger())
	_, ensureError := service.Ensure(builder.resolveLedgerPath(command))
	return ensureError
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
