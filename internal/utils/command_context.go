package utils

import "context"

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	ledgerPathContextKeyConstant            = commandContextKey("ledgerPath")
)

type commandContextKey string

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the configuration file path to the provided context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	return accessor.withString(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path from the provided context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	return accessor.lookupString(executionContext, configurationFilePathContextKeyConstant)
}

// WithLedgerPath attaches the resolved ledger document path to the provided context.
func (accessor CommandContextAccessor) WithLedgerPath(parentContext context.Context, ledgerPath string) context.Context {
	return accessor.withString(parentContext, ledgerPathContextKeyConstant, ledgerPath)
}

// LedgerPath extracts the ledger document path from the provided context.
func (accessor CommandContextAccessor) LedgerPath(executionContext context.Context) (string, bool) {
	ledgerPath, ledgerPathAvailable := accessor.lookupString(executionContext, ledgerPathContextKeyConstant)
	if !ledgerPathAvailable || len(ledgerPath) == 0 {
		return "", false
	}
	return ledgerPath, true
}

func (accessor CommandContextAccessor) withString(parentContext context.Context, key commandContextKey, value string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, key, value)
}

func (accessor CommandContextAccessor) lookupString(executionContext context.Context, key commandContextKey) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	value, valueAvailable := executionContext.Value(key).(string)
	if !valueAvailable {
		return "", false
	}
	return value, true
}
