package ledger

import (
	"errors"
	"fmt"
)

const (
	configErrorTemplateConstant       = "ledger %s: %s: %v"
	configErrorReasonTemplateConstant = "ledger %s: %s"
	unknownLedgerSourceConstant       = "<memory>"
	reasonLedgerUnreadableConstant    = "unable to read ledger"
	reasonLedgerMalformedConstant     = "ledger is not valid JSON"
	reasonLedgerNotObjectConstant     = "ledger root must be a JSON object"
	reasonWrapperNotObjectTemplate    = "%s block must be a JSON object"
	reasonFieldNotObjectTemplate      = "field %s must be a JSON object"
	reasonFieldNotListTemplate        = "field %s must be a JSON array"
	reasonFieldDecodeTemplate         = "field %s has an unexpected shape"
	reasonVersionMalformedTemplate    = "version %q is not in major.minor form"
	reasonVersionTypeTemplate         = "version must be a string, found %T"
	reasonLedgerEncodeConstant        = "unable to encode ledger"
	reasonLedgerWriteConstant         = "unable to write ledger"
	reasonTrailingContentConstant     = "unexpected content after the ledger object"
	ledgerMissingMessageConstant      = "ledger not found"
	ledgerPathRequiredMessageConstant = "ledger path must be provided"
	mutationRequiredMessageConstant   = "ledger mutation must be provided"
)

var (
	// ErrLedgerNotFound indicates the ledger path does not exist.
	ErrLedgerNotFound = errors.New(ledgerMissingMessageConstant)
	// ErrLedgerPathRequired indicates an empty ledger path.
	ErrLedgerPathRequired = errors.New(ledgerPathRequiredMessageConstant)
)

// ConfigError reports a ledger that is missing, unreadable, malformed, or structurally invalid.
type ConfigError struct {
	Path   string
	Reason string
	Err    error
}

// Error returns the human-readable description of the ledger failure.
func (configError *ConfigError) Error() string {
	source := configError.Path
	if len(source) == 0 {
		source = unknownLedgerSourceConstant
	}
	if configError.Err == nil {
		return fmt.Sprintf(configErrorReasonTemplateConstant, source, configError.Reason)
	}
	return fmt.Sprintf(configErrorTemplateConstant, source, configError.Reason, configError.Err)
}

// Unwrap exposes the underlying cause.
func (configError *ConfigError) Unwrap() error {
	return configError.Err
}

func newConfigError(path string, reason string, cause error) *ConfigError {
	return &ConfigError{Path: path, Reason: reason, Err: cause}
}
