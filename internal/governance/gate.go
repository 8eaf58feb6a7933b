package governance

import (
	"errors"
	"fmt"

	"github.com/temirov/aeon/internal/ledger"
)

const (
	governanceSectionKeyConstant     = "governance"
	enforcedFieldKeyConstant         = "enforced"
	notEnforcedMessageConstant       = "governance enforcement is disabled"
	governanceErrorTemplateConstant  = "refusing %s: governance.enforced is not true"
	governanceErrorFallbackOperation = "mutation"
)

// ErrNotEnforced is wrapped by every GovernanceError.
var ErrNotEnforced = errors.New(notEnforcedMessageConstant)

// GovernanceError reports a mutating command attempted while enforcement is disabled.
type GovernanceError struct {
	Operation string
}

// Error returns the refusal message shown to the user.
func (governanceError *GovernanceError) Error() string {
	operation := governanceError.Operation
	if len(operation) == 0 {
		operation = governanceErrorFallbackOperation
	}
	return fmt.Sprintf(governanceErrorTemplateConstant, operation)
}

// Unwrap returns ErrNotEnforced so callers can use errors.Is.
func (governanceError *GovernanceError) Unwrap() error {
	return ErrNotEnforced
}

// Gate inspects the ledger governance block before a mutation runs.
type Gate struct{}

// NewGate constructs a Gate.
func NewGate() Gate {
	return Gate{}
}

// Check returns the governance block when governance.enforced is the boolean true.
// Any other value, including a missing block or a truthy non-boolean, is refused.
func (Gate) Check(document *ledger.Document, operation string) (map[string]any, error) {
	governanceValue, present := document.Lookup(governanceSectionKeyConstant)
	if !present {
		return nil, &GovernanceError{Operation: operation}
	}
	governanceBlock, isObject := governanceValue.(map[string]any)
	if !isObject {
		return nil, &GovernanceError{Operation: operation}
	}
	enforced, isBoolean := governanceBlock[enforcedFieldKeyConstant].(bool)
	if !isBoolean || !enforced {
		return nil, &GovernanceError{Operation: operation}
	}
	return governanceBlock, nil
}
