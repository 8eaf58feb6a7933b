// Package governance guards mutating ledger commands behind the governance.enforced flag.
package governance
