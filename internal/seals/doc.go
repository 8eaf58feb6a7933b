// Package seals implements the seal command, which appends a named seal to the ledger's
// seal log and codex and advances the minor version.
package seals
