// Package anchors implements the init command, which makes sure the ledger identity
// carries the well-known anchor phrases.
//
// Anchors are keyed; running init repeatedly never duplicates a key and never
// changes the ledger version.
package anchors
