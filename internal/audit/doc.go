// Package audit implements the audit command, which records a SHA-256 manifest of every
// artifact in the export directory.
//
// It exposes CommandBuilder for wiring the audit Cobra command and Service for running an
// audit programmatically. Audits never modify the ledger and do not require governance.
package audit
