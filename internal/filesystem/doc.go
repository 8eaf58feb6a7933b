// Package filesystem provides the filesystem boundary shared by the ledger store,
// document renderer, and integrity auditor. Production code runs on the
// operating system filesystem; tests substitute an in-memory afero filesystem.
package filesystem
