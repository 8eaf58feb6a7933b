// Package cli constructs the aeon command-line interface, wiring the Cobra command
// hierarchy, the configuration loader, and structured logging. The resolved ledger
// path travels to every subcommand through the command context.
package cli
