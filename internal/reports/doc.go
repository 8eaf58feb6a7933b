// Package reports implements the build command.
//
// Build checks governance, composes the master book, field notes, and timeline from the
// ledger, renders them into the export directory, and advances the minor version.
// Rendering falls back to Markdown whenever PDF output is unavailable.
package reports
