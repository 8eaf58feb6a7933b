// Package ledger loads, mutates, and persists the AEON ledger document.
//
// The ledger is a JSON object that is either wrapped under the vault_bridge key
// or stored bare at the document root. Store detects the shape once at load,
// records it as a Location, and writes the document back in the same shape.
// Unknown fields and numeric values survive a load/save round trip unchanged.
// The version field is only changed through BumpVersion.
package ledger
