// Package utils exposes reusable helpers consumed by the aeon commands.
//
// It houses the Viper-backed ConfigurationLoader, the zap LoggerFactory, the
// command context accessor that carries the selected ledger path, and the Clock
// abstraction used to timestamp seals, builds, and audits.
package utils
