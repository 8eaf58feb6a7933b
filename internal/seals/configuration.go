package seals

import "strings"

// DefaultAttribution is recorded as the sealing party when nothing else is configured.
const DefaultAttribution = "Elandros × Solin‑Kai"

// CommandConfiguration captures persistent settings for the seal command.
type CommandConfiguration struct {
	Attribution string `mapstructure:"attribution"`
}

// DefaultCommandConfiguration returns baseline configuration values for the seal command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Attribution: DefaultAttribution}
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Attribution = strings.TrimSpace(configuration.Attribution)
	if len(sanitized.Attribution) == 0 {
		sanitized.Attribution = DefaultAttribution
	}
	return sanitized
}
