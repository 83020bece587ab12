package server

import "strings"

// Config holds configuration for the emulator HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// APIKeys is a comma separated list of bearer tokens accepted by the server.
	APIKeys string `mapstructure:"api_keys" default:""`
	// Backend selects where values are kept (memory, sql).
	Backend string `mapstructure:"backend" default:"memory"`
}

const (
	BackendMemory = "memory"
	BackendSQL    = "sql"
)

// IsValidBackend checks if the configured backend is valid.
func (c Config) IsValidBackend() bool {
	switch c.Backend {
	case BackendMemory, BackendSQL:
		return true
	default:
		return false
	}
}

// Keys returns the accepted API keys with blanks removed.
func (c Config) Keys() []string {
	var keys []string
	for _, k := range strings.Split(c.APIKeys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
