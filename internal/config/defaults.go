package config

import "path/filepath"

const (
	DefaultLogLevel = "info"
	DefaultMode     = ModeStdio
	DefaultHTTPAddr = "127.0.0.1:3000"
)

// DefaultDatabasePath is relative to the working directory.
var DefaultDatabasePath = filepath.Join("data", "nodes.db")

// GetDefaultConfig returns the configuration used before any file or
// environment variable is applied.
func GetDefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{Path: DefaultDatabasePath},
		Logging:  LoggingConfig{Level: DefaultLogLevel},
		MCP: MCPConfig{
			Mode:     DefaultMode,
			HTTPAddr: DefaultHTTPAddr,
		},
	}
}
