package config

// Config is the complete server configuration.
type Config struct {
	N8N      N8NConfig      `yaml:"n8n"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	MCP      MCPConfig      `yaml:"mcp"`
}

// N8NConfig locates the n8n instance. APIURL is the instance root without
// the /api/v1 suffix.
type N8NConfig struct {
	APIURL string `yaml:"apiUrl" validate:"required,url"`
	APIKey string `yaml:"apiKey" validate:"required"`
}

// DatabaseConfig locates the node and template catalog.
type DatabaseConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// MCPConfig selects the MCP transport.
type MCPConfig struct {
	Mode     string `yaml:"mode" validate:"oneof=stdio http"`
	HTTPAddr string `yaml:"httpAddr" validate:"required_if=Mode http,omitempty,hostname_port"`
}

// Transport modes.
const (
	ModeStdio = "stdio"
	ModeHTTP  = "http"
)
