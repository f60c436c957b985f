// Package config loads the server configuration.
//
// Values come from three layers, later layers winning:
//
//  1. built-in defaults
//  2. an optional YAML file given with --config
//  3. environment variables (N8N_API_URL, N8N_API_KEY, DATABASE_PATH,
//     LOG_LEVEL, MCP_MODE, MCP_HTTP_ADDR)
//
// The merged result is validated once. Every problem, whether an unreadable
// file, malformed YAML or a missing required value, is reported as a
// ConfigurationError so callers can tell configuration mistakes apart from
// runtime failures.
//
// Example file:
//
//	n8n:
//	  apiUrl: https://n8n.example.com
//	  apiKey: n8n_api_...
//	database:
//	  path: ./data/nodes.db
//	logging:
//	  level: info
//	mcp:
//	  mode: stdio
//	  httpAddr: 127.0.0.1:3000
package config
