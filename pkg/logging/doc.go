// Package logging provides the structured, subsystem-tagged logger used across
// n8n-mcp.
//
// It is a thin layer over Go's log/slog. Every entry carries a subsystem
// attribute so that output can be filtered per component:
//
//	logging.Init(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Bootstrap", "Opening database at %s", path)
//	logging.Debug("N8N", "GET %s", url)
//	logging.Warn("Creator", "Template %d has unparseable workflow JSON", id)
//	logging.Error("Store", err, "Failed to apply schema")
//
// # Subsystems
//
//   - **Bootstrap**: application initialization, startup probe, shutdown
//   - **Config**: configuration loading and validation
//   - **Store**: lookup database access and seeding
//   - **N8N**: remote workflow API calls
//   - **Creator**: template matching and workflow assembly
//   - **Tools**: tool dispatch and failure rendering
//   - **Server**: MCP transport lifecycle
//
// # Output
//
// When the MCP server runs over stdio, stdout is the protocol channel, so the
// logger must be initialized with os.Stderr. Entries logged before Init are
// written to stderr in a plain format.
package logging
