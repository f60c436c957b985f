// Package app wires the server together and owns its long-lived resources.
//
// NewApplication performs the startup sequence:
//
//  1. load and validate configuration
//  2. initialize logging on stderr
//  3. open the catalog database
//  4. build the n8n client and probe the connection (failure is fatal)
//  5. log catalog statistics
//  6. register the tools with the MCP server
//
// Run serves until the transport ends, the context is cancelled or SIGINT or
// SIGTERM arrives. Close releases the server and the store exactly once, no
// matter which of these paths ends the process or whether startup failed
// halfway.
package app
