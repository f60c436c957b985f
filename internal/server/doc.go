// Package server exposes tool providers over the Model Context Protocol.
//
// Tool metadata from each api.ToolProvider is converted into mcp-go tool
// definitions: arguments become the JSON input schema, output fields become
// the output schema and the read-only and destructive flags become
// annotations. Handlers run one call at a time and never let a provider
// error or panic reach the transport; both are reported as error results.
//
// Two transports are supported:
//
//   - stdio: JSON-RPC over standard input and output. This is the default and
//     what MCP clients such as Claude Desktop spawn.
//   - http: the streamable HTTP transport, listening on a configurable address.
//
// In stdio mode nothing but protocol messages may be written to stdout, so
// transport errors are logged to stderr.
package server
