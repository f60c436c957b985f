// Package api holds the types shared between tool providers and the MCP
// server that exposes them.
//
// Providers describe their tools with ToolMetadata and run them through
// ToolProvider.ExecuteTool. The server package converts both into the MCP
// wire types, so providers never import the MCP library directly.
package api
