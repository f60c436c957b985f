package api

import (
	"context"
)

// CallToolResult represents the result of a tool call.
//
// Content items are rendered as text: strings as is, anything else as JSON.
// StructuredContent, when set, is the machine-readable result and conforms
// to the tool's declared output fields on success and on failure alike.
type CallToolResult struct {
	Content           []interface{} `json:"content"`
	StructuredContent interface{}   `json:"structuredContent,omitempty"`
	IsError           bool          `json:"isError,omitempty"`
}

// ToolMetadata describes a tool that can be exposed
type ToolMetadata struct {
	Name        string // e.g., "search-nodes", "create-workflow"
	Title       string
	Description string
	Args        []ArgMetadata

	// Output lists the top-level fields of the structured result. Tools
	// without structured output leave it empty.
	Output []ArgMetadata

	ReadOnly    bool
	Destructive bool
}

// ArgMetadata describes a tool argument or output field
type ArgMetadata struct {
	Name        string
	Type        string // "string", "number", "integer", "boolean", "object", "array"
	Required    bool
	Description string
	Default     interface{}

	// Schema is a detailed JSON schema fragment that takes precedence over
	// Type, used for arrays, nested objects and numeric bounds.
	Schema map[string]interface{}
}

// ToolProvider interface - implemented by packages exposing tools
type ToolProvider interface {
	// Returns all tools this provider offers
	GetTools() []ToolMetadata

	// Executes a tool by name
	ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*CallToolResult, error)
}
