package server

import (
	"context"
	"fmt"

	"n8nmcp/internal/api"
	"n8nmcp/pkg/logging"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
)

// convertToMCPTool converts tool metadata into an mcp-go tool definition.
func convertToMCPTool(meta api.ToolMetadata) mcp.Tool {
	tool := mcp.Tool{
		Name:        meta.Name,
		Description: meta.Description,
		InputSchema: convertToMCPSchema(meta.Args),
		Annotations: mcp.ToolAnnotation{
			Title:           meta.Title,
			ReadOnlyHint:    mcp.ToBoolPtr(meta.ReadOnly),
			DestructiveHint: mcp.ToBoolPtr(meta.Destructive),
		},
	}
	if len(meta.Output) > 0 {
		properties, required := convertProperties(meta.Output)
		tool.OutputSchema = mcp.ToolOutputSchema{
			Type:       "object",
			Properties: properties,
			Required:   required,
		}
	}
	return tool
}

// convertToMCPSchema converts internal arg metadata to MCP input schema format.
//
// When an arg has a detailed Schema field, that takes precedence over the
// basic Type field, allowing nested structure definitions and numeric bounds.
func convertToMCPSchema(params []api.ArgMetadata) mcp.ToolInputSchema {
	properties, required := convertProperties(params)
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func convertProperties(params []api.ArgMetadata) (map[string]interface{}, []string) {
	properties := make(map[string]interface{}, len(params))
	required := []string{}

	for _, param := range params {
		var propSchema map[string]interface{}

		if len(param.Schema) > 0 {
			propSchema = make(map[string]interface{}, len(param.Schema)+1)
			for key, value := range param.Schema {
				propSchema[key] = value
			}
			if param.Description != "" {
				propSchema["description"] = param.Description
			}
		} else {
			propSchema = map[string]interface{}{
				"type":        param.Type,
				"description": param.Description,
			}
		}

		if param.Default != nil {
			propSchema["default"] = param.Default
		}

		properties[param.Name] = propSchema

		if param.Required {
			required = append(required, param.Name)
		}
	}

	return properties, required
}

// toolHandler wraps a provider's ExecuteTool in an mcp-go handler. Calls are
// serialized, and provider errors and panics become error results.
func (s *Server) toolHandler(provider api.ToolProvider, toolName string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		s.callMu.Lock()
		defer s.callMu.Unlock()

		defer func() {
			if r := recover(); r != nil {
				logging.Error("ToolHandler", fmt.Errorf("panic: %v", r), "Tool %s panicked", toolName)
				result = errorResult(fmt.Sprintf("Tool execution failed: internal error: %v", r))
				err = nil
			}
		}()

		args := make(map[string]interface{})
		if req.Params.Arguments != nil {
			if argsMap, ok := req.Params.Arguments.(map[string]interface{}); ok {
				args = argsMap
			}
		}

		res, execErr := provider.ExecuteTool(ctx, toolName, args)
		if execErr != nil {
			logging.Error("ToolHandler", execErr, "Tool execution failed for %s", toolName)
			return errorResult(fmt.Sprintf("Tool execution failed: %v", execErr)), nil
		}
		if res == nil {
			return errorResult("Tool execution failed: no result"), nil
		}

		return convertToMCPResult(res), nil
	}
}

// errorResult builds an error result whose structured content still carries
// the status fields every output schema declares.
func errorResult(message string) *mcp.CallToolResult {
	res := mcp.NewToolResultError(message)
	res.StructuredContent = map[string]interface{}{
		"success":   false,
		"error":     message,
		"errorKind": "internal",
	}
	return res
}

// convertToMCPResult converts an internal tool result to MCP format.
//
// String content is converted directly to MCP text content; anything else is
// marshaled to JSON text. Structured content is passed through.
func convertToMCPResult(result *api.CallToolResult) *mcp.CallToolResult {
	mcpContent := make([]mcp.Content, len(result.Content))

	for i, content := range result.Content {
		if text, ok := content.(string); ok {
			mcpContent[i] = mcp.NewTextContent(text)
		} else {
			jsonBytes, _ := json.Marshal(content)
			mcpContent[i] = mcp.NewTextContent(string(jsonBytes))
		}
	}

	return &mcp.CallToolResult{
		Content:           mcpContent,
		StructuredContent: result.StructuredContent,
		IsError:           result.IsError,
	}
}
