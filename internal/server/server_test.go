package server

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"n8nmcp/internal/api"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	tools   []api.ToolMetadata
	execute func(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error)
}

func (f *fakeProvider) GetTools() []api.ToolMetadata {
	return f.tools
}

func (f *fakeProvider) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	return f.execute(ctx, name, args)
}

func newTestServer(p api.ToolProvider) *Server {
	return New(Config{Name: "n8n-mcp-test", Version: "0.0.0", Transport: TransportStdio}, p)
}

func callRequest(name string, args interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func TestConvertToMCPSchema(t *testing.T) {
	schema := convertToMCPSchema([]api.ArgMetadata{
		{Name: "query", Type: "string", Required: true, Description: "Search query"},
		{Name: "aiOnly", Type: "boolean", Description: "AI only", Default: false},
		{
			Name:        "limit",
			Type:        "integer",
			Description: "Maximum results",
			Schema:      map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 100, "description": "ignored"},
		},
	})

	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"query"}, schema.Required)
	assert.Equal(t, map[string]interface{}{"type": "string", "description": "Search query"}, schema.Properties["query"])
	assert.Equal(t, map[string]interface{}{"type": "boolean", "description": "AI only", "default": false}, schema.Properties["aiOnly"])

	limit := schema.Properties["limit"].(map[string]interface{})
	assert.Equal(t, "Maximum results", limit["description"])
	assert.Equal(t, 100, limit["maximum"])
}

func TestConvertToMCPSchema_Empty(t *testing.T) {
	schema := convertToMCPSchema(nil)
	assert.Equal(t, "object", schema.Type)
	assert.Empty(t, schema.Properties)
	assert.NotNil(t, schema.Required)
}

func TestConvertToMCPTool(t *testing.T) {
	tests := []struct {
		name            string
		meta            api.ToolMetadata
		wantReadOnly    bool
		wantDestructive bool
		wantOutput      bool
	}{
		{
			name: "read-only with output",
			meta: api.ToolMetadata{
				Name:     "search-nodes",
				Title:    "Search n8n Nodes",
				ReadOnly: true,
				Output:   []api.ArgMetadata{{Name: "success", Type: "boolean", Required: true}},
			},
			wantReadOnly: true,
			wantOutput:   true,
		},
		{
			name:            "destructive",
			meta:            api.ToolMetadata{Name: "delete-workflow", Destructive: true},
			wantDestructive: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := convertToMCPTool(tt.meta)

			assert.Equal(t, tt.meta.Name, tool.Name)
			assert.Equal(t, tt.meta.Title, tool.Annotations.Title)
			require.NotNil(t, tool.Annotations.ReadOnlyHint)
			require.NotNil(t, tool.Annotations.DestructiveHint)
			assert.Equal(t, tt.wantReadOnly, *tool.Annotations.ReadOnlyHint)
			assert.Equal(t, tt.wantDestructive, *tool.Annotations.DestructiveHint)

			if tt.wantOutput {
				assert.Equal(t, "object", tool.OutputSchema.Type)
				assert.Equal(t, []string{"success"}, tool.OutputSchema.Required)
			} else {
				assert.Empty(t, tool.OutputSchema.Type)
			}
		})
	}
}

func TestConvertToMCPResult(t *testing.T) {
	structured := map[string]interface{}{"success": true}
	res := convertToMCPResult(&api.CallToolResult{
		Content:           []interface{}{"hello", map[string]int{"n": 1}},
		StructuredContent: structured,
	})

	require.Len(t, res.Content, 2)
	assert.Equal(t, "hello", res.Content[0].(mcp.TextContent).Text)
	assert.JSONEq(t, `{"n":1}`, res.Content[1].(mcp.TextContent).Text)
	assert.Equal(t, structured, res.StructuredContent)
	assert.False(t, res.IsError)
}

func TestToolHandler(t *testing.T) {
	tests := []struct {
		name        string
		execute     func(context.Context, string, map[string]interface{}) (*api.CallToolResult, error)
		args        interface{}
		wantError   bool
		wantText    string
		wantArgsLen int
	}{
		{
			name: "success",
			execute: func(_ context.Context, _ string, args map[string]interface{}) (*api.CallToolResult, error) {
				return &api.CallToolResult{Content: []interface{}{"ok"}, StructuredContent: args}, nil
			},
			args:     map[string]interface{}{"query": "gmail"},
			wantText: "ok",
		},
		{
			name: "tool failure is passed through",
			execute: func(context.Context, string, map[string]interface{}) (*api.CallToolResult, error) {
				return &api.CallToolResult{Content: []interface{}{"❌ Error getting workflow: 404"}, IsError: true}, nil
			},
			wantError: true,
			wantText:  "❌ Error getting workflow: 404",
		},
		{
			name: "provider error",
			execute: func(context.Context, string, map[string]interface{}) (*api.CallToolResult, error) {
				return nil, errors.New("unknown tool: x")
			},
			wantError: true,
			wantText:  "Tool execution failed: unknown tool: x",
		},
		{
			name: "panic",
			execute: func(context.Context, string, map[string]interface{}) (*api.CallToolResult, error) {
				panic("boom")
			},
			wantError: true,
			wantText:  "Tool execution failed: internal error: boom",
		},
		{
			name: "non-object arguments",
			execute: func(_ context.Context, _ string, args map[string]interface{}) (*api.CallToolResult, error) {
				if len(args) != 0 {
					return nil, errors.New("expected no arguments")
				}
				return &api.CallToolResult{Content: []interface{}{"empty"}}, nil
			},
			args:     []interface{}{"not", "a", "map"},
			wantText: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{
				tools:   []api.ToolMetadata{{Name: "tool"}},
				execute: tt.execute,
			}
			s := newTestServer(p)

			res, err := s.toolHandler(p, "tool")(context.Background(), callRequest("tool", tt.args))
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, tt.wantError, res.IsError)
			require.NotEmpty(t, res.Content)
			assert.Equal(t, tt.wantText, res.Content[0].(mcp.TextContent).Text)
		})
	}
}

func TestToolHandler_ErrorResultCarriesStatus(t *testing.T) {
	p := &fakeProvider{
		tools: []api.ToolMetadata{{Name: "tool"}},
		execute: func(context.Context, string, map[string]interface{}) (*api.CallToolResult, error) {
			panic("boom")
		},
	}
	s := newTestServer(p)

	res, err := s.toolHandler(p, "tool")(context.Background(), callRequest("tool", nil))
	require.NoError(t, err)

	structured, ok := res.StructuredContent.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, structured["success"])
	assert.Equal(t, "internal", structured["errorKind"])
}

func TestToolHandler_SerializesCalls(t *testing.T) {
	var active, maxActive int32
	p := &fakeProvider{
		tools: []api.ToolMetadata{{Name: "slow"}},
		execute: func(context.Context, string, map[string]interface{}) (*api.CallToolResult, error) {
			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&active, -1)
			return &api.CallToolResult{Content: []interface{}{"done"}}, nil
		},
	}
	s := newTestServer(p)
	handler := s.toolHandler(p, "slow")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = handler(context.Background(), callRequest("slow", nil))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxActive))
}

func TestNew_RegistersAllProviderTools(t *testing.T) {
	first := &fakeProvider{tools: []api.ToolMetadata{{Name: "a"}, {Name: "b"}}}
	second := &fakeProvider{tools: []api.ToolMetadata{{Name: "c"}}}

	s := New(Config{Name: "n8n-mcp-test", Version: "0.0.0"}, first, second)

	names := make([]string, 0, len(s.Tools()))
	for _, tool := range s.Tools() {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestServer_ListToolsOverJSONRPC(t *testing.T) {
	p := &fakeProvider{tools: []api.ToolMetadata{
		{Name: "search-nodes", ReadOnly: true, Output: []api.ArgMetadata{{Name: "success", Type: "boolean", Required: true}}},
	}}
	s := newTestServer(p)

	msg := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`)
	resp := s.MCPServer().HandleMessage(context.Background(), msg)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded struct {
		Result struct {
			Tools []struct {
				Name         string                 `json:"name"`
				OutputSchema map[string]interface{} `json:"outputSchema"`
				Annotations  map[string]interface{} `json:"annotations"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Result.Tools, 1)
	assert.Equal(t, "search-nodes", decoded.Result.Tools[0].Name)
	assert.Equal(t, "object", decoded.Result.Tools[0].OutputSchema["type"])
	assert.Equal(t, true, decoded.Result.Tools[0].Annotations["readOnlyHint"])
}

func TestServe_UnknownTransport(t *testing.T) {
	s := New(Config{Name: "n8n-mcp-test", Version: "0.0.0", Transport: "carrier-pigeon"})
	err := s.Serve(context.Background())
	assert.ErrorContains(t, err, "unknown transport")
}

func TestShutdown_WithoutHTTPIsNoop(t *testing.T) {
	s := newTestServer(&fakeProvider{})
	assert.NoError(t, s.Shutdown(context.Background()))
}
