package n8n

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleID_Unmarshal(t *testing.T) {
	tests := []struct {
		input    string
		expected FlexibleID
		wantErr  bool
	}{
		{`"abc"`, "abc", false},
		{`123`, "123", false},
		{`null`, "", false},
		{`true`, "", true},
		{`{}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var id FlexibleID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestTagList_Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected TagList
		wantErr  bool
	}{
		{name: "strings", input: `["a","b"]`, expected: TagList{"a", "b"}},
		{name: "objects", input: `[{"id":"1","name":"a"},{"id":2,"name":"b"}]`, expected: TagList{"a", "b"}},
		{name: "mixed", input: `["a",{"name":"b"}]`, expected: TagList{"a", "b"}},
		{name: "empty", input: `[]`, expected: TagList{}},
		{name: "number", input: `[1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tags TagList
			err := json.Unmarshal([]byte(tt.input), &tags)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tags)
		})
	}
}

func TestWorkflowUpdate_IsEmpty(t *testing.T) {
	assert.True(t, WorkflowUpdate{}.IsEmpty())

	active := false
	assert.False(t, WorkflowUpdate{Active: &active}.IsEmpty())
	assert.False(t, WorkflowUpdate{Tags: []string{}}.IsEmpty())
}

func TestExecution_State(t *testing.T) {
	assert.Equal(t, "error", Execution{Status: "error", Finished: true}.State())
	assert.Equal(t, "completed", Execution{Finished: true}.State())
	assert.Equal(t, "running", Execution{}.State())
}

func TestWorkflow_KeepsUnknownMembers(t *testing.T) {
	input := `{
		"id": 1,
		"name": "Hooked",
		"active": false,
		"versionId": "v-7",
		"pinData": {"Hook": [{"json": {"ok": true}}]},
		"meta": {"instanceId": "abc"},
		"nodes": [{
			"name": "Hook",
			"type": "n8n-nodes-base.webhook",
			"typeVersion": 1,
			"position": [0, 0],
			"parameters": {},
			"webhookId": "abc-123",
			"disabled": true,
			"notes": "keep me",
			"onError": "continueRegularOutput"
		}],
		"connections": {}
	}`

	var wf Workflow
	require.NoError(t, json.Unmarshal([]byte(input), &wf))

	assert.Equal(t, FlexibleID("1"), wf.ID)
	assert.Len(t, wf.Extra, 3)
	require.Len(t, wf.Nodes, 1)
	assert.Equal(t, "Hook", wf.Nodes[0].Name)
	assert.JSONEq(t, `true`, string(wf.Nodes[0].Extra["disabled"]))
	assert.NotContains(t, wf.Nodes[0].Extra, "name")

	encoded, err := json.Marshal(wf)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &got))
	assert.Equal(t, "v-7", got["versionId"])
	assert.Equal(t, map[string]interface{}{"instanceId": "abc"}, got["meta"])
	assert.Contains(t, got, "pinData")

	node := got["nodes"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "abc-123", node["webhookId"])
	assert.Equal(t, true, node["disabled"])
	assert.Equal(t, "keep me", node["notes"])
	assert.Equal(t, "continueRegularOutput", node["onError"])
	assert.Equal(t, "n8n-nodes-base.webhook", node["type"])
}

func TestNode_DeclaredFieldsWinOverExtra(t *testing.T) {
	n := Node{
		Name:  "Start",
		Type:  "n8n-nodes-base.manualTrigger",
		Extra: map[string]json.RawMessage{"name": json.RawMessage(`"Shadow"`), "disabled": json.RawMessage(`false`)},
	}

	encoded, err := json.Marshal(n)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &got))
	assert.Equal(t, "Start", got["name"])
	assert.Equal(t, false, got["disabled"])
}

func TestWorkflowUpdate_Marshal(t *testing.T) {
	name := "Renamed"
	active := false

	tests := []struct {
		name     string
		update   WorkflowUpdate
		expected string
	}{
		{
			name:     "nothing set",
			update:   WorkflowUpdate{},
			expected: `{}`,
		},
		{
			name:     "scalars",
			update:   WorkflowUpdate{Name: &name, Active: &active},
			expected: `{"name":"Renamed","active":false}`,
		},
		{
			name:     "empty values clear fields",
			update:   WorkflowUpdate{Connections: map[string]interface{}{}, Settings: map[string]interface{}{}, Tags: []string{}, Nodes: []Node{}},
			expected: `{"connections":{},"settings":{},"tags":[],"nodes":[]}`,
		},
		{
			name: "nodes keep their extra members",
			update: WorkflowUpdate{Nodes: []Node{{
				Name:       "Hook",
				Type:       "n8n-nodes-base.webhook",
				Position:   []float64{0, 0},
				Parameters: map[string]interface{}{},
				Extra:      map[string]json.RawMessage{"webhookId": json.RawMessage(`"abc-123"`)},
			}}},
			expected: `{"nodes":[{"name":"Hook","type":"n8n-nodes-base.webhook","typeVersion":0,"position":[0,0],"parameters":{},"webhookId":"abc-123"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := json.Marshal(tt.update)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(encoded))
		})
	}
}
