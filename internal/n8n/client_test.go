package n8n

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   map[string]interface{}
	APIKey string
}

// newTestServer serves a fixed status and body and records the last request.
func newTestServer(t *testing.T, status int, body string) (*Client, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = r.URL.Query()
		rec.APIKey = r.Header.Get(apiKeyHeader)
		rec.Body = nil
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", testAPIKey), rec
}

func TestClient_ListWorkflows(t *testing.T) {
	active := true

	tests := []struct {
		name      string
		opts      ListWorkflowsOptions
		body      string
		wantQuery map[string]string
		wantIDs   []FlexibleID
	}{
		{
			name:    "envelope with cursor",
			body:    `{"data":[{"id":"1","name":"A","active":true},{"id":2,"name":"B"}],"nextCursor":null}`,
			wantIDs: []FlexibleID{"1", "2"},
		},
		{
			name: "filters forwarded",
			opts: ListWorkflowsOptions{Active: &active, Tags: []string{"a", "b"}, Limit: 5},
			body: `{"data":[]}`,
			wantQuery: map[string]string{
				"active": "true",
				"tags":   "a,b",
				"limit":  "5",
			},
			wantIDs: []FlexibleID{},
		},
		{
			name:    "bare array",
			body:    `[{"id":"7","name":"C"}]`,
			wantIDs: []FlexibleID{"7"},
		},
		{
			name:    "missing data",
			body:    `{"data":null}`,
			wantIDs: []FlexibleID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rec := newTestServer(t, http.StatusOK, tt.body)

			workflows, err := client.ListWorkflows(context.Background(), tt.opts)
			require.NoError(t, err)

			ids := make([]FlexibleID, 0, len(workflows))
			for _, wf := range workflows {
				ids = append(ids, wf.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)

			assert.Equal(t, http.MethodGet, rec.Method)
			assert.Equal(t, "/api/v1/workflows", rec.Path)
			assert.Equal(t, testAPIKey, rec.APIKey)
			for k, v := range tt.wantQuery {
				assert.Equal(t, v, rec.Query[k][0], "query %s", k)
			}
		})
	}
}

func TestClient_GetWorkflow(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK,
		`{"id":"abc","name":"Flow","active":false,"nodes":[{"id":"n1","name":"Gmail","type":"n8n-nodes-base.gmail","typeVersion":2.1,"position":[250,300],"parameters":{}}],"connections":{},"tags":[{"id":"1","name":"mcp-created"}]}`)

	wf, err := client.GetWorkflow(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/workflows/abc", rec.Path)
	assert.Equal(t, FlexibleID("abc"), wf.ID)
	assert.Equal(t, "Flow", wf.Name)
	require.Len(t, wf.Nodes, 1)
	assert.Equal(t, 2.1, wf.Nodes[0].TypeVersion)
	assert.Equal(t, []float64{250, 300}, wf.Nodes[0].Position)
	assert.Equal(t, TagList{"mcp-created"}, wf.Tags)
}

func TestClient_GetWorkflow_NotFound(t *testing.T) {
	client, _ := newTestServer(t, http.StatusNotFound, `{"message":"Workflow not found"}`)

	wf, err := client.GetWorkflow(context.Background(), "missing-id")
	require.Error(t, err)
	assert.Nil(t, wf)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, "Workflow not found", apiErr.Message)
	assert.Equal(t, "n8n API Error (404): Workflow not found", err.Error())
	assert.True(t, IsNotFound(err))
}

func TestClient_ErrorWithoutMessage(t *testing.T) {
	client, _ := newTestServer(t, http.StatusInternalServerError, `oops`)

	_, err := client.GetWorkflow(context.Background(), "x")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
	assert.False(t, IsNotFound(err))
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url, testAPIKey)
	_, err := client.ListWorkflows(context.Background(), ListWorkflowsOptions{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Message)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testAPIKey, WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
	_, err := client.GetWorkflow(context.Background(), "slow")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.StatusCode)
}

func TestClient_DecodeError(t *testing.T) {
	client, _ := newTestServer(t, http.StatusOK, `{"id":`)

	_, err := client.GetWorkflow(context.Background(), "x")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 200, apiErr.StatusCode)
}

func TestClient_CreateWorkflow_Defaults(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, `{"id":"new","name":"Created","active":false,"nodes":[]}`)

	wf, err := client.CreateWorkflow(context.Background(), CreateWorkflowRequest{
		Name:  "Created",
		Nodes: []Node{{Name: "Start", Type: "n8n-nodes-base.manualTrigger", TypeVersion: 1, Position: []float64{250, 300}, Parameters: map[string]interface{}{}}},
	})
	require.NoError(t, err)
	assert.Equal(t, FlexibleID("new"), wf.ID)

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/api/v1/workflows", rec.Path)
	assert.Equal(t, map[string]interface{}{}, rec.Body["connections"])
	assert.Equal(t, map[string]interface{}{}, rec.Body["settings"])
	assert.Equal(t, []interface{}{}, rec.Body["tags"])
	assert.Equal(t, false, rec.Body["active"])
	assert.Len(t, rec.Body["nodes"], 1)
}

func TestClient_UpdateWorkflow_SendsOnlyProvidedFields(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, `{"id":"1","name":"Renamed"}`)

	name := "Renamed"
	_, err := client.UpdateWorkflow(context.Background(), "1", WorkflowUpdate{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, rec.Method)
	assert.Equal(t, "/api/v1/workflows/1", rec.Path)
	assert.Equal(t, map[string]interface{}{"name": "Renamed"}, rec.Body)
}

func TestClient_UpdateWorkflow_SendsEmptyValues(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, `{"id":"1","name":"W"}`)

	_, err := client.UpdateWorkflow(context.Background(), "1", WorkflowUpdate{
		Connections: map[string]interface{}{},
		Tags:        []string{},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"connections": map[string]interface{}{},
		"tags":        []interface{}{},
	}, rec.Body)
}

func TestClient_ActivateDeactivate(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, `{"id":"1","name":"W","active":true}`)

	_, err := client.ActivateWorkflow(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, rec.Method)
	assert.Equal(t, map[string]interface{}{"active": true}, rec.Body)

	_, err = client.DeactivateWorkflow(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"active": false}, rec.Body)
}

func TestClient_DeleteWorkflow(t *testing.T) {
	client, rec := newTestServer(t, http.StatusNoContent, ``)

	require.NoError(t, client.DeleteWorkflow(context.Background(), "1"))
	assert.Equal(t, http.MethodDelete, rec.Method)
	assert.Equal(t, "/api/v1/workflows/1", rec.Path)
}

func TestClient_ExecuteWorkflow(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, `{"data":{"id":99,"finished":false,"mode":"manual","workflowId":"1"}}`)

	exec, err := client.ExecuteWorkflow(context.Background(), "1", nil)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/api/v1/workflows/1/execute", rec.Path)
	assert.Equal(t, map[string]interface{}{}, rec.Body)
	assert.Equal(t, FlexibleID("99"), exec.ID)
	assert.Equal(t, "running", exec.State())
}

func TestClient_ListExecutions(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK,
		`{"data":[{"id":"5","finished":true,"mode":"trigger","workflowId":"1","status":"success"}],"nextCursor":"abc"}`)

	execs, err := client.ListExecutions(context.Background(), ListExecutionsOptions{WorkflowID: "1", Status: "success"})
	require.NoError(t, err)
	require.Len(t, execs, 1)

	assert.Equal(t, "/api/v1/executions", rec.Path)
	assert.Equal(t, "20", rec.Query["limit"][0])
	assert.Equal(t, "1", rec.Query["workflowId"][0])
	assert.Equal(t, "success", rec.Query["status"][0])
	assert.Equal(t, "success", execs[0].State())
}

func TestClient_GetExecution_BareBodyWithDataField(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK,
		`{"id":"5","finished":true,"mode":"manual","workflowId":"1","data":{"resultData":{}}}`)

	exec, err := client.GetExecution(context.Background(), "5")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/executions/5", rec.Path)
	assert.Equal(t, FlexibleID("5"), exec.ID)
	assert.True(t, exec.Finished)
	assert.Contains(t, exec.Data, "resultData")
	assert.Equal(t, "completed", exec.State())
}

func TestClient_DeleteExecution(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, `{"id":"5"}`)

	require.NoError(t, client.DeleteExecution(context.Background(), "5"))
	assert.Equal(t, http.MethodDelete, rec.Method)
	assert.Equal(t, "/api/v1/executions/5", rec.Path)
}

func TestClient_TestConnection(t *testing.T) {
	ok, rec := newTestServer(t, http.StatusOK, `{"data":[]}`)
	assert.True(t, ok.TestConnection(context.Background()))
	assert.Equal(t, "1", rec.Query["limit"][0])

	unauthorized, _ := newTestServer(t, http.StatusUnauthorized, `{"message":"unauthorized"}`)
	assert.False(t, unauthorized.TestConnection(context.Background()))
}

func TestClient_URLs(t *testing.T) {
	client := NewClient("https://n8n.example.com/", testAPIKey)

	assert.Equal(t, "https://n8n.example.com", client.BaseURL())
	assert.Equal(t, "https://n8n.example.com/workflow/42", client.WorkflowURL("42"))
	assert.Equal(t, "https://n8n.example.com/workflow/42/executions/7", client.ExecutionURL("42", "7"))
}
