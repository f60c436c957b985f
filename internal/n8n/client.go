package n8n

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"n8nmcp/pkg/logging"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-cleanhttp"
)

const (
	apiPath        = "/api/v1"
	apiKeyHeader   = "X-N8N-API-KEY"
	requestTimeout = 30 * time.Second
)

// Client talks to the n8n public REST API. It performs exactly one round
// trip per call and never retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default pooled HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the n8n instance at baseURL (without the
// /api/v1 suffix).
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = requestTimeout

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: hc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the instance URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListWorkflows returns workflows matching opts.
func (c *Client) ListWorkflows(ctx context.Context, opts ListWorkflowsOptions) ([]Workflow, error) {
	query := url.Values{}
	if opts.Active != nil {
		query.Set("active", strconv.FormatBool(*opts.Active))
	}
	if len(opts.Tags) > 0 {
		query.Set("tags", strings.Join(opts.Tags, ","))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var workflows []Workflow
	if err := c.do(ctx, http.MethodGet, "/workflows", query, nil, &workflows); err != nil {
		return nil, err
	}
	if workflows == nil {
		workflows = []Workflow{}
	}
	return workflows, nil
}

// GetWorkflow fetches a single workflow.
func (c *Client) GetWorkflow(ctx context.Context, id string) (*Workflow, error) {
	var wf Workflow
	if err := c.do(ctx, http.MethodGet, workflowPath(id), nil, nil, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// CreateWorkflow creates a workflow. Nil connections, settings and tags are
// sent as empty values.
func (c *Client) CreateWorkflow(ctx context.Context, req CreateWorkflowRequest) (*Workflow, error) {
	if req.Connections == nil {
		req.Connections = map[string]interface{}{}
	}
	if req.Settings == nil {
		req.Settings = map[string]interface{}{}
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}

	var wf Workflow
	if err := c.do(ctx, http.MethodPost, "/workflows", nil, req, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// UpdateWorkflow applies a partial update. Only fields set in update are sent.
func (c *Client) UpdateWorkflow(ctx context.Context, id string, update WorkflowUpdate) (*Workflow, error) {
	var wf Workflow
	if err := c.do(ctx, http.MethodPatch, workflowPath(id), nil, update, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// DeleteWorkflow deletes a workflow. A second delete of the same ID reports
// not found.
func (c *Client) DeleteWorkflow(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, workflowPath(id), nil, nil, nil)
}

// ActivateWorkflow sets the workflow active.
func (c *Client) ActivateWorkflow(ctx context.Context, id string) (*Workflow, error) {
	active := true
	return c.UpdateWorkflow(ctx, id, WorkflowUpdate{Active: &active})
}

// DeactivateWorkflow sets the workflow inactive.
func (c *Client) DeactivateWorkflow(ctx context.Context, id string) (*Workflow, error) {
	active := false
	return c.UpdateWorkflow(ctx, id, WorkflowUpdate{Active: &active})
}

// ExecuteWorkflow triggers a run, passing data as the input payload.
func (c *Client) ExecuteWorkflow(ctx context.Context, id string, data map[string]interface{}) (*Execution, error) {
	if data == nil {
		data = map[string]interface{}{}
	}
	var exec Execution
	if err := c.do(ctx, http.MethodPost, workflowPath(id)+"/execute", nil, data, &exec); err != nil {
		return nil, err
	}
	return &exec, nil
}

// ListExecutions returns executions matching opts, newest first as ordered
// by n8n.
func (c *Client) ListExecutions(ctx context.Context, opts ListExecutionsOptions) ([]Execution, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultExecutionLimit
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if opts.WorkflowID != "" {
		query.Set("workflowId", opts.WorkflowID)
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}

	var executions []Execution
	if err := c.do(ctx, http.MethodGet, "/executions", query, nil, &executions); err != nil {
		return nil, err
	}
	if executions == nil {
		executions = []Execution{}
	}
	return executions, nil
}

// GetExecution fetches a single execution.
func (c *Client) GetExecution(ctx context.Context, id string) (*Execution, error) {
	var exec Execution
	if err := c.do(ctx, http.MethodGet, executionPath(id), nil, nil, &exec); err != nil {
		return nil, err
	}
	return &exec, nil
}

// DeleteExecution deletes an execution record.
func (c *Client) DeleteExecution(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, executionPath(id), nil, nil, nil)
}

// TestConnection lists a single workflow and reports whether it succeeded.
func (c *Client) TestConnection(ctx context.Context) bool {
	if _, err := c.ListWorkflows(ctx, ListWorkflowsOptions{Limit: 1}); err != nil {
		logging.Debug("N8N", "Connection test failed: %v", err)
		return false
	}
	return true
}

// WorkflowURL returns the editor URL of a workflow.
func (c *Client) WorkflowURL(id string) string {
	return c.baseURL + "/workflow/" + url.PathEscape(id)
}

// ExecutionURL returns the editor URL of one execution of a workflow.
func (c *Client) ExecutionURL(workflowID, executionID string) string {
	return c.WorkflowURL(workflowID) + "/executions/" + url.PathEscape(executionID)
}

func workflowPath(id string) string {
	return "/workflows/" + url.PathEscape(id)
}

func executionPath(id string) string {
	return "/executions/" + url.PathEscape(id)
}

// do performs one request. Every failure is returned as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + apiPath + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("failed to encode request: %v", err)}
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("failed to build request: %v", err)}
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.Debug("N8N", "%s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp, respBody)}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := decodeBody(respBody, out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to decode response: %v", err)}
	}
	return nil
}

// errorMessage prefers the {message} field of an error body over the HTTP
// status text.
func errorMessage(resp *http.Response, body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}

// decodeBody unwraps the {data: T} envelope used by list endpoints and falls
// back to decoding a bare T. An object counts as an envelope only when its
// keys are "data" plus optional "nextCursor", because executions carry a
// "data" field of their own.
func decodeBody(body []byte, out interface{}) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		if data, ok := fields["data"]; ok && isEnvelope(fields) {
			return json.Unmarshal(data, out)
		}
	}
	return json.Unmarshal(body, out)
}

func isEnvelope(fields map[string]json.RawMessage) bool {
	for k := range fields {
		if k != "data" && k != "nextCursor" {
			return false
		}
	}
	return true
}
