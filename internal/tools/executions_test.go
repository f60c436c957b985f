package tools

import (
	"testing"

	"n8nmcp/internal/n8n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListExecutions(t *testing.T) {
	p, client := newTestProvider(t)
	client.On("ListExecutions", mock.Anything, n8n.ListExecutionsOptions{WorkflowID: "9", Status: "error", Limit: 5}).
		Return([]n8n.Execution{
			{ID: "100", WorkflowID: "9", Status: "error", Mode: "manual", StartedAt: "2024-01-01T00:00:00.000Z"},
			{ID: "101", WorkflowID: "9", Finished: false, Mode: "trigger"},
		}, nil).Once()

	res := execute(t, p, "list-executions", map[string]interface{}{"workflowId": "9", "status": "error", "limit": 5})
	require.False(t, res.IsError, text(t, res))
	assert.Contains(t, text(t, res), "Found 2 execution(s)")

	out := res.StructuredContent.(*listExecutionsOutput)
	require.Len(t, out.Executions, 2)
	assert.Equal(t, "error", out.Executions[0].Status)
	assert.Equal(t, "running", out.Executions[1].Status)
	assert.Equal(t, 2, out.Total)
	client.AssertExpectations(t)
}

func TestListExecutions_LimitLeftToClient(t *testing.T) {
	p, client := newTestProvider(t)
	client.On("ListExecutions", mock.Anything, n8n.ListExecutionsOptions{}).Return([]n8n.Execution{}, nil).Once()

	res := execute(t, p, "list-executions", nil)
	assert.False(t, res.IsError)
	assert.Equal(t, "No executions found.", text(t, res))
	client.AssertExpectations(t)
}

func TestGetExecution(t *testing.T) {
	p, client := newTestProvider(t)
	client.On("GetExecution", mock.Anything, "100").Return(&n8n.Execution{
		ID:         "100",
		WorkflowID: "9",
		Finished:   true,
		Mode:       "manual",
		Data:       map[string]interface{}{"resultData": map[string]interface{}{}},
	}, nil).Once()

	res := execute(t, p, "get-execution", map[string]interface{}{"executionId": "100"})
	require.False(t, res.IsError)
	assert.Contains(t, text(t, res), "Status: completed")
	assert.Contains(t, text(t, res), "resultData")

	out := res.StructuredContent.(*getExecutionOutput)
	assert.Equal(t, testBaseURL+"/workflow/9/executions/100", out.ExecutionURL)
}

func TestGetExecution_NotFound(t *testing.T) {
	p, client := newTestProvider(t)
	client.On("GetExecution", mock.Anything, "404").
		Return(nil, &n8n.APIError{StatusCode: 404, Message: "Not Found"})

	res := execute(t, p, "get-execution", map[string]interface{}{"executionId": "404"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "❌ Error getting execution: n8n API Error (404)")
}

func TestDeleteExecution(t *testing.T) {
	t.Run("cancelled without confirm", func(t *testing.T) {
		p, client := newTestProvider(t)

		res := execute(t, p, "delete-execution", map[string]interface{}{"executionId": "100"})
		assert.False(t, res.IsError)
		assert.True(t, res.StructuredContent.(*deleteExecutionOutput).Cancelled)
		client.AssertNotCalled(t, "DeleteExecution", mock.Anything, mock.Anything)
	})

	t.Run("confirmed", func(t *testing.T) {
		p, client := newTestProvider(t)
		client.On("DeleteExecution", mock.Anything, "100").Return(nil).Once()

		res := execute(t, p, "delete-execution", map[string]interface{}{"executionId": "100", "confirm": true})
		require.False(t, res.IsError)
		assert.Equal(t, "✅ Execution 100 deleted successfully.", text(t, res))
		client.AssertExpectations(t)
	})
}
