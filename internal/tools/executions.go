package tools

import (
	"context"

	"n8nmcp/internal/api"
	"n8nmcp/internal/n8n"
)

var executionStatuses = []string{"success", "error", "waiting", "running", "canceled"}

func (p *Provider) executionTools() []*tool {
	executionIDArg := api.ArgMetadata{Name: "executionId", Type: "string", Required: true, Description: "The ID of the execution"}

	return []*tool{
		{
			meta: api.ToolMetadata{
				Name:        "list-executions",
				Title:       "List Executions",
				Description: "List recent workflow executions, optionally filtered by workflow and status",
				Args: []api.ArgMetadata{
					{Name: "workflowId", Type: "string", Description: "Only list executions of this workflow"},
					{
						Name:        "status",
						Type:        "string",
						Description: "Only list executions with this status",
						Schema:      map[string]interface{}{"type": "string", "enum": executionStatuses},
					},
					{
						Name:        "limit",
						Type:        "integer",
						Description: "Maximum number of executions to fetch",
						Schema:      map[string]interface{}{"type": "integer", "minimum": 1, "maximum": maxRemoteLimit, "default": n8n.DefaultExecutionLimit},
					},
				},
				Output: outputFields(
					api.ArgMetadata{Name: "executions", Type: "array", Description: "Execution summaries"},
					api.ArgMetadata{Name: "total", Type: "integer", Description: "Number of executions returned"},
				),
				ReadOnly: true,
			},
			action: "listing executions",
			run:    p.listExecutions,
		},
		{
			meta: api.ToolMetadata{
				Name:        "get-execution",
				Title:       "Get Execution Details",
				Description: "Get details of a single workflow execution",
				Args:        []api.ArgMetadata{executionIDArg},
				Output: outputFields(
					api.ArgMetadata{Name: "execution", Type: "object", Description: "The execution document"},
					api.ArgMetadata{Name: "executionUrl", Type: "string", Description: "Editor URL of the execution"},
				),
				ReadOnly: true,
			},
			action: "getting execution",
			run:    p.getExecution,
		},
		{
			meta: api.ToolMetadata{
				Name:        "delete-execution",
				Title:       "Delete Execution",
				Description: "Delete an execution record. Requires confirm=true",
				Args: []api.ArgMetadata{
					executionIDArg,
					{Name: "confirm", Type: "boolean", Required: true, Description: "Must be true to delete"},
				},
				Output: outputFields(
					api.ArgMetadata{Name: "executionId", Type: "string", Description: "ID of the execution"},
					api.ArgMetadata{Name: "deleted", Type: "boolean", Description: "Whether the execution was deleted"},
					api.ArgMetadata{Name: "cancelled", Type: "boolean", Description: "Whether deletion was skipped for lack of confirmation"},
				),
				Destructive: true,
			},
			action: "deleting execution",
			run:    p.deleteExecution,
		},
	}
}

type listExecutionsInput struct {
	WorkflowID string `json:"workflowId"`
	Status     string `json:"status" validate:"omitempty,oneof=success error waiting running canceled"`
	Limit      int    `json:"limit" validate:"omitempty,min=1,max=250"`
}

type executionSummary struct {
	ID         string `json:"id"`
	WorkflowID string `json:"workflowId"`
	Status     string `json:"status"`
	Mode       string `json:"mode"`
	StartedAt  string `json:"startedAt,omitempty"`
	StoppedAt  string `json:"stoppedAt,omitempty"`
}

type listExecutionsOutput struct {
	resultStatus
	Executions []executionSummary `json:"executions"`
	Total      int                `json:"total"`
}

func (p *Provider) listExecutions(ctx context.Context, args map[string]interface{}) Outcome {
	var in listExecutionsInput
	if o := p.decodeArgs(args, &in); o != nil {
		return *o
	}

	executions, err := p.client.ListExecutions(ctx, n8n.ListExecutionsOptions{
		WorkflowID: in.WorkflowID,
		Status:     in.Status,
		Limit:      in.Limit,
	})
	if err != nil {
		return remoteFailure(err)
	}

	out := &listExecutionsOutput{resultStatus: succeeded(), Executions: make([]executionSummary, 0, len(executions))}
	for _, e := range executions {
		out.Executions = append(out.Executions, executionSummary{
			ID:         e.ID.String(),
			WorkflowID: e.WorkflowID.String(),
			Status:     e.State(),
			Mode:       e.Mode,
			StartedAt:  e.StartedAt,
			StoppedAt:  e.StoppedAt,
		})
	}
	out.Total = len(out.Executions)
	return ok(out)
}

type executionIDInput struct {
	ExecutionID string `json:"executionId" validate:"required"`
}

type getExecutionOutput struct {
	resultStatus
	Execution    *n8n.Execution `json:"execution,omitempty"`
	ExecutionURL string         `json:"executionUrl,omitempty"`
}

func (p *Provider) getExecution(ctx context.Context, args map[string]interface{}) Outcome {
	var in executionIDInput
	if o := p.decodeArgs(args, &in); o != nil {
		return *o
	}

	exec, err := p.client.GetExecution(ctx, in.ExecutionID)
	if err != nil {
		return remoteFailure(err)
	}
	out := &getExecutionOutput{resultStatus: succeeded(), Execution: exec}
	if wfID := exec.WorkflowID.String(); wfID != "" {
		out.ExecutionURL = p.client.ExecutionURL(wfID, in.ExecutionID)
	}
	return ok(out)
}

type deleteExecutionInput struct {
	ExecutionID string `json:"executionId" validate:"required"`
	Confirm     bool   `json:"confirm"`
}

type deleteExecutionOutput struct {
	resultStatus
	ExecutionID string `json:"executionId"`
	Deleted     bool   `json:"deleted"`
	Cancelled   bool   `json:"cancelled"`
}

func (p *Provider) deleteExecution(ctx context.Context, args map[string]interface{}) Outcome {
	var in deleteExecutionInput
	if o := p.decodeArgs(args, &in); o != nil {
		return *o
	}

	out := &deleteExecutionOutput{resultStatus: succeeded(), ExecutionID: in.ExecutionID}
	if !in.Confirm {
		out.Cancelled = true
		return ok(out)
	}

	if err := p.client.DeleteExecution(ctx, in.ExecutionID); err != nil {
		return remoteFailure(err)
	}
	out.Deleted = true
	return ok(out)
}
