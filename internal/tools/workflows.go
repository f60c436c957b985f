package tools

import (
	"context"
	"strings"

	"n8nmcp/internal/api"
	"n8nmcp/internal/n8n"
)

const (
	defaultWorkflowLimit = 50
	maxRemoteLimit       = 250
)

func (p *Provider) workflowTools() []*tool {
	workflowIDArg := api.ArgMetadata{Name: "workflowId", Type: "string", Required: true, Description: "The ID of the workflow"}

	changeOutput := outputFields(
		api.ArgMetadata{Name: "workflowId", Type: "string", Description: "ID of the changed workflow"},
		api.ArgMetadata{Name: "workflowName", Type: "string", Description: "Name after the change"},
		api.ArgMetadata{Name: "active", Type: "boolean", Description: "Active state after the change"},
		api.ArgMetadata{Name: "workflowUrl", Type: "string", Description: "Editor URL of the workflow"},
	)
	deleteOutput := outputFields(
		api.ArgMetadata{Name: "workflowId", Type: "string", Description: "ID of the workflow"},
		api.ArgMetadata{Name: "deleted", Type: "boolean", Description: "Whether the workflow was deleted"},
		api.ArgMetadata{Name: "cancelled", Type: "boolean", Description: "Whether deletion was skipped for lack of confirmation"},
	)

	return []*tool{
		{
			meta: api.ToolMetadata{
				Name:        "list-workflows",
				Title:       "List n8n Workflows",
				Description: "List workflows from the n8n instance with optional filters",
				Args: []api.ArgMetadata{
					{Name: "active", Type: "boolean", Description: "Only list workflows with this active state"},
					{Name: "tags", Type: "array", Description: "Only list workflows with these tags", Schema: stringArraySchema},
					{Name: "search", Type: "string", Description: "Case-insensitive filter on workflow names"},
					{
						Name:        "limit",
						Type:        "integer",
						Description: "Maximum number of workflows to fetch",
						Schema:      map[string]interface{}{"type": "integer", "minimum": 1, "maximum": maxRemoteLimit, "default": defaultWorkflowLimit},
					},
				},
				Output: outputFields(
					api.ArgMetadata{Name: "workflows", Type: "array", Description: "Workflow summaries"},
					api.ArgMetadata{Name: "total", Type: "integer", Description: "Number of workflows returned"},
				),
				ReadOnly: true,
			},
			action: "listing workflows",
			run:    p.listWorkflows,
		},
		{
			meta: api.ToolMetadata{
				Name:        "get-workflow",
				Title:       "Get Workflow Details",
				Description: "Get full details of a workflow including nodes and connections",
				Args:        []api.ArgMetadata{workflowIDArg},
				Output: outputFields(
					api.ArgMetadata{Name: "workflow", Type: "object", Description: "The workflow document"},
					api.ArgMetadata{Name: "workflowUrl", Type: "string", Description: "Editor URL of the workflow"},
				),
				ReadOnly: true,
			},
			action: "getting workflow",
			run:    p.getWorkflow,
		},
		{
			meta: api.ToolMetadata{
				Name:        "update-workflow",
				Title:       "Update Workflow",
				Description: "Update an existing workflow. Only the fields given in changes are modified",
				Args: []api.ArgMetadata{
					workflowIDArg,
					{
						Name:        "changes",
						Type:        "object",
						Required:    true,
						Description: "Changes to apply to the workflow",
						Schema: map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"name":        map[string]interface{}{"type": "string", "description": "New name"},
								"active":      map[string]interface{}{"type": "boolean", "description": "Activate or deactivate"},
								"nodes":       map[string]interface{}{"type": "array", "description": "Replacement node list", "items": map[string]interface{}{"type": "object"}},
								"connections": map[string]interface{}{"type": "object", "description": "Replacement connections"},
								"settings":    map[string]interface{}{"type": "object", "description": "Replacement settings"},
								"tags":        stringArraySchema,
							},
						},
					},
				},
				Output: changeOutput,
			},
			action: "updating workflow",
			run:    p.updateWorkflow,
		},
		{
			meta: api.ToolMetadata{
				Name:        "delete-workflow",
				Title:       "Delete Workflow",
				Description: "Permanently delete a workflow. Requires confirm=true",
				Args: []api.ArgMetadata{
					workflowIDArg,
					{Name: "confirm", Type: "boolean", Required: true, Description: "Must be true to delete"},
				},
				Output:      deleteOutput,
				Destructive: true,
			},
			action: "deleting workflow",
			run:    p.deleteWorkflow,
		},
		{
			meta: api.ToolMetadata{
				Name:        "execute-workflow",
				Title:       "Execute Workflow",
				Description: "Trigger an execution of a workflow",
				Args: []api.ArgMetadata{
					workflowIDArg,
					{Name: "data", Type: "object", Description: "Optional input data for the workflow"},
				},
				Output: outputFields(
					api.ArgMetadata{Name: "workflowId", Type: "string", Description: "ID of the executed workflow"},
					api.ArgMetadata{Name: "executionId", Type: "string", Description: "ID of the new execution"},
					api.ArgMetadata{Name: "status", Type: "string", Description: "Execution state"},
					api.ArgMetadata{Name: "executionUrl", Type: "string", Description: "Editor URL of the execution"},
				),
			},
			action: "executing workflow",
			run:    p.executeWorkflow,
		},
		{
			meta: api.ToolMetadata{
				Name:        "activate-workflow",
				Title:       "Activate Workflow",
				Description: "Activate a workflow so its triggers start running",
				Args:        []api.ArgMetadata{workflowIDArg},
				Output:      changeOutput,
			},
			action: "activating workflow",
			run:    p.setWorkflowActive(true),
		},
		{
			meta: api.ToolMetadata{
				Name:        "deactivate-workflow",
				Title:       "Deactivate Workflow",
				Description: "Deactivate a workflow so its triggers stop running",
				Args:        []api.ArgMetadata{workflowIDArg},
				Output:      changeOutput,
			},
			action: "deactivating workflow",
			run:    p.setWorkflowActive(false),
		},
	}
}

type listWorkflowsInput struct {
	Active *bool    `json:"active"`
	Tags   []string `json:"tags"`
	Search string   `json:"search"`
	Limit  int      `json:"limit" validate:"omitempty,min=1,max=250"`
}

type workflowSummary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Active    bool     `json:"active"`
	Tags      []string `json:"tags"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

type listWorkflowsOutput struct {
	resultStatus
	Workflows []workflowSummary `json:"workflows"`
	Total     int               `json:"total"`
}

func (p *Provider) listWorkflows(ctx context.Context, args map[string]interface{}) Outcome {
	var in listWorkflowsInput
	if o := p.decodeArgs(args, &in); o != nil {
		return *o
	}
	if in.Limit == 0 {
		in.Limit = defaultWorkflowLimit
	}

	workflows, err := p.client.ListWorkflows(ctx, n8n.ListWorkflowsOptions{
		Active: in.Active,
		Tags:   in.Tags,
		Limit:  in.Limit,
	})
	if err != nil {
		return remoteFailure(err)
	}

	search := strings.ToLower(in.Search)
	out := &listWorkflowsOutput{resultStatus: succeeded(), Workflows: []workflowSummary{}}
	for _, wf := range workflows {
		if search != "" && !strings.Contains(strings.ToLower(wf.Name), search) {
			continue
		}
		tags := []string(wf.Tags)
		if tags == nil {
			tags = []string{}
		}
		out.Workflows = append(out.Workflows, workflowSummary{
			ID:        wf.ID.String(),
			Name:      wf.Name,
			Active:    wf.Active,
			Tags:      tags,
			UpdatedAt: wf.UpdatedAt,
		})
	}
	out.Total = len(out.Workflows)
	return ok(out)
}

type workflowIDInput struct {
	WorkflowID string `json:"workflowId" validate:"required"`
}

type getWorkflowOutput struct {
	resultStatus
	Workflow    *n8n.Workflow `json:"workflow,omitempty"`
	WorkflowURL string        `json:"workflowUrl,omitempty"`
}

func (p *Provider) getWorkflow(ctx context.Context, args map[string]interface{}) Outcome {
	var in workflowIDInput
	if o := p.decodeArgs(args, &in); o != nil {
		return *o
	}

	wf, err := p.client.GetWorkflow(ctx, in.WorkflowID)
	if err != nil {
		return remoteFailure(err)
	}
	return ok(&getWorkflowOutput{
		resultStatus: succeeded(),
		Workflow:     wf,
		WorkflowURL:  p.client.WorkflowURL(in.WorkflowID),
	})
}

type workflowChanges struct {
	Name        *string                `json:"name"`
	Active      *bool                  `json:"active"`
	Nodes       []n8n.Node             `json:"nodes"`
	Connections map[string]interface{} `json:"connections"`
	Settings    map[string]interface{} `json:"settings"`
	Tags        []string               `json:"tags"`
}

type updateWorkflowInput struct {
	WorkflowID string           `json:"workflowId" validate:"required"`
	Changes    *workflowChanges `json:"changes" validate:"required"`
}

type workflowChangeOutput struct {
	resultStatus
	Verb         string `json:"-"`
	WorkflowID   string `json:"workflowId"`
	WorkflowName string `json:"workflowName"`
	Active       bool   `json:"active"`
	WorkflowURL  string `json:"workflowUrl"`
}

func (p *Provider) updateWorkflow(ctx context.Context, args map[string]interface{}) Outcome {
	var in updateWorkflowInput
	if o := p.decodeArgs(args, &in); o != nil {
		return *o
	}

	update := n8n.WorkflowUpdate{
		Name:        in.Changes.Name,
		Active:      in.Changes.Active,
		Nodes:       in.Changes.Nodes,
		Connections: in.Changes.Connections,
		Settings:    in.Changes.Settings,
		Tags:        in.Changes.Tags,
	}
	if update.IsEmpty() {
		return invalidInput("changes must set at least one of name, active, nodes, connections, settings, tags")
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return invalidInput("changes.name must not be empty")
	}

	wf, err := p.client.UpdateWorkflow(ctx, in.WorkflowID, update)
	if err != nil {
		return remoteFailure(err)
	}
	return ok(p.changeOutput("updated", in.WorkflowID, wf))
}

func (p *Provider) setWorkflowActive(active bool) func(context.Context, map[string]interface{}) Outcome {
	return func(ctx context.Context, args map[string]interface{}) Outcome {
		var in workflowIDInput
		if o := p.decodeArgs(args, &in); o != nil {
			return *o
		}

		var (
			wf   *n8n.Workflow
			err  error
			verb string
		)
		if active {
			wf, err = p.client.ActivateWorkflow(ctx, in.WorkflowID)
			verb = "activated"
		} else {
			wf, err = p.client.DeactivateWorkflow(ctx, in.WorkflowID)
			verb = "deactivated"
		}
		if err != nil {
			return remoteFailure(err)
		}
		return ok(p.changeOutput(verb, in.WorkflowID, wf))
	}
}

func (p *Provider) changeOutput(verb, requestedID string, wf *n8n.Workflow) *workflowChangeOutput {
	id := wf.ID.String()
	if id == "" {
		id = requestedID
	}
	return &workflowChangeOutput{
		resultStatus: succeeded(),
		Verb:         verb,
		WorkflowID:   id,
		WorkflowName: wf.Name,
		Active:       wf.Active,
		WorkflowURL:  p.client.WorkflowURL(id),
	}
}

type deleteWorkflowInput struct {
	WorkflowID string `json:"workflowId" validate:"required"`
	Confirm    bool   `json:"confirm"`
}

type deleteWorkflowOutput struct {
	resultStatus
	WorkflowID string `json:"workflowId"`
	Deleted    bool   `json:"deleted"`
	Cancelled  bool   `json:"cancelled"`
}

func (p *Provider) deleteWorkflow(ctx context.Context, args map[string]interface{}) Outcome {
	var in deleteWorkflowInput
	if o := p.decodeArgs(args, &in); o != nil {
		return *o
	}

	out := &deleteWorkflowOutput{resultStatus: succeeded(), WorkflowID: in.WorkflowID}
	if !in.Confirm {
		out.Cancelled = true
		return ok(out)
	}

	if err := p.client.DeleteWorkflow(ctx, in.WorkflowID); err != nil {
		return remoteFailure(err)
	}
	out.Deleted = true
	return ok(out)
}

type executeWorkflowInput struct {
	WorkflowID string                 `json:"workflowId" validate:"required"`
	Data       map[string]interface{} `json:"data"`
}

type executeWorkflowOutput struct {
	resultStatus
	WorkflowID   string `json:"workflowId"`
	ExecutionID  string `json:"executionId"`
	Status       string `json:"status"`
	ExecutionURL string `json:"executionUrl"`
}

func (p *Provider) executeWorkflow(ctx context.Context, args map[string]interface{}) Outcome {
	var in executeWorkflowInput
	if o := p.decodeArgs(args, &in); o != nil {
		return *o
	}

	exec, err := p.client.ExecuteWorkflow(ctx, in.WorkflowID, in.Data)
	if err != nil {
		return remoteFailure(err)
	}
	return ok(&executeWorkflowOutput{
		resultStatus: succeeded(),
		WorkflowID:   in.WorkflowID,
		ExecutionID:  exec.ID.String(),
		Status:       exec.State(),
		ExecutionURL: p.client.ExecutionURL(in.WorkflowID, exec.ID.String()),
	})
}
