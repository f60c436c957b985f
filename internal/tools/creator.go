package tools

import (
	"context"
	"strings"

	"n8nmcp/internal/api"
	"n8nmcp/internal/creator"
)

func (p *Provider) creatorTools() []*tool {
	return []*tool{
		{
			meta: api.ToolMetadata{
				Name:        "create-workflow",
				Title:       "Create Workflow",
				Description: "Create a new n8n workflow from a natural language description, starting from a matching template when one exists",
				Args: []api.ArgMetadata{
					{Name: "description", Type: "string", Required: true, Description: "What the workflow should do"},
					{Name: "name", Type: "string", Description: "Workflow name. Derived from the description when omitted"},
					{Name: "useTemplate", Type: "boolean", Description: "Start from a matching template when possible", Default: true},
				},
				Output: outputFields(
					api.ArgMetadata{Name: "workflowId", Type: "string", Description: "ID of the created workflow"},
					api.ArgMetadata{Name: "workflowName", Type: "string", Description: "Name of the created workflow"},
					api.ArgMetadata{Name: "workflowUrl", Type: "string", Description: "Editor URL of the created workflow"},
					api.ArgMetadata{Name: "nodeCount", Type: "integer", Description: "Number of nodes in the workflow"},
					api.ArgMetadata{Name: "tags", Type: "array", Description: "Tags attached to the workflow", Schema: stringArraySchema},
					api.ArgMetadata{Name: "templateUsed", Type: "string", Description: "Name of the template the workflow was copied from"},
					api.ArgMetadata{Name: "keywords", Type: "array", Description: "Keywords extracted from the description", Schema: stringArraySchema},
				),
			},
			action: "creating workflow",
			run:    p.createWorkflow,
		},
	}
}

type createWorkflowInput struct {
	Description string `json:"description" validate:"required"`
	Name        string `json:"name"`
	UseTemplate *bool  `json:"useTemplate"`
}

type createWorkflowOutput struct {
	resultStatus
	WorkflowID   string   `json:"workflowId"`
	WorkflowName string   `json:"workflowName"`
	WorkflowURL  string   `json:"workflowUrl"`
	NodeCount    int      `json:"nodeCount"`
	Tags         []string `json:"tags"`
	TemplateUsed string   `json:"templateUsed,omitempty"`
	Keywords     []string `json:"keywords"`
}

func (p *Provider) createWorkflow(ctx context.Context, args map[string]interface{}) Outcome {
	var in createWorkflowInput
	if o := p.decodeArgs(args, &in); o != nil {
		return *o
	}
	if strings.TrimSpace(in.Description) == "" {
		return invalidInput("description is required")
	}

	useTemplate := true
	if in.UseTemplate != nil {
		useTemplate = *in.UseTemplate
	}

	plan, err := p.planner.Plan(ctx, creator.Request{
		Description: in.Description,
		Name:        in.Name,
		UseTemplate: useTemplate,
	})
	if err != nil {
		return storageFailure(err)
	}

	wf, err := p.client.CreateWorkflow(ctx, plan.CreateRequest())
	if err != nil {
		return remoteFailure(err)
	}

	out := &createWorkflowOutput{
		resultStatus: succeeded(),
		WorkflowID:   wf.ID.String(),
		WorkflowName: plan.Name,
		NodeCount:    len(plan.Nodes),
		Tags:         plan.Tags,
		Keywords:     plan.Keywords,
	}
	if wf.Name != "" {
		out.WorkflowName = wf.Name
	}
	out.WorkflowURL = p.client.WorkflowURL(out.WorkflowID)
	if plan.Template != nil {
		out.TemplateUsed = plan.Template.Name
	}
	if out.Keywords == nil {
		out.Keywords = []string{}
	}
	return ok(out)
}
