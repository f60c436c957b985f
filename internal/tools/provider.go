package tools

import (
	"context"
	"fmt"

	"n8nmcp/internal/api"
	"n8nmcp/internal/creator"
	"n8nmcp/internal/n8n"
	"n8nmcp/internal/store"
	"n8nmcp/pkg/logging"

	"github.com/go-playground/validator/v10"
)

// Catalog is the lookup store as seen by the tools.
type Catalog interface {
	creator.Catalog
	GetNodeByName(ctx context.Context, name string) (*store.Node, error)
	GetNodeCategories(ctx context.Context) ([]string, error)
	GetTemplateByID(ctx context.Context, id int64) (*store.Template, error)
	GetStats(ctx context.Context) (store.Stats, error)
}

// WorkflowClient is the n8n API as seen by the tools.
type WorkflowClient interface {
	ListWorkflows(ctx context.Context, opts n8n.ListWorkflowsOptions) ([]n8n.Workflow, error)
	GetWorkflow(ctx context.Context, id string) (*n8n.Workflow, error)
	CreateWorkflow(ctx context.Context, req n8n.CreateWorkflowRequest) (*n8n.Workflow, error)
	UpdateWorkflow(ctx context.Context, id string, update n8n.WorkflowUpdate) (*n8n.Workflow, error)
	DeleteWorkflow(ctx context.Context, id string) error
	ActivateWorkflow(ctx context.Context, id string) (*n8n.Workflow, error)
	DeactivateWorkflow(ctx context.Context, id string) (*n8n.Workflow, error)
	ExecuteWorkflow(ctx context.Context, id string, data map[string]interface{}) (*n8n.Execution, error)
	ListExecutions(ctx context.Context, opts n8n.ListExecutionsOptions) ([]n8n.Execution, error)
	GetExecution(ctx context.Context, id string) (*n8n.Execution, error)
	DeleteExecution(ctx context.Context, id string) error
	WorkflowURL(id string) string
	ExecutionURL(workflowID, executionID string) string
}

// tool binds one tool's metadata to its handler. action names the operation
// in failure messages ("Error searching nodes: ...").
type tool struct {
	meta   api.ToolMetadata
	action string
	run    func(ctx context.Context, args map[string]interface{}) Outcome
}

// Provider implements api.ToolProvider for the n8n tool catalog.
//
// The provider holds no mutable state of its own. Every handler converts
// collaborator errors into a Failure, so ExecuteTool only returns an error
// for an unknown tool name.
type Provider struct {
	catalog  Catalog
	client   WorkflowClient
	planner  *creator.Planner
	validate *validator.Validate

	tools []*tool
	index map[string]*tool
}

// NewProvider creates the tool provider over a catalog and an n8n client.
func NewProvider(catalog Catalog, client WorkflowClient) *Provider {
	p := &Provider{
		catalog:  catalog,
		client:   client,
		planner:  creator.NewPlanner(catalog),
		validate: newValidator(),
		index:    make(map[string]*tool),
	}

	p.register(p.catalogTools()...)
	p.register(p.workflowTools()...)
	p.register(p.executionTools()...)
	p.register(p.creatorTools()...)

	return p
}

func (p *Provider) register(tools ...*tool) {
	for _, t := range tools {
		if _, dup := p.index[t.meta.Name]; dup {
			panic(fmt.Sprintf("tool %s registered twice", t.meta.Name))
		}
		p.tools = append(p.tools, t)
		p.index[t.meta.Name] = t
	}
}

// GetTools returns metadata for all tools in registration order.
func (p *Provider) GetTools() []api.ToolMetadata {
	metas := make([]api.ToolMetadata, 0, len(p.tools))
	for _, t := range p.tools {
		metas = append(metas, t.meta)
	}
	return metas
}

// ExecuteTool runs the named tool and renders its outcome.
//
// Failures are returned as an error-flagged result whose structured content
// still follows the tool's output shape.
func (p *Provider) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	t, found := p.index[toolName]
	if !found {
		return nil, fmt.Errorf("unknown tool: %s", toolName)
	}

	logging.Debug("Tools", "Executing tool %s", toolName)

	outcome := t.run(ctx, args)
	if outcome.Failure != nil {
		logging.Warn("Tools", "Tool %s failed (%s): %s", toolName, outcome.Failure.Kind, outcome.Failure.Message)
	}
	return toResult(t.action, outcome), nil
}

func toResult(action string, o Outcome) *api.CallToolResult {
	if o.Failure != nil {
		return &api.CallToolResult{
			Content:           []interface{}{renderFailure(action, o.Failure)},
			StructuredContent: o.Failure.status(),
			IsError:           true,
		}
	}
	if o.Payload == nil {
		return toResult(action, internalFailure(fmt.Errorf("tool produced no result")))
	}
	return &api.CallToolResult{
		Content:           []interface{}{o.Payload.Text()},
		StructuredContent: o.Payload,
	}
}
