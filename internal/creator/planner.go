package creator

import (
	"context"
	"fmt"

	"n8nmcp/internal/n8n"
	"n8nmcp/internal/store"
	"n8nmcp/pkg/logging"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	templateCandidates = 3
	nodeCandidates     = 10
	maxScratchNodes    = 3

	layoutOriginX = 250
	layoutStepX   = 300
	layoutY       = 300
)

// Tags attached to every created workflow.
const (
	TagCreated      = "mcp-created"
	TagFromTemplate = "from-template"
	TagFromScratch  = "from-scratch"
)

// Manual trigger used when nothing in the catalog matches.
const (
	manualTriggerType = "n8n-nodes-base.manualTrigger"
	manualTriggerName = `When clicking "Execute Workflow"`
)

// Catalog is the part of the lookup store the planner reads.
type Catalog interface {
	SearchTemplates(ctx context.Context, query string, opts store.TemplateSearchOptions) ([]store.Template, error)
	SearchNodes(ctx context.Context, query string, opts store.NodeSearchOptions) ([]store.Node, error)
}

// Request describes the workflow a caller asked for.
type Request struct {
	Description string
	Name        string
	UseTemplate bool
}

// Plan is an assembled workflow ready to be sent to n8n.
type Plan struct {
	Name        string
	Nodes       []n8n.Node
	Connections map[string]interface{}
	Tags        []string
	Keywords    []string

	// Template is the template the plan was copied from, nil when the
	// workflow was assembled from individual nodes.
	Template *store.Template
}

// CreateRequest converts the plan into an n8n creation body. Workflows are
// always created inactive.
func (p *Plan) CreateRequest() n8n.CreateWorkflowRequest {
	return n8n.CreateWorkflowRequest{
		Name:        p.Name,
		Nodes:       p.Nodes,
		Connections: p.Connections,
		Active:      false,
		Settings:    map[string]interface{}{},
		Tags:        p.Tags,
	}
}

// Planner assembles workflows from a free-text description using the catalog.
type Planner struct {
	catalog Catalog
	newID   func() string
}

// NewPlanner creates a planner reading from catalog.
func NewPlanner(catalog Catalog) *Planner {
	return &Planner{
		catalog: catalog,
		newID:   func() string { return uuid.New().String() },
	}
}

// Plan builds a workflow for req.
//
// When req.UseTemplate is set, the best matching template is tried first; a
// template whose workflow does not parse or has no nodes is skipped. Otherwise
// up to three matching nodes are laid out left to right without connections.
// With no matching nodes a single manual trigger is used, so the plan never
// has an empty node list. Catalog errors are returned as is.
func (p *Planner) Plan(ctx context.Context, req Request) (*Plan, error) {
	keywords := ExtractKeywords(req.Description)
	query := BuildQuery(keywords)

	plan := &Plan{
		Name:     WorkflowName(req.Description, req.Name),
		Keywords: keywords,
	}

	if req.UseTemplate && len(keywords) > 0 {
		tmpl, wf, err := p.matchTemplate(ctx, query)
		if err != nil {
			return nil, err
		}
		if wf != nil {
			plan.Template = tmpl
			plan.Nodes = wf.Nodes
			plan.Connections = wf.Connections
			plan.Tags = []string{TagCreated, TagFromTemplate}
			logging.Debug("Creator", "Using template %q for %q", tmpl.Name, plan.Name)
			return plan, nil
		}
	}

	nodes, err := p.scratchNodes(ctx, query)
	if err != nil {
		return nil, err
	}
	plan.Nodes = nodes
	plan.Connections = map[string]interface{}{}
	plan.Tags = []string{TagCreated, TagFromScratch}
	logging.Debug("Creator", "Assembled %d nodes for %q", len(nodes), plan.Name)
	return plan, nil
}

type templateWorkflow struct {
	Nodes       []n8n.Node             `json:"nodes"`
	Connections map[string]interface{} `json:"connections"`
}

// matchTemplate returns the top ranked template and its parsed workflow, or
// nils when there is no usable candidate. Ranking is left to the store.
func (p *Planner) matchTemplate(ctx context.Context, query string) (*store.Template, *templateWorkflow, error) {
	templates, err := p.catalog.SearchTemplates(ctx, query, store.TemplateSearchOptions{Limit: templateCandidates})
	if err != nil {
		return nil, nil, err
	}
	if len(templates) == 0 {
		return nil, nil, nil
	}

	tmpl := templates[0]
	var wf templateWorkflow
	if err := json.Unmarshal([]byte(tmpl.WorkflowJSON), &wf); err != nil {
		logging.Warn("Creator", "Template %d (%s) has invalid workflow JSON: %v", tmpl.ID, tmpl.Name, err)
		return nil, nil, nil
	}
	if len(wf.Nodes) == 0 {
		logging.Warn("Creator", "Template %d (%s) has no nodes", tmpl.ID, tmpl.Name)
		return nil, nil, nil
	}
	if wf.Connections == nil {
		wf.Connections = map[string]interface{}{}
	}
	return &tmpl, &wf, nil
}

func (p *Planner) scratchNodes(ctx context.Context, query string) ([]n8n.Node, error) {
	var matches []store.Node
	if query != "" {
		var err error
		matches, err = p.catalog.SearchNodes(ctx, query, store.NodeSearchOptions{Limit: nodeCandidates})
		if err != nil {
			return nil, err
		}
	}

	if len(matches) == 0 {
		return []n8n.Node{p.layoutNode(0, manualTriggerName, manualTriggerType)}, nil
	}

	if len(matches) > maxScratchNodes {
		matches = matches[:maxScratchNodes]
	}
	nodes := make([]n8n.Node, 0, len(matches))
	used := make(map[string]int, len(matches))
	for i, m := range matches {
		name := m.DisplayName
		if name == "" {
			name = m.Name
		}
		// n8n requires node names to be unique within a workflow.
		if n := used[name]; n > 0 {
			used[name] = n + 1
			name = fmt.Sprintf("%s %d", name, n+1)
		} else {
			used[name] = 1
		}
		nodes = append(nodes, p.layoutNode(i, name, m.Name))
	}
	return nodes, nil
}

func (p *Planner) layoutNode(index int, name, nodeType string) n8n.Node {
	return n8n.Node{
		ID:          p.newID(),
		Name:        name,
		Type:        nodeType,
		TypeVersion: 1,
		Position:    []float64{float64(layoutOriginX + layoutStepX*index), layoutY},
		Parameters:  map[string]interface{}{},
	}
}
