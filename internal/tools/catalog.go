package tools

import (
	"context"

	"n8nmcp/internal/api"
	"n8nmcp/internal/store"
)

const (
	defaultNodeLimit     = 20
	defaultTemplateLimit = 10
)

// outputFields prefixes fields with the status fields shared by every
// structured result.
func outputFields(fields ...api.ArgMetadata) []api.ArgMetadata {
	base := []api.ArgMetadata{
		{Name: "success", Type: "boolean", Required: true, Description: "Whether the call succeeded"},
		{Name: "error", Type: "string", Description: "Failure message, set when success is false"},
		{
			Name:        "errorKind",
			Type:        "string",
			Description: "Failure class, set when success is false",
			Schema: map[string]interface{}{
				"type": "string",
				"enum": []string{
					string(FailureInvalidInput), string(FailureRemote),
					string(FailureStorage), string(FailureInternal),
				},
			},
		},
		{Name: "statusCode", Type: "integer", Description: "HTTP status of a failed n8n call"},
	}
	return append(base, fields...)
}

func limitSchema(def int) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 100, "default": def}
}

var stringArraySchema = map[string]interface{}{
	"type":  "array",
	"items": map[string]interface{}{"type": "string"},
}

func (p *Provider) catalogTools() []*tool {
	return []*tool{
		{
			meta: api.ToolMetadata{
				Name:        "search-nodes",
				Title:       "Search n8n Nodes",
				Description: "Search the catalog of n8n nodes by name, description or functionality",
				Args: []api.ArgMetadata{
					{Name: "query", Type: "string", Required: true, Description: `Search query (e.g. "email", "google sheets", "slack")`},
					{Name: "category", Type: "string", Description: "Only return nodes in this exact category"},
					{Name: "aiOnly", Type: "boolean", Description: "Only return AI/LangChain nodes", Default: false},
					{Name: "limit", Type: "integer", Description: "Maximum results", Schema: limitSchema(defaultNodeLimit)},
				},
				Output: outputFields(
					api.ArgMetadata{Name: "nodes", Type: "array", Description: "Matching nodes in relevance order"},
					api.ArgMetadata{Name: "total", Type: "integer", Description: "Number of nodes returned"},
				),
				ReadOnly: true,
			},
			action: "searching nodes",
			run:    p.searchNodes,
		},
		{
			meta: api.ToolMetadata{
				Name:        "get-node-documentation",
				Title:       "Get Node Documentation",
				Description: "Get documentation, default parameters and examples for a specific n8n node",
				Args: []api.ArgMetadata{
					{Name: "nodeName", Type: "string", Required: true, Description: `Exact node name (e.g. "n8n-nodes-base.gmail")`},
				},
				Output: outputFields(
					api.ArgMetadata{Name: "found", Type: "boolean", Description: "Whether the node exists"},
					api.ArgMetadata{Name: "nodeName", Type: "string", Description: "The requested node name"},
					api.ArgMetadata{Name: "node", Type: "object", Description: "The node descriptor when found"},
				),
				ReadOnly: true,
			},
			action: "getting node documentation",
			run:    p.getNodeDocumentation,
		},
		{
			meta: api.ToolMetadata{
				Name:        "list-node-categories",
				Title:       "List Node Categories",
				Description: "List all node categories in the catalog",
				Args:        []api.ArgMetadata{},
				Output: outputFields(
					api.ArgMetadata{Name: "categories", Type: "array", Description: "Category names in ascending order", Schema: stringArraySchema},
					api.ArgMetadata{Name: "total", Type: "integer", Description: "Number of categories"},
				),
				ReadOnly: true,
			},
			action: "listing categories",
			run:    p.listNodeCategories,
		},
		{
			meta: api.ToolMetadata{
				Name:        "search-templates",
				Title:       "Search Workflow Templates",
				Description: "Search pre-built n8n workflow templates",
				Args: []api.ArgMetadata{
					{Name: "query", Type: "string", Required: true, Description: "Search query describing the automation you need"},
					{Name: "category", Type: "string", Description: "Only return templates in this exact category"},
					{Name: "nodes", Type: "array", Description: `Node names every template must contain (e.g. ["gmail", "slack"])`, Schema: stringArraySchema},
					{Name: "limit", Type: "integer", Description: "Maximum results", Schema: limitSchema(defaultTemplateLimit)},
				},
				Output: outputFields(
					api.ArgMetadata{Name: "templates", Type: "array", Description: "Matching templates in relevance order"},
					api.ArgMetadata{Name: "total", Type: "integer", Description: "Number of templates returned"},
				),
				ReadOnly: true,
			},
			action: "searching templates",
			run:    p.searchTemplates,
		},
		{
			meta: api.ToolMetadata{
				Name:        "get-template",
				Title:       "Get Template Details",
				Description: "Get the full workflow JSON of a specific template",
				Args: []api.ArgMetadata{
					{Name: "templateId", Type: "integer", Required: true, Description: "The ID of the template to retrieve"},
				},
				Output: outputFields(
					api.ArgMetadata{Name: "found", Type: "boolean", Description: "Whether the template exists"},
					api.ArgMetadata{Name: "templateId", Type: "integer", Description: "The requested template ID"},
					api.ArgMetadata{Name: "template", Type: "object", Description: "The template when found"},
				),
				ReadOnly: true,
			},
			action: "getting template",
			run:    p.getTemplate,
		},
		{
			meta: api.ToolMetadata{
				Name:        "get-database-stats",
				Title:       "Get Database Statistics",
				Description: "Get statistics about the nodes and templates database",
				Args:        []api.ArgMetadata{},
				Output: outputFields(
					api.ArgMetadata{Name: "totalNodes", Type: "integer", Description: "Number of nodes"},
					api.ArgMetadata{Name: "totalTemplates", Type: "integer", Description: "Number of templates"},
					api.ArgMetadata{Name: "aiNodes", Type: "integer", Description: "Number of AI nodes"},
					api.ArgMetadata{Name: "categories", Type: "integer", Description: "Number of distinct categories"},
				),
				ReadOnly: true,
			},
			action: "getting statistics",
			run:    p.getDatabaseStats,
		},
	}
}

type searchNodesInput struct {
	Query    string `json:"query" validate:"required"`
	Category string `json:"category"`
	AIOnly   bool   `json:"aiOnly"`
	Limit    int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

type nodeSummary struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsAINode    bool   `json:"isAiNode"`
}

type searchNodesOutput struct {
	resultStatus
	Query string        `json:"-"`
	Nodes []nodeSummary `json:"nodes"`
	Total int           `json:"total"`
}

func (p *Provider) searchNodes(ctx context.Context, args map[string]interface{}) Outcome {
	var in searchNodesInput
	if o := p.decodeArgs(args, &in); o != nil {
		return *o
	}
	if in.Limit == 0 {
		in.Limit = defaultNodeLimit
	}

	nodes, err := p.catalog.SearchNodes(ctx, in.Query, store.NodeSearchOptions{
		Category: in.Category,
		AIOnly:   in.AIOnly,
		Limit:    in.Limit,
	})
	if err != nil {
		return storageFailure(err)
	}

	out := &searchNodesOutput{resultStatus: succeeded(), Query: in.Query, Nodes: make([]nodeSummary, 0, len(nodes))}
	for _, n := range nodes {
		out.Nodes = append(out.Nodes, nodeSummary{
			Name:        n.Name,
			DisplayName: n.DisplayName,
			Description: n.Description,
			Category:    n.Category,
			IsAINode:    n.IsAINode,
		})
	}
	out.Total = len(out.Nodes)
	return ok(out)
}

type getNodeDocumentationInput struct {
	NodeName string `json:"nodeName" validate:"required"`
}

type nodeDocumentationOutput struct {
	resultStatus
	Found    bool        `json:"found"`
	NodeName string      `json:"nodeName"`
	Node     *store.Node `json:"node,omitempty"`
}

func (p *Provider) getNodeDocumentation(ctx context.Context, args map[string]interface{}) Outcome {
	var in getNodeDocumentationInput
	if o := p.decodeArgs(args, &in); o != nil {
		return *o
	}

	node, err := p.catalog.GetNodeByName(ctx, in.NodeName)
	if err != nil {
		return storageFailure(err)
	}
	return ok(&nodeDocumentationOutput{
		resultStatus: succeeded(),
		Found:        node != nil,
		NodeName:     in.NodeName,
		Node:         node,
	})
}

type categoriesOutput struct {
	resultStatus
	Categories []string `json:"categories"`
	Total      int      `json:"total"`
}

func (p *Provider) listNodeCategories(ctx context.Context, _ map[string]interface{}) Outcome {
	categories, err := p.catalog.GetNodeCategories(ctx)
	if err != nil {
		return storageFailure(err)
	}
	if categories == nil {
		categories = []string{}
	}
	return ok(&categoriesOutput{resultStatus: succeeded(), Categories: categories, Total: len(categories)})
}

type searchTemplatesInput struct {
	Query    string   `json:"query" validate:"required"`
	Category string   `json:"category"`
	Nodes    []string `json:"nodes" validate:"omitempty,dive,required"`
	Limit    int      `json:"limit" validate:"omitempty,min=1,max=100"`
}

type templateSummary struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Nodes       []string `json:"nodes"`
	Category    string   `json:"category,omitempty"`
}

type searchTemplatesOutput struct {
	resultStatus
	Query     string            `json:"-"`
	Templates []templateSummary `json:"templates"`
	Total     int               `json:"total"`
}

func (p *Provider) searchTemplates(ctx context.Context, args map[string]interface{}) Outcome {
	var in searchTemplatesInput
	if o := p.decodeArgs(args, &in); o != nil {
		return *o
	}
	if in.Limit == 0 {
		in.Limit = defaultTemplateLimit
	}

	templates, err := p.catalog.SearchTemplates(ctx, in.Query, store.TemplateSearchOptions{
		Category:      in.Category,
		RequiredNodes: in.Nodes,
		Limit:         in.Limit,
	})
	if err != nil {
		return storageFailure(err)
	}

	out := &searchTemplatesOutput{resultStatus: succeeded(), Query: in.Query, Templates: make([]templateSummary, 0, len(templates))}
	for _, t := range templates {
		out.Templates = append(out.Templates, templateSummary{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Nodes:       t.NodeList(),
			Category:    t.Category,
		})
	}
	out.Total = len(out.Templates)
	return ok(out)
}

type getTemplateInput struct {
	TemplateID int64 `json:"templateId" validate:"required,min=1"`
}

type templateOutput struct {
	resultStatus
	Found      bool            `json:"found"`
	TemplateID int64           `json:"templateId"`
	Template   *store.Template `json:"template,omitempty"`
}

func (p *Provider) getTemplate(ctx context.Context, args map[string]interface{}) Outcome {
	var in getTemplateInput
	if o := p.decodeArgs(args, &in); o != nil {
		return *o
	}

	tmpl, err := p.catalog.GetTemplateByID(ctx, in.TemplateID)
	if err != nil {
		return storageFailure(err)
	}
	return ok(&templateOutput{
		resultStatus: succeeded(),
		Found:        tmpl != nil,
		TemplateID:   in.TemplateID,
		Template:     tmpl,
	})
}

type statsOutput struct {
	resultStatus
	store.Stats
}

func (p *Provider) getDatabaseStats(ctx context.Context, _ map[string]interface{}) Outcome {
	stats, err := p.catalog.GetStats(ctx)
	if err != nil {
		return storageFailure(err)
	}
	return ok(&statsOutput{resultStatus: succeeded(), Stats: stats})
}
