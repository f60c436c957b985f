package store

import (
	"database/sql"
	"strings"
	"time"
)

// Node describes one reusable n8n node type in the catalog.
//
// Parameters and Examples hold serialized JSON text. ID is the node type name
// (for example "n8n-nodes-base.gmail") and is unique across the catalog; Name
// carries the same value in practice.
type Node struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DisplayName   string `json:"displayName"`
	Description   string `json:"description"`
	Category      string `json:"category,omitempty"`
	Icon          string `json:"icon,omitempty"`
	Documentation string `json:"documentation,omitempty"`
	Parameters    string `json:"parameters"`
	Examples      string `json:"examples,omitempty"`
	IsAINode      bool   `json:"isAiNode"`
}

// Template is a pre-built workflow stored for reuse.
//
// Nodes is the comma-joined list of node type names appearing in WorkflowJSON.
// It is denormalized for cheap containment filtering and must be kept
// consistent by the writer (see DeriveNodeList).
type Template struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category,omitempty"`
	Tags         string    `json:"tags,omitempty"`
	WorkflowJSON string    `json:"workflowJson"`
	Nodes        string    `json:"nodes"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NodeList splits the denormalized node list into trimmed type names.
func (t Template) NodeList() []string {
	return splitList(t.Nodes)
}

// TagList splits the comma-joined tags into trimmed values.
func (t Template) TagList() []string {
	return splitList(t.Tags)
}

// Stats is an aggregate view of the catalog.
type Stats struct {
	TotalNodes     int `json:"totalNodes"`
	TotalTemplates int `json:"totalTemplates"`
	AINodes        int `json:"aiNodes"`
	Categories     int `json:"categories"`
}

// NodeSearchOptions narrows SearchNodes.
type NodeSearchOptions struct {
	Category string
	AIOnly   bool
	Limit    int
}

// TemplateSearchOptions narrows SearchTemplates. Every entry of RequiredNodes
// must occur as a substring of the template's node list.
type TemplateSearchOptions struct {
	Category      string
	RequiredNodes []string
	Limit         int
}

const (
	defaultNodeSearchLimit     = 20
	defaultTemplateSearchLimit = 10
)

// nodeRow is the database shape of a Node.
type nodeRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	DisplayName   string         `db:"display_name"`
	Description   string         `db:"description"`
	Category      sql.NullString `db:"category"`
	Icon          sql.NullString `db:"icon"`
	Documentation sql.NullString `db:"documentation"`
	Parameters    string         `db:"parameters"`
	Examples      sql.NullString `db:"examples"`
	IsAINode      bool           `db:"is_ai_node"`
}

func newNodeRow(n Node) nodeRow {
	params := n.Parameters
	if params == "" {
		params = "{}"
	}
	return nodeRow{
		ID:            n.ID,
		Name:          n.Name,
		DisplayName:   n.DisplayName,
		Description:   n.Description,
		Category:      nullString(n.Category),
		Icon:          nullString(n.Icon),
		Documentation: nullString(n.Documentation),
		Parameters:    params,
		Examples:      nullString(n.Examples),
		IsAINode:      n.IsAINode,
	}
}

func (r nodeRow) toNode() Node {
	return Node{
		ID:            r.ID,
		Name:          r.Name,
		DisplayName:   r.DisplayName,
		Description:   r.Description,
		Category:      r.Category.String,
		Icon:          r.Icon.String,
		Documentation: r.Documentation.String,
		Parameters:    r.Parameters,
		Examples:      r.Examples.String,
		IsAINode:      r.IsAINode,
	}
}

// templateRow is the database shape of a Template.
type templateRow struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	Description  string         `db:"description"`
	WorkflowJSON string         `db:"workflow_json"`
	Nodes        string         `db:"nodes"`
	Category     sql.NullString `db:"category"`
	Tags         sql.NullString `db:"tags"`
	CreatedAt    string         `db:"created_at"`
}

func newTemplateRow(t Template) templateRow {
	return templateRow{
		Name:         t.Name,
		Description:  t.Description,
		WorkflowJSON: t.WorkflowJSON,
		Nodes:        t.Nodes,
		Category:     nullString(t.Category),
		Tags:         nullString(t.Tags),
	}
}

func (r templateRow) toTemplate() Template {
	created, _ := time.Parse(time.RFC3339Nano, r.CreatedAt)
	return Template{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		WorkflowJSON: r.WorkflowJSON,
		Nodes:        r.Nodes,
		Category:     r.Category.String,
		Tags:         r.Tags.String,
		CreatedAt:    created,
	}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
