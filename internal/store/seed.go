package store

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"n8nmcp/pkg/logging"

	"github.com/goccy/go-json"
	"sigs.k8s.io/yaml"
)

//go:embed seed/catalog.yaml
var sampleCatalog []byte

// SeedFile is the on-disk shape of a catalog seed. It may be written as JSON
// or YAML.
type SeedFile struct {
	Nodes     []Node         `json:"nodes"`
	Templates []SeedTemplate `json:"templates"`
}

// SeedTemplate is a template as written in a seed file. Workflow is the
// workflow document itself rather than its serialized form, and the node
// list is derived from it on load.
type SeedTemplate struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Category    string                 `json:"category,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	Workflow    map[string]interface{} `json:"workflow"`
}

// SeedResult reports what Seed wrote.
type SeedResult struct {
	Nodes            int
	Templates        int
	SkippedTemplates []string
}

// SampleCatalog returns the catalog bundled with the binary.
func SampleCatalog() (*SeedFile, error) {
	return ParseSeed(sampleCatalog)
}

// LoadSeedFile reads and parses a JSON or YAML seed file.
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	seed, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return seed, nil
}

// ParseSeed decodes seed data. JSON is a subset of YAML so both are accepted.
func ParseSeed(data []byte) (*SeedFile, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, err
	}

	for i := range seed.Nodes {
		n := &seed.Nodes[i]
		if n.ID == "" {
			n.ID = n.Name
		}
		if n.Name == "" {
			n.Name = n.ID
		}
		if n.ID == "" {
			return nil, fmt.Errorf("node %d has neither id nor name", i)
		}
		if n.Documentation == "" && n.DisplayName != "" {
			n.Documentation = "Documentation for " + n.DisplayName
		}
		if n.Examples == "" {
			n.Examples = "[]"
		}
	}
	return &seed, nil
}

// Seed writes the seed's nodes (upserted) and templates into the store.
// Templates whose name is already stored are skipped, so re-seeding does not
// duplicate them.
func Seed(ctx context.Context, s *Store, seed *SeedFile) (*SeedResult, error) {
	result := &SeedResult{}

	if len(seed.Nodes) > 0 {
		if err := s.InsertNodes(ctx, seed.Nodes); err != nil {
			return nil, fmt.Errorf("failed to insert nodes: %w", err)
		}
		result.Nodes = len(seed.Nodes)
		logging.Info("Store", "Upserted %d nodes", result.Nodes)
	}

	var pending []Template
	for _, st := range seed.Templates {
		exists, err := s.TemplateNameExists(ctx, st.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			result.SkippedTemplates = append(result.SkippedTemplates, st.Name)
			continue
		}

		t, err := st.toTemplate()
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", st.Name, err)
		}
		pending = append(pending, t)
	}

	if len(pending) > 0 {
		if _, err := s.InsertTemplates(ctx, pending); err != nil {
			return nil, fmt.Errorf("failed to insert templates: %w", err)
		}
	}
	result.Templates = len(pending)
	logging.Info("Store", "Inserted %d templates, skipped %d", result.Templates, len(result.SkippedTemplates))

	return result, nil
}

func (st SeedTemplate) toTemplate() (Template, error) {
	if st.Workflow == nil {
		return Template{}, fmt.Errorf("workflow is missing")
	}
	raw, err := json.Marshal(st.Workflow)
	if err != nil {
		return Template{}, err
	}
	nodes, err := DeriveNodeList(string(raw))
	if err != nil {
		return Template{}, err
	}
	return Template{
		Name:         st.Name,
		Description:  st.Description,
		Category:     st.Category,
		Tags:         strings.Join(st.Tags, ", "),
		WorkflowJSON: string(raw),
		Nodes:        nodes,
	}, nil
}

// DeriveNodeList returns the comma-joined node types appearing in a
// serialized workflow, in order of first appearance.
func DeriveNodeList(workflowJSON string) (string, error) {
	var wf struct {
		Nodes []struct {
			Type string `json:"type"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal([]byte(workflowJSON), &wf); err != nil {
		return "", fmt.Errorf("failed to parse workflow JSON: %w", err)
	}

	seen := make(map[string]bool, len(wf.Nodes))
	types := make([]string, 0, len(wf.Nodes))
	for _, n := range wf.Nodes {
		if n.Type == "" || seen[n.Type] {
			continue
		}
		seen[n.Type] = true
		types = append(types, n.Type)
	}
	return strings.Join(types, ", "), nil
}
