package n8n

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// FlexibleID is an identifier the n8n API may send either as a JSON string or
// as a number. It always marshals as a string.
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = FlexibleID(data)
	return nil
}

// String returns the identifier as text.
func (id FlexibleID) String() string {
	return string(id)
}

// TagList holds workflow tag names. The API returns tags either as plain
// strings or as {id, name} objects; both decode to the name.
type TagList []string

// UnmarshalJSON implements json.Unmarshaler.
func (t *TagList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*t = nil
		return nil
	}

	tags := make(TagList, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '{' {
			var obj struct {
				Name string `json:"name"`
			}
			if err := json.Unmarshal(item, &obj); err != nil {
				return err
			}
			tags = append(tags, obj.Name)
			continue
		}
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return fmt.Errorf("tag must be a string or an object: %w", err)
		}
		tags = append(tags, s)
	}
	*t = tags
	return nil
}

// Node is one step of a workflow graph as n8n represents it. Keys without a
// field of their own (disabled, webhookId, notes, onError and so on) are kept
// in Extra and written back unchanged.
type Node struct {
	ID          string                 `json:"id,omitempty"`
	Name        string                 `json:"name"`
	Type        string                 `json:"type"`
	TypeVersion float64                `json:"typeVersion"`
	Position    []float64              `json:"position"`
	Parameters  map[string]interface{} `json:"parameters"`
	Credentials map[string]interface{} `json:"credentials,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var nodeFields = jsonFieldNames(Node{})

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := unknownMembers(data, nodeFields)
	if err != nil {
		return err
	}
	p.Extra = extra
	*n = Node(p)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) {
	type plain Node
	data, err := json.Marshal(plain(n))
	if err != nil {
		return nil, err
	}
	return mergeMembers(data, n.Extra)
}

// Workflow mirrors n8n's workflow document. Connections, Settings and
// StaticData are passed through without interpretation, and keys without a
// field of their own (pinData, versionId, meta and so on) are kept in Extra.
type Workflow struct {
	ID          FlexibleID             `json:"id"`
	Name        string                 `json:"name"`
	Active      bool                   `json:"active"`
	Nodes       []Node                 `json:"nodes"`
	Connections map[string]interface{} `json:"connections"`
	Settings    map[string]interface{} `json:"settings,omitempty"`
	StaticData  interface{}            `json:"staticData,omitempty"`
	Tags        TagList                `json:"tags,omitempty"`
	CreatedAt   string                 `json:"createdAt,omitempty"`
	UpdatedAt   string                 `json:"updatedAt,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var workflowFields = jsonFieldNames(Workflow{})

// UnmarshalJSON implements json.Unmarshaler.
func (w *Workflow) UnmarshalJSON(data []byte) error {
	type plain Workflow
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := unknownMembers(data, workflowFields)
	if err != nil {
		return err
	}
	p.Extra = extra
	*w = Workflow(p)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (w Workflow) MarshalJSON() ([]byte, error) {
	type plain Workflow
	data, err := json.Marshal(plain(w))
	if err != nil {
		return nil, err
	}
	return mergeMembers(data, w.Extra)
}

// Execution mirrors n8n's execution document.
type Execution struct {
	ID             FlexibleID             `json:"id"`
	Finished       bool                   `json:"finished"`
	Mode           string                 `json:"mode"`
	Status         string                 `json:"status,omitempty"`
	RetryOf        FlexibleID             `json:"retryOf,omitempty"`
	RetrySuccessID FlexibleID             `json:"retrySuccessId,omitempty"`
	StartedAt      string                 `json:"startedAt,omitempty"`
	StoppedAt      string                 `json:"stoppedAt,omitempty"`
	WorkflowID     FlexibleID             `json:"workflowId"`
	WorkflowData   *Workflow              `json:"workflowData,omitempty"`
	Data           map[string]interface{} `json:"data,omitempty"`
}

// State summarizes the execution for display: the API status when present,
// otherwise derived from Finished.
func (e Execution) State() string {
	if e.Status != "" {
		return e.Status
	}
	if e.Finished {
		return "completed"
	}
	return "running"
}

// CreateWorkflowRequest is the body of a workflow creation.
type CreateWorkflowRequest struct {
	Name        string                 `json:"name"`
	Nodes       []Node                 `json:"nodes"`
	Connections map[string]interface{} `json:"connections"`
	Active      bool                   `json:"active"`
	Settings    map[string]interface{} `json:"settings"`
	Tags        []string               `json:"tags"`
}

// WorkflowUpdate is a partial workflow change. Only non-nil fields are sent;
// fields left nil keep whatever value n8n holds. An empty but non-nil map or
// slice is sent as is, which clears the field.
type WorkflowUpdate struct {
	Name        *string                `json:"name"`
	Active      *bool                  `json:"active"`
	Nodes       []Node                 `json:"nodes"`
	Connections map[string]interface{} `json:"connections"`
	Settings    map[string]interface{} `json:"settings"`
	Tags        []string               `json:"tags"`
}

// MarshalJSON implements json.Marshaler.
func (u WorkflowUpdate) MarshalJSON() ([]byte, error) {
	body := make(map[string]interface{}, 6)
	if u.Name != nil {
		body["name"] = *u.Name
	}
	if u.Active != nil {
		body["active"] = *u.Active
	}
	if u.Nodes != nil {
		body["nodes"] = u.Nodes
	}
	if u.Connections != nil {
		body["connections"] = u.Connections
	}
	if u.Settings != nil {
		body["settings"] = u.Settings
	}
	if u.Tags != nil {
		body["tags"] = u.Tags
	}
	return json.Marshal(body)
}

// IsEmpty reports whether the update carries no change at all.
func (u WorkflowUpdate) IsEmpty() bool {
	return u.Name == nil && u.Active == nil && u.Nodes == nil &&
		u.Connections == nil && u.Settings == nil && u.Tags == nil
}

// ListWorkflowsOptions filters ListWorkflows. A nil Active lists both states.
type ListWorkflowsOptions struct {
	Active *bool
	Tags   []string
	Limit  int
}

// ListExecutionsOptions filters ListExecutions.
type ListExecutionsOptions struct {
	WorkflowID string
	Status     string
	Limit      int
}

// DefaultExecutionLimit is used when ListExecutionsOptions.Limit is unset.
const DefaultExecutionLimit = 20
