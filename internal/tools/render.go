package tools

import (
	"fmt"
	"strings"

	"n8nmcp/internal/formatting"
	pkgstrings "n8nmcp/pkg/strings"
)

// cell flattens s to one line and shortens it for list output. Structured
// results keep the full value.
func cell(s string) string {
	return pkgstrings.TruncateDescription(s, pkgstrings.DefaultDescriptionMaxLen)
}

func renderFailure(action string, f *Failure) string {
	return fmt.Sprintf("❌ Error %s: %s", action, f.Message)
}

func activeLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func orNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

func (o *searchNodesOutput) Text() string {
	if len(o.Nodes) == 0 {
		return fmt.Sprintf("No nodes found matching %q. Try a different search term.", o.Query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Found %d matching node(s):\n\n", len(o.Nodes))
	for i, n := range o.Nodes {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, n.DisplayName)
		fmt.Fprintf(&b, "   Type: %s\n", n.Name)
		fmt.Fprintf(&b, "   Category: %s\n", n.Category)
		if n.IsAINode {
			b.WriteString("   🤖 AI-Enabled\n")
		}
		fmt.Fprintf(&b, "   Description: %s\n\n", cell(n.Description))
	}
	return b.String()
}

func (o *nodeDocumentationOutput) Text() string {
	if !o.Found {
		return fmt.Sprintf("❌ Node %q not found in database. Use search-nodes to find available nodes.", o.NodeName)
	}

	n := o.Node
	var b strings.Builder
	fmt.Fprintf(&b, "📚 Documentation for %s\n\n", n.DisplayName)
	fmt.Fprintf(&b, "**Type:** %s\n", n.Name)
	fmt.Fprintf(&b, "**Category:** %s\n", n.Category)
	if n.IsAINode {
		b.WriteString("**AI-Enabled:** 🤖 Yes\n")
	}
	fmt.Fprintf(&b, "\n**Description:**\n%s\n\n", n.Description)
	if n.Documentation != "" {
		fmt.Fprintf(&b, "**Documentation:**\n%s\n\n", n.Documentation)
	}
	if !formatting.IsEmptyJSON(n.Parameters) {
		fmt.Fprintf(&b, "**Parameters:**\n%s\n\n", formatting.PrettyJSONText(n.Parameters))
	}
	if !formatting.IsEmptyJSON(n.Examples) {
		fmt.Fprintf(&b, "**Examples:**\n%s\n", formatting.PrettyJSONText(n.Examples))
	}
	return b.String()
}

func (o *categoriesOutput) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "📂 Available node categories (%d):\n\n", len(o.Categories))
	for i, c := range o.Categories {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}
	return b.String()
}

func (o *searchTemplatesOutput) Text() string {
	if len(o.Templates) == 0 {
		return fmt.Sprintf("No templates found matching %q. Try a different search term.", o.Query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Found %d matching template(s):\n\n", len(o.Templates))
	for i, t := range o.Templates {
		fmt.Fprintf(&b, "%d. **%s** (ID: %d)\n", i+1, t.Name, t.ID)
		if t.Category != "" {
			fmt.Fprintf(&b, "   Category: %s\n", t.Category)
		}
		fmt.Fprintf(&b, "   Nodes: %s\n", orNone(t.Nodes))
		fmt.Fprintf(&b, "   Description: %s\n\n", cell(t.Description))
	}
	b.WriteString("💡 Use get-template with an ID to see the full workflow JSON.")
	return b.String()
}

func (o *templateOutput) Text() string {
	if !o.Found {
		return fmt.Sprintf("❌ Template %d not found. Use search-templates to find available templates.", o.TemplateID)
	}

	t := o.Template
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Template: %s\n\n", t.Name)
	fmt.Fprintf(&b, "**ID:** %d\n", t.ID)
	if t.Category != "" {
		fmt.Fprintf(&b, "**Category:** %s\n", t.Category)
	}
	fmt.Fprintf(&b, "**Nodes:** %s\n", strings.Join(t.NodeList(), ", "))
	if t.Tags != "" {
		fmt.Fprintf(&b, "**Tags:** %s\n", t.Tags)
	}
	fmt.Fprintf(&b, "\n**Description:**\n%s\n\n", t.Description)
	fmt.Fprintf(&b, "**Full Workflow JSON:**\n```json\n%s\n```\n\n", formatting.PrettyJSONText(t.WorkflowJSON))
	b.WriteString("💡 You can use this JSON to create a new workflow or modify it for your needs.")
	return b.String()
}

func (o *statsOutput) Text() string {
	var b strings.Builder
	b.WriteString("📊 n8n MCP Database Statistics\n\n")
	fmt.Fprintf(&b, "📦 Total Nodes: %d\n", o.TotalNodes)
	fmt.Fprintf(&b, "🤖 AI-Enabled Nodes: %d\n", o.AINodes)
	fmt.Fprintf(&b, "📂 Categories: %d\n", o.Categories)
	fmt.Fprintf(&b, "🎨 Workflow Templates: %d\n", o.TotalTemplates)
	return b.String()
}

func (o *listWorkflowsOutput) Text() string {
	if len(o.Workflows) == 0 {
		return "No workflows found."
	}

	rows := make([][]string, 0, len(o.Workflows))
	for _, wf := range o.Workflows {
		rows = append(rows, []string{wf.ID, cell(wf.Name), activeLabel(wf.Active), orNone(wf.Tags), wf.UpdatedAt})
	}
	return fmt.Sprintf("Found %d workflow(s):\n\n%s",
		len(o.Workflows),
		formatting.MarkdownTable([]string{"ID", "Name", "Status", "Tags", "Updated"}, rows))
}

func (o *getWorkflowOutput) Text() string {
	wf := o.Workflow
	return fmt.Sprintf("Workflow: %s\nStatus: %s\nNodes: %d\nURL: %s\n\nFull JSON:\n%s",
		wf.Name, activeLabel(wf.Active), len(wf.Nodes), o.WorkflowURL, formatting.PrettyJSON(wf))
}

func (o *workflowChangeOutput) Text() string {
	return fmt.Sprintf("✅ Workflow %s successfully!\n\nWorkflow: %s\nStatus: %s\nURL: %s",
		o.Verb, o.WorkflowName, activeLabel(o.Active), o.WorkflowURL)
}

func (o *deleteWorkflowOutput) Text() string {
	if o.Cancelled {
		return "⚠️ Deletion cancelled. Set confirm=true to proceed with deletion."
	}
	return fmt.Sprintf("✅ Workflow %s deleted successfully.", o.WorkflowID)
}

func (o *executeWorkflowOutput) Text() string {
	return fmt.Sprintf("✅ Workflow executed!\n\nExecution ID: %s\nStatus: %s\nURL: %s",
		o.ExecutionID, o.Status, o.ExecutionURL)
}

func (o *listExecutionsOutput) Text() string {
	if len(o.Executions) == 0 {
		return "No executions found."
	}

	rows := make([][]string, 0, len(o.Executions))
	for _, e := range o.Executions {
		rows = append(rows, []string{e.ID, e.WorkflowID, e.Status, e.Mode, e.StartedAt, e.StoppedAt})
	}
	return fmt.Sprintf("Found %d execution(s):\n\n%s",
		len(o.Executions),
		formatting.MarkdownTable([]string{"ID", "Workflow", "Status", "Mode", "Started", "Stopped"}, rows))
}

func (o *getExecutionOutput) Text() string {
	e := o.Execution
	var b strings.Builder
	fmt.Fprintf(&b, "Execution: %s\n", e.ID)
	fmt.Fprintf(&b, "Workflow: %s\n", e.WorkflowID)
	fmt.Fprintf(&b, "Status: %s\n", e.State())
	if e.Mode != "" {
		fmt.Fprintf(&b, "Mode: %s\n", e.Mode)
	}
	if e.StartedAt != "" {
		fmt.Fprintf(&b, "Started: %s\n", e.StartedAt)
	}
	if e.StoppedAt != "" {
		fmt.Fprintf(&b, "Stopped: %s\n", e.StoppedAt)
	}
	if o.ExecutionURL != "" {
		fmt.Fprintf(&b, "URL: %s\n", o.ExecutionURL)
	}
	if len(e.Data) > 0 {
		fmt.Fprintf(&b, "\nData:\n%s", formatting.PrettyJSON(e.Data))
	}
	return b.String()
}

func (o *deleteExecutionOutput) Text() string {
	if o.Cancelled {
		return "⚠️ Deletion cancelled. Set confirm=true to proceed with deletion."
	}
	return fmt.Sprintf("✅ Execution %s deleted successfully.", o.ExecutionID)
}

func (o *createWorkflowOutput) Text() string {
	var b strings.Builder
	b.WriteString("✅ Workflow created successfully!\n\n")
	fmt.Fprintf(&b, "📝 Name: %s\n", o.WorkflowName)
	fmt.Fprintf(&b, "🆔 ID: %s\n", o.WorkflowID)
	fmt.Fprintf(&b, "🔗 URL: %s\n", o.WorkflowURL)
	fmt.Fprintf(&b, "📊 Nodes: %d\n", o.NodeCount)
	fmt.Fprintf(&b, "🏷️ Tags: %s\n", orNone(o.Tags))
	if o.TemplateUsed != "" {
		fmt.Fprintf(&b, "\n🎯 Based on template: %q\n", o.TemplateUsed)
	}
	b.WriteString("\n💡 Tip: The workflow is created as inactive. Use activate-workflow once you've reviewed the configuration.")
	return b.String()
}
