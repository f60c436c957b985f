// Package tools implements the MCP tool catalog of the n8n server.
//
// Tools fall into four groups: catalog lookups answered from the local
// store, workflow management and execution inspection forwarded to the n8n
// API, and workflow creation through the creator planner.
//
// Every handler returns an Outcome. A successful outcome carries a payload
// that is both the structured result and, through its Text method, the
// human-readable rendering. A failed outcome carries a Failure tagged as
// invalid input, remote, storage or internal; it is reported as an
// error-flagged result whose structured content holds success=false and the
// error fields every output schema declares. Lookups that simply find
// nothing, such as an unknown node name, are not failures.
//
// Destructive tools (delete-workflow, delete-execution) do nothing unless
// confirm is true.
package tools
