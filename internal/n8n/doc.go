// Package n8n is a client for the public REST API of an n8n instance.
//
// All calls go to <base>/api/v1 with the X-N8N-API-KEY header and JSON
// bodies, under a 30 second timeout. Calls are never retried; creating a
// workflow twice would create two workflows.
//
// Every failure, whether a non-2xx status, a transport error or an
// undecodable body, is returned as *APIError. Workflows and executions are
// passed through largely as n8n shapes them.
package n8n
