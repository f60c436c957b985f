// Package store is the local lookup database of n8n node types and workflow
// templates.
//
// The database is a single SQLite file opened through sqlx with the pure Go
// modernc.org/sqlite driver. Both tables are paired with an FTS5 shadow index
// that triggers keep in sync on every insert, update and delete, so search
// results always reflect committed rows.
//
// # Nodes
//
// Node descriptors are keyed by ID (the node type name such as
// "n8n-nodes-base.gmail"). UpsertNode overwrites every column except ID and
// Name on conflict; InsertNodes does the same for a batch inside one
// transaction.
//
// # Templates
//
// Templates carry their workflow as serialized JSON plus a denormalized,
// comma-joined list of the node types it contains. The writer keeps that list
// consistent with the workflow; DeriveNodeList computes it. SearchTemplates
// filters on the list by substring containment.
//
// # Not found
//
// GetNodeByName and GetTemplateByID return nil without an error when the row
// does not exist. Every other failure, including malformed full-text query
// syntax, is returned as the driver reported it.
//
// # Seeding
//
// The sample catalog embedded in the binary, or any JSON/YAML file in the
// same shape, can be written with Seed.
package store
