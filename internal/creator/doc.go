// Package creator turns a free-text description into a workflow that can be
// created in n8n.
//
// Keywords are extracted from the description and OR-ed into one full-text
// query. The best matching stored template is copied when it is usable;
// otherwise the top matching catalog nodes are placed on a single row with no
// connections, and a manual trigger stands in when nothing matches at all.
// The resulting Plan always holds at least one node and is always created
// inactive.
package creator
