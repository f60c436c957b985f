package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

const (
	upsertNodeQuery = `
		INSERT INTO nodes (id, name, display_name, description, category, icon, documentation, parameters, examples, is_ai_node)
		VALUES (:id, :name, :display_name, :description, :category, :icon, :documentation, :parameters, :examples, :is_ai_node)
		ON CONFLICT(id) DO UPDATE SET
			display_name = excluded.display_name,
			description = excluded.description,
			category = excluded.category,
			icon = excluded.icon,
			documentation = excluded.documentation,
			parameters = excluded.parameters,
			examples = excluded.examples,
			is_ai_node = excluded.is_ai_node`

	nodeColumns = `n.id, n.name, n.display_name, n.description, n.category, n.icon,
		n.documentation, n.parameters, n.examples, n.is_ai_node`

	getNodeByNameQuery = `SELECT ` + nodeColumns + ` FROM nodes n WHERE n.name = ?`

	listCategoriesQuery = `
		SELECT DISTINCT category FROM nodes
		WHERE category IS NOT NULL
		ORDER BY category`

	countNodesQuery   = `SELECT COUNT(*) FROM nodes`
	countAINodesQuery = `SELECT COUNT(*) FROM nodes WHERE is_ai_node = 1`
)

// UpsertNode inserts the node or, when a node with the same ID exists,
// overwrites every field except ID and Name.
func (s *Store) UpsertNode(ctx context.Context, node Node) error {
	_, err := s.db.NamedExecContext(ctx, upsertNodeQuery, newNodeRow(node))
	return err
}

// InsertNodes upserts all nodes in one transaction. If any node fails, none
// of the batch is committed.
func (s *Store) InsertNodes(ctx context.Context, nodes []Node) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, node := range nodes {
			if _, err := tx.NamedExecContext(ctx, upsertNodeQuery, newNodeRow(node)); err != nil {
				return err
			}
		}
		return nil
	})
}

// SearchNodes runs a full-text match of query against the node name,
// display name, description, category and documentation. Results follow the
// full-text engine's relevance order. Malformed query syntax is returned as
// an error; no match yields an empty slice.
func (s *Store) SearchNodes(ctx context.Context, query string, opts NodeSearchOptions) ([]Node, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + nodeColumns + `
		FROM nodes n
		JOIN nodes_fts ON n.rowid = nodes_fts.rowid
		WHERE nodes_fts MATCH ?`)
	args := []interface{}{query}

	if opts.Category != "" {
		sb.WriteString(` AND n.category = ?`)
		args = append(args, opts.Category)
	}
	if opts.AIOnly {
		sb.WriteString(` AND n.is_ai_node = 1`)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultNodeSearchLimit
	}
	sb.WriteString(` ORDER BY nodes_fts.rank LIMIT ?`)
	args = append(args, limit)

	var rows []nodeRow
	if err := s.db.SelectContext(ctx, &rows, sb.String(), args...); err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(rows))
	for _, r := range rows {
		nodes = append(nodes, r.toNode())
	}
	return nodes, nil
}

// GetNodeByName returns the node with the exact name, or nil when absent.
func (s *Store) GetNodeByName(ctx context.Context, name string) (*Node, error) {
	var row nodeRow
	err := s.db.GetContext(ctx, &row, getNodeByNameQuery, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	node := row.toNode()
	return &node, nil
}

// GetNodeCategories returns the distinct non-null categories in ascending order.
func (s *Store) GetNodeCategories(ctx context.Context) ([]string, error) {
	return getNodeCategories(ctx, s.db)
}

// CountNodes returns the number of nodes in the catalog.
func (s *Store) CountNodes(ctx context.Context) (int, error) {
	return count(ctx, s.db, countNodesQuery)
}

func getNodeCategories(ctx context.Context, q sqlx.QueryerContext) ([]string, error) {
	categories := []string{}
	if err := sqlx.SelectContext(ctx, q, &categories, listCategoriesQuery); err != nil {
		return nil, err
	}
	return categories, nil
}

func count(ctx context.Context, q sqlx.QueryerContext, query string) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, q, &n, query); err != nil {
		return 0, err
	}
	return n, nil
}
