package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

const (
	insertTemplateQuery = `
		INSERT INTO templates (name, description, workflow_json, nodes, category, tags)
		VALUES (:name, :description, :workflow_json, :nodes, :category, :tags)`

	templateColumns = `t.id, t.name, t.description, t.workflow_json, t.nodes, t.category, t.tags, t.created_at`

	getTemplateByIDQuery = `SELECT ` + templateColumns + ` FROM templates t WHERE t.id = ?`

	templateNameExistsQuery = `SELECT EXISTS(SELECT 1 FROM templates WHERE name = ?)`

	countTemplatesQuery = `SELECT COUNT(*) FROM templates`
)

// InsertTemplate stores a new template and returns its assigned ID.
// CreatedAt is assigned by the database.
func (s *Store) InsertTemplate(ctx context.Context, t Template) (int64, error) {
	return insertTemplate(ctx, s.db, t)
}

// InsertTemplates stores all templates in one transaction and returns their
// IDs in input order. If any insert fails, none of the batch is committed.
func (s *Store) InsertTemplates(ctx context.Context, templates []Template) ([]int64, error) {
	ids := make([]int64, 0, len(templates))
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, t := range templates {
			id, err := insertTemplate(ctx, tx, t)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// SearchTemplates runs a full-text match of query against the template name,
// description, category and tags.
//
// Every entry of opts.RequiredNodes must occur as a substring of the
// template's node list, checked with SQL LIKE. Containment over-matches
// ("slack" also matches "n8n-nodes-base.slackTrigger") and ASCII letters
// compare case-insensitively. A "_" or "%" inside an entry acts as a wildcard.
func (s *Store) SearchTemplates(ctx context.Context, query string, opts TemplateSearchOptions) ([]Template, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + templateColumns + `
		FROM templates t
		JOIN templates_fts ON t.id = templates_fts.rowid
		WHERE templates_fts MATCH ?`)
	args := []interface{}{query}

	if opts.Category != "" {
		sb.WriteString(` AND t.category = ?`)
		args = append(args, opts.Category)
	}
	for _, node := range opts.RequiredNodes {
		sb.WriteString(` AND t.nodes LIKE ?`)
		args = append(args, "%"+node+"%")
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultTemplateSearchLimit
	}
	sb.WriteString(` ORDER BY templates_fts.rank LIMIT ?`)
	args = append(args, limit)

	var rows []templateRow
	if err := s.db.SelectContext(ctx, &rows, sb.String(), args...); err != nil {
		return nil, err
	}

	templates := make([]Template, 0, len(rows))
	for _, r := range rows {
		templates = append(templates, r.toTemplate())
	}
	return templates, nil
}

// GetTemplateByID returns the template with the given ID, or nil when absent.
func (s *Store) GetTemplateByID(ctx context.Context, id int64) (*Template, error) {
	var row templateRow
	err := s.db.GetContext(ctx, &row, getTemplateByIDQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t := row.toTemplate()
	return &t, nil
}

// TemplateNameExists reports whether a template with exactly this name is stored.
func (s *Store) TemplateNameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, templateNameExistsQuery, name); err != nil {
		return false, err
	}
	return exists, nil
}

// CountTemplates returns the number of stored templates.
func (s *Store) CountTemplates(ctx context.Context) (int, error) {
	return count(ctx, s.db, countTemplatesQuery)
}

func insertTemplate(ctx context.Context, e sqlx.ExtContext, t Template) (int64, error) {
	res, err := sqlx.NamedExecContext(ctx, e, insertTemplateQuery, newTemplateRow(t))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
