package store

import (
	"context"
)

const countCategoriesQuery = `SELECT COUNT(DISTINCT category) FROM nodes WHERE category IS NOT NULL`

// GetStats returns catalog aggregates read from a single snapshot, so the
// totals always agree with CountNodes and CountTemplates at that point.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	var stats Stats

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return stats, err
	}
	defer func() { _ = tx.Rollback() }()

	counts := []struct {
		query string
		dst   *int
	}{
		{countNodesQuery, &stats.TotalNodes},
		{countTemplatesQuery, &stats.TotalTemplates},
		{countAINodesQuery, &stats.AINodes},
		{countCategoriesQuery, &stats.Categories},
	}
	for _, c := range counts {
		n, err := count(ctx, tx, c.query)
		if err != nil {
			return Stats{}, err
		}
		*c.dst = n
	}

	return stats, nil
}
