package store

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"

	"github.com/rcliao/session-memory/internal/model"
)

// SearchResult is one search hit with a content preview.
type SearchResult struct {
	ID        string `json:"id"`
	Summary   string `json:"summary"`
	Preview   string `json:"preview"`
	CreatedAt int64  `json:"created_at"`
}

// Search returns active memories whose content contains the query,
// newest first.
func (s *Store) Search(ctx context.Context, query string) ([]SearchResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, summary, substr(content, 1, 300), created_at
		 FROM memories WHERE is_deleted = 0 AND content LIKE ?
		 ORDER BY created_at DESC`,
		"%"+query+"%")
	if err != nil {
		return nil, goerr.Wrap(err, "search memories", goerr.V("query", query))
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Summary, &r.Preview, &r.CreatedAt); err != nil {
			return nil, goerr.Wrap(err, "scan search result")
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// List returns all active memories (summary fields only), newest first.
func (s *Store) List(ctx context.Context) ([]model.Memory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, summary, type, importance, created_at
		 FROM memories WHERE is_deleted = 0 ORDER BY created_at DESC`)
	if err != nil {
		return nil, goerr.Wrap(err, "list memories")
	}
	defer rows.Close()

	var memories []model.Memory
	for rows.Next() {
		var m model.Memory
		if err := rows.Scan(&m.ID, &m.Summary, &m.Type, &m.Importance, &m.CreatedAt); err != nil {
			return nil, goerr.Wrap(err, "scan memory")
		}
		memories = append(memories, m)
	}
	return memories, rows.Err()
}

// SessionSources returns the source filenames of every active session
// import, for deduplication before re-importing.
func (s *Store) SessionSources(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT metadata FROM memories
		 WHERE metadata LIKE '%claude-session%' AND is_deleted = 0`)
	if err != nil {
		return nil, goerr.Wrap(err, "query session sources")
	}
	defer rows.Close()

	var sources []string
	seen := map[string]bool{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, goerr.Wrap(err, "scan metadata")
		}
		var meta model.Metadata
		if json.Unmarshal([]byte(raw), &meta) != nil {
			continue
		}
		if meta.Filename != "" && !seen[meta.Filename] {
			seen[meta.Filename] = true
			sources = append(sources, meta.Filename)
		}
	}
	return sources, rows.Err()
}
