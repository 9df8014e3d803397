package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath    string      `json:"db_path"`
	SizeBytes int64       `json:"size_bytes"`
	Active    int         `json:"active"`
	Deleted   int         `json:"deleted"`
	Types     []TypeCount `json:"types"`
}

// TypeCount is the active-memory count for one type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Stats returns counts over the memories table plus the database file size.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path}

	if info, err := os.Stat(s.path); err == nil {
		st.SizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories WHERE is_deleted = 0`).Scan(&st.Active)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories WHERE is_deleted = 1`).Scan(&st.Deleted)

	rows, err := s.db.QueryContext(ctx,
		`SELECT type, COUNT(*) FROM memories WHERE is_deleted = 0 GROUP BY type ORDER BY COUNT(*) DESC`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var tc TypeCount
		rows.Scan(&tc.Type, &tc.Count)
		st.Types = append(st.Types, tc)
	}
	return st, rows.Err()
}
