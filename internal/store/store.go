// Package store reads and writes rows of the memory MCP database: the
// memories table plus its memories_fts full-text mirror. The schema is
// created and migrated by the MCP server; this package never owns it.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/session-memory/internal/model"
)

// ErrStoreMissing means the database file does not exist yet. Write paths
// treat this as fatal; the operator has to initialize the store first.
var ErrStoreMissing = goerr.New("memory database not found")

// Store is a handle on the memory database. One handle per run; the
// pipeline is its sole writer.
type Store struct {
	db      *sql.DB
	path    string
	entropy *rand.Rand
}

// Open connects to an existing memory database. It fails with
// ErrStoreMissing when the file is absent rather than creating an empty,
// schemaless one.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, goerr.Wrap(ErrStoreMissing, "run the memory MCP server once to initialize it", goerr.V("path", path))
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, goerr.Wrap(err, "open db", goerr.V("path", path))
	}

	return &Store{
		db:      db,
		path:    path,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) newID() string {
	return "mem_" + strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String())
}

// InsertParams holds one chunk or document to persist.
type InsertParams struct {
	Content    string
	Summary    string
	Type       string
	Importance float64
	Meta       model.Metadata
}

// Insert writes one memory row and its full-text mirror row in a single
// transaction, so the mirror never drifts by one record. Both timestamps
// are set to now.
func (s *Store) Insert(ctx context.Context, p InsertParams) (*model.Memory, error) {
	now := time.Now().UTC().UnixMilli()
	id := s.newID()

	metaJSON, err := json.Marshal(p.Meta)
	if err != nil {
		return nil, goerr.Wrap(err, "marshal metadata")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "begin insert")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO memories (id, content, type, importance, created_at,
		 last_accessed, is_deleted, summary, access_count, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, 0, ?, 0, ?)`,
		id, p.Content, p.Type, p.Importance, now, now, p.Summary, string(metaJSON))
	if err != nil {
		return nil, goerr.Wrap(err, "insert memory", goerr.V("id", id))
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO memories_fts (memory_id, content, summary) VALUES (?, ?, ?)`,
		id, p.Content, p.Summary)
	if err != nil {
		return nil, goerr.Wrap(err, "insert fts entry", goerr.V("id", id))
	}

	if err := tx.Commit(); err != nil {
		return nil, goerr.Wrap(err, "commit insert", goerr.V("id", id))
	}

	return &model.Memory{
		ID:           id,
		Content:      p.Content,
		Type:         p.Type,
		Importance:   p.Importance,
		CreatedAt:    now,
		LastAccessed: now,
		Summary:      p.Summary,
		Metadata:     string(metaJSON),
	}, nil
}

// RebuildFTS drops the full-text mirror and repopulates it from all
// non-deleted memories. This is the authoritative recovery path whenever
// incremental mirroring may have drifted. Returns the rebuilt row count.
func (s *Store) RebuildFTS(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, goerr.Wrap(err, "begin rebuild")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM memories_fts`); err != nil {
		return 0, goerr.Wrap(err, "clear fts index")
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO memories_fts (memory_id, content, summary)
		 SELECT id, content, summary FROM memories WHERE is_deleted = 0`); err != nil {
		return 0, goerr.Wrap(err, "repopulate fts index")
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories_fts`).Scan(&count); err != nil {
		return 0, goerr.Wrap(err, "count fts entries")
	}

	if err := tx.Commit(); err != nil {
		return 0, goerr.Wrap(err, "commit rebuild")
	}
	return count, nil
}

// SoftDelete flips is_deleted on the first active memory whose id starts
// with prefix. The mirror row stays behind; search filters on is_deleted,
// so it is stale but unreachable.
func (s *Store) SoftDelete(ctx context.Context, prefix string) (*model.Memory, error) {
	var m model.Memory
	err := s.db.QueryRowContext(ctx,
		`SELECT id, summary FROM memories WHERE id LIKE ? AND is_deleted = 0 LIMIT 1`,
		prefix+"%").Scan(&m.ID, &m.Summary)
	if err == sql.ErrNoRows {
		return nil, goerr.New("no active memory with id prefix", goerr.V("prefix", prefix))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "find memory", goerr.V("prefix", prefix))
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE memories SET is_deleted = 1 WHERE id = ?`, m.ID); err != nil {
		return nil, goerr.Wrap(err, "soft delete", goerr.V("id", m.ID))
	}
	m.IsDeleted = true
	return &m, nil
}
