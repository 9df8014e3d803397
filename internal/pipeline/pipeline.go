// Package pipeline orchestrates the batch ingestion of session logs:
// enumerate, extract, segment, deduplicate, persist, rebuild the index.
//
// Processing is strictly sequential, one session at a time. A run that is
// interrupted mid-session can leave that session partially imported;
// deduplication will then skip it on the next run. There is no detection
// or repair for that case.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/rcliao/session-memory/internal/chunker"
	"github.com/rcliao/session-memory/internal/config"
	"github.com/rcliao/session-memory/internal/model"
	"github.com/rcliao/session-memory/internal/store"
	"github.com/rcliao/session-memory/internal/transcript"
)

// Mode selects what a run does.
type Mode int

const (
	// ModeFull converts sessions and imports the resulting chunks.
	ModeFull Mode = iota
	// ModeConvert extracts and segments without touching the store.
	ModeConvert
	// ModeImport is ModeFull under a name matching the original flag; the
	// conversion step has no separate durable output to reuse.
	ModeImport
	// ModeRebuildFTS only rebuilds the full-text mirror.
	ModeRebuildFTS
)

// NeedsStore reports whether the mode writes to the database.
func (m Mode) NeedsStore() bool {
	return m != ModeConvert
}

// Minimum raw records for a session to be worth storing.
const minRecords = 5

// Subordinate agent logs are excluded from ingestion.
const agentLogPrefix = "agent-"

// Result summarizes one run.
type Result struct {
	Sessions int `json:"sessions"` // session files found
	Chunks   int `json:"chunks"`   // chunks produced
	Imported int `json:"imported"` // chunks persisted
	Skipped  int `json:"skipped"`  // sessions skipped (dup, small, empty)
	Failed   int `json:"failed"`   // chunks that failed to persist
}

// Pipeline runs batch ingestion against a single store handle. The store
// may be nil only for ModeConvert.
type Pipeline struct {
	cfg config.Config
	st  *store.Store
	log *slog.Logger
}

func New(cfg config.Config, st *store.Store, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{cfg: cfg, st: st, log: log}
}

// Run executes one batch over the session source tree.
func (p *Pipeline) Run(ctx context.Context, mode Mode) (*Result, error) {
	if mode.NeedsStore() && p.st == nil {
		return nil, store.ErrStoreMissing
	}

	if mode == ModeRebuildFTS {
		count, err := p.st.RebuildFTS(ctx)
		if err != nil {
			return nil, err
		}
		p.log.Info("FTS index rebuilt", "entries", count)
		return &Result{}, nil
	}

	files, err := p.sessionFiles()
	if err != nil {
		return nil, err
	}
	p.log.Info("found session files", "count", len(files), "dir", p.cfg.ProjectsDir)

	var existing []string
	if p.st != nil {
		existing, err = p.st.SessionSources(ctx)
		if err != nil {
			return nil, err
		}
	}

	res := &Result{Sessions: len(files)}
	for _, path := range files {
		p.ingestSession(ctx, path, mode, existing, res)
	}

	p.log.Info("run complete",
		"imported", res.Imported, "skipped", res.Skipped, "failed", res.Failed)

	// Incremental mirror writes happened per chunk, but a full rebuild
	// after the run keeps the index trustworthy even if they drifted.
	if mode != ModeConvert {
		count, err := p.st.RebuildFTS(ctx)
		if err != nil {
			return res, err
		}
		p.log.Info("FTS index rebuilt", "entries", count)
	}

	return res, nil
}

func (p *Pipeline) ingestSession(ctx context.Context, path string, mode Mode, existing []string, res *Result) {
	project := filepath.Base(filepath.Dir(path))
	stem := strings.TrimSuffix(filepath.Base(path), ".jsonl")
	sourceName := project + "_" + stem

	for _, src := range existing {
		if strings.Contains(src, sourceName) {
			res.Skipped++
			return
		}
	}

	records, lines, err := transcript.ReadSessionFile(path)
	if err != nil {
		p.log.Warn("unreadable session file", "path", path, "error", err)
		res.Skipped++
		return
	}
	if records < minRecords {
		res.Skipped++
		return
	}

	session := transcript.Session{Project: project, ID: stem, Lines: lines}
	chunks := chunker.Segment(session, chunker.Budget)
	if len(chunks) == 0 {
		res.Skipped++
		return
	}
	res.Chunks += len(chunks)

	p.log.Info("session",
		"project", transcript.DeriveProjectName(project),
		"records", records, "chunks", len(chunks))

	if mode == ModeConvert {
		return
	}

	for i, c := range chunks {
		_, err := p.st.Insert(ctx, store.InsertParams{
			Content:    c.Text,
			Summary:    c.Summary,
			Type:       model.TypeFact,
			Importance: model.ImportanceSession,
			Meta: model.Metadata{
				Source:   model.SourceSession,
				Filename: sourceName,
				Chunk:    i,
			},
		})
		if err != nil {
			// One lost chunk must not abort the rest of the session.
			p.log.Error("chunk insert failed", "source", sourceName, "chunk", i, "error", err)
			res.Failed++
			continue
		}
		res.Imported++
	}
}

// sessionFiles enumerates all session logs under the projects directory,
// one subdirectory per project, excluding subordinate agent logs.
func (p *Pipeline) sessionFiles() ([]string, error) {
	entries, err := os.ReadDir(p.cfg.ProjectsDir)
	if err != nil {
		return nil, goerr.Wrap(err, "read projects dir", goerr.V("dir", p.cfg.ProjectsDir))
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(p.cfg.ProjectsDir, e.Name(), "*.jsonl"))
		if err != nil {
			continue
		}
		sort.Strings(matches)
		for _, m := range matches {
			if strings.HasPrefix(filepath.Base(m), agentLogPrefix) {
				continue
			}
			files = append(files, m)
		}
	}
	return files, nil
}
