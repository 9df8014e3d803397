package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/rcliao/session-memory/internal/model"
	"github.com/rcliao/session-memory/internal/store"
	"github.com/rcliao/session-memory/internal/summary"
)

// ImportDocs imports a folder of markdown files, one memory per file. The
// filename lands in metadata, the content is stored verbatim. Document
// imports carry a higher importance than session chunks.
func (p *Pipeline) ImportDocs(ctx context.Context, folder string) (*Result, error) {
	if p.st == nil {
		return nil, store.ErrStoreMissing
	}

	files, err := filepath.Glob(filepath.Join(folder, "*.md"))
	if err != nil || len(files) == 0 {
		return nil, goerr.New("no .md files found", goerr.V("folder", folder))
	}

	res := &Result{}
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			p.log.Warn("unreadable file", "path", path, "error", err)
			res.Failed++
			continue
		}
		content := strings.TrimSpace(string(data))
		if content == "" {
			res.Skipped++
			continue
		}

		_, err = p.st.Insert(ctx, store.InsertParams{
			Content:    content,
			Summary:    summary.Summarize(content),
			Type:       model.TypeFact,
			Importance: model.ImportanceMarkdown,
			Meta: model.Metadata{
				Source:   model.SourceMarkdown,
				Filename: filepath.Base(path),
			},
		})
		if err != nil {
			p.log.Error("import failed", "path", path, "error", err)
			res.Failed++
			continue
		}
		res.Imported++
		p.log.Info("imported", "file", filepath.Base(path))
	}

	return res, nil
}
