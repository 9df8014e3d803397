package transcript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportMarkdown(t *testing.T) {
	in := writeSessionFile(t,
		`{"type":"user","content":"please fix the build"}`,
		`{"type":"assistant","message":{"content":[{"type":"text","text":"On it."}]}}`,
		`{"type":"summary","content":"bookkeeping"}`,
	)
	out := filepath.Join(t.TempDir(), "chat.md")

	records, err := ExportMarkdown(in, out)
	require.NoError(t, err)
	assert.Equal(t, 3, records)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	md := string(data)
	assert.Contains(t, md, "# Claude Code Chat Export")
	assert.Contains(t, md, "**Messages:** 3")
	assert.Contains(t, md, "## User\n\nplease fix the build")
	assert.Contains(t, md, "## Assistant\n\nOn it.")
	assert.NotContains(t, md, "bookkeeping")
}
