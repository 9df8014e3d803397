package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// ExportMarkdown converts one session JSONL file into a readable markdown
// transcript at outPath. Returns the number of records in the source.
func ExportMarkdown(inPath, outPath string) (int, error) {
	records, lines, err := ReadSessionFile(inPath)
	if err != nil {
		return 0, err
	}

	var b strings.Builder
	b.WriteString("# Claude Code Chat Export\n")
	fmt.Fprintf(&b, "**Exported:** %s\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Source:** `%s`\n", filepath.Base(inPath))
	fmt.Fprintf(&b, "**Messages:** %d\n\n---\n\n", records)

	for _, l := range lines {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n---\n\n", l.Speaker, l.Text)
	}

	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		return 0, goerr.Wrap(err, "write export", goerr.V("path", outPath))
	}
	return records, nil
}
