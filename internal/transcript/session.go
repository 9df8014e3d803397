package transcript

import (
	"bufio"
	"encoding/json"
	"os"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Session is one recorded conversation: its identity plus the ordered
// normalized lines that survived extraction.
type Session struct {
	Project string // project directory name, as found on disk
	ID      string // session file stem
	Lines   []Line
}

// maxLineBytes bounds a single JSONL line. Assistant turns with large
// embedded tool output can run into the megabytes.
const maxLineBytes = 16 * 1024 * 1024

// ReadSessionFile parses a line-delimited JSON session log. Blank and
// malformed lines are skipped; they never abort the file. Returns the
// count of parsed records alongside the extracted lines, since sessions
// are filtered on raw record count rather than extracted line count.
func ReadSessionFile(path string) (records int, lines []Line, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, goerr.Wrap(err, "open session file", goerr.V("path", path))
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	for sc.Scan() {
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var rec Record
		if json.Unmarshal([]byte(raw), &rec) != nil {
			continue
		}
		records++
		if line, ok := Extract(rec); ok {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return records, lines, goerr.Wrap(err, "read session file", goerr.V("path", path))
	}

	return records, lines, nil
}

// Session folder names encode the project path, e.g.
// c--Users-alice-Development-myproject.
var projectPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`^[a-zA-Z]--Users-[^-]+-Development-`),
	regexp.MustCompile(`^[a-zA-Z]--Users-[^-]+--claude-worktrees-`),
	regexp.MustCompile(`^[a-zA-Z]--Users-[^-]+-`),
}

// DeriveProjectName converts a session folder name into a readable label.
func DeriveProjectName(folder string) string {
	name := folder
	for _, re := range projectPrefixes {
		name = re.ReplaceAllString(name, "")
	}
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return "General"
	}
	return name
}
