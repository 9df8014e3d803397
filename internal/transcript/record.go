// Package transcript turns raw Claude Code session logs into normalized,
// scrubbed conversation lines.
package transcript

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
)

// Speaker labels for normalized lines.
const (
	SpeakerUser      = "User"
	SpeakerAssistant = "Assistant"
)

// Record is one decoded line of a session JSONL file. The format nests
// inconsistently: the payload may live under "message" (possibly an object
// wrapping a "content" field) or directly under "content", and may be a
// plain string or a list of typed blocks. Both fields stay raw until
// Extract probes their shape.
type Record struct {
	Type    string          `json:"type"`
	Role    string          `json:"role"`
	Message json.RawMessage `json:"message"`
	Content json.RawMessage `json:"content"`
}

// Kind is the role/type discriminator: "type" at the top level, falling
// back to "role", else "unknown".
func (r Record) Kind() string {
	if r.Type != "" {
		return r.Type
	}
	if r.Role != "" {
		return r.Role
	}
	return "unknown"
}

// Bookkeeping records carry no conversational content.
var bookkeepingKinds = map[string]bool{
	"queue-operation":       true,
	"file-history-snapshot": true,
	"summary":               true,
	"unknown":               true,
}

// Line is one normalized conversation turn. Text is scrubbed and non-empty.
type Line struct {
	Speaker string
	Text    string
}

// Render returns the markdown form used in chunk text and exports.
func (l Line) Render() string {
	return "**" + l.Speaker + ":** " + l.Text
}

// Extract converts a record into a normalized line. The second return is
// false for bookkeeping records and for payloads that reduce to nothing.
func Extract(rec Record) (Line, bool) {
	kind := rec.Kind()
	if bookkeepingKinds[kind] {
		return Line{}, false
	}

	raw := rec.Message
	if isEmptyJSON(raw) {
		raw = rec.Content
	}

	text := Scrub(strings.TrimSpace(resolvePayload(raw)))
	if text == "" {
		return Line{}, false
	}

	return Line{Speaker: speakerFor(kind), Text: text}, true
}

// resolvePayload reduces the raw payload to text. Expected shapes are a
// closed set: a flat string, an object wrapping a "content" field (descended
// into once), or a list of typed blocks. Anything else contributes nothing.
func resolvePayload(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return ""
		}
		return s
	case '{':
		var envelope struct {
			Content json.RawMessage `json:"content"`
		}
		if json.Unmarshal(raw, &envelope) != nil {
			return ""
		}
		return resolveBlocks(envelope.Content)
	case '[':
		return resolveBlocks(raw)
	}
	return ""
}

// resolveBlocks handles the inner payload after envelope descent: a string
// or a block list, never another envelope.
func resolveBlocks(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	if raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return ""
		}
		return s
	}
	if raw[0] != '[' {
		return ""
	}

	var blocks []json.RawMessage
	if json.Unmarshal(raw, &blocks) != nil {
		return ""
	}

	var parts []string
	for _, b := range blocks {
		if p := renderBlock(b); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n")
}

// block is one element of a content list.
type block struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Name  string `json:"name"`
	Input struct {
		FilePath string `json:"file_path"`
		Command  string `json:"command"`
		Query    string `json:"query"`
		URL      string `json:"url"`
	} `json:"input"`
}

// renderBlock returns the text contribution of one block: literal text for
// text blocks, a bracketed annotation for tool calls, nothing for tool
// results (raw output, not conversation) or unrecognized tags.
func renderBlock(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	if raw[0] == '"' {
		var s string
		json.Unmarshal(raw, &s)
		return s
	}

	var b block
	if json.Unmarshal(raw, &b) != nil {
		return ""
	}

	switch b.Type {
	case "text":
		return b.Text
	case "tool_use":
		return toolAnnotation(b)
	}
	return ""
}

func toolAnnotation(b block) string {
	tool := b.Name
	if tool == "" {
		tool = "unknown"
	}

	switch tool {
	case "Read", "Write", "Edit":
		return "[" + tool + ": " + orUnknown(b.Input.FilePath) + "]"
	case "Bash":
		return "[Bash: " + truncate(orUnknown(b.Input.Command), 100) + "]"
	case "WebSearch", "WebFetch":
		target := b.Input.Query
		if target == "" {
			target = b.Input.URL
		}
		return "[" + tool + ": " + truncate(orUnknown(target), 60) + "]"
	}
	return "[" + tool + "]"
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func speakerFor(kind string) string {
	switch kind {
	case "user":
		return SpeakerUser
	case "assistant":
		return SpeakerAssistant
	}
	return titleCase(kind)
}

func titleCase(s string) string {
	prev := ' '
	return strings.Map(func(r rune) rune {
		if prev == ' ' || prev == '-' || prev == '_' {
			prev = r
			return unicode.ToUpper(r)
		}
		prev = r
		return unicode.ToLower(r)
	}, s)
}

func isEmptyJSON(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
