// Package model defines the persisted memory record types.
//
// The shapes mirror the memory MCP server's `memories` table; this tool
// writes rows into that schema but never owns or migrates it.
package model

// Memory classification and import weights. Session imports carry a lower
// importance than curated document imports.
const (
	TypeFact = "fact"

	SourceSession  = "claude-session"
	SourceMarkdown = "markdown-import"

	ImportanceSession  = 0.5
	ImportanceMarkdown = 0.7
)

// Memory is one row of the memories table. Timestamps are milliseconds
// since epoch, matching the MCP schema.
type Memory struct {
	ID           string  `json:"id"`
	Content      string  `json:"content"`
	Type         string  `json:"type"`
	Importance   float64 `json:"importance"`
	CreatedAt    int64   `json:"created_at"`
	LastAccessed int64   `json:"last_accessed"`
	IsDeleted    bool    `json:"is_deleted"`
	Summary      string  `json:"summary"`
	AccessCount  int     `json:"access_count"`
	Metadata     string  `json:"metadata,omitempty"`
}

// Metadata is the structured object serialized into the metadata column.
// Chunk is the 0-based position of the chunk within its session.
type Metadata struct {
	Source   string `json:"source"`
	Filename string `json:"filename"`
	Chunk    int    `json:"chunk"`
}
