// Package config resolves where the memory database and session logs live.
package config

import (
	"os"
	"path/filepath"
)

// EnvDBPath overrides the platform default database location.
const EnvDBPath = "MEMORY_DB_PATH"

// Config carries the paths every component needs. Built once by the CLI
// root and passed explicitly; nothing reads the environment after startup.
type Config struct {
	// DBPath is the memory database file. The schema is owned by the
	// memory MCP server; this tool only reads and writes rows.
	DBPath string

	// ProjectsDir is the root of the session logs, one subdirectory per
	// project, each holding *.jsonl session files.
	ProjectsDir string
}

// ResolveDBPath returns the database path for the given platform and
// environment, matching @whenmoon-afk/memory-mcp conventions. goos is a
// GOOS value; getenv is injected so the resolution stays a pure function.
func ResolveDBPath(goos string, getenv func(string) string) string {
	if p := getenv(EnvDBPath); p != "" {
		return p
	}
	switch goos {
	case "windows":
		return filepath.Join(getenv("APPDATA"), "claude-memories", "memory.db")
	case "darwin":
		return filepath.Join(homeDir(getenv), ".claude-memories", "memory.db")
	default:
		return filepath.Join(homeDir(getenv), ".local", "share", "claude-memories", "memory.db")
	}
}

// DefaultProjectsDir returns the standard Claude Code session log root.
func DefaultProjectsDir(getenv func(string) string) string {
	return filepath.Join(homeDir(getenv), ".claude", "projects")
}

func homeDir(getenv func(string) string) string {
	if h := getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}
