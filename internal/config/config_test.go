package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestResolveDBPath_EnvOverride(t *testing.T) {
	got := ResolveDBPath("linux", env(map[string]string{
		EnvDBPath: "/custom/memory.db",
		"HOME":    "/home/alice",
	}))
	assert.Equal(t, "/custom/memory.db", got)
}

func TestResolveDBPath_PerPlatform(t *testing.T) {
	vars := map[string]string{
		"HOME":    "/home/alice",
		"APPDATA": `C:\Users\alice\AppData\Roaming`,
	}

	assert.Equal(t,
		filepath.Join("/home/alice", ".local", "share", "claude-memories", "memory.db"),
		ResolveDBPath("linux", env(vars)))
	assert.Equal(t,
		filepath.Join("/home/alice", ".claude-memories", "memory.db"),
		ResolveDBPath("darwin", env(vars)))
	assert.Equal(t,
		filepath.Join(`C:\Users\alice\AppData\Roaming`, "claude-memories", "memory.db"),
		ResolveDBPath("windows", env(vars)))
}

func TestDefaultProjectsDir(t *testing.T) {
	got := DefaultProjectsDir(env(map[string]string{"HOME": "/home/alice"}))
	assert.Equal(t, filepath.Join("/home/alice", ".claude", "projects"), got)
}
