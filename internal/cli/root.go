// Package cli implements the session-memory CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rcliao/session-memory/internal/config"
	"github.com/rcliao/session-memory/internal/logging"
	"github.com/rcliao/session-memory/internal/store"
)

var (
	dbPath      string
	projectsDir string
	logLevel    string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "session-memory",
	Short: "Import Claude Code sessions into the memory database",
	Long: "Batch-converts Claude Code session logs into scrubbed, chunked, " +
		"searchable memories in the memory MCP SQLite database.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(logging.New(logLevel, os.Stderr))
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "",
		"Database path (default: $"+config.EnvDBPath+" or the platform default)")
	RootCmd.PersistentFlags().StringVar(&projectsDir, "projects", "",
		"Session log root (default: ~/.claude/projects)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level: debug, info, warn, error")
}

// getConfig builds the run configuration once; everything downstream takes
// it explicitly.
func getConfig() config.Config {
	cfg := config.Config{
		DBPath:      dbPath,
		ProjectsDir: projectsDir,
	}
	if cfg.DBPath == "" {
		cfg.DBPath = config.ResolveDBPath(runtime.GOOS, os.Getenv)
	}
	if cfg.ProjectsDir == "" {
		cfg.ProjectsDir = config.DefaultProjectsDir(os.Getenv)
	}
	return cfg
}

func openStore(cfg config.Config) (*store.Store, error) {
	return store.Open(cfg.DBPath)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
