package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/session-memory/internal/transcript"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [session.jsonl] [output.md]",
		Short: "Export one session log as readable markdown",
		Args:  cobra.RangeArgs(1, 2),
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	inPath := args[0]
	outPath := strings.TrimSuffix(inPath, ".jsonl") + ".md"
	if len(args) == 2 {
		outPath = args[1]
	}

	records, err := transcript.ExportMarkdown(inPath, outPath)
	if err != nil {
		exitErr("export", err)
	}

	fmt.Printf("Exported %d messages to %s\n", records, outPath)
}
