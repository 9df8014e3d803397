package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/session-memory/internal/pipeline"
	"github.com/rcliao/session-memory/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert and import all session logs",
		Long: "Walks the session log tree, converts each session into scrubbed " +
			"chunks, and imports them. Re-running skips already-imported sessions.",
		Run: runImport,
	}

	cmd.Flags().Bool("convert-only", false, "Convert sessions without importing (no database needed)")
	cmd.Flags().Bool("import-only", false, "Import without re-reporting conversions")
	cmd.Flags().Bool("rebuild-fts", false, "Only rebuild the full-text index")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	convertOnly, _ := cmd.Flags().GetBool("convert-only")
	importOnly, _ := cmd.Flags().GetBool("import-only")
	rebuildFTS, _ := cmd.Flags().GetBool("rebuild-fts")

	mode := pipeline.ModeFull
	switch {
	case rebuildFTS:
		mode = pipeline.ModeRebuildFTS
	case convertOnly:
		mode = pipeline.ModeConvert
	case importOnly:
		mode = pipeline.ModeImport
	}

	cfg := getConfig()

	var st *store.Store
	if mode.NeedsStore() {
		var err error
		st, err = openStore(cfg)
		if err != nil {
			exitErr("open store", err)
		}
		defer st.Close()
	}

	res, err := pipeline.New(cfg, st, nil).Run(cmd.Context(), mode)
	if err != nil {
		exitErr("import", err)
	}

	if mode == pipeline.ModeConvert {
		fmt.Printf("Converted: %d sessions -> %d chunks, Skipped: %d\n",
			res.Sessions-res.Skipped, res.Chunks, res.Skipped)
		return
	}
	if mode != pipeline.ModeRebuildFTS {
		fmt.Printf("Imported: %d chunks, Skipped: %d sessions, Failed: %d\n",
			res.Imported, res.Skipped, res.Failed)
	}
}
