package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/session-memory/internal/pipeline"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import-docs [folder]",
		Short: "Import a folder of markdown files as memories",
		Args:  cobra.ExactArgs(1),
		Run:   runImportDocs,
	}

	RootCmd.AddCommand(cmd)
}

func runImportDocs(cmd *cobra.Command, args []string) {
	cfg := getConfig()

	st, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	res, err := pipeline.New(cfg, st, nil).ImportDocs(cmd.Context(), args[0])
	if err != nil {
		exitErr("import docs", err)
	}

	fmt.Printf("Done: %d imported, %d skipped, %d failed.\n",
		res.Imported, res.Skipped, res.Failed)
}
