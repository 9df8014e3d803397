package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all active memories",
		Run:   runList,
	}

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	st, err := openStore(getConfig())
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	memories, err := st.List(cmd.Context())
	if err != nil {
		exitErr("list", err)
	}

	if len(memories) == 0 {
		fmt.Println("No memories stored.")
		return
	}

	fmt.Printf("Total: %d memories\n\n", len(memories))
	for i, m := range memories {
		fmt.Printf("  %3d. %s\n", i+1, m.Summary)
		fmt.Printf("       Type: %s | Importance: %g\n", m.Type, m.Importance)
		fmt.Printf("       ID: %s...\n", m.ID[:min(8, len(m.ID))])
	}
}
