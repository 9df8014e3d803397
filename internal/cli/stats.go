package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	st, err := openStore(getConfig())
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	stats, err := st.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}

	fmt.Printf("Database: %s\n", stats.DBPath)
	fmt.Printf("Size: %.1f KB\n", float64(stats.SizeBytes)/1024)
	fmt.Printf("Active memories: %d\n", stats.Active)
	fmt.Printf("Deleted memories: %d\n", stats.Deleted)
	fmt.Println("Types:")
	for _, tc := range stats.Types {
		fmt.Printf("  %s: %d\n", tc.Type, tc.Count)
	}
}
