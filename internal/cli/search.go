package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search memories by content",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")

	st, err := openStore(getConfig())
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	results, err := st.Search(cmd.Context(), query)
	if err != nil {
		exitErr("search", err)
	}

	if len(results) == 0 {
		fmt.Printf("No results for %q\n", query)
		return
	}

	fmt.Printf("Found %d result(s) for %q:\n\n", len(results), query)
	for i, r := range results {
		preview := strings.TrimSpace(strings.ReplaceAll(r.Preview, "\n", " "))
		if len(preview) > 200 {
			preview = preview[:200]
		}
		fmt.Printf("  %d. [%s]\n", i+1, r.Summary)
		fmt.Printf("     ID: %s...\n", r.ID[:min(8, len(r.ID))])
		fmt.Printf("     Preview: %s...\n\n", preview)
	}
}
