package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm [id-prefix]",
		Short: "Soft-delete a memory by id prefix",
		Long:  "Marks the first active memory whose id starts with the given prefix as deleted. Nothing is physically removed.",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	st, err := openStore(getConfig())
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	m, err := st.SoftDelete(cmd.Context(), args[0])
	if err != nil {
		exitErr("rm", err)
	}

	fmt.Printf("Deleted: %s (%s...)\n", m.Summary, m.ID[:min(8, len(m.ID))])
}
