package cmd

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the full inventory as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), refresh)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached data and re-enumerate")
	return cmd
}
