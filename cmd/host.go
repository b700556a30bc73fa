package cmd

import (
	"github.com/spf13/cobra"
)

func newHostCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "host <name>",
		Short: "Print variables for one host as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHost(cmd.Context(), args[0], refresh)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached data and re-enumerate")
	return cmd
}
