package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbosity  int
)

func NewRootCmd() *cobra.Command {
	var (
		listFlag bool
		hostFlag string
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:           "openstack-inventory",
		Short:         "Ansible dynamic inventory for OpenStack clouds",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case listFlag:
				return runList(cmd.Context(), refresh)
			case hostFlag != "":
				return runHost(cmd.Context(), hostFlag, refresh)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the plugin config file (openstack.yml or clouds.yml)")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase diagnostic verbosity (repeatable)")

	// Ansible calls script inventories with --list / --host directly on the
	// executable, so the root command honors them as flags too.
	cmd.Flags().BoolVar(&listFlag, "list", false, "print the full inventory as JSON")
	cmd.Flags().StringVar(&hostFlag, "host", "", "print variables for one host as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached data and re-enumerate")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newHostCmd())
	cmd.AddCommand(newCloudsCmd())

	return cmd
}
