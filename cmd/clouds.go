package cmd

import (
	"github.com/spf13/cobra"

	"openstack-inventory/internal/exit"
	"openstack-inventory/internal/openstack"
	"openstack-inventory/internal/output"
)

func newCloudsCmd() *cobra.Command {
	var outputMode string

	cmd := &cobra.Command{
		Use:   "clouds",
		Short: "List the configured OpenStack clouds",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := output.ParseMode(outputMode)
			if err != nil {
				return exit.New(1, err)
			}

			_, cfg, err := resolveConfig()
			if err != nil {
				return exit.New(1, err)
			}
			disp := newDisplay(cfg)

			enum, err := openstack.NewEnumerator(cfg.CloudConfigFiles(), cfg.Private, disp)
			if err != nil {
				return exit.New(2, err)
			}
			enum.Select(cfg.OnlyClouds)

			if err := output.RenderClouds(enum.Clouds(), mode); err != nil {
				return exit.New(1, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputMode, "output", "table", "output format: table|json|yaml")
	return cmd
}
