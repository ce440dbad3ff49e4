package main

import (
	"github.com/spf13/cobra"

	"github.com/taigrr/lumen/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lumen",
		Short:         "Ray trace scenes to PNG or view them in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "Path to config file")

	root.AddCommand(newRenderCmd(), newViewCmd(), newConfigCmd())
	return root
}

// loadConfig loads the configuration for cmd, honoring --config and the
// command's override flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path, cmd.Flags())
}
