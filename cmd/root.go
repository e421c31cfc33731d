package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "scmboard",
		Short:         "scmboard: supply chain dashboard backend",
		Long:          "scmboard serves the supply chain dashboard datasets (inventory, suppliers, revenue, orders, employees, warehouses, expenses) over a small JSON API.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (toml, json or yaml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(v),
		newSeedCmd(),
	)

	return rootCmd
}
