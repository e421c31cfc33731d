package cmd

import (
	"github.com/denismitr/scmboard"
	"github.com/denismitr/scmboard/internal/seedfile"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Print the built-in seed data",
		Long:  "Print the built-in seed data. The output can be edited and passed back with serve --seed-file.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := seedfile.ParseFormat(format)
			if err != nil {
				return err
			}

			return seedfile.Write(cmd.OutOrStdout(), scmboard.DefaultSeed(), f)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(seedfile.JSON), "output format: json or toml")

	return cmd
}
