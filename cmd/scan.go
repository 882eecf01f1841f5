package cmd

import (
	"github.com/spf13/cobra"

	"github.com/micaelmalta/agentic/internal/output"
)

func newScanCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Load the directory and report how many files were indexed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig(cmd)
			if err != nil {
				return err
			}
			_, summary, err := o.scan(cmd, cfg)
			if err != nil {
				return err
			}
			return output.New(cmd.OutOrStdout()).Summary(summary)
		},
	}
}
