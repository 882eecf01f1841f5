package cmd

import (
	"github.com/spf13/cobra"

	"github.com/micaelmalta/agentic/internal/config"
	"github.com/micaelmalta/agentic/internal/output"
)

func newPeekCmd(o *options) *cobra.Command {
	var (
		contextWindow int
		maxResults    int
	)

	cmd := &cobra.Command{
		Use:   "peek <query>",
		Short: "Print a JSON array of context snippets around literal matches of query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("context") {
				cfg.ContextWindow = contextWindow
			}
			if cmd.Flags().Changed("max-results") {
				cfg.MaxResults = maxResults
			}

			rc, _, err := o.scan(cmd, cfg)
			if err != nil {
				return err
			}
			snippets, err := rc.Peek(args[0], nil)
			if err != nil {
				return err
			}
			return output.New(cmd.OutOrStdout()).JSON(snippets, true)
		},
	}

	def := config.Default()
	cmd.Flags().IntVar(&contextWindow, "context", def.ContextWindow, "characters of context on each side of a match")
	cmd.Flags().IntVar(&maxResults, "max-results", def.MaxResults, "maximum snippets across all files")
	return cmd
}
