package cmd

import (
	"github.com/spf13/cobra"

	"github.com/micaelmalta/agentic/internal/output"
)

func newChunkCmd(o *options) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "chunk",
		Short: "Print a JSON array of fixed-size chunks of the indexed files",
		Long: `chunk splits every indexed file, or only those whose path contains
--pattern, into pieces of at most 5000 characters. Each chunk carries its
source path and a zero-based chunk_id; concatenating a file's chunks in
chunk_id order reproduces the file exactly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig(cmd)
			if err != nil {
				return err
			}
			rc, _, err := o.scan(cmd, cfg)
			if err != nil {
				return err
			}
			chunks, err := rc.Chunk(pattern)
			if err != nil {
				return err
			}
			return output.New(cmd.OutOrStdout()).JSON(chunks, false)
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "only chunk files whose path contains this substring")
	return cmd
}
