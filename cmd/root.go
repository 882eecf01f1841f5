package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/micaelmalta/agentic/internal/config"
	"github.com/micaelmalta/agentic/internal/logging"
	"github.com/micaelmalta/agentic/internal/rlm"
)

const version = "1.0.0"

var errNoCommand = errors.New("no command given")

// options are the flags shared by every subcommand.
type options struct {
	path       string
	glob       string
	recursive  bool
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "rlm",
		Short: "Index a directory, peek at matches and chunk files for parallel analysis",
		Long: `rlm loads the text files under a directory into an in-memory index, then
either searches it for a literal string (peek) or splits it into fixed-size
chunks (chunk) that independent workers can process in parallel.

The index lives only for the duration of one invocation.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.Join(cmd.Usage(), errNoCommand)
		},
	}

	cmd.PersistentFlags().StringVar(&o.path, "path", ".", "root directory to index")
	cmd.PersistentFlags().StringVar(&o.glob, "glob", config.Default().Pattern, "glob selecting files relative to --path")
	cmd.PersistentFlags().BoolVar(&o.recursive, "recursive", true, "let ** descend into subdirectories")
	cmd.PersistentFlags().StringVar(&o.configPath, "config", "", "config file (default <path>/"+config.FileName+" if present)")
	cmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "info", "diagnostic log level (debug, info, warn, error)")

	cmd.AddCommand(newScanCmd(o))
	cmd.AddCommand(newPeekCmd(o))
	cmd.AddCommand(newChunkCmd(o))
	cmd.AddCommand(newMCPCmd(o))

	return cmd
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers explicitly set flags over the config file.
func (o *options) loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := o.configPath
	if path == "" {
		path = filepath.Join(o.path, config.FileName)
	} else if _, err := os.Stat(path); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("glob") {
		cfg.Pattern = o.glob
	}
	if flags.Changed("recursive") {
		cfg.Recursive = o.recursive
	}
	return cfg, nil
}

// scan builds the invocation's context from cfg and loads --path into it.
// Diagnostics go to the command's stderr so stdout carries only results.
func (o *options) scan(cmd *cobra.Command, cfg config.Config) (*rlm.Context, string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	logger := logging.New(cmd.ErrOrStderr(), o.logLevel)
	rc := rlm.New(cfg, logger)

	summary, err := rc.Scan(o.path)
	if err != nil {
		return nil, "", err
	}
	return rc, summary, nil
}
