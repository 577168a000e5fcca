// Package cli provides the command-line interface for the content
// sync pipeline.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/bloglab/notion-sync/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "notion-sync",
	Short: "Sync Notion pages into bilingual markdown posts",
	Long: `notion-sync pulls published pages from a Notion database, converts
them to markdown with front-matter, rehosts embedded images to durable
storage, machine-translates the content, and writes the
language-partitioned files a static site generator consumes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (optional)")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
