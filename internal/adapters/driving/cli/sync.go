package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloglab/notion-sync/internal/config"
	"github.com/bloglab/notion-sync/internal/logger"
)

var (
	refreshTranslations bool
	postsDir            string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the Notion database into the local content directory",
	Long: `Fetches published pages from the configured Notion database and
materialises them as bilingual markdown posts. Pages whose slug already
exists locally are skipped. Pipeline failures are logged but never fail
the command, so a site build that embeds the sync keeps serving the
previously synced content.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&refreshTranslations, "refresh-translations", false,
		"re-run the translation path for already-synced posts (the content hash cache still skips unchanged ones)")
	syncCmd.Flags().StringVar(&postsDir, "posts-dir", "",
		"directory to write posts into (overrides config)")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if postsDir != "" {
		cfg.PostsDir = postsDir
	}

	// Missing required configuration is an operator error and the only
	// failure that should break the surrounding build.
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	ctx := context.Background()

	syncer, cleanup, err := buildSyncer(ctx, cfg, refreshTranslations)
	if err != nil {
		logger.Error("Sync skipped, pipeline could not be assembled: %v", err)
		return nil
	}
	defer cleanup()

	report, err := syncer.Sync(ctx)
	if err != nil {
		// Deliberately swallowed: stale content beats a broken build.
		logger.Error("Sync failed: %v", err)
		return nil
	}

	cmd.Printf("Synced %d pages: %d processed, %d skipped, %d errors, %d translated.\n",
		report.PagesFetched, report.Processed, report.Skipped, report.Errors, report.Translated)

	return nil
}
