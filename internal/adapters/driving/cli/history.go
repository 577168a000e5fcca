package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bloglab/notion-sync/internal/adapters/driven/storage/sqlite"
	"github.com/bloglab/notion-sync/internal/core/ports/driven"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sync runs",
	RunE:  runHistory,
}

// openRunStore is replaced in tests.
var openRunStore = func() (driven.RunStore, func(), error) {
	store, err := sqlite.NewStore("")
	if err != nil {
		return nil, nil, fmt.Errorf("open run history: %w", err)
	}
	return store.RunStore(), func() { _ = store.Close() }, nil
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	runs, cleanup, err := openRunStore()
	if err != nil {
		return err
	}
	defer cleanup()

	recent, err := runs.Recent(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(recent) == 0 {
		cmd.Println("No sync runs recorded yet.")
		return nil
	}

	cmd.Printf("%-20s  %-9s  %7s  %9s  %7s  %6s\n",
		"STARTED", "DURATION", "FETCHED", "PROCESSED", "SKIPPED", "ERRORS")
	for _, run := range recent {
		cmd.Printf("%-20s  %-9s  %7d  %9d  %7d  %6d\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.FinishedAt.Sub(run.StartedAt).Round(100*time.Millisecond).String(),
			run.PagesFetched, run.Processed, run.Skipped, run.Errors)
	}

	return nil
}
