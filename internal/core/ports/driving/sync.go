// Package driving provides interfaces for primary/inbound ports: the
// operations the CLI invokes on the core services.
package driving

import "context"

// SyncReport summarises one sync pass.
type SyncReport struct {
	// PagesFetched is how many pages the remote query returned.
	PagesFetched int

	// Processed is how many pages were converted and written.
	Processed int

	// Skipped is how many pages were already materialised locally.
	Skipped int

	// Errors is how many pages failed and were dropped from this pass.
	Errors int

	// Translated is how many target-language artifacts were written.
	Translated int
}

// Syncer runs the content synchronisation pipeline.
type Syncer interface {
	// Sync enumerates remote pages, skips already-materialised slugs,
	// converts, rehosts and translates new ones, and writes the
	// dual-language output files. Per-document failures are tolerated;
	// only a failure to enumerate pages is fatal to the pass.
	Sync(ctx context.Context) (*SyncReport, error)
}
