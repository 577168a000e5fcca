package domain

import "time"

// SyncRun records the outcome of one sync pass for the history store.
type SyncRun struct {
	// ID uniquely identifies the run.
	ID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run ended, successful or not.
	FinishedAt time.Time

	// PagesFetched is how many pages the remote query returned.
	PagesFetched int

	// Processed is how many pages were converted and written.
	Processed int

	// Skipped is how many pages were already materialised locally.
	Skipped int

	// Errors is how many pages failed and were dropped from this run.
	Errors int
}
