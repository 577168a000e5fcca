package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bloglab/notion-sync/internal/core/domain"
	"github.com/bloglab/notion-sync/internal/core/ports/driven"
	"github.com/bloglab/notion-sync/internal/core/ports/driving"
	"github.com/bloglab/notion-sync/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.Syncer = (*SyncOrchestrator)(nil)

// SyncOrchestrator composes the fetcher, converter, rehoster and
// translator into one sequential pass: enumerate remote pages, skip
// ones already materialised locally, convert + rehost + translate new
// ones, and write the dual-language output files.
type SyncOrchestrator struct {
	source       driven.PageSource
	converter    driven.PageConverter
	translations *TranslationService
	posts        driven.PostStore
	runs         driven.RunStore

	// refreshTranslations switches the skip policy: when false (the
	// default) already-materialised slugs are skipped unconditionally;
	// when true every fetched page runs the translation path and the
	// hash cache suppresses redundant generation calls.
	refreshTranslations bool

	now func() time.Time
}

// SyncConfig holds orchestrator options.
type SyncConfig struct {
	// RefreshTranslations enables re-processing of already-materialised
	// slugs so stale translations are regenerated when the source changed.
	RefreshTranslations bool
}

// NewSyncOrchestrator creates the orchestrator. The run store is
// optional; when nil, run history is not recorded.
func NewSyncOrchestrator(
	source driven.PageSource,
	converter driven.PageConverter,
	translations *TranslationService,
	posts driven.PostStore,
	runs driven.RunStore,
	cfg SyncConfig,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		source:              source,
		converter:           converter,
		translations:        translations,
		posts:               posts,
		runs:                runs,
		refreshTranslations: cfg.RefreshTranslations,
		now:                 time.Now,
	}
}

// Sync runs one pass. Per-document failures are logged and tolerated;
// only a failure to enumerate the local store or the remote database is
// fatal to the pass (and even that is downgraded by the CLI, which
// prefers serving stale content over failing the build).
func (o *SyncOrchestrator) Sync(ctx context.Context) (*driving.SyncReport, error) {
	startedAt := o.now()
	report := &driving.SyncReport{}

	existing, err := o.posts.ExistingSlugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list existing posts: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Found %d existing posts", len(existing))
	}

	logger.Info("Fetching pages from Notion...")
	pages, err := o.source.FetchAll(ctx)
	if err != nil {
		o.recordRun(ctx, startedAt, report)
		return nil, fmt.Errorf("fetch pages: %w", err)
	}
	report.PagesFetched = len(pages)
	logger.Info("Fetched %d pages", len(pages))

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			o.recordRun(ctx, startedAt, report)
			return report, err
		}

		meta := domain.ExtractMetadata(page)

		if _, ok := existing[meta.Slug]; ok && !o.refreshTranslations {
			logger.Info("Skipping %q (%s): already synced", meta.Title, meta.Slug)
			report.Skipped++
			continue
		}

		if err := o.processPage(ctx, page, meta, report); err != nil {
			logger.Error("Failed to process %q (%s): %v", meta.Title, meta.Slug, err)
			report.Errors++
			continue
		}
		report.Processed++
	}

	o.recordRun(ctx, startedAt, report)

	logger.Info("Sync complete: %d fetched, %d processed, %d skipped, %d errors",
		report.PagesFetched, report.Processed, report.Skipped, report.Errors)
	return report, nil
}

// processPage converts one page, writes the source-language artifact and,
// when translation is available, the target-language artifact.
func (o *SyncOrchestrator) processPage(ctx context.Context, page domain.Page, meta domain.Metadata, report *driving.SyncReport) error {
	logger.Info("Processing %q (%s)", meta.Title, meta.Slug)

	body, err := o.converter.Convert(ctx, page.ID, meta.Slug)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	content := meta.Frontmatter() + "\n\n" + body

	if err := o.posts.Save(ctx, meta.Slug, meta.Language, content); err != nil {
		return fmt.Errorf("save %s post: %w", meta.Language, err)
	}
	logger.Info("Saved %s/%s", meta.Language, meta.Slug)

	if o.translations == nil || !o.translations.Available() {
		return nil
	}

	translated, err := o.translations.Translate(ctx, meta.Slug, content)
	switch {
	case errors.Is(err, domain.ErrTranslationUpToDate):
		logger.Info("Translation for %s is up to date", meta.Slug)
		return nil
	case err != nil:
		// Translation failure degrades to source-only output.
		logger.Warn("Translation unavailable for %s: %v", meta.Slug, err)
		return nil
	}

	if err := o.posts.Save(ctx, meta.Slug, domain.LanguageEnglish, translated); err != nil {
		logger.Warn("Failed to save translated post %s: %v", meta.Slug, err)
		return nil
	}
	report.Translated++
	logger.Info("Saved %s/%s", domain.LanguageEnglish, meta.Slug)
	return nil
}

// recordRun persists the run outcome. Best effort: a history failure
// never affects the sync result.
func (o *SyncOrchestrator) recordRun(ctx context.Context, startedAt time.Time, report *driving.SyncReport) {
	if o.runs == nil {
		return
	}

	run := domain.SyncRun{
		ID:           uuid.NewString(),
		StartedAt:    startedAt,
		FinishedAt:   o.now(),
		PagesFetched: report.PagesFetched,
		Processed:    report.Processed,
		Skipped:      report.Skipped,
		Errors:       report.Errors,
	}
	if err := o.runs.Record(ctx, run); err != nil {
		logger.Warn("Failed to record sync run: %v", err)
	}
}
