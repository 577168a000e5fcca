package driven

import (
	"context"

	"github.com/bloglab/notion-sync/internal/core/domain"
)

// PostStore persists materialised posts as language-partitioned files.
type PostStore interface {
	// ExistingSlugs returns every slug already materialised locally, in
	// any language. The orchestrator treats these as already synced.
	ExistingSlugs(ctx context.Context) (map[string]struct{}, error)

	// Save writes the complete artifact (front-matter plus body) for one
	// (slug, language) pair, creating directories as needed.
	Save(ctx context.Context, slug string, lang domain.Language, content string) error
}

// ImageCache maps "slug:hash" keys to durable storage URLs so an
// idempotent re-sync never re-uploads the same image bytes.
type ImageCache interface {
	Get(key string) (string, bool)
	Put(key, url string) error
}

// TranslationCache maps a slug to its translation bookkeeping record.
type TranslationCache interface {
	Get(slug string) (*domain.TranslationRecord, bool)
	Put(slug string, rec domain.TranslationRecord) error
}

// RunStore records sync run outcomes for the history command.
// Failures to record are warn-only; they never affect the sync itself.
type RunStore interface {
	Record(ctx context.Context, run domain.SyncRun) error
	Recent(ctx context.Context, limit int) ([]domain.SyncRun, error)
}
