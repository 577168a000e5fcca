package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bloglab/notion-sync/internal/adapters/driven/images"
	filestore "github.com/bloglab/notion-sync/internal/adapters/driven/storage/file"
	s3store "github.com/bloglab/notion-sync/internal/adapters/driven/storage/s3"
	"github.com/bloglab/notion-sync/internal/adapters/driven/storage/sqlite"
	"github.com/bloglab/notion-sync/internal/adapters/driven/translate/gemini"
	"github.com/bloglab/notion-sync/internal/config"
	"github.com/bloglab/notion-sync/internal/connectors/notion"
	"github.com/bloglab/notion-sync/internal/converter"
	"github.com/bloglab/notion-sync/internal/core/ports/driven"
	"github.com/bloglab/notion-sync/internal/core/ports/driving"
	"github.com/bloglab/notion-sync/internal/core/services"
	"github.com/bloglab/notion-sync/internal/logger"
)

// Cache file names, kept next to the posts so they travel with the
// content repository.
const (
	imageCacheFile       = "image-cache.json"
	translationCacheFile = "translation-cache.json"
)

// buildSyncer wires the full pipeline from configuration. Tests
// replace this to inject fakes. The returned cleanup releases adapter
// resources and is safe to call once.
var buildSyncer = func(ctx context.Context, cfg *config.Config, refresh bool) (driving.Syncer, func(), error) {
	client, err := notion.NewClient(notion.Config{
		APIKey:     cfg.NotionAPIKey,
		DatabaseID: cfg.NotionDatabaseID,
	})
	if err != nil {
		return nil, nil, err
	}

	// Warn-only preflight; the fetch itself reports fatal access errors.
	if err := client.Validate(ctx); err != nil {
		logger.Warn("Database access check failed: %v", err)
	}

	posts, err := filestore.NewPostStore(cfg.PostsDir)
	if err != nil {
		return nil, nil, err
	}

	var cleanups []func()
	cleanup := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	rehoster := buildRehoster(ctx, cfg)

	trans, err := buildTranslations(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if trans != nil {
		cleanups = append(cleanups, func() { _ = trans.Close() })
	}

	translationCache := filestore.NewTranslationCache(filepath.Join(cfg.PostsDir, translationCacheFile))
	translations := services.NewTranslationService(trans, translationCache, services.TranslationConfig{})

	runs := buildRunStore(&cleanups)

	conv := converter.New(client, rehoster)

	syncer := services.NewSyncOrchestrator(client, conv, translations, posts, runs, services.SyncConfig{
		RefreshTranslations: refresh,
	})

	return syncer, cleanup, nil
}

// buildRehoster assembles the image path, or nil when object storage
// is not configured.
func buildRehoster(ctx context.Context, cfg *config.Config) driven.ImageRehoster {
	if !cfg.RehostingEnabled() {
		logger.Debug("Object storage not configured, images keep their source URLs")
		return nil
	}

	store, err := s3store.New(ctx, s3store.Config{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		CDNDomain:       cfg.CloudFrontDomain,
	})
	if err != nil {
		logger.Warn("Object store unavailable, images keep their source URLs: %v", err)
		return nil
	}

	return images.New(images.Config{
		Store: store,
		Cache: filestore.NewImageCache(filepath.Join(cfg.PostsDir, imageCacheFile)),
	})
}

// buildTranslations creates the Gemini translator, or nil when
// translation is not configured.
func buildTranslations(ctx context.Context, cfg *config.Config) (driven.Translator, error) {
	if !cfg.TranslationEnabled() {
		logger.Debug("Translation not configured, publishing source language only")
		return nil, nil
	}

	trans, err := gemini.New(ctx, gemini.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	})
	if err != nil {
		return nil, fmt.Errorf("create translator: %w", err)
	}

	return trans, nil
}

// buildRunStore opens the run history database. History is a
// convenience; failing to open it only disables recording.
func buildRunStore(cleanups *[]func()) driven.RunStore {
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("Run history unavailable: %v", err)
		return nil
	}
	*cleanups = append(*cleanups, func() { _ = store.Close() })
	return store.RunStore()
}
