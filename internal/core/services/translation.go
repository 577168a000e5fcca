package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/bloglab/notion-sync/internal/core/domain"
	"github.com/bloglab/notion-sync/internal/core/ports/driven"
	"github.com/bloglab/notion-sync/internal/logger"
)

const (
	// DefaultTranslateRetries is the maximum number of generation attempts.
	DefaultTranslateRetries = 5

	// DefaultBackoffUnit is the base delay unit for the exponential
	// backoff between attempts: attempt n waits 2^n units.
	DefaultBackoffUnit = 5 * time.Second
)

// translationPrompt instructs the backend to translate while leaving
// structural markup, code and identifiers untouched, and to flip the
// front-matter language marker.
const translationPrompt = `You are a professional technical translator specializing in software engineering content.

Task: Translate the following Korean blog post to natural, fluent English.

CRITICAL REQUIREMENTS:
1. Preserve ALL Markdown syntax EXACTLY (##, ###, -, *, ` + "`, ```" + `, >, [], (), etc.)
2. DO NOT translate:
   - Code blocks (content inside ` + "``` ```" + `)
   - Code snippets (content inside ` + "` `" + `)
   - URLs and links
   - File paths and file names
   - Package names and technical identifiers
   - HTML/JSX tags
3. Translate frontmatter fields:
   - title: Translate to natural English
   - summary: Translate to natural English
   - Keep other fields (publishedAt, language, tags) unchanged
   - Change language field value from "ko" to "en"
4. Maintain professional, technical writing style
5. Use standard technical terminology
6. Keep the same structure and formatting

ORIGINAL KOREAN CONTENT:
---
%s
---

Provide ONLY the translated content in English. Do not add explanations or comments.

TRANSLATED ENGLISH CONTENT:`

// TranslationConfig holds tunables for the translation service.
type TranslationConfig struct {
	// Retries is the maximum number of generation attempts (default 5).
	Retries int

	// BackoffUnit is the base backoff delay unit (default 5s).
	BackoffUnit time.Duration
}

// TranslationService produces target-language content with a
// content-hash-keyed cache to skip unchanged input, and retries
// transient generation failures with exponential backoff.
type TranslationService struct {
	translator driven.Translator
	cache      driven.TranslationCache
	retries    int
	backoff    time.Duration

	// sleep is replaced in tests to avoid real waits.
	sleep func(ctx context.Context, d time.Duration) error

	// now is replaced in tests for deterministic cache records.
	now func() time.Time
}

// NewTranslationService creates a translation service. The translator
// may be nil, in which case every Translate call reports
// domain.ErrTranslatorUnavailable and the caller degrades to
// source-only output.
func NewTranslationService(translator driven.Translator, cache driven.TranslationCache, cfg TranslationConfig) *TranslationService {
	if cfg.Retries == 0 {
		cfg.Retries = DefaultTranslateRetries
	}
	if cfg.BackoffUnit == 0 {
		cfg.BackoffUnit = DefaultBackoffUnit
	}

	return &TranslationService{
		translator: translator,
		cache:      cache,
		retries:    cfg.Retries,
		backoff:    cfg.BackoffUnit,
		sleep:      sleepCtx,
		now:        time.Now,
	}
}

// Available reports whether a translation backend is configured.
func (s *TranslationService) Available() bool {
	return s.translator != nil
}

// ContentHash returns the hex SHA-256 of content, the change-detection
// key for cached translations.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Translate produces the target-language equivalent of source.
//
// If the cache holds a record for slug whose hash matches the current
// source, the previously written artifact is still valid and
// domain.ErrTranslationUpToDate is returned. Otherwise the backend is
// invoked with up to Retries attempts; a response missing the
// front-matter delimiter is treated as a failed attempt. Exhausting all
// attempts returns an error the caller treats as "translation absent".
func (s *TranslationService) Translate(ctx context.Context, slug, source string) (string, error) {
	if s.translator == nil {
		return "", domain.ErrTranslatorUnavailable
	}

	hash := ContentHash(source)
	if rec, ok := s.cache.Get(slug); ok && rec.SourceHash == hash {
		logger.Debug("Translation cache hit for %s", slug)
		return "", domain.ErrTranslationUpToDate
	}

	prompt := fmt.Sprintf(translationPrompt, source)

	var lastErr error
	for attempt := 1; attempt <= s.retries; attempt++ {
		logger.Debug("Translation attempt %d/%d for %s", attempt, s.retries, slug)

		translated, err := s.generateOnce(ctx, prompt)
		if err == nil {
			if err := s.cache.Put(slug, domain.TranslationRecord{
				SourceHash:   hash,
				TranslatedAt: s.now(),
				TranslatedBy: s.translator.ModelName(),
			}); err != nil {
				logger.Warn("Failed to update translation cache for %s: %v", slug, err)
			}
			return translated, nil
		}

		lastErr = err
		logger.Warn("Translation attempt %d failed for %s: %v", attempt, slug, err)

		if attempt < s.retries {
			// Exponential backoff: 2^attempt units (10s, 20s, 40s, 80s).
			wait := time.Duration(1<<attempt) * s.backoff
			logger.Debug("Waiting %s before retry", wait)
			if err := s.sleep(ctx, wait); err != nil {
				return "", err
			}
		}
	}

	return "", fmt.Errorf("translate %s: %w", slug, lastErr)
}

// generateOnce runs a single generation attempt and validates the result.
func (s *TranslationService) generateOnce(ctx context.Context, prompt string) (string, error) {
	out, err := s.translator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	out = stripCodeFence(out)

	// Minimal sanity check: the front-matter delimiter must survive.
	if !strings.Contains(out, "---") {
		return "", fmt.Errorf("response missing front-matter delimiter")
	}

	// The model occasionally leaves the language marker untouched.
	out = strings.Replace(out, `language: "ko"`, `language: "en"`, 1)

	return out, nil
}

// stripCodeFence removes a markdown code fence the model may have
// wrapped its whole response in.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	trimmed = strings.TrimPrefix(trimmed, "```markdown")
	trimmed = strings.TrimPrefix(trimmed, "```md")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// sleepCtx waits for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
