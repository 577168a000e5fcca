package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloglab/notion-sync/internal/core/domain"
)

// fakeTranslator implements driven.Translator for testing.
type fakeTranslator struct {
	mu        sync.Mutex
	calls     int
	responses []string
	errs      []error
	model     string
}

func (f *fakeTranslator) Generate(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var resp string
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	return resp, err
}

func (f *fakeTranslator) ModelName() string {
	if f.model == "" {
		return "fake-model"
	}
	return f.model
}

func (f *fakeTranslator) Close() error { return nil }

func (f *fakeTranslator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// memTranslationCache implements driven.TranslationCache in memory.
type memTranslationCache struct {
	entries map[string]domain.TranslationRecord
}

func newMemTranslationCache() *memTranslationCache {
	return &memTranslationCache{entries: make(map[string]domain.TranslationRecord)}
}

func (c *memTranslationCache) Get(slug string) (*domain.TranslationRecord, bool) {
	rec, ok := c.entries[slug]
	if !ok {
		return nil, false
	}
	return &rec, true
}

func (c *memTranslationCache) Put(slug string, rec domain.TranslationRecord) error {
	c.entries[slug] = rec
	return nil
}

func newTestService(translator *fakeTranslator, cache *memTranslationCache) *TranslationService {
	svc := NewTranslationService(translator, cache, TranslationConfig{})
	svc.sleep = func(_ context.Context, _ time.Duration) error { return nil }
	return svc
}

const validResponse = `---
title: "Hello"
language: "en"
---

Translated body.`

func TestTranslate_Success(t *testing.T) {
	translator := &fakeTranslator{responses: []string{validResponse}}
	cache := newMemTranslationCache()
	svc := newTestService(translator, cache)

	out, err := svc.Translate(context.Background(), "slug1", "source text")

	require.NoError(t, err)
	assert.Contains(t, out, "Translated body.")
	assert.Equal(t, 1, translator.callCount())
}

func TestTranslate_UpdatesCacheOnSuccess(t *testing.T) {
	translator := &fakeTranslator{responses: []string{validResponse}, model: "gemini-2.5-flash"}
	cache := newMemTranslationCache()
	svc := newTestService(translator, cache)

	_, err := svc.Translate(context.Background(), "slug1", "source text")
	require.NoError(t, err)

	rec, ok := cache.Get("slug1")
	require.True(t, ok)
	assert.Equal(t, ContentHash("source text"), rec.SourceHash)
	// Translator identity matches the model actually invoked.
	assert.Equal(t, "gemini-2.5-flash", rec.TranslatedBy)
	assert.False(t, rec.TranslatedAt.IsZero())
}

func TestTranslate_CacheHitSkipsGeneration(t *testing.T) {
	translator := &fakeTranslator{responses: []string{validResponse, validResponse}}
	cache := newMemTranslationCache()
	svc := newTestService(translator, cache)

	_, err := svc.Translate(context.Background(), "slug1", "same text")
	require.NoError(t, err)

	_, err = svc.Translate(context.Background(), "slug1", "same text")
	assert.ErrorIs(t, err, domain.ErrTranslationUpToDate)
	assert.Equal(t, 1, translator.callCount())
}

func TestTranslate_EditedSourceInvalidatesCache(t *testing.T) {
	translator := &fakeTranslator{responses: []string{validResponse, validResponse}}
	cache := newMemTranslationCache()
	svc := newTestService(translator, cache)

	_, err := svc.Translate(context.Background(), "slug1", "original text")
	require.NoError(t, err)

	// One character changed: the cached hash no longer matches.
	_, err = svc.Translate(context.Background(), "slug1", "original texT")
	require.NoError(t, err)
	assert.Equal(t, 2, translator.callCount())
}

func TestTranslate_MissingDelimiterRetried(t *testing.T) {
	translator := &fakeTranslator{responses: []string{"no frontmatter here", validResponse}}
	cache := newMemTranslationCache()
	svc := newTestService(translator, cache)

	out, err := svc.Translate(context.Background(), "slug1", "text")

	require.NoError(t, err)
	assert.Contains(t, out, "Translated body.")
	assert.Equal(t, 2, translator.callCount())
}

func TestTranslate_ExhaustedRetriesReturnsError(t *testing.T) {
	translator := &fakeTranslator{
		responses: []string{"bad", "bad", "bad", "bad", "bad"},
	}
	cache := newMemTranslationCache()
	svc := newTestService(translator, cache)

	_, err := svc.Translate(context.Background(), "slug1", "text")

	assert.Error(t, err)
	assert.Equal(t, DefaultTranslateRetries, translator.callCount())

	// No cache entry is written on failure.
	_, ok := cache.Get("slug1")
	assert.False(t, ok)
}

func TestTranslate_BackoffDoubles(t *testing.T) {
	translator := &fakeTranslator{
		errs: []error{errors.New("rate limited"), errors.New("rate limited")},
		responses: []string{"", "", validResponse},
	}
	cache := newMemTranslationCache()
	svc := NewTranslationService(translator, cache, TranslationConfig{BackoffUnit: time.Millisecond})

	var waits []time.Duration
	svc.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	_, err := svc.Translate(context.Background(), "slug1", "text")
	require.NoError(t, err)

	// 2^1 and 2^2 units for the two failed attempts.
	assert.Equal(t, []time.Duration{2 * time.Millisecond, 4 * time.Millisecond}, waits)
}

func TestTranslate_NilTranslator(t *testing.T) {
	svc := NewTranslationService(nil, newMemTranslationCache(), TranslationConfig{})

	_, err := svc.Translate(context.Background(), "slug1", "text")

	assert.ErrorIs(t, err, domain.ErrTranslatorUnavailable)
	assert.False(t, svc.Available())
}

func TestTranslate_FlipsLanguageMarker(t *testing.T) {
	stubborn := `---
title: "Hello"
language: "ko"
---

Body.`
	translator := &fakeTranslator{responses: []string{stubborn}}
	svc := newTestService(translator, newMemTranslationCache())

	out, err := svc.Translate(context.Background(), "slug1", "text")

	require.NoError(t, err)
	assert.Contains(t, out, `language: "en"`)
	assert.NotContains(t, out, `language: "ko"`)
}

func TestTranslate_StripsCodeFenceWrapping(t *testing.T) {
	wrapped := "```markdown\n" + validResponse + "\n```"
	translator := &fakeTranslator{responses: []string{wrapped}}
	svc := newTestService(translator, newMemTranslationCache())

	out, err := svc.Translate(context.Background(), "slug1", "text")

	require.NoError(t, err)
	assert.False(t, len(out) == 0)
	assert.NotContains(t, out, "```markdown")
	assert.Contains(t, out, "Translated body.")
}

func TestContentHash_Deterministic(t *testing.T) {
	assert.Equal(t, ContentHash("abc"), ContentHash("abc"))
	assert.NotEqual(t, ContentHash("abc"), ContentHash("abd"))
	assert.Len(t, ContentHash("abc"), 64)
}
