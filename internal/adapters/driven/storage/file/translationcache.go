package file

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/bloglab/notion-sync/internal/core/domain"
	"github.com/bloglab/notion-sync/internal/core/ports/driven"
	"github.com/bloglab/notion-sync/internal/logger"
)

// Ensure TranslationCache implements the interface.
var _ driven.TranslationCache = (*TranslationCache)(nil)

// TranslationCache is a JSON-file-backed map from slug to translation
// bookkeeping records.
type TranslationCache struct {
	mu      sync.Mutex
	path    string
	entries map[string]domain.TranslationRecord
}

// NewTranslationCache loads the cache at path, starting empty when the
// file is missing or unreadable.
func NewTranslationCache(path string) *TranslationCache {
	c := &TranslationCache{
		path:    path,
		entries: make(map[string]domain.TranslationRecord),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c
	}
	if err != nil {
		logger.Warn("Failed to read translation cache %s, starting empty: %v", path, err)
		return c
	}

	if err := json.Unmarshal(data, &c.entries); err != nil {
		logger.Warn("Translation cache %s is corrupt, starting empty: %v", path, err)
		c.entries = make(map[string]domain.TranslationRecord)
	}

	return c
}

// Get returns the record for slug, if present.
func (c *TranslationCache) Get(slug string) (*domain.TranslationRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.entries[slug]
	if !ok {
		return nil, false
	}
	return &rec, true
}

// Put records slug and persists the cache file.
func (c *TranslationCache) Put(slug string, rec domain.TranslationRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[slug] = rec
	return writeJSON(c.path, c.entries)
}
