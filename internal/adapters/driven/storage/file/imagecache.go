package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bloglab/notion-sync/internal/core/ports/driven"
	"github.com/bloglab/notion-sync/internal/logger"
)

// Ensure ImageCache implements the interface.
var _ driven.ImageCache = (*ImageCache)(nil)

// ImageCache is a JSON-file-backed map from slug:hash keys to uploaded
// URLs. The whole map is held in memory and rewritten on every Put so
// an interrupted sync loses at most the entry being written.
type ImageCache struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

// NewImageCache loads the cache at path, starting empty when the file
// is missing or unreadable.
func NewImageCache(path string) *ImageCache {
	c := &ImageCache{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c
	}
	if err != nil {
		logger.Warn("Failed to read image cache %s, starting empty: %v", path, err)
		return c
	}

	if err := json.Unmarshal(data, &c.entries); err != nil {
		logger.Warn("Image cache %s is corrupt, starting empty: %v", path, err)
		c.entries = make(map[string]string)
	}

	return c
}

// Get returns the uploaded URL for key, if present.
func (c *ImageCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	url, ok := c.entries[key]
	return url, ok
}

// Put records key and persists the cache file.
func (c *ImageCache) Put(key, url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = url
	return writeJSON(c.path, c.entries)
}

// Len reports the number of cached entries.
func (c *ImageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// writeJSON atomically-enough persists v: directories are created on
// demand and the file is rewritten in place.
func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
