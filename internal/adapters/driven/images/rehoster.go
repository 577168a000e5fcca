// Package images rewrites remote image references inside post markdown
// to durable storage URLs. Images are downloaded once, transcoded to
// WebP, uploaded under a content-addressed key, and remembered in a
// cache so re-syncs never upload the same bytes twice.
package images

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/bloglab/notion-sync/internal/core/domain"
	"github.com/bloglab/notion-sync/internal/core/ports/driven"
	"github.com/bloglab/notion-sync/internal/logger"
)

// Ensure Rehoster implements the interface.
var _ driven.ImageRehoster = (*Rehoster)(nil)

// imagePattern matches markdown image references with absolute URLs.
var imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\((https?://[^)\s]+)\)`)

// hostedDomains are the transient Notion storage hosts whose URLs
// expire; only these are rewritten.
var hostedDomains = []string{"amazonaws.com", "notion.so"}

const (
	// maxImageBytes guards against runaway downloads.
	maxImageBytes = 32 << 20

	defaultDownloadTimeout = 30 * time.Second
)

// Config holds the rehoster dependencies.
type Config struct {
	// Store uploads image bytes. When nil the rehoster is a no-op
	// passthrough.
	Store driven.ObjectStore

	// Cache maps slug:hash keys to already-uploaded URLs.
	Cache driven.ImageCache

	// HTTPClient downloads source images. Defaults to a client with a
	// 30 second timeout.
	HTTPClient *http.Client
}

// Rehoster downloads, transcodes and re-uploads page images.
type Rehoster struct {
	store  driven.ObjectStore
	cache  driven.ImageCache
	client *http.Client
}

// New creates a rehoster. A nil Store yields a passthrough rehoster so
// callers can wire the pipeline unconditionally.
func New(cfg Config) *Rehoster {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultDownloadTimeout}
	}
	return &Rehoster{
		store:  cfg.Store,
		cache:  cfg.Cache,
		client: cfg.HTTPClient,
	}
}

// Rehost rewrites every rehostable image reference in markdown. A
// failure on one image keeps its original reference and moves on; the
// method only errors when the input itself cannot be processed.
func (r *Rehoster) Rehost(ctx context.Context, markdown, slug string) (string, error) {
	if r.store == nil {
		return markdown, nil
	}

	matches := imagePattern.FindAllStringSubmatch(markdown, -1)
	if len(matches) == 0 {
		return markdown, nil
	}

	result := markdown
	for _, m := range matches {
		full, alt, src := m[0], m[1], m[2]
		if !isHostedImage(src) {
			continue
		}

		url, err := r.rehostOne(ctx, src, slug)
		if err != nil {
			logger.Warn("Keeping original image reference for %s: %v", src, err)
			continue
		}

		result = strings.Replace(result, full, fmt.Sprintf("![%s](%s)", alt, url), 1)
	}

	return result, nil
}

// rehostOne moves a single image to durable storage and returns its new
// URL, reusing the cached URL when the same bytes were uploaded before.
func (r *Rehoster) rehostOne(ctx context.Context, src, slug string) (string, error) {
	data, err := r.download(ctx, src)
	if err != nil {
		return "", err
	}

	sum := md5.Sum(data)
	hash := hex.EncodeToString(sum[:])[:8]
	key := domain.ImageCacheKey(slug, hash)

	if r.cache != nil {
		if url, ok := r.cache.Get(key); ok {
			logger.Debug("Image cache hit for %s", key)
			return url, nil
		}
	}

	body, contentType := transcodeWebP(data)

	objectKey := fmt.Sprintf("posts/%s/%s.webp", slug, hash)
	url, err := r.store.Put(ctx, objectKey, body, contentType)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.Put(key, url); err != nil {
			logger.Warn("Failed to persist image cache entry %s: %v", key, err)
		}
	}

	logger.Info("Rehosted image %s -> %s", src, url)
	return url, nil
}

func (r *Rehoster) download(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("download: empty body")
	}

	return data, nil
}

func isHostedImage(url string) bool {
	for _, d := range hostedDomains {
		if strings.Contains(url, d) {
			return true
		}
	}
	return false
}
