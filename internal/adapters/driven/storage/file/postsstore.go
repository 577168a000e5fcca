// Package file persists posts and sync caches on the local filesystem,
// matching the layout the static site generator consumes: posts are
// language-partitioned .mdx files and the caches are small JSON files
// kept next to them.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloglab/notion-sync/internal/core/domain"
	"github.com/bloglab/notion-sync/internal/core/ports/driven"
)

// Ensure PostStore implements the interface.
var _ driven.PostStore = (*PostStore)(nil)

const postExtension = ".mdx"

// PostStore writes posts under root/<lang>/<slug>.mdx.
type PostStore struct {
	root string
}

// NewPostStore creates a post store rooted at dir.
func NewPostStore(dir string) (*PostStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("posts directory: %w", domain.ErrMissingConfig)
	}
	return &PostStore{root: dir}, nil
}

// ExistingSlugs scans every language directory and returns the union of
// slugs found. A missing directory is treated as empty, not an error.
func (s *PostStore) ExistingSlugs(_ context.Context) (map[string]struct{}, error) {
	slugs := make(map[string]struct{})

	for _, lang := range []domain.Language{domain.LanguageKorean, domain.LanguageEnglish} {
		entries, err := os.ReadDir(s.langDir(lang))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("scan %s posts: %w", lang, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), postExtension) {
				continue
			}
			slugs[strings.TrimSuffix(entry.Name(), postExtension)] = struct{}{}
		}
	}

	return slugs, nil
}

// Save writes the complete artifact for one (slug, language) pair.
func (s *PostStore) Save(_ context.Context, slug string, lang domain.Language, content string) error {
	dir := s.langDir(lang)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, slug+postExtension)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

func (s *PostStore) langDir(lang domain.Language) string {
	return filepath.Join(s.root, string(lang))
}
