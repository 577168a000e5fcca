// Package config loads pipeline settings. Configuration is
// environment-first: an optional TOML file provides defaults and
// environment variables override it, which keeps CI-driven runs
// file-free while local runs can keep credentials in one place.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/bloglab/notion-sync/internal/core/domain"
)

// DefaultPostsDir is where language-partitioned posts are written when
// no explicit directory is configured.
const DefaultPostsDir = "content/posts"

// Config holds every pipeline setting. Only the Notion credentials are
// required; the translation and rehosting groups are optional and the
// pipeline degrades gracefully without them.
type Config struct {
	// Notion access, required.
	NotionAPIKey     string `toml:"notion_api_key"`
	NotionDatabaseID string `toml:"notion_database_id"`

	// Translation, optional. An empty API key disables translation.
	GeminiAPIKey string `toml:"gemini_api_key"`
	GeminiModel  string `toml:"gemini_model"`

	// Image rehosting, optional. An empty bucket disables rehosting.
	S3Bucket           string `toml:"s3_bucket"`
	AWSRegion          string `toml:"aws_region"`
	AWSAccessKeyID     string `toml:"aws_access_key_id"`
	AWSSecretAccessKey string `toml:"aws_secret_access_key"`
	CloudFrontDomain   string `toml:"cloudfront_domain"`

	// Output layout.
	PostsDir string `toml:"posts_dir"`
}

// Load reads the optional TOML file at path, then applies environment
// overrides. An empty path or a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Optional file, fall through to env.
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if cfg.PostsDir == "" {
		cfg.PostsDir = DefaultPostsDir
	}

	return cfg, nil
}

// applyEnv overrides file values with environment variables. The names
// match what the hosting platform's deploy hooks export.
func (c *Config) applyEnv() {
	overrideEnv(&c.NotionAPIKey, "NOTION_API_KEY")
	overrideEnv(&c.NotionDatabaseID, "NOTION_DATABASE_ID")
	overrideEnv(&c.GeminiAPIKey, "GEMINI_API_KEY")
	overrideEnv(&c.GeminiModel, "GEMINI_MODEL")
	overrideEnv(&c.S3Bucket, "S3_BUCKET_NAME")
	overrideEnv(&c.AWSRegion, "AWS_REGION")
	overrideEnv(&c.AWSAccessKeyID, "AWS_ACCESS_KEY_ID")
	overrideEnv(&c.AWSSecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	overrideEnv(&c.CloudFrontDomain, "CLOUDFRONT_DOMAIN")
	overrideEnv(&c.PostsDir, "POSTS_DIR")
}

func overrideEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// Validate checks the required settings. Optional groups are not
// validated here; each adapter reports its own missing pieces.
func (c *Config) Validate() error {
	if c.NotionAPIKey == "" {
		return fmt.Errorf("NOTION_API_KEY: %w", domain.ErrMissingConfig)
	}
	if c.NotionDatabaseID == "" {
		return fmt.Errorf("NOTION_DATABASE_ID: %w", domain.ErrMissingConfig)
	}
	return nil
}

// TranslationEnabled reports whether the translation group is
// configured.
func (c *Config) TranslationEnabled() bool {
	return c.GeminiAPIKey != ""
}

// RehostingEnabled reports whether the image rehosting group is
// configured.
func (c *Config) RehostingEnabled() bool {
	return c.S3Bucket != ""
}
