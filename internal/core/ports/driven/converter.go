package driven

import "context"

// PageConverter renders a page's block tree into markdown.
type PageConverter interface {
	// Convert renders the page identified by pageID. When slug is
	// non-empty, embedded remote image references are rewritten to
	// durable storage URLs before the text is returned. A conversion
	// failure is per-document: the caller logs it and continues.
	Convert(ctx context.Context, pageID, slug string) (string, error)
}

// ImageRehoster rewrites remote image references in markdown to durable
// storage URLs. Implementations deduplicate by content hash and tolerate
// per-image failures by leaving the affected reference untouched.
type ImageRehoster interface {
	Rehost(ctx context.Context, markdown, slug string) (string, error)
}

// ObjectStore uploads bytes to durable storage under a deterministic,
// content-addressed key and returns the public URL.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}
