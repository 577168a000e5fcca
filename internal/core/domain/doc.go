// Package domain contains the core types of the content pipeline:
// remote pages and blocks as fetched from Notion, the canonical post
// metadata derived from them, and the cache records used to make the
// pipeline incremental.
package domain
