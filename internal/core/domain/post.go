package domain

import (
	"fmt"
	"strings"
	"time"
)

// Language identifies which side of the bilingual content store a post
// belongs to.
type Language string

const (
	// LanguageKorean is the language posts are authored in.
	LanguageKorean Language = "ko"

	// LanguageEnglish is the machine-translated counterpart.
	LanguageEnglish Language = "en"
)

// Metadata is the canonical front-matter record extracted from a page's
// heterogeneous property bag.
type Metadata struct {
	Title       string
	PublishedAt string
	Summary     string
	Tags        []string
	Language    Language
	Slug        string
}

// Property name variants checked in priority order when extracting
// metadata. First populated match wins; lookups are case-sensitive.
var (
	titleKeys = []string{"title", "Title", "Name"}
	dateKeys  = []string{"createDate", "Create Date", "Published Date", "Date"}
	tagKeys   = []string{"tag", "Tag", "Tags"}
)

// ExtractMetadata derives canonical metadata from a page. It is pure and
// cannot fail: every field falls back to a default when the property bag
// has no usable value. The language is always the source language; the
// translated variant is produced later in the pipeline.
func ExtractMetadata(page Page) Metadata {
	return Metadata{
		Title:       extractTitle(page),
		PublishedAt: extractPublishedAt(page),
		Summary:     "",
		Tags:        extractTags(page),
		Language:    LanguageKorean,
		Slug:        SlugFromPageID(page.ID),
	}
}

func extractTitle(page Page) string {
	for _, key := range titleKeys {
		prop, ok := page.Properties[key]
		if !ok {
			continue
		}
		if text := PlainText(prop.Title); text != "" {
			return text
		}
	}
	return "Untitled"
}

func extractPublishedAt(page Page) string {
	for _, key := range dateKeys {
		prop, ok := page.Properties[key]
		if !ok || prop.Date == nil {
			continue
		}
		if prop.Date.Start != "" {
			return prop.Date.Start
		}
	}
	// Date portion of the creation timestamp.
	return page.CreatedTime.UTC().Format(time.DateOnly)
}

func extractTags(page Page) []string {
	for _, key := range tagKeys {
		prop, ok := page.Properties[key]
		if !ok {
			continue
		}
		if len(prop.MultiSelect) > 0 {
			tags := make([]string, 0, len(prop.MultiSelect))
			for _, opt := range prop.MultiSelect {
				tags = append(tags, opt.Name)
			}
			return tags
		}
		if prop.Select != nil && prop.Select.Name != "" {
			return []string{prop.Select.Name}
		}
	}
	return []string{}
}

// Frontmatter renders the metadata as the delimited header prefixed to
// every materialised post.
func (m Metadata) Frontmatter() string {
	quoted := make([]string, len(m.Tags))
	for i, tag := range m.Tags {
		quoted[i] = fmt.Sprintf("%q", tag)
	}

	return fmt.Sprintf(`---
title: %q
publishedAt: %q
summary: %q
language: %q
tags: [%s]
---`, m.Title, m.PublishedAt, m.Summary, string(m.Language), strings.Join(quoted, ", "))
}
