package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func titleProp(text string) Property {
	return Property{
		Type:  "title",
		Title: []RichText{{PlainText: text}},
	}
}

func TestExtractMetadata_AllFieldsPresent(t *testing.T) {
	page := Page{
		ID: "abc-123",
		Properties: map[string]Property{
			"Title":      titleProp("Hello"),
			"createDate": {Type: "date", Date: &DateValue{Start: "2024-01-01"}},
		},
		CreatedTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	meta := ExtractMetadata(page)

	assert.Equal(t, "Hello", meta.Title)
	assert.Equal(t, "2024-01-01", meta.PublishedAt)
	assert.Equal(t, "abc123", meta.Slug)
	assert.Equal(t, []string{}, meta.Tags)
	assert.Equal(t, "", meta.Summary)
	assert.Equal(t, LanguageKorean, meta.Language)
}

func TestExtractMetadata_TitleOnlyCapitalised(t *testing.T) {
	// A bag with only a capitalised Title field and nothing else: all
	// other fields fall back to defaults.
	page := Page{
		ID: "de-f456",
		Properties: map[string]Property{
			"Title": titleProp("Only Title"),
		},
		CreatedTime: time.Date(2023, 6, 15, 9, 30, 0, 0, time.UTC),
	}

	meta := ExtractMetadata(page)

	assert.Equal(t, "Only Title", meta.Title)
	assert.Equal(t, "2023-06-15", meta.PublishedAt)
	assert.Equal(t, []string{}, meta.Tags)
	assert.Equal(t, "", meta.Summary)
	assert.Equal(t, "def456", meta.Slug)
}

func TestExtractMetadata_TitlePriorityOrder(t *testing.T) {
	page := Page{
		ID: "p-1",
		Properties: map[string]Property{
			"title": titleProp("lowercase wins"),
			"Title": titleProp("capitalised"),
			"Name":  titleProp("name"),
		},
	}

	assert.Equal(t, "lowercase wins", ExtractMetadata(page).Title)
}

func TestExtractMetadata_EmptyTitleFallsThrough(t *testing.T) {
	page := Page{
		ID: "p-1",
		Properties: map[string]Property{
			"title": titleProp(""),
			"Name":  titleProp("from name"),
		},
	}

	assert.Equal(t, "from name", ExtractMetadata(page).Title)
}

func TestExtractMetadata_NoTitle(t *testing.T) {
	page := Page{ID: "p-1", Properties: map[string]Property{}}
	assert.Equal(t, "Untitled", ExtractMetadata(page).Title)
}

func TestExtractMetadata_DateVariants(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "createDate", key: "createDate"},
		{name: "create date with space", key: "Create Date"},
		{name: "published date", key: "Published Date"},
		{name: "plain date", key: "Date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Page{
				ID: "p-1",
				Properties: map[string]Property{
					tt.key: {Type: "date", Date: &DateValue{Start: "2022-12-31"}},
				},
			}
			assert.Equal(t, "2022-12-31", ExtractMetadata(page).PublishedAt)
		})
	}
}

func TestExtractMetadata_DateFallsBackToCreatedTime(t *testing.T) {
	page := Page{
		ID:          "p-1",
		CreatedTime: time.Date(2024, 3, 2, 23, 59, 0, 0, time.UTC),
	}
	assert.Equal(t, "2024-03-02", ExtractMetadata(page).PublishedAt)
}

func TestExtractMetadata_TagsMultiSelect(t *testing.T) {
	page := Page{
		ID: "p-1",
		Properties: map[string]Property{
			"tag": {Type: "multi_select", MultiSelect: []SelectOption{
				{Name: "go"}, {Name: "infra"},
			}},
		},
	}
	assert.Equal(t, []string{"go", "infra"}, ExtractMetadata(page).Tags)
}

func TestExtractMetadata_TagsSingleSelect(t *testing.T) {
	page := Page{
		ID: "p-1",
		Properties: map[string]Property{
			"tag": {Type: "select", Select: &SelectOption{Name: "til"}},
		},
	}
	assert.Equal(t, []string{"til"}, ExtractMetadata(page).Tags)
}

func TestExtractMetadata_TagsCapitalisedVariants(t *testing.T) {
	page := Page{
		ID: "p-1",
		Properties: map[string]Property{
			"Tags": {Type: "multi_select", MultiSelect: []SelectOption{{Name: "notes"}}},
		},
	}
	assert.Equal(t, []string{"notes"}, ExtractMetadata(page).Tags)
}

func TestFrontmatter_Format(t *testing.T) {
	meta := Metadata{
		Title:       "Hello",
		PublishedAt: "2024-01-01",
		Summary:     "",
		Tags:        []string{"go", "blog"},
		Language:    LanguageKorean,
		Slug:        "abc123",
	}

	want := `---
title: "Hello"
publishedAt: "2024-01-01"
summary: ""
language: "ko"
tags: ["go", "blog"]
---`
	assert.Equal(t, want, meta.Frontmatter())
}

func TestFrontmatter_EscapesQuotes(t *testing.T) {
	meta := Metadata{Title: `He said "hi"`, Language: LanguageKorean}
	assert.Contains(t, meta.Frontmatter(), `title: "He said \"hi\""`)
}

func TestFrontmatter_NoTags(t *testing.T) {
	meta := Metadata{Title: "t", Language: LanguageEnglish}
	assert.Contains(t, meta.Frontmatter(), "tags: []")
	assert.Contains(t, meta.Frontmatter(), `language: "en"`)
}
