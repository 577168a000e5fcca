package domain

import (
	"strings"
	"time"
)

// Page is an immutable snapshot of a remote Notion database entry.
// The property schema varies per database configuration, so Properties
// is a bag keyed by the column name as it appears in Notion.
type Page struct {
	// ID is the Notion page UUID (hyphenated form).
	ID string

	// Properties holds the raw property bag keyed by column name.
	Properties map[string]Property

	// CreatedTime is when the page was created in Notion.
	CreatedTime time.Time

	// LastEditedTime is when the page was last edited in Notion.
	LastEditedTime time.Time
}

// Property is one value from a page's property bag. Exactly one of the
// typed fields is populated, matching Type.
type Property struct {
	// Type is the Notion property type ("title", "date", "select", ...).
	Type string

	// Title holds the rich text of a title property.
	Title []RichText

	// RichText holds the rich text of a rich_text property.
	RichText []RichText

	// Date holds the value of a date property.
	Date *DateValue

	// Select holds the value of a select property.
	Select *SelectOption

	// MultiSelect holds the values of a multi_select property.
	MultiSelect []SelectOption
}

// RichText is a single rich text span with its annotations.
type RichText struct {
	PlainText   string
	Href        string
	Annotations Annotations
}

// Annotations are the inline styles applied to a rich text span.
type Annotations struct {
	Bold          bool
	Italic        bool
	Strikethrough bool
	Code          bool
}

// DateValue is the start of a Notion date property, as an ISO date string.
type DateValue struct {
	Start string
}

// SelectOption is one option of a select or multi_select property.
type SelectOption struct {
	Name string
}

// PlainText flattens a rich text sequence to its unstyled text.
func PlainText(spans []RichText) string {
	var b strings.Builder
	for _, span := range spans {
		b.WriteString(span.PlainText)
	}
	return b.String()
}

// SlugFromPageID derives the filesystem- and URL-safe slug for a page.
// It is the page UUID with hyphens stripped, so it maps 1:1 to the page
// and re-deriving from the same ID always yields the same slug.
func SlugFromPageID(pageID string) string {
	return strings.ReplaceAll(pageID, "-", "")
}
