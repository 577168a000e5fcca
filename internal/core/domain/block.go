package domain

// Block is one node of a page's block tree, reduced to the fields the
// markdown renderer needs. Type is the raw Notion block type; the
// type-specific payload is flattened into the optional fields below.
type Block struct {
	// ID is the block UUID.
	ID string

	// Type is the Notion block type ("paragraph", "callout", "toggle", ...).
	Type string

	// HasChildren indicates the block has nested children to fetch.
	HasChildren bool

	// RichText is the block's text content.
	RichText []RichText

	// Icon is the emoji icon of a callout block.
	Icon string

	// Language is the language of a code block.
	Language string

	// Checked is the state of a to_do block.
	Checked bool

	// URL is the target of an image, bookmark, embed, video or file block.
	URL string

	// Caption is the caption of an image or bookmark block.
	Caption []RichText

	// Title is the title of a child_page block.
	Title string
}
