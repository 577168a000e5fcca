package converter

import (
	"fmt"
	"strings"

	"github.com/bloglab/notion-sync/internal/core/domain"
)

// DefaultCalloutIcon is used when a callout block has no emoji icon.
const DefaultCalloutIcon = "💡"

// registerDefaultRules installs the standard block rendering rules,
// including the custom callout and toggle rules.
func registerDefaultRules(c *Converter) {
	c.SetRule("paragraph", func(b domain.Block, children string) string {
		return withChildren(renderRichText(b.RichText), children)
	})
	c.SetRule("heading_1", headingRule("# "))
	c.SetRule("heading_2", headingRule("## "))
	c.SetRule("heading_3", headingRule("### "))

	c.SetRule("bulleted_list_item", func(b domain.Block, children string) string {
		return withChildren("- "+renderRichText(b.RichText), children)
	})
	c.SetRule("numbered_list_item", func(b domain.Block, children string) string {
		return withChildren("1. "+renderRichText(b.RichText), children)
	})
	c.SetRule("to_do", func(b domain.Block, children string) string {
		box := "[ ]"
		if b.Checked {
			box = "[x]"
		}
		return withChildren("- "+box+" "+renderRichText(b.RichText), children)
	})

	c.SetRule("quote", func(b domain.Block, children string) string {
		return "> " + domain.PlainText(b.RichText)
	})
	c.SetRule("divider", func(domain.Block, string) string {
		return "---"
	})
	c.SetRule("code", func(b domain.Block, _ string) string {
		return fmt.Sprintf("```%s\n%s\n```", b.Language, domain.PlainText(b.RichText))
	})

	c.SetRule("image", func(b domain.Block, _ string) string {
		if b.URL == "" {
			return ""
		}
		return fmt.Sprintf("![%s](%s)", domain.PlainText(b.Caption), b.URL)
	})
	c.SetRule("bookmark", linkRule)
	c.SetRule("embed", linkRule)
	c.SetRule("video", linkRule)
	c.SetRule("file", linkRule)

	c.SetRule("child_page", func(b domain.Block, _ string) string {
		if b.Title == "" {
			return ""
		}
		return "**" + b.Title + "**"
	})

	// Callout: block quote prefixed with the icon glyph and a Note label.
	c.SetRule("callout", func(b domain.Block, _ string) string {
		icon := b.Icon
		if icon == "" {
			icon = DefaultCalloutIcon
		}
		return fmt.Sprintf("> %s **Note:** %s", icon, domain.PlainText(b.RichText))
	})

	// Toggle: collapsible disclosure whose body is left empty.
	c.SetRule("toggle", func(b domain.Block, _ string) string {
		return fmt.Sprintf("<details>\n<summary>%s</summary>\n\n</details>", domain.PlainText(b.RichText))
	})
}

func headingRule(prefix string) RenderFunc {
	return func(b domain.Block, _ string) string {
		text := renderRichText(b.RichText)
		if text == "" {
			return ""
		}
		return prefix + text
	}
}

func linkRule(b domain.Block, _ string) string {
	if b.URL == "" {
		return ""
	}
	label := domain.PlainText(b.Caption)
	if label == "" {
		label = b.URL
	}
	return fmt.Sprintf("[%s](%s)", label, b.URL)
}

func withChildren(text, children string) string {
	if children == "" {
		return text
	}
	if text == "" {
		return children
	}
	return text + "\n" + children
}

// renderRichText renders spans with their inline annotations.
func renderRichText(spans []domain.RichText) string {
	var b strings.Builder
	for _, span := range spans {
		b.WriteString(renderSpan(span))
	}
	return b.String()
}

func renderSpan(span domain.RichText) string {
	text := span.PlainText
	if text == "" {
		return ""
	}

	if span.Annotations.Code {
		text = "`" + text + "`"
	}
	if span.Annotations.Bold {
		text = "**" + text + "**"
	}
	if span.Annotations.Italic {
		text = "_" + text + "_"
	}
	if span.Annotations.Strikethrough {
		text = "~~" + text + "~~"
	}
	if span.Href != "" {
		text = "[" + text + "](" + span.Href + ")"
	}
	return text
}
