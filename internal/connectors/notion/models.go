package notion

import (
	"time"

	"github.com/bloglab/notion-sync/internal/core/domain"
)

// Wire types for the subset of the Notion API this pipeline consumes.
// Property and block payloads are type-keyed unions; only the variants
// the extractor and converter use are modelled.

type queryRequest struct {
	Sorts       []sortSpec `json:"sorts,omitempty"`
	StartCursor string     `json:"start_cursor,omitempty"`
	PageSize    int        `json:"page_size,omitempty"`
}

type sortSpec struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction"`
}

type queryResponse struct {
	Results    []pageObject `json:"results"`
	HasMore    bool         `json:"has_more"`
	NextCursor string       `json:"next_cursor"`
}

type pageObject struct {
	ID             string                    `json:"id"`
	CreatedTime    time.Time                 `json:"created_time"`
	LastEditedTime time.Time                 `json:"last_edited_time"`
	Properties     map[string]propertyObject `json:"properties"`
}

type propertyObject struct {
	Type        string         `json:"type"`
	Title       []richTextItem `json:"title,omitempty"`
	RichText    []richTextItem `json:"rich_text,omitempty"`
	Date        *dateObject    `json:"date,omitempty"`
	Select      *selectOption  `json:"select,omitempty"`
	MultiSelect []selectOption `json:"multi_select,omitempty"`
}

type richTextItem struct {
	PlainText   string       `json:"plain_text"`
	Href        string       `json:"href,omitempty"`
	Annotations *annotations `json:"annotations,omitempty"`
}

type annotations struct {
	Bold          bool `json:"bold"`
	Italic        bool `json:"italic"`
	Strikethrough bool `json:"strikethrough"`
	Code          bool `json:"code"`
}

type dateObject struct {
	Start string `json:"start"`
}

type selectOption struct {
	Name string `json:"name"`
}

type blockListResponse struct {
	Results    []blockObject `json:"results"`
	HasMore    bool          `json:"has_more"`
	NextCursor string        `json:"next_cursor"`
}

type blockObject struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	HasChildren bool          `json:"has_children"`
	Paragraph   *textPayload  `json:"paragraph,omitempty"`
	Heading1    *textPayload  `json:"heading_1,omitempty"`
	Heading2    *textPayload  `json:"heading_2,omitempty"`
	Heading3    *textPayload  `json:"heading_3,omitempty"`
	Bulleted    *textPayload  `json:"bulleted_list_item,omitempty"`
	Numbered    *textPayload  `json:"numbered_list_item,omitempty"`
	ToDo        *toDoPayload  `json:"to_do,omitempty"`
	Quote       *textPayload  `json:"quote,omitempty"`
	Callout     *calloutBlock `json:"callout,omitempty"`
	Toggle      *textPayload  `json:"toggle,omitempty"`
	Code        *codeBlock    `json:"code,omitempty"`
	Image       *fileBlock    `json:"image,omitempty"`
	Bookmark    *linkBlock    `json:"bookmark,omitempty"`
	Embed       *linkBlock    `json:"embed,omitempty"`
	Video       *fileBlock    `json:"video,omitempty"`
	File        *fileBlock    `json:"file,omitempty"`
	ChildPage   *childPage    `json:"child_page,omitempty"`
}

type textPayload struct {
	RichText []richTextItem `json:"rich_text"`
}

type toDoPayload struct {
	RichText []richTextItem `json:"rich_text"`
	Checked  bool           `json:"checked"`
}

type calloutBlock struct {
	RichText []richTextItem `json:"rich_text"`
	Icon     *iconObject    `json:"icon,omitempty"`
}

type iconObject struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji,omitempty"`
}

type codeBlock struct {
	RichText []richTextItem `json:"rich_text"`
	Language string         `json:"language"`
}

type fileBlock struct {
	Type     string         `json:"type"`
	External *urlObject     `json:"external,omitempty"`
	File     *urlObject     `json:"file,omitempty"`
	Caption  []richTextItem `json:"caption,omitempty"`
}

type linkBlock struct {
	URL     string         `json:"url"`
	Caption []richTextItem `json:"caption,omitempty"`
}

type childPage struct {
	Title string `json:"title"`
}

type urlObject struct {
	URL string `json:"url"`
}

type apiError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// toDomain converts a wire page to its domain representation.
func (p pageObject) toDomain() domain.Page {
	props := make(map[string]domain.Property, len(p.Properties))
	for name, prop := range p.Properties {
		props[name] = prop.toDomain()
	}
	return domain.Page{
		ID:             p.ID,
		Properties:     props,
		CreatedTime:    p.CreatedTime,
		LastEditedTime: p.LastEditedTime,
	}
}

func (p propertyObject) toDomain() domain.Property {
	out := domain.Property{
		Type:     p.Type,
		Title:    toDomainRichText(p.Title),
		RichText: toDomainRichText(p.RichText),
	}
	if p.Date != nil {
		out.Date = &domain.DateValue{Start: p.Date.Start}
	}
	if p.Select != nil {
		out.Select = &domain.SelectOption{Name: p.Select.Name}
	}
	for _, opt := range p.MultiSelect {
		out.MultiSelect = append(out.MultiSelect, domain.SelectOption{Name: opt.Name})
	}
	return out
}

func toDomainRichText(items []richTextItem) []domain.RichText {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.RichText, len(items))
	for i, item := range items {
		out[i] = domain.RichText{
			PlainText: item.PlainText,
			Href:      item.Href,
		}
		if item.Annotations != nil {
			out[i].Annotations = domain.Annotations{
				Bold:          item.Annotations.Bold,
				Italic:        item.Annotations.Italic,
				Strikethrough: item.Annotations.Strikethrough,
				Code:          item.Annotations.Code,
			}
		}
	}
	return out
}

// toDomain flattens the type-keyed block payload into a domain block.
func (b blockObject) toDomain() domain.Block {
	out := domain.Block{
		ID:          b.ID,
		Type:        b.Type,
		HasChildren: b.HasChildren,
	}

	switch b.Type {
	case "paragraph":
		out.RichText = payloadText(b.Paragraph)
	case "heading_1":
		out.RichText = payloadText(b.Heading1)
	case "heading_2":
		out.RichText = payloadText(b.Heading2)
	case "heading_3":
		out.RichText = payloadText(b.Heading3)
	case "bulleted_list_item":
		out.RichText = payloadText(b.Bulleted)
	case "numbered_list_item":
		out.RichText = payloadText(b.Numbered)
	case "quote":
		out.RichText = payloadText(b.Quote)
	case "toggle":
		out.RichText = payloadText(b.Toggle)
	case "to_do":
		if b.ToDo != nil {
			out.RichText = toDomainRichText(b.ToDo.RichText)
			out.Checked = b.ToDo.Checked
		}
	case "callout":
		if b.Callout != nil {
			out.RichText = toDomainRichText(b.Callout.RichText)
			if b.Callout.Icon != nil {
				out.Icon = b.Callout.Icon.Emoji
			}
		}
	case "code":
		if b.Code != nil {
			out.RichText = toDomainRichText(b.Code.RichText)
			out.Language = b.Code.Language
		}
	case "image":
		out.URL, out.Caption = fileURL(b.Image)
	case "video":
		out.URL, out.Caption = fileURL(b.Video)
	case "file":
		out.URL, out.Caption = fileURL(b.File)
	case "bookmark":
		if b.Bookmark != nil {
			out.URL = b.Bookmark.URL
			out.Caption = toDomainRichText(b.Bookmark.Caption)
		}
	case "embed":
		if b.Embed != nil {
			out.URL = b.Embed.URL
			out.Caption = toDomainRichText(b.Embed.Caption)
		}
	case "child_page":
		if b.ChildPage != nil {
			out.Title = b.ChildPage.Title
		}
	}

	return out
}

func payloadText(p *textPayload) []domain.RichText {
	if p == nil {
		return nil
	}
	return toDomainRichText(p.RichText)
}

func fileURL(f *fileBlock) (string, []domain.RichText) {
	if f == nil {
		return "", nil
	}
	caption := toDomainRichText(f.Caption)
	if f.External != nil {
		return f.External.URL, caption
	}
	if f.File != nil {
		return f.File.URL, caption
	}
	return "", caption
}
