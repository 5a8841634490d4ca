package notion

import (
	"strings"

	"github.com/jomei/notionapi"
)

// PlainText concatenates the plain_text values of a rich text run.
func PlainText(rts []notionapi.RichText) string {
	var b strings.Builder
	for _, rt := range rts {
		b.WriteString(rt.PlainText)
	}
	return b.String()
}

// Title returns the text of a title property, or "".
func Title(p notionapi.Page, name string) string {
	if tp, ok := p.Properties[name].(*notionapi.TitleProperty); ok {
		return PlainText(tp.Title)
	}
	return ""
}

// Text returns the text of a rich_text property, or "".
func Text(p notionapi.Page, name string) string {
	if rtp, ok := p.Properties[name].(*notionapi.RichTextProperty); ok {
		return PlainText(rtp.RichText)
	}
	return ""
}

// Number returns the value of a number property, or 0.
func Number(p notionapi.Page, name string) float64 {
	if np, ok := p.Properties[name].(*notionapi.NumberProperty); ok {
		return np.Number
	}
	return 0
}

// Select returns the chosen option of a select property, or "".
func Select(p notionapi.Page, name string) string {
	if sp, ok := p.Properties[name].(*notionapi.SelectProperty); ok {
		return sp.Select.Name
	}
	return ""
}
