package model

import "strings"

// RawTextItem is one positioned token exactly as the page-rendering
// collaborator delivers it: text plus an affine transform, with width and
// optionally height in page units.
type RawTextItem struct {
	Text      string
	Transform Matrix
	Width     float64
	Height    float64 // zero when the source does not report glyph height
	FontName  string
}

// PageInput is one page's worth of raw tokens plus the viewport dimensions,
// the contract between a page source and the pipeline.
type PageInput struct {
	Number int // 1-based
	Width  float64
	Height float64
	Items  []RawTextItem
}

// TextItem is the normalized record every pipeline stage consumes.
// Immutable once produced; coordinates use a bottom-left origin with Y
// growing toward the top of the page.
type TextItem struct {
	Text     string
	X        float64
	Y        float64
	Width    float64
	Height   float64
	FontSize float64
	FontName string
}

// NormalizeItem converts one raw token into a TextItem. Position comes from
// the transform's translation; font size prefers the reported height, then
// the transform's scale components.
func NormalizeItem(raw RawTextItem) TextItem {
	pos := raw.Transform.Translation()
	size := raw.Height
	if size <= 0 {
		size = raw.Transform.ApproxFontSize()
	}
	height := raw.Height
	if height <= 0 {
		height = size
	}
	return TextItem{
		Text:     raw.Text,
		X:        pos.X,
		Y:        pos.Y,
		Width:    raw.Width,
		Height:   height,
		FontSize: size,
		FontName: raw.FontName,
	}
}

// NormalizeItems converts a page's raw tokens into TextItems, dropping
// tokens whose text is empty or whitespace-only.
func NormalizeItems(raw []RawTextItem) []TextItem {
	items := make([]TextItem, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		items = append(items, NormalizeItem(r))
	}
	return items
}
