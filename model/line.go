package model

// Line is one reconstructed horizontal text line. Items are sorted
// ascending by X; a page's line list is sorted descending by Y so the top
// of the page comes first.
type Line struct {
	Y        float64
	FontSize float64
	Items    []TextItem
	Text     string
	Bounds   BBox
}

// ItemCount returns the number of items in the line.
func (l Line) ItemCount() int {
	return len(l.Items)
}
