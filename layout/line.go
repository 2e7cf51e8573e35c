package layout

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// ColumnSeparator is inserted between items whose horizontal gap reads as
// a column break. A tab keeps regex matching on line text intact while
// preserving the column structure for display and debugging.
const ColumnSeparator = "\t"

// Config holds configuration for line reconstruction
type Config struct {
	// YToleranceFactor scales the line's font size into the Y-distance
	// tolerance for joining items (default: 0.4)
	YToleranceFactor float64

	// MinYTolerance is the floor for the join tolerance in page units,
	// so tiny fonts still group (default: 2.0)
	MinYTolerance float64

	// ColumnGapFactor is the gap, in average character widths, beyond
	// which a column separator is inserted (default: 2.5)
	ColumnGapFactor float64

	// SpaceGapFactor is the gap, in average character widths, beyond
	// which a plain space is inserted (default: 0.3)
	SpaceGapFactor float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		YToleranceFactor: 0.4,
		MinYTolerance:    2.0,
		ColumnGapFactor:  2.5,
		SpaceGapFactor:   0.3,
	}
}

// Builder reconstructs text lines from normalized items
type Builder struct {
	config Config
}

// NewBuilder creates a builder with default configuration
func NewBuilder() *Builder {
	return &Builder{config: DefaultConfig()}
}

// NewBuilderWithConfig creates a builder with custom configuration
func NewBuilderWithConfig(config Config) *Builder {
	if config.YToleranceFactor <= 0 {
		config.YToleranceFactor = 0.4
	}
	if config.MinYTolerance <= 0 {
		config.MinYTolerance = 2.0
	}
	if config.ColumnGapFactor <= 0 {
		config.ColumnGapFactor = 2.5
	}
	if config.SpaceGapFactor <= 0 {
		config.SpaceGapFactor = 0.3
	}
	return &Builder{config: config}
}

// Build groups items into lines and serializes each one. The returned
// lines are sorted descending by Y (top of page first); each line's items
// are sorted ascending by X.
func (b *Builder) Build(items []model.TextItem) []model.Line {
	if len(items) == 0 {
		return nil
	}

	// Step 1: Sort by Y descending, X ascending as the tie-break
	sorted := make([]model.TextItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	// Step 2: Walk the sorted list grouping items into lines. The first
	// item of a group anchors the line's Y and font size for the join
	// test.
	var groups [][]model.TextItem
	var current []model.TextItem
	var anchorY, anchorSize float64

	for _, item := range sorted {
		if len(current) == 0 {
			current = []model.TextItem{item}
			anchorY, anchorSize = item.Y, item.FontSize
			continue
		}
		if absFloat64(item.Y-anchorY) <= b.joinTolerance(anchorSize) {
			current = append(current, item)
		} else {
			groups = append(groups, current)
			current = []model.TextItem{item}
			anchorY, anchorSize = item.Y, item.FontSize
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	// Step 3: Finalize each group into a Line
	lines := make([]model.Line, 0, len(groups))
	for _, group := range groups {
		lines = append(lines, b.buildLine(group))
	}

	return lines
}

// joinTolerance returns the Y distance within which an item belongs to a
// line anchored at the given font size.
func (b *Builder) joinTolerance(fontSize float64) float64 {
	tol := fontSize * b.config.YToleranceFactor
	if tol < b.config.MinYTolerance {
		tol = b.config.MinYTolerance
	}
	return tol
}

// buildLine re-sorts a group by X and fills in the line's metadata.
func (b *Builder) buildLine(group []model.TextItem) model.Line {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].X < group[j].X
	})

	line := model.Line{
		Y:        group[0].Y,
		FontSize: group[0].FontSize,
		Items:    group,
		Text:     b.assembleText(group),
	}

	// Bounding box spans every item in the line.
	bounds := model.NewBBox(group[0].X, group[0].Y, group[0].Width, group[0].Height)
	for _, item := range group[1:] {
		bounds = bounds.Union(model.NewBBox(item.X, item.Y, item.Width, item.Height))
	}
	line.Bounds = bounds

	return line
}

// assembleText serializes a line's items, choosing the separator from the
// horizontal gap measured in average character widths of the previous
// item.
func (b *Builder) assembleText(items []model.TextItem) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			prev := items[i-1]
			gap := item.X - (prev.X + prev.Width)
			charWidth := averageCharWidth(prev)

			switch {
			case gap > b.config.ColumnGapFactor*charWidth:
				sb.WriteString(ColumnSeparator)
			case gap > b.config.SpaceGapFactor*charWidth:
				sb.WriteString(" ")
			}
			// Tighter gaps concatenate directly: the items are
			// sub-word fragments of one token.
		}
		sb.WriteString(item.Text)
	}
	return sb.String()
}

// averageCharWidth estimates one character's width from the item's
// measured width, falling back to half the font size for zero-width
// items.
func averageCharWidth(item model.TextItem) float64 {
	n := utf8.RuneCountInString(item.Text)
	if n > 0 && item.Width > 0 {
		return item.Width / float64(n)
	}
	return item.FontSize * 0.5
}

// PageText joins reconstructed lines into one page string, top to bottom.
func PageText(lines []model.Line) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(line.Text)
	}
	return sb.String()
}

func absFloat64(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
