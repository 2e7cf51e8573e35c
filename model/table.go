package model

import (
	"math"
	"strings"
)

// ColumnBound is the horizontal extent of one detected column. XMax is
// +Inf for the rightmost column.
type ColumnBound struct {
	XMin float64
	XMax float64
}

// Contains reports whether an x coordinate falls in [XMin, XMax).
func (c ColumnBound) Contains(x float64) bool {
	return x >= c.XMin && x < c.XMax
}

// OpenRight reports whether the bound extends to the page edge.
func (c ColumnBound) OpenRight() bool {
	return math.IsInf(c.XMax, 1)
}

// Table is a detected column-aligned region of a page. StartLine and
// EndLine index into the page's line list; Cells always has
// EndLine-StartLine+1 rows of len(ColumnBounds) cells (possibly empty
// strings). The first detected row is the header.
type Table struct {
	StartLine    int
	EndLine      int
	ColumnBounds []ColumnBound
	Cells        [][]string
	HeaderRow    []string
	Bounds       BBox
}

// RowCount returns the number of rows, header included.
func (t *Table) RowCount() int {
	return len(t.Cells)
}

// ColCount returns the number of detected columns.
func (t *Table) ColCount() int {
	return len(t.ColumnBounds)
}

// DataRows returns the rows below the header.
func (t *Table) DataRows() [][]string {
	if len(t.Cells) <= 1 {
		return nil
	}
	return t.Cells[1:]
}

// Cell returns the cell at the given row and column (0-indexed), or ""
// when out of bounds.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Cells) {
		return ""
	}
	if col < 0 || col >= len(t.Cells[row]) {
		return ""
	}
	return t.Cells[row][col]
}

// ToMarkdown converts the table to markdown format
func (t *Table) ToMarkdown() string {
	if len(t.Cells) == 0 {
		return ""
	}

	var sb strings.Builder

	// Header row
	for j, cell := range t.Cells[0] {
		sb.WriteString("| ")
		sb.WriteString(strings.ReplaceAll(cell, "\n", " "))
		sb.WriteString(" ")
		if j == len(t.Cells[0])-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	// Separator
	for j := range t.Cells[0] {
		sb.WriteString("|---")
		if j == len(t.Cells[0])-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	// Data rows
	for i := 1; i < len(t.Cells); i++ {
		for j, cell := range t.Cells[i] {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(cell, "\n", " "))
			sb.WriteString(" ")
			if j == len(t.Cells[i])-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Cells {
		for j, cell := range row {
			// Escape quotes and wrap in quotes if necessary
			text := cell
			if strings.Contains(text, ",") || strings.Contains(text, "\"") || strings.Contains(text, "\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
