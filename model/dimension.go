package model

// DimensionKind tags which pattern family produced a dimension.
type DimensionKind string

const (
	KindFeetInches  DimensionKind = "feet-inches"
	KindDecimalFeet DimensionKind = "decimal-feet"
	KindFeet        DimensionKind = "feet"
	KindInches      DimensionKind = "inches"
	KindSpelled     DimensionKind = "spelled"
	KindArea        DimensionKind = "area"
)

// Dimension is one extracted linear dimension. Feet is always in
// (0, 500); Raw preserves the matched source text.
type Dimension struct {
	Raw  string        `json:"raw"`
	Feet float64       `json:"feet"`
	Kind DimensionKind `json:"kind"`
}

// Inches returns the dimension in inches.
func (d Dimension) Inches() float64 {
	return d.Feet * 12
}
