package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// Dimension values outside (MinFeet, MaxFeet) are discarded: nothing on a
// residential or light-commercial plan is 500 feet long, and zero-length
// dimensions are pattern noise.
const (
	MinFeet = 0.0
	MaxFeet = 500.0
)

// dimPattern is one entry in the ordered pattern table. Earlier entries
// are more specific; a later pattern never re-matches a span an earlier
// one claimed.
type dimPattern struct {
	name string
	re   *regexp.Regexp
	kind model.DimensionKind
	// feet converts the submatches to one or more feet values. ok=false
	// rejects the match without claiming its span.
	feet func(m []string) ([]float64, bool)
}

var dimPatterns = []dimPattern{
	{
		// 12'-6 1/2"
		name: "feet-inches-fraction",
		re:   regexp.MustCompile(`(\d{1,3})'\s*-?\s*(\d{1,2})\s+(\d{1,2})\s*/\s*(\d{1,2})\s*"?`),
		kind: model.KindFeetInches,
		feet: func(m []string) ([]float64, bool) {
			f, i := atof(m[1]), atof(m[2])
			n, d := atof(m[3]), atof(m[4])
			if d == 0 {
				return nil, false
			}
			return []float64{f + (i+n/d)/12}, true
		},
	},
	{
		// 12'-1/2" (zero whole inches)
		name: "feet-fraction",
		re:   regexp.MustCompile(`(\d{1,3})'\s*-?\s*(\d{1,2})\s*/\s*(\d{1,2})\s*"?`),
		kind: model.KindFeetInches,
		feet: func(m []string) ([]float64, bool) {
			f, n, d := atof(m[1]), atof(m[2]), atof(m[3])
			if d == 0 {
				return nil, false
			}
			return []float64{f + n/d/12}, true
		},
	},
	{
		// 12'-6"
		name: "feet-inches",
		re:   regexp.MustCompile(`(\d{1,3})'\s*-?\s*(\d{1,2})\s*"`),
		kind: model.KindFeetInches,
		feet: func(m []string) ([]float64, bool) {
			return []float64{atof(m[1]) + atof(m[2])/12}, true
		},
	},
	{
		// 12'-6 with no trailing quote; the dash is required so a feet
		// value followed by unrelated digits does not read as inches
		name: "feet-inches-bare",
		re:   regexp.MustCompile(`(\d{1,3})'\s*-\s*(\d{1,2})\b`),
		kind: model.KindFeetInches,
		feet: func(m []string) ([]float64, bool) {
			return []float64{atof(m[1]) + atof(m[2])/12}, true
		},
	},
	{
		// 12.5'
		name: "decimal-feet",
		re:   regexp.MustCompile(`(\d{1,3}\.\d+)\s*'`),
		kind: model.KindDecimalFeet,
		feet: func(m []string) ([]float64, bool) {
			return []float64{atof(m[1])}, true
		},
	},
	{
		// 12': span tracking keeps this from swallowing the feet part
		// of an already-claimed feet-inches match
		name: "feet-only",
		re:   regexp.MustCompile(`(\d{1,3})\s*'`),
		kind: model.KindFeet,
		feet: func(m []string) ([]float64, bool) {
			return []float64{atof(m[1])}, true
		},
	},
	{
		// 6 1/2" or 1/2": fractional inches are deliberate dimensions
		// at any magnitude
		name: "inches-fraction",
		re:   regexp.MustCompile(`(?:(\d{1,2})\s+)?(\d{1,2})\s*/\s*(\d{1,2})\s*"`),
		kind: model.KindInches,
		feet: func(m []string) ([]float64, bool) {
			var whole float64
			if m[1] != "" {
				whole = atof(m[1])
			}
			n, d := atof(m[2]), atof(m[3])
			if d == 0 {
				return nil, false
			}
			return []float64{(whole + n/d) / 12}, true
		},
	},
	{
		// 36": bare whole inches only count as a dimension from a foot
		// up; smaller values are member sizes and spacing callouts
		name: "whole-inches",
		re:   regexp.MustCompile(`(\d{1,3})\s*"`),
		kind: model.KindInches,
		feet: func(m []string) ([]float64, bool) {
			in := atof(m[1])
			if in < 12 {
				return nil, false
			}
			return []float64{in / 12}, true
		},
	},
	{
		// 12 FT / 12.5 FEET
		name: "spelled-feet",
		re:   regexp.MustCompile(`(?i)(\d{1,3}(?:\.\d+)?)\s*(?:FT|FEET)\b`),
		kind: model.KindSpelled,
		feet: func(m []string) ([]float64, bool) {
			return []float64{atof(m[1])}, true
		},
	},
	{
		// 10 x 12: a room or opening footprint contributes both sides.
		// A left side of 2..6 reads as nominal lumber (2x4, 2x6) and is
		// the reference parser's business, not a dimension.
		name: "area",
		re:   regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d+)?)\s*x\s*(\d{1,2}(?:\.\d+)?)\b`),
		kind: model.KindArea,
		feet: func(m []string) ([]float64, bool) {
			w, h := atof(m[1]), atof(m[2])
			if !strings.Contains(m[1], ".") && w >= 2 && w <= 6 {
				return nil, false
			}
			return []float64{w, h}, true
		},
	},
}

// span is one claimed match region in the normalized text.
type span struct{ start, end int }

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

// Dimensions extracts every linear dimension from the text. Patterns run
// most specific first; a match whose span overlaps one claimed by an
// earlier pattern is skipped, which replaces lookahead guards with
// position tracking. Results are deduplicated by feet value rounded to
// four decimals and filtered to (0, 500) feet. Output order is
// deterministic for a given input.
func Dimensions(text string) []model.Dimension {
	norm := Normalize(text)

	var claimed []span
	seen := make(map[float64]bool)
	var out []model.Dimension

	for _, p := range dimPatterns {
		locs := p.re.FindAllStringSubmatchIndex(norm, -1)
		for _, loc := range locs {
			s := span{loc[0], loc[1]}
			if overlapsAny(claimed, s) {
				continue
			}

			m := submatches(norm, loc)
			values, ok := p.feet(m)
			if !ok {
				continue
			}
			claimed = append(claimed, s)

			raw := strings.TrimSpace(norm[loc[0]:loc[1]])
			for _, ft := range values {
				if ft <= MinFeet || ft >= MaxFeet {
					continue
				}
				key := math.Round(ft*10000) / 10000
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, model.Dimension{Raw: raw, Feet: ft, Kind: p.kind})
			}
		}
	}

	return out
}

// FirstDimension returns the first dimension found in the text, for
// single-value contexts like schedule cells.
func FirstDimension(text string) (model.Dimension, bool) {
	dims := Dimensions(text)
	if len(dims) == 0 {
		return model.Dimension{}, false
	}
	return dims[0], true
}

func overlapsAny(claimed []span, s span) bool {
	for _, c := range claimed {
		if c.overlaps(s) {
			return true
		}
	}
	return false
}

// submatches extracts submatch strings from a FindAllStringSubmatchIndex
// location, empty string for absent groups.
func submatches(text string, loc []int) []string {
	m := make([]string, len(loc)/2)
	for i := range m {
		if loc[2*i] >= 0 {
			m[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}
	return m
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
