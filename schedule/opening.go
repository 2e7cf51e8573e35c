package schedule

import (
	"regexp"
	"strings"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/parse"
)

// Opening-schedule defaults. One of each opening and a doubled header
// with single trimmer and king studs is the conventional minimum frame.
const (
	DefaultQuantity     = 1
	DefaultHeaderCount  = 2
	DefaultTrimmerStuds = 1
	DefaultKingStuds    = 1
)

// openingFeetCutoff splits bare-number opening sizes: under 12 reads as
// feet, 12 and up as inches.
const openingFeetCutoff = 12.0

// openingFields maps door/window-schedule header cells to semantic
// fields. The mark column is the key.
var openingFields = []FieldSpec{
	{Name: "mark", Pattern: regexp.MustCompile(`(?i)^\s*(?:mark|sym(?:bol)?|no\.?|num(?:ber)?|id)\b`), Key: true},
	{Name: "category", Pattern: regexp.MustCompile(`(?i)^\s*(?:type|category|desc(?:ription)?)\b`)},
	{Name: "size", Pattern: regexp.MustCompile(`(?i)\bsize\b|r\.?\s?o\.?`)},
	{Name: "width", Pattern: regexp.MustCompile(`(?i)width|\bwd?\.?\b`)},
	{Name: "height", Pattern: regexp.MustCompile(`(?i)height|hgt|\bht\.?\b`)},
	{Name: "quantity", Pattern: regexp.MustCompile(`(?i)qty|quan|count|req'?d`)},
	{Name: "headerSize", Pattern: regexp.MustCompile(`(?i)header|hdr|lintel`)},
	{Name: "sillHeight", Pattern: regexp.MustCompile(`(?i)sill`)},
	{Name: "wallType", Pattern: regexp.MustCompile(`(?i)wall`)},
	{Name: "notes", Pattern: regexp.MustCompile(`(?i)notes?|remarks?|comments?`)},
}

var (
	doorWordRe   = regexp.MustCompile(`(?i)\bdoors?\b|\bentry\b|\bslider\b|pocket|bifold|overhead`)
	windowWordRe = regexp.MustCompile(`(?i)\bwindows?\b|casement|\bhung\b|slid(?:ing|er)\s+window|awning|fixed`)
	headerCallRe = regexp.MustCompile(`(?i)\(?\s*(\d)?\s*\)?\s*-?\s*([2-8]\s*x\s*\d{1,2}|\d+\s+\d/\d\s*"?\s*LVL|LVL)`)
	sizePairRe   = regexp.MustCompile(`(?i)([\d'"/\s-]+?)\s*x\s*([\d'"/\s-]+)`)
)

// headerSizeForWidth derives a conventional header from the rough opening
// width when the schedule carries no explicit callout.
func headerSizeForWidth(widthFt float64) string {
	in := widthFt * 12
	switch {
	case in <= 36:
		return "2x6"
	case in <= 48:
		return "2x8"
	case in <= 72:
		return "2x10"
	case in <= 96:
		return "2x12"
	default:
		return "LVL"
	}
}

// ParseOpenings extracts door/window rows from a detected table. Rows
// without a mark are dropped silently. Category falls back to the mark's
// leading letter (D for doors, W for windows); header sizes fall back to
// the width-derived convention. Default substitutions are warned once per
// table rather than per row to keep the warning list readable.
func ParseOpenings(table *model.Table, page int) ([]model.Opening, []model.Warning) {
	if table == nil || table.RowCount() < 2 {
		return nil, nil
	}

	mapped := mapHeaders(table.HeaderRow, openingFields)
	if _, ok := mapped["mark"]; !ok {
		return nil, []model.Warning{model.Warnf("opening-schedule-headers", page, model.SeverityInfo,
			"table has no recognizable mark column; headers %v", table.HeaderRow)}
	}

	var openings []model.Opening
	var warnings []model.Warning
	defaultedQty := 0
	derivedHeaders := 0
	unknownMarks := 0

	for _, row := range table.DataRows() {
		mark := cellFor(row, mapped, "mark")
		if mark == "" {
			continue
		}

		op := model.Opening{
			Mark:         mark,
			HeaderCount:  DefaultHeaderCount,
			TrimmerStuds: DefaultTrimmerStuds,
			KingStuds:    DefaultKingStuds,
		}

		if w, ok := parseFeet(cellFor(row, mapped, "width"), openingFeetCutoff); ok {
			op.Width = w
		}
		if h, ok := parseFeet(cellFor(row, mapped, "height"), openingFeetCutoff); ok {
			op.Height = h
		}

		// A combined size column fills whichever sides are still zero.
		if op.Width == 0 || op.Height == 0 {
			if cell := cellFor(row, mapped, "size"); cell != "" {
				if w, h, ok := parseSizePair(cell); ok {
					if op.Width == 0 {
						op.Width = w
					}
					if op.Height == 0 {
						op.Height = h
					}
				}
			}
		}

		if q, ok := parseQuantity(cellFor(row, mapped, "quantity")); ok {
			op.Quantity = q
		} else {
			op.Quantity = DefaultQuantity
			defaultedQty++
		}

		op.Category = inferCategory(cellFor(row, mapped, "category"), mark)
		if op.Category == "" {
			unknownMarks++
			warnings = append(warnings, model.Warnf("opening-category-unknown", page, model.SeverityReview,
				"opening %s: cannot tell door from window", mark))
		}

		if cell := cellFor(row, mapped, "headerSize"); cell != "" {
			if m := headerCallRe.FindStringSubmatch(parse.Normalize(cell)); m != nil {
				op.HeaderSize = tightenSize(m[2])
				if m[1] != "" {
					op.HeaderCount = atoi(m[1])
				}
			}
		}
		if op.HeaderSize == "" && op.Width > 0 {
			op.HeaderSize = headerSizeForWidth(op.Width)
			derivedHeaders++
		}

		if s, ok := parseFeet(cellFor(row, mapped, "sillHeight"), openingFeetCutoff); ok {
			op.SillHeight = s
		}
		op.WallType = cellFor(row, mapped, "wallType")
		op.Notes = cellFor(row, mapped, "notes")

		openings = append(openings, op)
	}

	if defaultedQty > 0 {
		warnings = append(warnings, model.Warnf("opening-quantity-default", page, model.SeverityInfo,
			"%d opening rows had no readable quantity, defaulting to %d each", defaultedQty, DefaultQuantity))
	}
	if derivedHeaders > 0 {
		warnings = append(warnings, model.Warnf("opening-header-derived", page, model.SeverityInfo,
			"%d opening rows had no header callout; sizes derived from width", derivedHeaders))
	}

	return openings, warnings
}

// inferCategory reads the category cell first, then the mark's leading
// letter. An empty result means neither signal was conclusive.
func inferCategory(cell, mark string) model.OpeningCategory {
	if doorWordRe.MatchString(cell) {
		return model.CategoryDoor
	}
	if windowWordRe.MatchString(cell) {
		return model.CategoryWindow
	}
	switch {
	case strings.HasPrefix(strings.ToUpper(mark), "D"):
		return model.CategoryDoor
	case strings.HasPrefix(strings.ToUpper(mark), "W"):
		return model.CategoryWindow
	}
	return ""
}

// parseSizePair splits a combined "3'-0" x 6'-8"" size cell into width
// and height feet.
func parseSizePair(cell string) (w, h float64, ok bool) {
	m := sizePairRe.FindStringSubmatch(parse.Normalize(cell))
	if m == nil {
		return 0, 0, false
	}
	w, wok := parseFeet(m[1], openingFeetCutoff)
	h, hok := parseFeet(m[2], openingFeetCutoff)
	if !wok || !hok {
		return 0, 0, false
	}
	return w, h, true
}

// tightenSize normalizes "2 X 10" to "2x10" and uppercases LVL callouts.
func tightenSize(s string) string {
	s = strings.Join(strings.Fields(s), "")
	if strings.EqualFold(s, "lvl") || strings.Contains(strings.ToLower(s), "lvl") {
		return strings.ToUpper(s)
	}
	return strings.ToLower(s)
}
