package schedule

import (
	"regexp"
	"strings"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// Wall-schedule defaults substituted when a cell is missing or refuses to
// parse. Every substitution is logged as a warning.
const (
	DefaultWallHeight  = 8.0
	DefaultWallSpacing = 16
)

// wallHeightCutoff splits bare-number heights: values under it read as
// feet, values from it up read as inches. No wall is 30 feet tall and no
// wall height callout is under 30 inches.
const wallHeightCutoff = 30.0

// wallFields maps wall-schedule header cells to semantic fields. The
// type column is the key: rows without it are dropped.
var wallFields = []FieldSpec{
	{Name: "type", Pattern: regexp.MustCompile(`(?i)^\s*(?:wall\s*)?(?:type|mark|sym(?:bol)?|id)\b`), Key: true},
	{Name: "studSize", Pattern: regexp.MustCompile(`(?i)stud|framing|member|size`)},
	{Name: "spacing", Pattern: regexp.MustCompile(`(?i)spacing|o\.?\s?c\.?\b|centers`)},
	{Name: "height", Pattern: regexp.MustCompile(`(?i)height|hgt|ht\.?\b`)},
	{Name: "sheathing", Pattern: regexp.MustCompile(`(?i)sheathing|shtg|panel`)},
	{Name: "insulation", Pattern: regexp.MustCompile(`(?i)insul|r-?\s?value`)},
	{Name: "interior", Pattern: regexp.MustCompile(`(?i)\b(?:int|ext)(?:erior)?\.?\b|location|use`)},
	{Name: "notes", Pattern: regexp.MustCompile(`(?i)notes?|remarks?|comments?`)},
}

var (
	interiorRe  = regexp.MustCompile(`(?i)\bint(?:erior)?\.?\b`)
	sheathingRe = regexp.MustCompile(`(?i)OSB|CDX|PLYWOOD|ZIP|GYP(?:SUM)?(?:\s*(?:BD|BOARD))?|DENSGLASS`)
	thicknessRe = regexp.MustCompile(`(\d{1,2}\s*/\s*\d{1,2})\s*"?`)
)

// ParseWall extracts wall-type rows from a detected table. Rows whose
// type cell is empty are dropped silently; unparsable stud, spacing, and
// height cells fall back to defaults, each substitution recorded as a
// warning against the given page.
func ParseWall(table *model.Table, page int) ([]model.WallTypeSpec, []model.Warning) {
	if table == nil || table.RowCount() < 2 {
		return nil, nil
	}

	mapped := mapHeaders(table.HeaderRow, wallFields)
	if _, ok := mapped["type"]; !ok {
		return nil, []model.Warning{model.Warnf("wall-schedule-headers", page, model.SeverityInfo,
			"table has no recognizable wall type column; headers %v", table.HeaderRow)}
	}

	var specs []model.WallTypeSpec
	var warnings []model.Warning

	for _, row := range table.DataRows() {
		typeCell := cellFor(row, mapped, "type")
		if typeCell == "" {
			continue
		}

		spec := model.WallTypeSpec{
			Type:     typeCell,
			Exterior: true,
		}

		if size, ok := parseStudSize(cellFor(row, mapped, "studSize")); ok {
			spec.StudSize = size
		}

		if sp, ok := parseSpacing(cellFor(row, mapped, "spacing")); ok {
			spec.Spacing = sp
		} else {
			spec.Spacing = DefaultWallSpacing
			warnings = append(warnings, model.Warnf("wall-spacing-default", page, model.SeverityInfo,
				"wall type %s: spacing %q unreadable, defaulting to %d\" o.c.", spec.Type,
				cellFor(row, mapped, "spacing"), DefaultWallSpacing))
		}

		if h, ok := parseFeet(cellFor(row, mapped, "height"), wallHeightCutoff); ok {
			spec.Height = h
		} else {
			spec.Height = DefaultWallHeight
			warnings = append(warnings, model.Warnf("wall-height-default", page, model.SeverityInfo,
				"wall type %s: height %q unreadable, defaulting to %.0f ft", spec.Type,
				cellFor(row, mapped, "height"), DefaultWallHeight))
		}

		if cell := cellFor(row, mapped, "sheathing"); cell != "" {
			if m := sheathingRe.FindString(cell); m != "" {
				spec.SheathingType = strings.ToUpper(m)
			}
			if m := thicknessRe.FindStringSubmatch(cell); m != nil {
				spec.SheathingThickness = strings.Join(strings.Fields(m[1]), "") + `"`
			}
		}

		spec.Insulation = cellFor(row, mapped, "insulation")
		spec.Notes = cellFor(row, mapped, "notes")

		// Walls default to exterior; an interior marker in the location
		// column or the notes flips it.
		if interiorRe.MatchString(cellFor(row, mapped, "interior")) || interiorRe.MatchString(spec.Notes) {
			spec.Exterior = false
		}

		specs = append(specs, spec)
	}

	return specs, warnings
}
