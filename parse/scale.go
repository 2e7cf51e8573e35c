package parse

import (
	"regexp"
	"strings"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// scaleRe matches architectural scale callouts: 1/4" = 1'-0", 1" = 20',
// 3/16"=1'-0". Groups: inches numerator, optional denominator, feet,
// optional trailing inches.
var scaleRe = regexp.MustCompile(`(\d{1,2})(?:\s*/\s*(\d{1,2}))?\s*"\s*=\s*(\d{1,3})\s*'(?:\s*-?\s*(\d{1,2})\s*")?`)

// ntsRe matches not-to-scale callouts.
var ntsRe = regexp.MustCompile(`(?i)\b(?:N\.?\s?T\.?\s?S\.?|NOT\s+TO\s+SCALE)\b`)

// Scales extracts drawing-scale callouts from the text. Each match
// reports the drawing inches, the real feet they represent, and the
// derived feet-per-inch factor; not-to-scale callouts report with
// NotToScale set and no factor.
func Scales(text string) []model.ScaleInfo {
	norm := Normalize(text)
	var out []model.ScaleInfo
	seen := make(map[string]bool)

	for _, loc := range scaleRe.FindAllStringSubmatchIndex(norm, -1) {
		m := submatches(norm, loc)
		raw := strings.TrimSpace(norm[loc[0]:loc[1]])
		if seen[raw] {
			continue
		}
		seen[raw] = true

		inches := atof(m[1])
		if m[2] != "" {
			den := atof(m[2])
			if den == 0 {
				continue
			}
			inches /= den
		}
		feet := atof(m[3])
		if m[4] != "" {
			feet += atof(m[4]) / 12
		}
		if inches <= 0 || feet <= 0 {
			continue
		}

		out = append(out, model.ScaleInfo{
			Raw:           raw,
			DrawingInches: inches,
			RealFeet:      feet,
			FeetPerInch:   feet / inches,
		})
	}

	if loc := ntsRe.FindString(norm); loc != "" && !seen[loc] {
		out = append(out, model.ScaleInfo{Raw: strings.TrimSpace(loc), NotToScale: true})
	}

	return out
}
