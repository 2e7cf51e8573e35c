package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/parse"
)

// FieldSpec binds one semantic field to a header-matching pattern. Key
// marks the column whose absence disqualifies a row.
type FieldSpec struct {
	Name    string
	Pattern *regexp.Regexp
	Key     bool
}

// mapHeaders assigns each semantic field to the first header cell its
// pattern matches. Cells that match no pattern get a second chance via a
// substring test against the field name split into words; columns that
// still match nothing are ignored.
func mapHeaders(header []string, fields []FieldSpec) map[string]int {
	mapped := make(map[string]int, len(fields))
	taken := make(map[int]bool, len(header))

	for _, f := range fields {
		for col, cell := range header {
			if taken[col] {
				continue
			}
			if f.Pattern.MatchString(cell) {
				mapped[f.Name] = col
				taken[col] = true
				break
			}
		}
	}

	// Fallback: a header cell containing any word of an unmapped field's
	// name claims that field.
	for _, f := range fields {
		if _, ok := mapped[f.Name]; ok {
			continue
		}
		words := splitFieldName(f.Name)
		for col, cell := range header {
			if taken[col] {
				continue
			}
			lower := strings.ToLower(cell)
			for _, w := range words {
				if strings.Contains(lower, w) {
					mapped[f.Name] = col
					taken[col] = true
					break
				}
			}
			if _, ok := mapped[f.Name]; ok {
				break
			}
		}
	}

	return mapped
}

// splitFieldName breaks a camelCase field name into lowercase words:
// "studSize" becomes ["stud", "size"].
func splitFieldName(name string) []string {
	var words []string
	start := 0
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, strings.ToLower(name[start:i]))
			start = i
		}
	}
	words = append(words, strings.ToLower(name[start:]))
	return words
}

// cellFor returns the row's cell for a mapped field, trimmed, or "" when
// the field is unmapped or the row is short.
func cellFor(row []string, mapped map[string]int, field string) string {
	col, ok := mapped[field]
	if !ok || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

var (
	nominalSizeRe = regexp.MustCompile(`(?i)\b([2-6])\s*x\s*(\d{1,2})\b`)
	ocSpacingRe   = regexp.MustCompile(`(?i)(\d{1,2})\s*"?\s*O\.?\s?C\.?`)
	bareNumberRe  = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// spacingWhitelist holds the bare numbers accepted as on-center spacing
// when a cell carries no OC suffix.
var spacingWhitelist = map[int]bool{12: true, 16: true, 24: true}

// parseStudSize extracts a normalized nominal size such as "2x6".
func parseStudSize(cell string) (string, bool) {
	m := nominalSizeRe.FindStringSubmatch(parse.Normalize(cell))
	if m == nil {
		return "", false
	}
	return m[1] + "x" + m[2], true
}

// parseSpacing extracts on-center spacing in inches: a trailing OC
// callout wins, a bare whitelisted number is accepted, anything else
// fails.
func parseSpacing(cell string) (int, bool) {
	norm := parse.Normalize(cell)
	if m := ocSpacingRe.FindStringSubmatch(norm); m != nil {
		return atoi(m[1]), true
	}
	if m := bareNumberRe.FindString(norm); m != "" {
		n := atoi(m)
		if spacingWhitelist[n] {
			return n, true
		}
	}
	return 0, false
}

// parseFeet extracts a length in feet from a cell: the dimension parser
// first, then a bare number read as feet below the cutoff and inches from
// there up to the plausibility ceiling.
func parseFeet(cell string, feetCutoff float64) (float64, bool) {
	if d, ok := parse.FirstDimension(cell); ok {
		return d.Feet, true
	}
	if m := bareNumberRe.FindString(parse.Normalize(cell)); m != "" {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil || v <= 0 || v >= parse.MaxFeet {
			return 0, false
		}
		if v < feetCutoff {
			return v, true
		}
		return v / 12, true
	}
	return 0, false
}

// parseQuantity extracts a positive integer count.
func parseQuantity(cell string) (int, bool) {
	m := bareNumberRe.FindString(cell)
	if m == "" {
		return 0, false
	}
	n := atoi(m)
	if n <= 0 {
		return 0, false
	}
	return n, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
