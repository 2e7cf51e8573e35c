package parse

import (
	"regexp"
	"sort"
	"strings"
)

// refFamilies are the keyword/pattern families the reference parser runs.
// Families carry no precedence: a token may satisfy several at once, and
// only the set of matched literal strings is reported.
var refFamilies = []*regexp.Regexp{
	// Dimensional lumber: 2x4 through 6x16, spaces and x/X tolerated
	regexp.MustCompile(`(?i)\b[2-6]\s*x\s*(?:4|6|8|10|12|14|16)\b`),

	// Engineered wood: LVL, PSL, LSL, glulam, I-joist series codes
	regexp.MustCompile(`(?i)\b(?:LVL|PSL|LSL|GLB|GLULAM|GLU-?LAM|I-?JOISTS?|TJI\s*\d*|BCI\s*\d*|MICROLLAM|PARALLAM|VERSA-?LAM)\b`),

	// Structural member nouns
	regexp.MustCompile(`(?i)\b(?:STUDS?|JOISTS?|RAFTERS?|BEAMS?|HEADERS?|TRUSS(?:ES)?|POSTS?|GIRDERS?|PURLINS?|BLOCKING|BRIDGING|(?:TOP|SILL|SOLE)\s+PLATES?|RIM\s+JOISTS?|RIDGE\s+(?:BOARD|BEAM)|COLLAR\s+TIES?|LEDGERS?)\b`),

	// Sheathing and panel products
	regexp.MustCompile(`(?i)\b(?:OSB|PLYWOOD|CDX|ZIP\s*SYSTEM|DENSGLASS|GYP(?:SUM)?\s*(?:BD|BOARD)?|T\s*&\s*G|STRUCT(?:URAL)?\s*1)\b`),

	// Connector hardware model codes (Simpson Strong-Tie style)
	regexp.MustCompile(`\b(?:SIMPSON|HDU\d+(?:-SDS[\d.]+)?|HD\d+[A-Z]?|S?T?HD\d+(?:RJ)?|H\d{1,2}(?:\.\d+)?[AZ]?|LUS\d+(?:-\d+)?|HUS\d+(?:-\d+)?|HGUS\d+(?:-\d+)?|A3[45]|LTP\d|CS\d{2}|MSTC?\d+|SP[HC]?\d+|DTT\dZ?|ABU\d+[A-Z]*|PB\d+|LSTA\d+)\b`),

	// On-center spacing callouts
	regexp.MustCompile(`(?i)\b\d{1,2}\s*"?\s*(?:O\.?\s?C\.?|ON\s+CENTER)`),

	// Structural steel shapes: W, HSS, C, L, PL
	regexp.MustCompile(`\b(?:W\d{1,2}[xX]\d{1,3}|HSS\d{1,2}(?:\.\d+)?[xX]\d{1,2}(?:\.\d+)?[xX]\d+(?:/\d+)?|C\d{1,2}[xX]\d{1,2}(?:\.\d+)?|L\d{1,2}[xX]\d{1,2}[xX]\d+(?:/\d+)?|PL\s?\d+(?:/\d+)?)\b`),
}

// References extracts framing-material references from the text: lumber
// sizes, engineered-wood codes, member nouns, sheathing products, hardware
// models, spacing callouts, and steel shapes. The union of all family
// matches is deduplicated case-insensitively (first spelling wins) and
// returned sorted.
func References(text string) []string {
	return collectMatches(Normalize(text), refFamilies)
}

// collectMatches unions the matches of every pattern, dedupes by a
// case-folded space-stripped key keeping the first spelling seen, and
// sorts the result by that key.
func collectMatches(text string, families []*regexp.Regexp) []string {
	type hit struct {
		key   string
		first string
	}
	seen := make(map[string]string)
	for _, re := range families {
		for _, m := range re.FindAllString(text, -1) {
			m = strings.TrimSpace(m)
			key := dedupKey(m)
			if _, ok := seen[key]; !ok {
				seen[key] = m
			}
		}
	}

	hits := make([]hit, 0, len(seen))
	for k, v := range seen {
		hits = append(hits, hit{key: k, first: v})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].key < hits[j].key })

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.first
	}
	return out
}

// dedupKey folds case and internal whitespace so "2 x 6" and "2X6" count
// as one reference.
func dedupKey(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}
