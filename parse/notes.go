package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// sizeSpacingTail captures "<member> ... 2x10 ... AT/@ 16" O.C." style
// callouts: group 1 is the nominal size, group 2 the on-center spacing.
const sizeSpacingTail = `[^.\n]*?([2-6]\s*x\s*\d{1,2})[^.\n]*?(?:AT|@)\s*(\d{1,2})\s*"?\s*O\.?\s?C\.?`

var (
	extWallRe  = regexp.MustCompile(`(?i)\bEXT(?:ERIOR)?\.?\s+WALL(?:S|\s+STUDS?)?` + sizeSpacingTail)
	intWallRe  = regexp.MustCompile(`(?i)\bINT(?:ERIOR)?\.?\s+WALL(?:S|\s+STUDS?)?` + sizeSpacingTail)
	floorRe    = regexp.MustCompile(`(?i)\bFLOOR\s+JOISTS?` + sizeSpacingTail)
	ceilingRe  = regexp.MustCompile(`(?i)\bCEILING\s+JOISTS?` + sizeSpacingTail)
	rafterRe   = regexp.MustCompile(`(?i)\b(?:ROOF\s+)?RAFTERS?` + sizeSpacingTail)
	pitchRe    = regexp.MustCompile(`(?i)(?:ROOF\s+)?(?:PITCH|SLOPE)[^.\n]*?(\d{1,2})\s*[/:]\s*12|(\d{1,2})\s*[/:]\s*12\s+(?:PITCH|SLOPE)`)
	wallShRe   = regexp.MustCompile(`(?i)\bWALL\s+SHEATHING[:\s][^.\n]*?((?:\d{1,2}\s*/\s*\d{1,2}\s*"?\s*)?(?:OSB|CDX|PLYWOOD|ZIP\s*SYSTEM)(?:\s+SHEATHING)?)`)
	roofShRe   = regexp.MustCompile(`(?i)\bROOF\s+SHEATHING[:\s][^.\n]*?((?:\d{1,2}\s*/\s*\d{1,2}\s*"?\s*)?(?:OSB|CDX|PLYWOOD|ZIP\s*SYSTEM)(?:\s+SHEATHING)?)`)
	subfloorRe = regexp.MustCompile(`(?i)\bSUB-?\s?FLOOR(?:ING)?[:\s][^.\n]*?((?:\d{1,2}\s*/\s*\d{1,2}\s*"?\s*)?(?:T\s*&\s*G\s*)?(?:OSB|CDX|PLYWOOD)(?:\s+T\s*&\s*G)?)`)
	blockingRe = regexp.MustCompile(`(?i)(?:SOLID\s+)?BLOCKING\s+(?:AT|@|BETWEEN)\s+([^.\n]{3,60})`)
	seismicRe  = regexp.MustCompile(`(?i)SEISMIC\s+DESIGN\s+CATEGORY`)
)

// hardwareFamilies map connector model-code patterns to a hardware kind.
var hardwareFamilies = []struct {
	kind string
	re   *regexp.Regexp
}{
	{"hold-down", regexp.MustCompile(`\b(?:HDU\d+(?:-SDS[\d.]+)?|HD\d+[A-Z]?|STHD\d+(?:RJ)?|LSTHD\d+|DTT\dZ?)\b`)},
	{"hurricane-tie", regexp.MustCompile(`\b(?:H\d{1,2}(?:\.\d+)?[AZ]?|LTP\d|A3[45])\b`)},
	{"hanger", regexp.MustCompile(`\b(?:LUS\d+(?:-\d+)?|HUS\d+(?:-\d+)?|HGUS\d+(?:-\d+)?|U\d{3}|HU\d+)\b`)},
	{"strap", regexp.MustCompile(`\b(?:CS\d{2}|MSTC?\d+|LSTA\d+|ST\d{4})\b`)},
}

// steelRe matches structural steel shape callouts.
var steelRe = regexp.MustCompile(`\b(?:W\d{1,2}[xX]\d{1,3}|HSS\d{1,2}(?:\.\d+)?[xX]\d{1,2}(?:\.\d+)?[xX]\d+(?:/\d+)?|C\d{1,2}[xX]\d{1,2}(?:\.\d+)?|L\d{1,2}[xX]\d{1,2}[xX]\d+(?:/\d+)?)\b`)

// memberRe matches sized beam/post/girder callouts for the structural
// member list, e.g. "6x12 BEAM" or "(2) 2x10 HEADER".
var memberRe = regexp.MustCompile(`(?i)(?:\((\d)\)\s*)?\b([2-8]\s*x\s*\d{1,2}|\d+\s*\d/?\d*"?\s*LVL)\s+(BEAM|POST|GIRDER|HEADER|RIDGE\s+BEAM)`)

// Notes runs the general-notes pattern battery over the full page text
// and returns everything it lifted: specification overrides, hardware and
// steel callouts, and structural members. The whole text is scanned at
// once rather than line by line, since note sentences routinely wrap.
func Notes(text string, page int) model.PartialResult {
	norm := Normalize(text)
	var out model.PartialResult

	if m := extWallRe.FindStringSubmatch(norm); m != nil {
		out.Overrides.ExteriorStudSize = model.String(tightenSize(m[1]))
		out.Overrides.ExteriorStudSpacing = model.Int(atoi(m[2]))
	}
	if m := intWallRe.FindStringSubmatch(norm); m != nil {
		out.Overrides.InteriorStudSize = model.String(tightenSize(m[1]))
		out.Overrides.InteriorStudSpacing = model.Int(atoi(m[2]))
	}
	if m := floorRe.FindStringSubmatch(norm); m != nil {
		out.Overrides.FloorJoistSize = model.String(tightenSize(m[1]))
		out.Overrides.FloorJoistSpacing = model.Int(atoi(m[2]))
	}
	if m := ceilingRe.FindStringSubmatch(norm); m != nil {
		out.Overrides.CeilingJoistSize = model.String(tightenSize(m[1]))
		out.Overrides.CeilingJoistSpacing = model.Int(atoi(m[2]))
	}
	if m := rafterRe.FindStringSubmatch(norm); m != nil {
		out.Overrides.RafterSize = model.String(tightenSize(m[1]))
		out.Overrides.RafterSpacing = model.Int(atoi(m[2]))
	}
	if m := pitchRe.FindStringSubmatch(norm); m != nil {
		rise := m[1]
		if rise == "" {
			rise = m[2]
		}
		out.Overrides.RoofPitch = model.String(rise + "/12")
	}
	if m := wallShRe.FindStringSubmatch(norm); m != nil {
		out.Overrides.WallSheathing = model.String(collapseSpaces(m[1]))
	}
	if m := roofShRe.FindStringSubmatch(norm); m != nil {
		out.Overrides.RoofSheathing = model.String(collapseSpaces(m[1]))
	}
	if m := subfloorRe.FindStringSubmatch(norm); m != nil {
		out.Overrides.Subfloor = model.String(collapseSpaces(m[1]))
	}
	if m := blockingRe.FindStringSubmatch(norm); m != nil {
		out.Overrides.Blocking = model.String(strings.TrimSpace(m[1]))
	}

	holdDownFound := false
	for _, fam := range hardwareFamilies {
		seen := make(map[string]bool)
		for _, code := range fam.re.FindAllString(norm, -1) {
			if seen[code] {
				continue
			}
			seen[code] = true
			out.Hardware = append(out.Hardware, model.HardwareRef{Model: code, Kind: fam.kind})
			if fam.kind == "hold-down" {
				holdDownFound = true
			}
		}
	}

	seenSteel := make(map[string]bool)
	for _, shape := range steelRe.FindAllString(norm, -1) {
		if seenSteel[shape] {
			continue
		}
		seenSteel[shape] = true
		out.SteelMembers = append(out.SteelMembers, model.SteelMember{Shape: shape})
	}

	for _, m := range memberRe.FindAllStringSubmatch(norm, -1) {
		member := model.StructuralMember{
			Kind: strings.ToLower(collapseSpaces(m[3])),
			Size: tightenSize(m[2]),
		}
		if m[1] != "" {
			member.Note = "(" + m[1] + ") ply"
		}
		out.StructuralMembers = append(out.StructuralMembers, member)
	}

	// A seismic design category callout with no hold-down anywhere in the
	// notes usually means the shear-wall hardware lives on a sheet the
	// text layer mangled. Worth a human look.
	if seismicRe.MatchString(norm) && !holdDownFound {
		out.Warnings = append(out.Warnings, model.Warnf(
			"seismic-no-holddown", page, model.SeverityReview,
			"seismic design category is called out but no hold-down hardware was found"))
	}

	return out
}

// tightenSize normalizes a nominal size like "2 X 10" to "2x10".
func tightenSize(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), ""))
	return s
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
