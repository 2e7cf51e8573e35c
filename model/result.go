package model

import "time"

// PartialResult is one stage's additive contribution to a scan: what a
// single page's parsers found, or what one vision response mapped to. The
// zero value is a valid empty contribution.
type PartialResult struct {
	WallTypes         []WallTypeSpec
	WallSegments      []WallSegment
	Openings          []Opening
	FloorSpecs        []FloorSpec
	RoofSpecs         []RoofSpec
	StructuralMembers []StructuralMember
	SteelMembers      []SteelMember
	Hardware          []HardwareRef
	Dimensions        []Dimension
	FramingRefs       []string
	Rooms             []string
	Scales            []ScaleInfo
	Overrides         SpecOverrides
	Warnings          []Warning
}

// IsEmpty reports whether the partial contributes nothing.
func (p PartialResult) IsEmpty() bool {
	return len(p.WallTypes) == 0 && len(p.WallSegments) == 0 &&
		len(p.Openings) == 0 && len(p.FloorSpecs) == 0 &&
		len(p.RoofSpecs) == 0 && len(p.StructuralMembers) == 0 &&
		len(p.SteelMembers) == 0 && len(p.Hardware) == 0 &&
		len(p.Dimensions) == 0 && len(p.FramingRefs) == 0 &&
		len(p.Rooms) == 0 && len(p.Scales) == 0 &&
		len(p.Warnings) == 0 && p.Overrides.IsZero()
}

// Absorb folds another partial into p, with the same semantics as
// ExtractionResult.Merge. Used to combine several parsers' output for one
// page before the page-level merge.
func (p *PartialResult) Absorb(in PartialResult) {
	p.WallTypes = append(p.WallTypes, in.WallTypes...)
	p.WallSegments = append(p.WallSegments, in.WallSegments...)
	p.Openings = append(p.Openings, in.Openings...)
	p.FloorSpecs = append(p.FloorSpecs, in.FloorSpecs...)
	p.RoofSpecs = append(p.RoofSpecs, in.RoofSpecs...)
	p.StructuralMembers = append(p.StructuralMembers, in.StructuralMembers...)
	p.SteelMembers = append(p.SteelMembers, in.SteelMembers...)
	p.Hardware = append(p.Hardware, in.Hardware...)
	p.Dimensions = append(p.Dimensions, in.Dimensions...)
	p.FramingRefs = append(p.FramingRefs, in.FramingRefs...)
	p.Rooms = append(p.Rooms, in.Rooms...)
	p.Scales = append(p.Scales, in.Scales...)
	p.Overrides.Apply(in.Overrides)
	p.Warnings = append(p.Warnings, in.Warnings...)
}

// ExtractionResult is the aggregate takeoff for one document scan.
//
// It is created once per scan and only ever grows: every page's partial
// result is folded in via Merge, array fields concatenate with no
// cross-page deduplication (plans legitimately repeat callouts; pruning is
// a review concern), and SpecOverrides fields follow last-non-nil-wins. A
// new scan gets a fresh result; an existing result never shrinks.
type ExtractionResult struct {
	ScanID     string    `json:"scanId"`
	Source     string    `json:"source,omitempty"`
	PageCount  int       `json:"pageCount"`
	Complete   bool      `json:"complete"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt,omitzero"`

	WallTypes         []WallTypeSpec       `json:"wallTypes"`
	WallSegments      []WallSegment        `json:"wallSegments"`
	Openings          []Opening            `json:"openings"`
	FloorSpecs        []FloorSpec          `json:"floorSpecs"`
	RoofSpecs         []RoofSpec           `json:"roofSpecs"`
	StructuralMembers []StructuralMember   `json:"structuralMembers"`
	SteelMembers      []SteelMember        `json:"steelMembers"`
	Hardware          []HardwareRef        `json:"hardware"`
	Dimensions        []Dimension          `json:"dimensions"`
	FramingRefs       []string             `json:"framingReferences"`
	Rooms             []string             `json:"rooms"`
	Scales            []ScaleInfo          `json:"scales"`
	Warnings          []Warning            `json:"warnings"`
	SpecOverrides     SpecOverrides        `json:"specOverrides"`
	Pages             []PageClassification `json:"pages"`
}

// NewExtractionResult creates the empty aggregate for one scan.
func NewExtractionResult(scanID, source string, pageCount int) *ExtractionResult {
	return &ExtractionResult{
		ScanID:            scanID,
		Source:            source,
		PageCount:         pageCount,
		StartedAt:         time.Now().UTC(),
		WallTypes:         []WallTypeSpec{},
		WallSegments:      []WallSegment{},
		Openings:          []Opening{},
		FloorSpecs:        []FloorSpec{},
		RoofSpecs:         []RoofSpec{},
		StructuralMembers: []StructuralMember{},
		SteelMembers:      []SteelMember{},
		Hardware:          []HardwareRef{},
		Dimensions:        []Dimension{},
		FramingRefs:       []string{},
		Rooms:             []string{},
		Scales:            []ScaleInfo{},
		Warnings:          []Warning{},
		Pages:             []PageClassification{},
	}
}

// Merge folds one partial result into the aggregate.
func (r *ExtractionResult) Merge(p PartialResult) {
	r.WallTypes = append(r.WallTypes, p.WallTypes...)
	r.WallSegments = append(r.WallSegments, p.WallSegments...)
	r.Openings = append(r.Openings, p.Openings...)
	r.FloorSpecs = append(r.FloorSpecs, p.FloorSpecs...)
	r.RoofSpecs = append(r.RoofSpecs, p.RoofSpecs...)
	r.StructuralMembers = append(r.StructuralMembers, p.StructuralMembers...)
	r.SteelMembers = append(r.SteelMembers, p.SteelMembers...)
	r.Hardware = append(r.Hardware, p.Hardware...)
	r.Dimensions = append(r.Dimensions, p.Dimensions...)
	r.FramingRefs = append(r.FramingRefs, p.FramingRefs...)
	r.Rooms = append(r.Rooms, p.Rooms...)
	r.Scales = append(r.Scales, p.Scales...)
	r.Warnings = append(r.Warnings, p.Warnings...)
	r.SpecOverrides.Apply(p.Overrides)
}

// AddWarning appends one warning to the result.
func (r *ExtractionResult) AddWarning(w Warning) {
	r.Warnings = append(r.Warnings, w)
}

// ClassifyPage records one page's classification.
func (r *ExtractionResult) ClassifyPage(c PageClassification) {
	r.Pages = append(r.Pages, c)
}

// PageClassifications returns classifications whose type is in the given
// set, preserving page order. An empty set selects nothing.
func (r *ExtractionResult) PageClassifications(types ...PageType) []PageClassification {
	want := make(map[PageType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var out []PageClassification
	for _, c := range r.Pages {
		if want[c.Type] {
			out = append(out, c)
		}
	}
	return out
}
