package model

import "fmt"

// PageType identifies what kind of plan sheet a page is.
type PageType int

const (
	PageUnknown PageType = iota
	PageTitleSheet
	PageSitePlan
	PageFloorPlan
	PageElevation
	PageSectionDetail
	PageWallSchedule
	PageOpeningSchedule
	PageStructuralPlan
	PageRoofPlan
	PageGeneralNotes
)

// String returns a human-readable name for the page type
func (t PageType) String() string {
	switch t {
	case PageTitleSheet:
		return "title-sheet"
	case PageSitePlan:
		return "site-plan"
	case PageFloorPlan:
		return "floor-plan"
	case PageElevation:
		return "elevation"
	case PageSectionDetail:
		return "section-detail"
	case PageWallSchedule:
		return "wall-schedule"
	case PageOpeningSchedule:
		return "opening-schedule"
	case PageStructuralPlan:
		return "structural-plan"
	case PageRoofPlan:
		return "roof-plan"
	case PageGeneralNotes:
		return "general-notes"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so page types serialize as
// their names in JSON results.
func (t PageType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *PageType) UnmarshalText(text []byte) error {
	for _, pt := range PageTypes() {
		if pt.String() == string(text) {
			*t = pt
			return nil
		}
	}
	if string(text) == "unknown" {
		*t = PageUnknown
		return nil
	}
	return fmt.Errorf("unknown page type %q", text)
}

// PageTypes returns all classifiable page types, unknown excluded.
func PageTypes() []PageType {
	return []PageType{
		PageTitleSheet,
		PageSitePlan,
		PageFloorPlan,
		PageElevation,
		PageSectionDetail,
		PageWallSchedule,
		PageOpeningSchedule,
		PageStructuralPlan,
		PageRoofPlan,
		PageGeneralNotes,
	}
}

// PageClassification is the classifier's verdict for one page. Type is
// PageUnknown when the winning raw score fell below the acceptance floor;
// Confidence is still reported in that case.
type PageClassification struct {
	Page       int                  `json:"page"`
	Type       PageType             `json:"type"`
	Confidence float64              `json:"confidence"`
	Scores     map[PageType]float64 `json:"scores,omitempty"`
}
