package model

// WallTypeSpec is one wall-schedule row: the framing recipe for a wall
// type referenced by plan callouts.
type WallTypeSpec struct {
	Type               string  `json:"type"`
	StudSize           string  `json:"studSize,omitempty"`
	Spacing            int     `json:"spacing,omitempty"` // inches on center
	Height             float64 `json:"height,omitempty"`  // feet
	SheathingType      string  `json:"sheathingType,omitempty"`
	SheathingThickness string  `json:"sheathingThickness,omitempty"`
	Insulation         string  `json:"insulation,omitempty"`
	Exterior           bool    `json:"exterior"`
	Notes              string  `json:"notes,omitempty"`
}

// OpeningCategory distinguishes door and window schedule rows.
type OpeningCategory string

const (
	CategoryDoor   OpeningCategory = "door"
	CategoryWindow OpeningCategory = "window"
)

// Opening is one door/window-schedule row with its framing implications.
type Opening struct {
	Mark         string          `json:"mark"`
	Category     OpeningCategory `json:"category,omitempty"`
	Width        float64         `json:"width,omitempty"`  // feet
	Height       float64         `json:"height,omitempty"` // feet
	Quantity     int             `json:"quantity"`
	HeaderSize   string          `json:"headerSize,omitempty"`
	HeaderCount  int             `json:"headerCount,omitempty"`
	TrimmerStuds int             `json:"trimmerStuds,omitempty"`
	KingStuds    int             `json:"kingStuds,omitempty"`
	CrippleStuds int             `json:"crippleStuds,omitempty"`
	SillHeight   float64         `json:"sillHeight,omitempty"` // feet
	WallType     string          `json:"wallType,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// WallSegment is one measured run of wall attributed to a wall type,
// typically proposed by vision augmentation of floor plans.
type WallSegment struct {
	WallType string  `json:"wallType,omitempty"`
	Length   float64 `json:"length"` // feet
	Exterior bool    `json:"exterior"`
}

// FloorSpec describes one floor system.
type FloorSpec struct {
	Level        string `json:"level,omitempty"`
	JoistSize    string `json:"joistSize,omitempty"`
	JoistSpacing int    `json:"joistSpacing,omitempty"` // inches on center
	Subfloor     string `json:"subfloor,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// RoofSpec describes one roof system.
type RoofSpec struct {
	RafterSize    string `json:"rafterSize,omitempty"`
	RafterSpacing int    `json:"rafterSpacing,omitempty"` // inches on center
	Pitch         string `json:"pitch,omitempty"`         // rise over 12, e.g. "6/12"
	Sheathing     string `json:"sheathing,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// StructuralMember is a beam/post/girder style callout.
type StructuralMember struct {
	Kind string `json:"kind,omitempty"` // beam, post, girder, truss
	Size string `json:"size,omitempty"`
	Note string `json:"note,omitempty"`
}

// SteelMember is a structural-steel shape callout (W, HSS, C, L shapes).
type SteelMember struct {
	Shape string `json:"shape"`
	Note  string `json:"note,omitempty"`
}

// HardwareRef is a connector-hardware model callout (hold-downs, hurricane
// ties, joist hangers, straps).
type HardwareRef struct {
	Model string `json:"model"`
	Kind  string `json:"kind,omitempty"` // hold-down, hurricane-tie, hanger, strap
}

// ScaleInfo is a parsed drawing-scale callout such as `1/4" = 1'-0"`.
type ScaleInfo struct {
	Raw           string  `json:"raw"`
	DrawingInches float64 `json:"drawingInches,omitempty"`
	RealFeet      float64 `json:"realFeet,omitempty"`
	FeetPerInch   float64 `json:"feetPerInch,omitempty"`
	NotToScale    bool    `json:"notToScale,omitempty"`
}
