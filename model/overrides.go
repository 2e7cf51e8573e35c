package model

// SpecOverrides holds document-wide framing defaults lifted from general
// notes. A nil field means "never specified"; a non-nil field was set by
// some page. Merging follows last-non-nil-wins in page order, and a set
// field is never reset to nil within one scan.
type SpecOverrides struct {
	ExteriorStudSize    *string `json:"exteriorStudSize,omitempty"`
	ExteriorStudSpacing *int    `json:"exteriorStudSpacing,omitempty"`
	InteriorStudSize    *string `json:"interiorStudSize,omitempty"`
	InteriorStudSpacing *int    `json:"interiorStudSpacing,omitempty"`
	FloorJoistSize      *string `json:"floorJoistSize,omitempty"`
	FloorJoistSpacing   *int    `json:"floorJoistSpacing,omitempty"`
	CeilingJoistSize    *string `json:"ceilingJoistSize,omitempty"`
	CeilingJoistSpacing *int    `json:"ceilingJoistSpacing,omitempty"`
	RafterSize          *string `json:"rafterSize,omitempty"`
	RafterSpacing       *int    `json:"rafterSpacing,omitempty"`
	RoofPitch           *string `json:"roofPitch,omitempty"`
	WallSheathing       *string `json:"wallSheathing,omitempty"`
	RoofSheathing       *string `json:"roofSheathing,omitempty"`
	Subfloor            *string `json:"subfloor,omitempty"`
	Blocking            *string `json:"blocking,omitempty"`
}

// Apply folds incoming overrides into o. Only non-nil incoming fields
// overwrite; a nil incoming field leaves the prior value untouched.
func (o *SpecOverrides) Apply(in SpecOverrides) {
	if in.ExteriorStudSize != nil {
		o.ExteriorStudSize = in.ExteriorStudSize
	}
	if in.ExteriorStudSpacing != nil {
		o.ExteriorStudSpacing = in.ExteriorStudSpacing
	}
	if in.InteriorStudSize != nil {
		o.InteriorStudSize = in.InteriorStudSize
	}
	if in.InteriorStudSpacing != nil {
		o.InteriorStudSpacing = in.InteriorStudSpacing
	}
	if in.FloorJoistSize != nil {
		o.FloorJoistSize = in.FloorJoistSize
	}
	if in.FloorJoistSpacing != nil {
		o.FloorJoistSpacing = in.FloorJoistSpacing
	}
	if in.CeilingJoistSize != nil {
		o.CeilingJoistSize = in.CeilingJoistSize
	}
	if in.CeilingJoistSpacing != nil {
		o.CeilingJoistSpacing = in.CeilingJoistSpacing
	}
	if in.RafterSize != nil {
		o.RafterSize = in.RafterSize
	}
	if in.RafterSpacing != nil {
		o.RafterSpacing = in.RafterSpacing
	}
	if in.RoofPitch != nil {
		o.RoofPitch = in.RoofPitch
	}
	if in.WallSheathing != nil {
		o.WallSheathing = in.WallSheathing
	}
	if in.RoofSheathing != nil {
		o.RoofSheathing = in.RoofSheathing
	}
	if in.Subfloor != nil {
		o.Subfloor = in.Subfloor
	}
	if in.Blocking != nil {
		o.Blocking = in.Blocking
	}
}

// IsZero reports whether no field has been set.
func (o SpecOverrides) IsZero() bool {
	return o == SpecOverrides{}
}

// String returns a pointer to s, for building override literals.
func String(s string) *string { return &s }

// Int returns a pointer to i, for building override literals.
func Int(i int) *int { return &i }
