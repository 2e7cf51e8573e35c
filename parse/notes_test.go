package parse

import (
	"testing"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

func TestNotes_FloorJoists(t *testing.T) {
	got := Notes(`Floor Joists shall be 2x10 at 16" O.C.`, 5)

	if got.Overrides.FloorJoistSize == nil || *got.Overrides.FloorJoistSize != "2x10" {
		t.Errorf("FloorJoistSize = %v, want 2x10", strOrNil(got.Overrides.FloorJoistSize))
	}
	if got.Overrides.FloorJoistSpacing == nil || *got.Overrides.FloorJoistSpacing != 16 {
		t.Errorf("FloorJoistSpacing = %v, want 16", got.Overrides.FloorJoistSpacing)
	}
}

func TestNotes_WallStuds(t *testing.T) {
	text := `1. EXTERIOR WALLS TO BE 2x6 STUDS AT 16" O.C.
2. INTERIOR WALLS TO BE 2x4 STUDS AT 24" OC.`

	got := Notes(text, 1)
	o := got.Overrides

	if o.ExteriorStudSize == nil || *o.ExteriorStudSize != "2x6" {
		t.Errorf("ExteriorStudSize = %v, want 2x6", strOrNil(o.ExteriorStudSize))
	}
	if o.ExteriorStudSpacing == nil || *o.ExteriorStudSpacing != 16 {
		t.Errorf("ExteriorStudSpacing = %v, want 16", o.ExteriorStudSpacing)
	}
	if o.InteriorStudSize == nil || *o.InteriorStudSize != "2x4" {
		t.Errorf("InteriorStudSize = %v, want 2x4", strOrNil(o.InteriorStudSize))
	}
	if o.InteriorStudSpacing == nil || *o.InteriorStudSpacing != 24 {
		t.Errorf("InteriorStudSpacing = %v, want 24", o.InteriorStudSpacing)
	}
}

func TestNotes_RaftersAndPitch(t *testing.T) {
	got := Notes(`ROOF RAFTERS SHALL BE 2x8 @ 24" O.C. ROOF PITCH: 6/12`, 2)
	o := got.Overrides

	if o.RafterSize == nil || *o.RafterSize != "2x8" {
		t.Errorf("RafterSize = %v, want 2x8", strOrNil(o.RafterSize))
	}
	if o.RafterSpacing == nil || *o.RafterSpacing != 24 {
		t.Errorf("RafterSpacing = %v, want 24", o.RafterSpacing)
	}
	if o.RoofPitch == nil || *o.RoofPitch != "6/12" {
		t.Errorf("RoofPitch = %v, want 6/12", strOrNil(o.RoofPitch))
	}
}

func TestNotes_Sheathing(t *testing.T) {
	text := `WALL SHEATHING: 7/16" OSB. ROOF SHEATHING: 1/2" CDX. SUBFLOOR: 3/4" T&G PLYWOOD.`
	got := Notes(text, 3)
	o := got.Overrides

	if o.WallSheathing == nil {
		t.Fatal("WallSheathing not set")
	}
	if o.RoofSheathing == nil {
		t.Fatal("RoofSheathing not set")
	}
	if o.Subfloor == nil {
		t.Fatal("Subfloor not set")
	}
}

func TestNotes_Hardware(t *testing.T) {
	text := `Provide HDU5 hold-downs at shear wall ends. H2.5A hurricane ties at each rafter.
LUS210 hangers at flush beams. CS16 strap over ridge.`

	got := Notes(text, 4)

	kinds := make(map[string]string)
	for _, h := range got.Hardware {
		kinds[h.Model] = h.Kind
	}
	want := map[string]string{
		"HDU5":   "hold-down",
		"H2.5A":  "hurricane-tie",
		"LUS210": "hanger",
		"CS16":   "strap",
	}
	for code, kind := range want {
		if kinds[code] != kind {
			t.Errorf("hardware %s = %q, want %q (all: %v)", code, kinds[code], kind, got.Hardware)
		}
	}
}

func TestNotes_Steel(t *testing.T) {
	got := Notes(`W12x26 beam at garage opening, HSS6x6x1/4 post below`, 6)

	if len(got.SteelMembers) != 2 {
		t.Fatalf("SteelMembers = %v, want 2", got.SteelMembers)
	}
	if got.SteelMembers[0].Shape != "W12x26" {
		t.Errorf("shape = %q, want W12x26", got.SteelMembers[0].Shape)
	}
}

func TestNotes_SeismicWarning(t *testing.T) {
	got := Notes(`SEISMIC DESIGN CATEGORY D2. All framing per IRC.`, 7)

	if len(got.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want 1", got.Warnings)
	}
	w := got.Warnings[0]
	if w.Code != "seismic-no-holddown" || w.Severity != model.SeverityReview || w.Page != 7 {
		t.Errorf("warning = %+v", w)
	}

	// A hold-down callout clears the heuristic.
	withHD := Notes(`SEISMIC DESIGN CATEGORY D2. HDU8 at shear walls.`, 7)
	if len(withHD.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none once a hold-down appears", withHD.Warnings)
	}
}

func TestNotes_StructuralMembers(t *testing.T) {
	got := Notes(`(2) 2x10 HEADER at all openings. 6x12 BEAM at porch.`, 8)

	if len(got.StructuralMembers) != 2 {
		t.Fatalf("StructuralMembers = %v, want 2", got.StructuralMembers)
	}
	if got.StructuralMembers[0].Kind != "header" || got.StructuralMembers[0].Size != "2x10" {
		t.Errorf("member 0 = %+v", got.StructuralMembers[0])
	}
	if got.StructuralMembers[0].Note != "(2) ply" {
		t.Errorf("Note = %q, want (2) ply", got.StructuralMembers[0].Note)
	}
}

func TestNotes_EmptyText(t *testing.T) {
	got := Notes("", 1)
	if !got.IsEmpty() {
		t.Errorf("Notes(\"\") = %+v, want empty partial", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`12′-6″`, `12'-6"`},
		{"“typ”", `"typ"`},
		{"2×6", "2x6"},
		{"12–6", "12-6"},
		{"plain ascii", "plain ascii"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func strOrNil(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
