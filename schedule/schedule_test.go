package schedule

import (
	"math"
	"regexp"
	"testing"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// makeTable builds a table with the given rows; the first row is the
// header.
func makeTable(rows ...[]string) *model.Table {
	t := &model.Table{
		StartLine: 0,
		EndLine:   len(rows) - 1,
		Cells:     rows,
	}
	if len(rows) > 0 {
		t.HeaderRow = rows[0]
	}
	return t
}

func TestParseWall_Basic(t *testing.T) {
	table := makeTable(
		[]string{"TYPE", "STUD", "SPACING", "HEIGHT"},
		[]string{"A", "2x6", `16" OC`, `9'-0"`},
	)

	specs, _ := ParseWall(table, 3)
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1", len(specs))
	}

	want := model.WallTypeSpec{Type: "A", StudSize: "2x6", Spacing: 16, Height: 9, Exterior: true}
	got := specs[0]
	if got.Type != want.Type || got.StudSize != want.StudSize ||
		got.Spacing != want.Spacing || got.Height != want.Height || got.Exterior != want.Exterior {
		t.Errorf("spec = %+v, want %+v", got, want)
	}
}

func TestParseWall_SkipsKeylessRows(t *testing.T) {
	table := makeTable(
		[]string{"TYPE", "STUD", "SPACING"},
		[]string{"A", "2x6", `16" OC`},
		[]string{"", "2x4", `24" OC`},
		[]string{"B", "2x4", "24"},
	)

	specs, _ := ParseWall(table, 1)
	if len(specs) != 2 {
		t.Fatalf("got %d specs %v, want 2 (empty-type row dropped)", len(specs), specs)
	}
	if specs[1].Type != "B" || specs[1].Spacing != 24 {
		t.Errorf("spec B = %+v", specs[1])
	}
}

func TestParseWall_DefaultsWarned(t *testing.T) {
	table := makeTable(
		[]string{"TYPE", "STUD", "SPACING", "HEIGHT"},
		[]string{"C", "2x4", "varies", "see plan"},
	)

	specs, warnings := ParseWall(table, 2)
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1", len(specs))
	}
	if specs[0].Spacing != DefaultWallSpacing {
		t.Errorf("Spacing = %d, want default %d", specs[0].Spacing, DefaultWallSpacing)
	}
	if specs[0].Height != DefaultWallHeight {
		t.Errorf("Height = %v, want default %v", specs[0].Height, DefaultWallHeight)
	}

	codes := warningCodes(warnings)
	if !codes["wall-spacing-default"] || !codes["wall-height-default"] {
		t.Errorf("warnings = %v, want spacing and height default warnings", warnings)
	}
}

func TestParseWall_InteriorFlip(t *testing.T) {
	table := makeTable(
		[]string{"TYPE", "STUD", "LOCATION", "HEIGHT"},
		[]string{"A", "2x6", "EXTERIOR", `9'`},
		[]string{"B", "2x4", "INT.", `8'`},
	)

	specs, _ := ParseWall(table, 1)
	if len(specs) != 2 {
		t.Fatalf("got %d specs, want 2", len(specs))
	}
	if !specs[0].Exterior {
		t.Errorf("wall A should stay exterior")
	}
	if specs[1].Exterior {
		t.Errorf("wall B should flip to interior")
	}
}

func TestParseWall_SheathingSplit(t *testing.T) {
	table := makeTable(
		[]string{"TYPE", "STUD", "SHEATHING"},
		[]string{"A", "2x6", `7/16" OSB`},
	)

	specs, _ := ParseWall(table, 1)
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1", len(specs))
	}
	if specs[0].SheathingType != "OSB" {
		t.Errorf("SheathingType = %q, want OSB", specs[0].SheathingType)
	}
	if specs[0].SheathingThickness != `7/16"` {
		t.Errorf("SheathingThickness = %q, want 7/16\"", specs[0].SheathingThickness)
	}
}

func TestParseWall_BareHeightUnits(t *testing.T) {
	table := makeTable(
		[]string{"TYPE", "HEIGHT"},
		[]string{"A", "9"},   // under the cutoff: feet
		[]string{"B", "108"}, // over the cutoff: inches
	)

	specs, _ := ParseWall(table, 1)
	if len(specs) != 2 {
		t.Fatalf("got %d specs, want 2", len(specs))
	}
	if specs[0].Height != 9 {
		t.Errorf("bare 9 = %v ft, want 9", specs[0].Height)
	}
	if specs[1].Height != 9 {
		t.Errorf("bare 108 = %v ft, want 9", specs[1].Height)
	}
}

func TestParseWall_NoTypeColumn(t *testing.T) {
	table := makeTable(
		[]string{"COLOR", "FINISH"},
		[]string{"RED", "MATTE"},
	)

	specs, warnings := ParseWall(table, 5)
	if len(specs) != 0 {
		t.Errorf("specs = %v, want none", specs)
	}
	if len(warnings) != 1 || warnings[0].Code != "wall-schedule-headers" {
		t.Errorf("warnings = %v, want one header warning", warnings)
	}
}

func TestParseOpenings_Basic(t *testing.T) {
	table := makeTable(
		[]string{"MARK", "WIDTH", "HEIGHT", "QTY"},
		[]string{"D1", `3'-0"`, `6'-8"`, "2"},
		[]string{"W1", `4'-0"`, `3'-6"`, "6"},
	)

	openings, _ := ParseOpenings(table, 4)
	if len(openings) != 2 {
		t.Fatalf("got %d openings, want 2", len(openings))
	}

	d := openings[0]
	if d.Mark != "D1" || d.Category != model.CategoryDoor || d.Quantity != 2 {
		t.Errorf("door = %+v", d)
	}
	if d.Width != 3 || math.Abs(d.Height-6.6667) > 0.001 {
		t.Errorf("door size = %v x %v, want 3 x 6.6667", d.Width, d.Height)
	}
	// 36 inches wide: conventional 2x6 header.
	if d.HeaderSize != "2x6" {
		t.Errorf("door HeaderSize = %q, want 2x6", d.HeaderSize)
	}

	w := openings[1]
	if w.Category != model.CategoryWindow {
		t.Errorf("window category = %q", w.Category)
	}
	// 48 inches: 2x8.
	if w.HeaderSize != "2x8" {
		t.Errorf("window HeaderSize = %q, want 2x8", w.HeaderSize)
	}
}

func TestParseOpenings_HeaderLookup(t *testing.T) {
	tests := []struct {
		widthFt float64
		want    string
	}{
		{2.5, "2x6"},
		{3, "2x6"},
		{4, "2x8"},
		{5, "2x10"},
		{6, "2x10"},
		{8, "2x12"},
		{9, "LVL"},
	}

	for _, tt := range tests {
		if got := headerSizeForWidth(tt.widthFt); got != tt.want {
			t.Errorf("headerSizeForWidth(%v) = %q, want %q", tt.widthFt, got, tt.want)
		}
	}
}

func TestParseOpenings_ExplicitHeader(t *testing.T) {
	table := makeTable(
		[]string{"MARK", "WIDTH", "HEADER"},
		[]string{"D1", `6'-0"`, "(2) 2x12"},
	)

	openings, _ := ParseOpenings(table, 1)
	if len(openings) != 1 {
		t.Fatalf("got %d openings, want 1", len(openings))
	}
	if openings[0].HeaderSize != "2x12" {
		t.Errorf("HeaderSize = %q, want explicit 2x12", openings[0].HeaderSize)
	}
	if openings[0].HeaderCount != 2 {
		t.Errorf("HeaderCount = %d, want 2", openings[0].HeaderCount)
	}
}

func TestParseOpenings_CombinedSizeColumn(t *testing.T) {
	table := makeTable(
		[]string{"MARK", "SIZE", "TYPE"},
		[]string{"W2", `5'-0" x 4'-0"`, "CASEMENT"},
	)

	openings, _ := ParseOpenings(table, 1)
	if len(openings) != 1 {
		t.Fatalf("got %d openings, want 1", len(openings))
	}
	op := openings[0]
	if op.Width != 5 || op.Height != 4 {
		t.Errorf("size = %v x %v, want 5 x 4", op.Width, op.Height)
	}
	if op.Category != model.CategoryWindow {
		t.Errorf("Category = %q, want window from CASEMENT", op.Category)
	}
}

func TestParseOpenings_UnknownMark(t *testing.T) {
	table := makeTable(
		[]string{"MARK", "WIDTH"},
		[]string{"101", `3'-0"`},
	)

	openings, warnings := ParseOpenings(table, 2)
	if len(openings) != 1 {
		t.Fatalf("got %d openings, want 1", len(openings))
	}
	if openings[0].Category != "" {
		t.Errorf("Category = %q, want empty for unclassifiable mark", openings[0].Category)
	}
	if !warningCodes(warnings)["opening-category-unknown"] {
		t.Errorf("warnings = %v, want category-unknown", warnings)
	}
}

func TestParseOpenings_QuantityDefaultWarnedOnce(t *testing.T) {
	table := makeTable(
		[]string{"MARK", "WIDTH"},
		[]string{"D1", `3'`},
		[]string{"D2", `3'`},
		[]string{"D3", `3'`},
	)

	openings, warnings := ParseOpenings(table, 1)
	for _, op := range openings {
		if op.Quantity != DefaultQuantity {
			t.Errorf("opening %s Quantity = %d, want %d", op.Mark, op.Quantity, DefaultQuantity)
		}
	}

	count := 0
	for _, w := range warnings {
		if w.Code == "opening-quantity-default" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("quantity-default warned %d times, want once per table", count)
	}
}

func TestMapHeaders_Fallback(t *testing.T) {
	// A field whose pattern misses still maps when the header contains a
	// word of its name.
	mapped := mapHeaders([]string{"TYPE", "SILL HEIGHT"}, []FieldSpec{
		{Name: "type", Pattern: wallFields[0].Pattern, Key: true},
		{Name: "sillHeight", Pattern: regexp.MustCompile(`never-matches-anything`)},
	})

	if mapped["sillHeight"] != 1 {
		t.Errorf("mapped = %v, want sillHeight -> 1", mapped)
	}
}

func TestSplitFieldName(t *testing.T) {
	got := splitFieldName("sillHeight")
	if len(got) != 2 || got[0] != "sill" || got[1] != "height" {
		t.Errorf("splitFieldName = %v, want [sill height]", got)
	}
}

func warningCodes(warnings []model.Warning) map[string]bool {
	codes := make(map[string]bool)
	for _, w := range warnings {
		codes[w.Code] = true
	}
	return codes
}
