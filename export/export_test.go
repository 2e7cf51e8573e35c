package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

func sampleResult() *model.ExtractionResult {
	r := model.NewExtractionResult("scan-42", "plans.pdf", 5)
	r.StartedAt = time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	r.Complete = true
	r.Pages = append(r.Pages, model.PageClassification{
		Page: 3, Type: model.PageWallSchedule, Confidence: 0.82,
	})
	r.WallTypes = append(r.WallTypes, model.WallTypeSpec{
		Type: "A", StudSize: "2x6", Spacing: 16, Height: 9,
		SheathingType: "OSB", SheathingThickness: `1/2"`,
		Insulation: "R-21", Exterior: true,
	})
	r.WallSegments = append(r.WallSegments,
		model.WallSegment{WallType: "A", Length: 24.5, Exterior: true},
		model.WallSegment{WallType: "B", Length: 10, Exterior: false},
	)
	r.Openings = append(r.Openings, model.Opening{
		Mark: "W1", Category: model.CategoryWindow,
		Width: 3, Height: 4, Quantity: 2, HeaderSize: "2x10", HeaderCount: 2,
	})
	r.FloorSpecs = append(r.FloorSpecs, model.FloorSpec{
		Level: "second floor", JoistSize: "2x10", JoistSpacing: 16, Subfloor: `3/4" T&G`,
	})
	r.RoofSpecs = append(r.RoofSpecs, model.RoofSpec{
		RafterSize: "2x8", RafterSpacing: 24, Pitch: "6/12", Sheathing: `1/2" OSB`,
	})
	r.SteelMembers = append(r.SteelMembers, model.SteelMember{Shape: "W12x26", Note: "garage"})
	r.Hardware = append(r.Hardware, model.HardwareRef{Model: "HDU5", Kind: "hold-down"})
	r.Dimensions = append(r.Dimensions, model.Dimension{Raw: `12'-6"`, Feet: 12.5, Kind: model.KindFeetInches})
	r.Warnings = append(r.Warnings, model.Warnf(
		"wall-spacing-default", 3, model.SeverityInfo, `assumed 16" o.c.`))
	return r
}

func TestWorkbookSheets(t *testing.T) {
	data, err := Workbook(sampleResult())
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	want := []string{"Summary", "Wall Types", "Wall Segments", "Openings", "Floors & Roofs", "Dimensions"}
	got := f.GetSheetList()
	for _, sheet := range want {
		found := false
		for _, g := range got {
			if g == sheet {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing sheet %q in %v", sheet, got)
		}
	}
	for _, g := range got {
		if g == "Sheet1" {
			t.Error("default Sheet1 should be removed")
		}
	}
}

func TestWorkbookWallRow(t *testing.T) {
	data, err := Workbook(sampleResult())
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Wall Types")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 data row", len(rows))
	}
	if rows[1][0] != "A" || rows[1][1] != "2x6" || rows[1][2] != "16" {
		t.Errorf("unexpected wall row: %v", rows[1])
	}
}

func TestMarkdownReport(t *testing.T) {
	md := Markdown(sampleResult())

	for _, want := range []string{
		"# Framing Takeoff: plans.pdf",
		"## Wall Types",
		"| A | 2x6 | 16\" o.c.",
		"34.5 ft total",
		"| W1 | window |",
		"(2) 2x10",
		"6/12 pitch",
		"steel W12x26",
		"HDU5",
		"wall-spacing-default",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestMarkdownIncomplete(t *testing.T) {
	r := sampleResult()
	r.Complete = false
	if !strings.Contains(Markdown(r), "(incomplete)") {
		t.Error("incomplete scans should be flagged in the report")
	}
}

func TestHTMLRendersTables(t *testing.T) {
	html, err := HTML(sampleResult())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, "<table>") {
		t.Error("expected rendered tables in HTML report")
	}
	if !strings.Contains(out, "<h1") {
		t.Error("expected a top-level heading in HTML report")
	}
}
