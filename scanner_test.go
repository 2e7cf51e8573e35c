package takeoff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// item places one token on a synthetic page.
func item(text string, x, y float64) model.RawTextItem {
	return model.RawTextItem{
		Text:      text,
		Transform: model.Matrix{10, 0, 0, 10, x, y},
		Width:     float64(len(text)) * 6,
		Height:    10,
	}
}

// rowItems lays a table row out on four columns.
func rowItems(y float64, cells ...string) []model.RawTextItem {
	xs := []float64{50, 150, 250, 350}
	items := make([]model.RawTextItem, 0, len(cells))
	for i, c := range cells {
		if c == "" {
			continue
		}
		items = append(items, item(c, xs[i], y))
	}
	return items
}

// wallSchedulePage is a synthetic wall-schedule sheet: a title line and a
// four-line aligned table.
func wallSchedulePage(number int) model.PageInput {
	items := []model.RawTextItem{item("WALL SCHEDULE", 50, 700)}
	items = append(items, rowItems(650, "TYPE", "STUD", "SPACING", "HEIGHT")...)
	items = append(items, rowItems(630, "A", "2x6", `16" OC`, `9'-0"`)...)
	items = append(items, rowItems(610, "B", "2x4", `24" OC`, `8'-0"`)...)
	items = append(items, rowItems(590, "C", "2x6", `16" OC`, `10'-0"`)...)
	return model.PageInput{Number: number, Width: 612, Height: 792, Items: items}
}

// notesPage is a synthetic general-notes sheet with an optional extra
// specification sentence.
func notesPage(number int, extra string) model.PageInput {
	text := "GENERAL NOTES. All work shall conform to the IRC. " + extra +
		" All lumber shall be DF No. 2 or better."
	return model.PageInput{
		Number: number, Width: 612, Height: 792,
		Items: []model.RawTextItem{item(text, 50, 700)},
	}
}

// fakeSource serves a fixed page list.
type fakeSource struct {
	name     string
	pages    []model.PageInput
	countErr error
	pageErr  map[int]error
	onPage   func(n int)
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) PageCount(ctx context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.pages), nil
}

func (f *fakeSource) Page(ctx context.Context, number int) (model.PageInput, error) {
	if err := f.pageErr[number]; err != nil {
		return model.PageInput{}, err
	}
	if f.onPage != nil {
		f.onPage(number)
	}
	return f.pages[number-1], nil
}

func TestScan_WallScheduleEndToEnd(t *testing.T) {
	src := &fakeSource{name: "plans.pdf", pages: []model.PageInput{wallSchedulePage(1)}}

	result, err := New().Scan(context.Background(), src)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if !result.Complete {
		t.Error("Complete = false, want true")
	}
	if len(result.Pages) != 1 {
		t.Fatalf("got %d page classifications, want 1", len(result.Pages))
	}
	cls := result.Pages[0]
	if cls.Type != model.PageWallSchedule {
		t.Fatalf("page type = %v (scores %v), want wall-schedule", cls.Type, cls.Scores)
	}
	if cls.Confidence <= 0.4 {
		t.Errorf("confidence = %v, want > 0.4", cls.Confidence)
	}

	if len(result.WallTypes) != 3 {
		t.Fatalf("got %d wall types %v, want 3", len(result.WallTypes), result.WallTypes)
	}
	a := result.WallTypes[0]
	if a.Type != "A" || a.StudSize != "2x6" || a.Spacing != 16 || a.Height != 9 || !a.Exterior {
		t.Errorf("wall A = %+v", a)
	}
}

func TestScan_NotesOverridesAcrossPages(t *testing.T) {
	src := &fakeSource{name: "plans.pdf", pages: []model.PageInput{
		notesPage(1, `Floor Joists shall be 2x10 at 16" O.C.`),
		notesPage(2, ""), // no joist spec: must not reset the override
		notesPage(3, `Floor Joists shall be 2x12 at 12" O.C.`),
	}}

	result, err := New().Scan(context.Background(), src)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	o := result.SpecOverrides
	if o.FloorJoistSize == nil || *o.FloorJoistSize != "2x12" {
		t.Errorf("FloorJoistSize = %v, want last non-nil 2x12", strOrNil(o.FloorJoistSize))
	}
	if o.FloorJoistSpacing == nil || *o.FloorJoistSpacing != 12 {
		t.Errorf("FloorJoistSpacing = %v, want 12", o.FloorJoistSpacing)
	}
}

func strOrNil(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func TestScan_ProgressAndOrder(t *testing.T) {
	src := &fakeSource{name: "plans.pdf", pages: []model.PageInput{
		wallSchedulePage(1), notesPage(2, ""), wallSchedulePage(3),
	}}

	var seen []int
	scanner := New().WithProgress(func(p Progress) {
		seen = append(seen, p.Page)
		if p.Total != 3 {
			t.Errorf("Total = %d, want 3", p.Total)
		}
	})

	if _, err := scanner.Scan(context.Background(), src); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if fmt.Sprint(seen) != "[1 2 3]" {
		t.Errorf("progress pages = %v, want strictly ordered [1 2 3]", seen)
	}
}

func TestScan_FatalPageCount(t *testing.T) {
	src := &fakeSource{name: "broken.pdf", countErr: errors.New("xref damaged")}

	result, err := New().Scan(context.Background(), src)
	if err == nil {
		t.Fatal("Scan() expected error")
	}
	if result == nil {
		t.Fatal("partial result must survive a fatal error")
	}
	if result.Complete {
		t.Error("Complete = true on a failed scan")
	}
}

func TestScan_FatalPageFetchKeepsPartial(t *testing.T) {
	src := &fakeSource{
		name:    "plans.pdf",
		pages:   []model.PageInput{wallSchedulePage(1), wallSchedulePage(2)},
		pageErr: map[int]error{2: errors.New("stream truncated")},
	}

	result, err := New().Scan(context.Background(), src)
	if err == nil {
		t.Fatal("Scan() expected error")
	}
	if !strings.Contains(err.Error(), "page 2") {
		t.Errorf("error = %v, want page number context", err)
	}
	if len(result.Pages) != 1 {
		t.Errorf("got %d classifications, want the 1 completed page", len(result.Pages))
	}
	if result.Complete {
		t.Error("Complete = true after a fatal fetch")
	}
}

func TestScan_CancelBetweenPages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeSource{name: "plans.pdf", pages: []model.PageInput{
		wallSchedulePage(1), wallSchedulePage(2),
	}}

	scanner := New().WithProgress(func(p Progress) {
		if p.Page == 1 {
			cancel()
		}
	})

	result, err := scanner.Scan(ctx, src)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Scan() error = %v, want context.Canceled", err)
	}
	if len(result.Pages) != 1 {
		t.Errorf("got %d classifications, want 1 before cancellation", len(result.Pages))
	}
}

func TestScan_Superseded(t *testing.T) {
	scanner := New()
	src := &fakeSource{name: "plans.pdf", pages: []model.PageInput{
		wallSchedulePage(1), wallSchedulePage(2),
	}}
	// A newer scan starting mid-flight bumps the shared generation.
	src.onPage = func(n int) {
		if n == 1 {
			scanner.gen.Add(1)
		}
	}

	result, err := scanner.Scan(context.Background(), src)
	if !errors.Is(err, ErrSuperseded) {
		t.Fatalf("Scan() error = %v, want ErrSuperseded", err)
	}
	if result.Complete {
		t.Error("superseded scan must stay incomplete")
	}
	if len(result.Pages) != 1 {
		t.Errorf("got %d classifications, want the 1 page finished before supersession", len(result.Pages))
	}
}

// fakeVision proposes a fixed partial or fails per page.
type fakeVision struct {
	fail    map[int]bool
	propose model.PartialResult
	calls   []VisionRequest
}

func (v *fakeVision) Propose(ctx context.Context, req VisionRequest) (model.PartialResult, error) {
	v.calls = append(v.calls, req)
	if v.fail[req.Page] {
		return model.PartialResult{}, errors.New("response was not JSON")
	}
	return v.propose, nil
}

// fakeImager returns stub PNG bytes.
type fakeImager struct{ fail map[int]bool }

func (i *fakeImager) Image(ctx context.Context, page int) ([]byte, error) {
	if i.fail[page] {
		return nil, errors.New("render failed")
	}
	return []byte("png"), nil
}

func TestScan_VisionAugmentation(t *testing.T) {
	vision := &fakeVision{propose: model.PartialResult{
		WallSegments: []model.WallSegment{{WallType: "A", Length: 24, Exterior: true}},
	}}
	src := &fakeSource{name: "plans.pdf", pages: []model.PageInput{
		wallSchedulePage(1), notesPage(2, ""),
	}}

	result, err := New().WithVision(vision, &fakeImager{}).Scan(context.Background(), src)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	// Only the wall-schedule page is vision-worthy by default.
	if len(vision.calls) != 1 {
		t.Fatalf("vision called %d times, want 1", len(vision.calls))
	}
	req := vision.calls[0]
	if req.Page != 1 || req.PageType != model.PageWallSchedule {
		t.Errorf("request = %+v", req)
	}
	if req.SupplementaryText == "" {
		t.Error("SupplementaryText empty, want page text")
	}
	if len(result.WallSegments) != 1 {
		t.Errorf("WallSegments = %v, want vision's proposal merged", result.WallSegments)
	}
}

func TestScan_VisionFailureIsolated(t *testing.T) {
	vision := &fakeVision{fail: map[int]bool{1: true}}
	src := &fakeSource{name: "plans.pdf", pages: []model.PageInput{
		wallSchedulePage(1), wallSchedulePage(2),
	}}

	result, err := New().WithVision(vision, &fakeImager{}).Scan(context.Background(), src)
	if err != nil {
		t.Fatalf("Scan() error = %v, vision failures must not abort", err)
	}
	if !result.Complete {
		t.Error("Complete = false, want true despite vision failure")
	}
	if len(vision.calls) != 2 {
		t.Errorf("vision called %d times, want both pages attempted", len(vision.calls))
	}

	found := false
	for _, w := range result.Warnings {
		if w.Code == "vision-propose" && w.Page == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want vision-propose for page 1", result.Warnings)
	}
}

func TestScan_ImagerFailureIsolated(t *testing.T) {
	vision := &fakeVision{}
	src := &fakeSource{name: "plans.pdf", pages: []model.PageInput{wallSchedulePage(1)}}

	result, err := New().
		WithVision(vision, &fakeImager{fail: map[int]bool{1: true}}).
		Scan(context.Background(), src)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(vision.calls) != 0 {
		t.Errorf("vision called despite render failure")
	}

	found := false
	for _, w := range result.Warnings {
		if w.Code == "vision-render" {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want vision-render", result.Warnings)
	}
}

func TestScanner_CloneIndependence(t *testing.T) {
	base := New()
	custom := base.WithVisionTypes(model.PageRoofPlan)

	if len(base.opts.visionTypes) == 1 {
		t.Error("configuring a clone mutated the base scanner")
	}
	if !custom.opts.visionTypes[model.PageRoofPlan] || len(custom.opts.visionTypes) != 1 {
		t.Errorf("clone visionTypes = %v", custom.opts.visionTypes)
	}
	if base.gen != custom.gen {
		t.Error("clones must share the generation counter")
	}
}

func TestFormatWarnings(t *testing.T) {
	warnings := []model.Warning{
		model.Warnf("a", 1, model.SeverityInfo, "first"),
		model.Warnf("b", 0, model.SeverityReview, "second"),
	}

	got := FormatWarnings(warnings)
	if !strings.Contains(got, "page 1") || !strings.Contains(got, "second") {
		t.Errorf("FormatWarnings = %q", got)
	}
	if FormatWarnings(nil) != "" {
		t.Error("FormatWarnings(nil) should be empty")
	}
}
