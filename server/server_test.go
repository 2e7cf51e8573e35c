package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/store"
)

// fakeSource serves one synthetic wall-schedule page regardless of the
// uploaded file's content.
type fakeSource struct{ name string }

func (f *fakeSource) Name() string                           { return f.name }
func (f *fakeSource) PageCount(context.Context) (int, error) { return 1, nil }
func (f *fakeSource) Close() error                           { return nil }
func (f *fakeSource) Page(_ context.Context, n int) (model.PageInput, error) {
	item := func(text string, x, y float64) model.RawTextItem {
		return model.RawTextItem{
			Text:      text,
			Transform: model.Matrix{10, 0, 0, 10, x, y},
			Width:     float64(len(text)) * 6,
			Height:    10,
		}
	}
	row := func(y float64, cells ...string) []model.RawTextItem {
		xs := []float64{50, 150, 250, 350}
		var items []model.RawTextItem
		for i, c := range cells {
			items = append(items, item(c, xs[i], y))
		}
		return items
	}
	items := []model.RawTextItem{item("WALL SCHEDULE", 50, 700)}
	items = append(items, row(650, "TYPE", "STUD", "SPACING", "HEIGHT")...)
	items = append(items, row(630, "A", "2x6", `16" OC`, `9'-0"`)...)
	items = append(items, row(610, "B", "2x4", `24" OC`, `8'-0"`)...)
	items = append(items, row(590, "C", "2x6", `16" OC`, `10'-0"`)...)
	return model.PageInput{Number: n, Width: 612, Height: 792, Items: items}, nil
}

func newTestServer(t *testing.T, opener SourceOpener) (*Server, *Runner, store.Store) {
	t.Helper()
	results := store.NewMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	runner := NewRunner(nil, results, opener, log, 8)
	runner.Start(context.Background(), 1)
	t.Cleanup(runner.Stop)
	srv := New(runner, results, log, Config{UploadDir: t.TempDir()})
	return srv, runner, results
}

func uploadPDF(t *testing.T, srv *Server, filename string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	fmt.Fprint(part, "%PDF-1.4 fake")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/scans", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

// waitDone polls a job until it leaves the queued/running states.
func waitDone(t *testing.T, runner *Runner, id string) Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, ok := runner.Get(id)
		if !ok {
			t.Fatalf("job %s disappeared", id)
		}
		if job.Status == StatusDone || job.Status == StatusFailed {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s never finished", id)
	return Job{}
}

func TestHealthz(t *testing.T) {
	srv, _, _ := newTestServer(t, func(path string) (ScanSource, error) {
		return &fakeSource{name: path}, nil
	})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
}

func TestUploadScanLifecycle(t *testing.T) {
	srv, runner, results := newTestServer(t, func(path string) (ScanSource, error) {
		return &fakeSource{name: path}, nil
	})

	rec := uploadPDF(t, srv, "plans.pdf")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("upload status = %d body=%s", rec.Code, rec.Body)
	}
	var created struct {
		ID     string `json:"id"`
		Status Status `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if created.Status != StatusQueued {
		t.Errorf("status = %s, want queued", created.Status)
	}

	job := waitDone(t, runner, created.ID)
	if job.Status != StatusDone {
		t.Fatalf("job finished %s (%s), want done", job.Status, job.Error)
	}
	if job.ScanID == "" {
		t.Fatal("done job carries no scan ID")
	}

	stored, err := results.Get(context.Background(), job.ScanID)
	if err != nil {
		t.Fatalf("stored result: %v", err)
	}
	if len(stored.WallTypes) != 3 {
		t.Errorf("stored %d wall types, want 3", len(stored.WallTypes))
	}

	// GET /api/scans/{id} embeds the result once done.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scans/"+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get scan status = %d", rec.Code)
	}
	var got struct {
		Job    Job                     `json:"job"`
		Result *model.ExtractionResult `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding get response: %v", err)
	}
	if got.Result == nil || got.Result.ScanID != job.ScanID {
		t.Errorf("embedded result = %+v", got.Result)
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	srv, _, _ := newTestServer(t, func(path string) (ScanSource, error) {
		return &fakeSource{name: path}, nil
	})
	rec := uploadPDF(t, srv, "plans.docx")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestOpenFailureFailsJob(t *testing.T) {
	srv, runner, _ := newTestServer(t, func(path string) (ScanSource, error) {
		return nil, fmt.Errorf("not a pdf")
	})
	rec := uploadPDF(t, srv, "broken.pdf")
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	job := waitDone(t, runner, created.ID)
	if job.Status != StatusFailed || !strings.Contains(job.Error, "not a pdf") {
		t.Errorf("job = %+v, want failed with open error", job)
	}
}

func TestReportAndWorkbook(t *testing.T) {
	srv, runner, _ := newTestServer(t, func(path string) (ScanSource, error) {
		return &fakeSource{name: path}, nil
	})
	rec := uploadPDF(t, srv, "plans.pdf")
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	waitDone(t, runner, created.ID)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scans/"+created.ID+"/report", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("report status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<table>") {
		t.Error("report should contain rendered tables")
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scans/"+created.ID+"/takeoff.xlsx", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("workbook status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("workbook content type = %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("workbook body is empty")
	}
}

func TestUnknownJob(t *testing.T) {
	srv, _, _ := newTestServer(t, func(path string) (ScanSource, error) {
		return &fakeSource{name: path}, nil
	})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scans/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListScansNewestFirst(t *testing.T) {
	srv, runner, _ := newTestServer(t, func(path string) (ScanSource, error) {
		return &fakeSource{name: path}, nil
	})
	first := uploadPDF(t, srv, "a.pdf")
	second := uploadPDF(t, srv, "b.pdf")
	var a, b struct {
		ID string `json:"id"`
	}
	json.Unmarshal(first.Body.Bytes(), &a)
	json.Unmarshal(second.Body.Bytes(), &b)
	waitDone(t, runner, a.ID)
	waitDone(t, runner, b.ID)

	jobs := runner.List()
	if len(jobs) != 2 || jobs[0].ID != b.ID || jobs[1].ID != a.ID {
		t.Errorf("unexpected list order: %+v", jobs)
	}
}
