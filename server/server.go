// Package server exposes the scan pipeline as an HTTP service: PDF
// uploads become background scan jobs, and finished results are served
// as JSON, an HTML report, or an XLSX workbook.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/export"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/store"
)

// Config controls the HTTP service.
type Config struct {
	// MaxUploadBytes caps uploaded PDF size. Default 100 MB.
	MaxUploadBytes int64

	// UploadDir receives uploaded files until their job completes.
	// Default os.TempDir().
	UploadDir string
}

// Server is the HTTP API for the scan pipeline.
type Server struct {
	router  chi.Router
	runner  *Runner
	results store.Store
	log     *slog.Logger
	cfg     Config
}

// New creates the server and wires its routes.
func New(runner *Runner, results store.Store, log *slog.Logger, cfg Config) *Server {
	if log == nil {
		log = slog.Default()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 100 << 20
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = os.TempDir()
	}
	s := &Server{runner: runner, results: results, log: log, cfg: cfg}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/scans", s.handleCreateScan)
	r.Get("/api/scans", s.handleListScans)
	r.Get("/api/scans/{jobID}", s.handleGetScan)
	r.Get("/api/scans/{jobID}/report", s.handleReport)
	r.Get("/api/scans/{jobID}/takeoff.xlsx", s.handleWorkbook)

	s.router = r
}

// requestLogger logs each request with status and latency.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateScan accepts a multipart PDF upload and queues a scan job.
func (s *Server) handleCreateScan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		jsonError(w, "only PDF uploads are supported", http.StatusBadRequest)
		return
	}

	tmp, err := os.CreateTemp(s.cfg.UploadDir, "takeoff-upload-*.pdf")
	if err != nil {
		jsonError(w, "storing upload failed", http.StatusInternalServerError)
		return
	}
	if _, err := io.Copy(tmp, io.LimitReader(file, s.cfg.MaxUploadBytes+1)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		jsonError(w, "storing upload failed", http.StatusInternalServerError)
		return
	}
	size, _ := tmp.Seek(0, io.SeekCurrent)
	tmp.Close()
	if size > s.cfg.MaxUploadBytes {
		os.Remove(tmp.Name())
		jsonError(w, fmt.Sprintf("upload exceeds %d bytes", s.cfg.MaxUploadBytes),
			http.StatusRequestEntityTooLarge)
		return
	}

	job, err := s.runner.Submit(tmp.Name(), filename)
	if err != nil {
		os.Remove(tmp.Name())
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"id":      job.ID,
		"status":  job.Status,
		"pollUrl": "/api/scans/" + job.ID,
	})
}

func (s *Server) handleListScans(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"scans": s.runner.List()})
}

// handleGetScan returns a job's state; when the job is done the stored
// extraction result is embedded.
func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	job, ok := s.runner.Get(chi.URLParam(r, "jobID"))
	if !ok {
		jsonError(w, "unknown scan job", http.StatusNotFound)
		return
	}

	response := map[string]any{"job": job}
	if job.Status == StatusDone || (job.Status == StatusFailed && job.ScanID != "") {
		result, err := s.results.Get(r.Context(), job.ScanID)
		if err == nil {
			response["result"] = result
		} else if !errors.Is(err, store.ErrNotFound) {
			jsonError(w, "loading result failed", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	result, ok := s.loadResult(w, r)
	if !ok {
		return
	}
	html, err := export.HTML(result)
	if err != nil {
		jsonError(w, "rendering report failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func (s *Server) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	result, ok := s.loadResult(w, r)
	if !ok {
		return
	}
	data, err := export.Workbook(result)
	if err != nil {
		jsonError(w, "rendering workbook failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "takeoff-"+result.ScanID+".xlsx"))
	w.Write(data)
}

// loadResult resolves {jobID} to its stored extraction result, writing
// the error response itself when that fails.
func (s *Server) loadResult(w http.ResponseWriter, r *http.Request) (*model.ExtractionResult, bool) {
	job, found := s.runner.Get(chi.URLParam(r, "jobID"))
	if !found {
		jsonError(w, "unknown scan job", http.StatusNotFound)
		return nil, false
	}
	if job.ScanID == "" {
		jsonError(w, "scan has not produced a result yet", http.StatusConflict)
		return nil, false
	}
	res, err := s.results.Get(r.Context(), job.ScanID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "result not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		jsonError(w, "loading result failed", http.StatusInternalServerError)
		return nil, false
	}
	return res, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
