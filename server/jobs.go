package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	takeoff "github.com/Clayne666/framing-takeoff-toolkit-sub000"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/pdfsource"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/store"
)

// Status is a job's lifecycle state.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Job tracks one uploaded document through the scan pipeline.
type Job struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	ScanID    string    `json:"scanId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	path string // uploaded file on disk, removed after processing
}

// ScanSource is what the job runner needs from an opened document: the
// scanner's page-source contract plus cleanup.
type ScanSource interface {
	takeoff.PageSource
	Close() error
}

// SourceOpener opens an uploaded file as a page source. The default uses
// pdfsource; tests substitute fakes.
type SourceOpener func(path string) (ScanSource, error)

func defaultOpener(path string) (ScanSource, error) {
	return pdfsource.Open(path)
}

// ScannerFactory builds the scanner for one job. Every job gets its own
// Scanner: starting a Scan supersedes any scan running on the same
// Scanner, so sharing one across workers would cancel concurrent jobs.
// The uploaded file's path is passed so factories can bind per-document
// collaborators such as a vision page imager.
type ScannerFactory func(path string) *takeoff.Scanner

// Runner consumes queued jobs with a fixed worker pool, scans each
// document, and persists results.
type Runner struct {
	newScanner ScannerFactory
	results    store.Store
	open       SourceOpener
	log        *slog.Logger

	queue  chan *Job
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu   sync.RWMutex
	jobs map[string]*Job
	ids  []string // submission order
}

// NewRunner creates a job runner. Nil factory, opener, and logger get
// their defaults.
func NewRunner(newScanner ScannerFactory, results store.Store, open SourceOpener, log *slog.Logger, queueSize int) *Runner {
	if newScanner == nil {
		newScanner = func(string) *takeoff.Scanner { return takeoff.New() }
	}
	if open == nil {
		open = defaultOpener
	}
	if log == nil {
		log = slog.Default()
	}
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Runner{
		newScanner: newScanner,
		results:    results,
		open:       open,
		log:        log,
		queue:      make(chan *Job, queueSize),
		jobs:       make(map[string]*Job),
	}
}

// Start launches the worker pool.
func (r *Runner) Start(ctx context.Context, workers int) {
	if workers <= 0 {
		workers = 2
	}
	workerCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for range workers {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-r.queue:
					if !ok {
						return
					}
					r.process(workerCtx, job)
				}
			}
		}()
	}
}

// Stop cancels the workers and waits for in-flight jobs to settle.
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

// Submit queues one uploaded file. The runner owns the file at path and
// removes it after processing.
func (r *Runner) Submit(path, filename string) (Job, error) {
	job := &Job{
		ID:        uuid.NewString(),
		Filename:  filename,
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
		path:      path,
	}

	// Register before enqueueing so a fast worker never reports a job
	// the map does not know yet.
	r.mu.Lock()
	r.jobs[job.ID] = job
	r.ids = append(r.ids, job.ID)
	r.mu.Unlock()

	select {
	case r.queue <- job:
	default:
		r.mu.Lock()
		delete(r.jobs, job.ID)
		r.ids = r.ids[:len(r.ids)-1]
		r.mu.Unlock()
		return Job{}, fmt.Errorf("scan queue is full")
	}
	return *job, nil
}

// Get returns a snapshot of one job.
func (r *Runner) Get(id string) (Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// List returns job snapshots, newest submission first.
func (r *Runner) List() []Job {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Job, 0, len(r.ids))
	for i := len(r.ids) - 1; i >= 0; i-- {
		out = append(out, *r.jobs[r.ids[i]])
	}
	return out
}

func (r *Runner) setStatus(job *Job, status Status, errMsg string) {
	r.mu.Lock()
	job.Status = status
	job.Error = errMsg
	job.UpdatedAt = time.Now().UTC()
	r.mu.Unlock()
}

// process runs one job end to end. A scan error fails the job but a
// partial result, if any, is still persisted for inspection.
func (r *Runner) process(ctx context.Context, job *Job) {
	r.setStatus(job, StatusRunning, "")
	log := r.log.With("job", job.ID, "file", job.Filename)
	log.Info("scan started")
	defer os.Remove(job.path)

	src, err := r.open(job.path)
	if err != nil {
		log.Error("open failed", "error", err)
		r.setStatus(job, StatusFailed, err.Error())
		return
	}
	defer src.Close()

	result, scanErr := r.newScanner(job.path).Scan(ctx, src)
	if result != nil {
		if warned, ok := src.(interface{ Warnings() []model.Warning }); ok {
			for _, w := range warned.Warnings() {
				result.AddWarning(w)
			}
		}
		if result.ScanID != "" {
			if err := r.results.Put(ctx, result); err != nil {
				log.Error("persist failed", "error", err)
				r.setStatus(job, StatusFailed, err.Error())
				return
			}
			r.mu.Lock()
			job.ScanID = result.ScanID
			r.mu.Unlock()
		}
	}
	if scanErr != nil {
		log.Error("scan failed", "error", scanErr)
		r.setStatus(job, StatusFailed, scanErr.Error())
		return
	}

	log.Info("scan finished", "scan", result.ScanID, "pages", result.PageCount,
		"warnings", len(result.Warnings))
	r.setStatus(job, StatusDone, "")
}
