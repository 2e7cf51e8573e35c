package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// Memory is an in-process Store. Results are deep-copied through their
// JSON form on the way in and out, so callers can keep mutating an
// ExtractionResult after Put without corrupting the stored copy.
type Memory struct {
	mu    sync.RWMutex
	scans map[string]string
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{scans: make(map[string]string)}
}

// Put stores or replaces one scan result.
func (m *Memory) Put(_ context.Context, result *model.ExtractionResult) error {
	if result == nil || result.ScanID == "" {
		return errMissingID
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.scans[result.ScanID] = string(payload)
	m.mu.Unlock()
	return nil
}

// Get returns one scan result, or ErrNotFound.
func (m *Memory) Get(_ context.Context, scanID string) (*model.ExtractionResult, error) {
	m.mu.RLock()
	payload, ok := m.scans[scanID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decodeResult(payload)
}

// GetAll returns every stored result, newest scan first.
func (m *Memory) GetAll(_ context.Context) ([]*model.ExtractionResult, error) {
	m.mu.RLock()
	payloads := make([]string, 0, len(m.scans))
	for _, p := range m.scans {
		payloads = append(payloads, p)
	}
	m.mu.RUnlock()

	results := make([]*model.ExtractionResult, 0, len(payloads))
	for _, p := range payloads {
		result, err := decodeResult(p)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool {
		if !results[i].StartedAt.Equal(results[j].StartedAt) {
			return results[i].StartedAt.After(results[j].StartedAt)
		}
		return results[i].ScanID < results[j].ScanID
	})
	return results, nil
}

// Delete removes one scan; deleting an absent scan returns ErrNotFound.
func (m *Memory) Delete(_ context.Context, scanID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.scans[scanID]; !ok {
		return ErrNotFound
	}
	delete(m.scans, scanID)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error { return nil }
