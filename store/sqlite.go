package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// Schema for the scans table. Applied by Open; exported so operators can
// apply it manually to a shared database.
const Schema = `
CREATE TABLE IF NOT EXISTS scans (
	scan_id TEXT PRIMARY KEY,
	source TEXT NOT NULL DEFAULT '',
	page_count INTEGER NOT NULL DEFAULT 0,
	complete INTEGER NOT NULL DEFAULT 0,
	started_at INTEGER NOT NULL,
	payload TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scans_started ON scans(started_at);
`

// SQLite is a Store backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// Open opens (creating if needed) a SQLite-backed store at path. Use
// ":memory:" for a throwaway database.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	// Single writer; WAL keeps readers unblocked during Put.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying %s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Put stores or replaces one scan result.
func (s *SQLite) Put(ctx context.Context, result *model.ExtractionResult) error {
	if result == nil || result.ScanID == "" {
		return errMissingID
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scans (scan_id, source, page_count, complete, started_at, payload)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(scan_id) DO UPDATE SET
			source = excluded.source,
			page_count = excluded.page_count,
			complete = excluded.complete,
			started_at = excluded.started_at,
			payload = excluded.payload`,
		result.ScanID, result.Source, result.PageCount,
		boolToInt(result.Complete), result.StartedAt.UnixMilli(), string(payload))
	if err != nil {
		return fmt.Errorf("storing scan %s: %w", result.ScanID, err)
	}
	return nil
}

// Get returns one scan result, or ErrNotFound.
func (s *SQLite) Get(ctx context.Context, scanID string) (*model.ExtractionResult, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM scans WHERE scan_id = ?`, scanID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading scan %s: %w", scanID, err)
	}
	return decodeResult(payload)
}

// GetAll returns every stored result, newest scan first.
func (s *SQLite) GetAll(ctx context.Context) ([]*model.ExtractionResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM scans ORDER BY started_at DESC, scan_id`)
	if err != nil {
		return nil, fmt.Errorf("listing scans: %w", err)
	}
	defer rows.Close()

	var results []*model.ExtractionResult
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		result, err := decodeResult(payload)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// Delete removes one scan; deleting an absent scan returns ErrNotFound.
func (s *SQLite) Delete(ctx context.Context, scanID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scans WHERE scan_id = ?`, scanID)
	if err != nil {
		return fmt.Errorf("deleting scan %s: %w", scanID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func decodeResult(payload string) (*model.ExtractionResult, error) {
	var result model.ExtractionResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("decoding stored result: %w", err)
	}
	return &result, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
