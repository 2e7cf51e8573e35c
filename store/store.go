// Package store persists scan results. The Store interface is small and
// JSON-valued; the SQLite implementation is the durable backend for the
// CLI and server, and the in-memory implementation backs tests and
// ephemeral servers.
package store

import (
	"context"
	"errors"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// ErrNotFound is returned when no result exists for a scan ID.
var ErrNotFound = errors.New("scan not found")

var errMissingID = errors.New("result must carry a scan ID")

// Store persists extraction results keyed by scan ID. Put overwrites an
// existing result with the same ID. Implementations must be safe for
// concurrent use.
type Store interface {
	Put(ctx context.Context, result *model.ExtractionResult) error
	Get(ctx context.Context, scanID string) (*model.ExtractionResult, error)
	GetAll(ctx context.Context) ([]*model.ExtractionResult, error)
	Delete(ctx context.Context, scanID string) error
	Close() error
}
