package tables

import (
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// Detector is the interface for table detection algorithms
type Detector interface {
	// Detect finds tables in a page's reconstructed lines
	Detect(lines []model.Line) ([]*model.Table, error)

	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(config Config) error
}

// Config holds detector configuration
type Config struct {
	// BucketTolerance is the rounding granularity for item X positions,
	// in page units. Items within the same multiple share a column
	// bucket.
	BucketTolerance float64

	// MinColumns is the bucket count below which a line reads as
	// single-column and breaks any active run
	MinColumns int

	// MinRunLines is the minimum consecutive aligned lines for a table
	MinRunLines int

	// ColumnSlack is how far a line's bucket count may drift from the
	// run's reference set while still extending the run
	ColumnSlack int
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		BucketTolerance: 6.0,
		MinColumns:      2,
		MinRunLines:     3,
		ColumnSlack:     1,
	}
}

// DetectorRegistry holds registered detectors
type DetectorRegistry struct {
	detectors map[string]Detector
}

// NewRegistry creates a new detector registry
func NewRegistry() *DetectorRegistry {
	return &DetectorRegistry{
		detectors: make(map[string]Detector),
	}
}

// Register registers a detector
func (r *DetectorRegistry) Register(detector Detector) {
	r.detectors[detector.Name()] = detector
}

// Get retrieves a detector by name
func (r *DetectorRegistry) Get(name string) Detector {
	return r.detectors[name]
}

// List returns all registered detector names
func (r *DetectorRegistry) List() []string {
	names := make([]string, 0, len(r.detectors))
	for name := range r.detectors {
		names = append(names, name)
	}
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterDetector registers a detector globally
func RegisterDetector(detector Detector) {
	globalRegistry.Register(detector)
}

// GetDetector retrieves a detector by name
func GetDetector(name string) Detector {
	return globalRegistry.Get(name)
}

// ListDetectors returns all registered detector names
func ListDetectors() []string {
	return globalRegistry.List()
}

func init() {
	// Register default detectors
	RegisterDetector(NewAlignedColumnDetector())
}
