// Package tables provides table detection over reconstructed text lines.
//
// Plan schedules are visually tabular but carry no table markup in the
// source text stream; column alignment is the only available signal. This
// package finds runs of consecutive lines whose items align on consistent
// column positions and emits them as [model.Table] values with a header
// row and a cell grid.
//
// # Detectors
//
// Detection is performed by types implementing the [Detector] interface.
// The package provides:
//
//   - [AlignedColumnDetector] - clusters item X positions into buckets and
//     tracks runs of consistently bucketed lines
//
// Detectors are registered globally and can be retrieved by name:
//
//	detector := tables.GetDetector("aligned")
//	found, err := detector.Detect(lines)
//
// # Aligned-Column Detection
//
// The [AlignedColumnDetector] uses a multi-step algorithm:
//
//  1. Round each item's X to the nearest bucket multiple
//  2. Treat lines with fewer than two buckets as single-column breaks
//  3. Extend runs while the column count stays within the allowed slack
//  4. Finalize runs of at least the minimum length into tables
//  5. Derive column boundaries by pairing adjacent buckets
//
// # Configuration
//
// Detector behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.BucketTolerance = 8
//	detector.Configure(config)
package tables
