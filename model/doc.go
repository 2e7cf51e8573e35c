// Package model provides the intermediate representation (IR) for extracted
// framing-takeoff content.
//
// This package defines the user-facing data structures produced by the
// extraction pipeline. All reconstruction and parsing stages ultimately
// produce these types, making them the primary API for consuming takeoff
// data.
//
// # Positioned Text
//
// Pages arrive from a rendering collaborator as unordered positioned tokens:
//
//   - [RawTextItem] - one token with its affine transform, as delivered
//   - [PageInput] - one page's tokens plus viewport dimensions
//   - [TextItem] - the normalized record every pipeline stage consumes
//   - [Line] - a reconstructed horizontal text line
//   - [Table] - a detected column-aligned region with header and cells
//
// Use [NormalizeItems] to convert raw tokens into [TextItem] values.
//
// # Takeoff Rows
//
// Schedule and notes parsing produce the structured rows downstream
// material calculators consume:
//
//   - [WallTypeSpec] - one wall-schedule row
//   - [Opening] - one door/window-schedule row
//   - [FloorSpec], [RoofSpec] - floor and roof system specs
//   - [StructuralMember], [SteelMember], [HardwareRef] - member callouts
//   - [SpecOverrides] - document-wide defaults (nil field = not set)
//
// # Results
//
// [ExtractionResult] is the aggregate for one document scan. It is created
// once per scan and grows additively: each page contributes a
// [PartialResult] folded in via [ExtractionResult.Merge]. Array fields
// concatenate without deduplication; [SpecOverrides] fields follow
// last-non-nil-wins and are never reset within a scan.
//
// # Warnings
//
// Recoverable anomalies (default substitutions, unreadable cells, failed
// augmentation calls) are recorded as [Warning] values on the result rather
// than logged or returned as errors.
package model
