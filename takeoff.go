// Package takeoff extracts structured framing-takeoff data from scanned
// construction-plan documents.
//
// A plan page arrives as unordered positioned text tokens with no reading
// order, line grouping, or table markup. The pipeline reconstructs lines
// from token positions, detects column-aligned tables, classifies the
// page type by weighted heuristics, runs the field parsers, and merges
// every page's partial output into one growing [model.ExtractionResult]
// for downstream material calculators.
//
// Basic usage:
//
//	src, err := pdfsource.Open("plans.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer src.Close()
//
//	result, err := takeoff.New().Scan(ctx, src)
//	if err != nil {
//	    // handle error; result still holds the partial takeoff
//	}
//	if len(result.Warnings) > 0 {
//	    log.Println(takeoff.FormatWarnings(result.Warnings))
//	}
//
// With options:
//
//	scanner := takeoff.New().
//	    WithRules(customRules).
//	    WithVision(visionClient, imager).
//	    WithProgress(func(p takeoff.Progress) {
//	        fmt.Printf("page %d/%d: %s\n", p.Page, p.Total, p.Classification.Type)
//	    })
//
// Scanners are immutable: each With* method returns a clone, so a
// configured Scanner is safe to share. Starting a new Scan supersedes any
// scan still running on the same Scanner; the superseded scan stops
// before its next page and returns [ErrSuperseded] with its partial
// result.
package takeoff

import (
	"context"
	"errors"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// ErrSuperseded reports that a newer Scan started on the same Scanner
// while this one was running. The partial result accompanying it is
// valid but marked incomplete.
var ErrSuperseded = errors.New("scan superseded by a newer scan")

// PageSource supplies positioned text pages. The page-rendering layer is
// an external collaborator; the pipeline only ever sees this interface.
type PageSource interface {
	// Name identifies the source document, typically a file name.
	Name() string

	// PageCount returns the number of pages.
	PageCount(ctx context.Context) (int, error)

	// Page returns one page's positioned tokens, 1-based.
	Page(ctx context.Context, number int) (model.PageInput, error)
}

// PageImager supplies page rasters for vision augmentation.
type PageImager interface {
	// Image renders one page as PNG bytes, 1-based.
	Image(ctx context.Context, page int) ([]byte, error)
}

// VisionRequest is one page's augmentation request: the raster, the
// classified page type selecting the prompt, and the page's reconstructed
// text as supplementary context.
type VisionRequest struct {
	Page              int
	PageType          model.PageType
	ImagePNG          []byte
	SupplementaryText string
}

// Vision is the AI image-understanding collaborator. Implementations map
// their page-type-specific response schema into the same partial-result
// shape the synchronous parsers produce; the Scanner merges both
// identically. Errors are isolated per page and never abort a scan.
type Vision interface {
	Propose(ctx context.Context, req VisionRequest) (model.PartialResult, error)
}

// Progress reports one completed page during a scan. The callback is the
// cooperative yield point for hosts that interleave scanning with
// interactive work.
type Progress struct {
	Page           int
	Total          int
	Classification model.PageClassification
}

// ProgressFunc receives per-page progress during Scan.
type ProgressFunc func(Progress)
