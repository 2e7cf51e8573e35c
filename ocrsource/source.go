package ocrsource

import (
	"context"
	"fmt"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// Imager renders one page as image bytes, 1-based. render.FilePager
// satisfies this.
type Imager interface {
	Image(ctx context.Context, page int) ([]byte, error)
}

// Config controls OCR page extraction.
type Config struct {
	// DPI is the resolution the Imager renders at, used to convert pixel
	// boxes back to page points. Default 150.
	DPI int

	// MinConfidence drops words Tesseract scored below it (0..100).
	// Default 40; plan sheets are noisy and low-confidence fragments
	// pollute the parsers more than missing words do.
	MinConfidence float64

	// Language is the Tesseract language set, "+"-separated. Empty keeps
	// the engine default.
	Language string
}

// DefaultConfig returns the default OCR source configuration.
func DefaultConfig() Config {
	return Config{DPI: 150, MinConfidence: 40}
}

// Source is a takeoff.PageSource that recognizes rasterized pages. Word
// boxes come back in hOCR image coordinates (top-left origin, y down)
// and are flipped to the pipeline's bottom-left origin so descending-y
// line ordering holds.
type Source struct {
	name   string
	count  int
	imager Imager
	engine *Engine
	cfg    Config
}

// New creates an OCR-backed page source over count pages served by the
// imager. The engine must come from NewEngine; the caller keeps
// ownership and closes it after the scan.
func New(name string, count int, imager Imager, engine *Engine, cfg Config) (*Source, error) {
	if imager == nil {
		return nil, fmt.Errorf("imager is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	def := DefaultConfig()
	if cfg.DPI <= 0 {
		cfg.DPI = def.DPI
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = def.MinConfidence
	}
	if cfg.Language != "" {
		if err := engine.SetLanguage(cfg.Language); err != nil {
			return nil, fmt.Errorf("setting language: %w", err)
		}
	}
	return &Source{name: name, count: count, imager: imager, engine: engine, cfg: cfg}, nil
}

// Name identifies the source document.
func (s *Source) Name() string { return s.name }

// PageCount returns the number of pages.
func (s *Source) PageCount(_ context.Context) (int, error) {
	return s.count, nil
}

// Page renders, recognizes, and converts one page. Coordinates scale
// from render pixels to page points and flip to a bottom-left origin.
func (s *Source) Page(ctx context.Context, number int) (model.PageInput, error) {
	if number < 1 || number > s.count {
		return model.PageInput{}, fmt.Errorf("page %d out of range 1..%d", number, s.count)
	}

	img, err := s.imager.Image(ctx, number)
	if err != nil {
		return model.PageInput{}, fmt.Errorf("rendering page %d: %w", number, err)
	}
	hocr, err := s.engine.HOCR(img)
	if err != nil {
		return model.PageInput{}, fmt.Errorf("recognizing page %d: %w", number, err)
	}
	page, err := parseHOCR(hocr, s.cfg.MinConfidence)
	if err != nil {
		return model.PageInput{}, fmt.Errorf("page %d: %w", number, err)
	}

	scale := 72.0 / float64(s.cfg.DPI)
	input := model.PageInput{
		Number: number,
		Width:  page.Width * scale,
		Height: page.Height * scale,
	}
	for _, w := range page.Words {
		size := (w.Y1 - w.Y0) * scale
		x := w.X0 * scale
		// Flip: hOCR y grows downward from the top edge; the pipeline
		// wants the baseline-ish bottom edge from the page bottom.
		y := (page.Height - w.Y1) * scale
		input.Items = append(input.Items, model.RawTextItem{
			Text:      w.Text,
			Transform: model.Matrix{size, 0, 0, size, x, y},
			Width:     (w.X1 - w.X0) * scale,
			Height:    size,
		})
	}
	return input, nil
}
