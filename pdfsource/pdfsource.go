// Package pdfsource adapts native-text PDF files into the pipeline's
// page-source contract. It reads each page's positioned text via
// ledongthuc/pdf and cross-checks the document page count with pdfcpu;
// a mismatch is reported as a warning, not an error, with the text
// layer's count winning.
//
// Pages with no extractable text are returned empty rather than failing;
// EmptyPages reports which ones a caller may want to route through OCR.
package pdfsource

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// Letter-size fallback when a page carries no resolvable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Source is a takeoff.PageSource backed by one PDF file on disk.
type Source struct {
	name   string
	file   *os.File
	reader *pdflib.Reader
	count  int

	mu       sync.Mutex
	empty    map[int]bool
	warnings []model.Warning
}

// Open opens a PDF file and prepares it for page extraction. The returned
// Source must be closed when no longer needed.
func Open(path string) (*Source, error) {
	f, r, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}

	s := &Source{
		name:   path,
		file:   f,
		reader: r,
		count:  r.NumPage(),
		empty:  make(map[int]bool),
	}
	s.crossCheckCount()
	return s, nil
}

// crossCheckCount compares the text layer's page count against pdfcpu's
// structural count. Disagreement usually means damaged page-tree nodes;
// the text layer's count wins because that is what Page can serve.
func (s *Source) crossCheckCount() {
	if _, err := s.file.Seek(0, 0); err != nil {
		return
	}
	structural, err := api.PageCount(s.file, nil)
	if err != nil {
		s.warnings = append(s.warnings, model.Warnf(
			"page-count-check", 0, model.SeverityInfo,
			"structural page count unavailable: %v", err))
		return
	}
	if structural != s.count {
		s.warnings = append(s.warnings, model.Warnf(
			"page-count-mismatch", 0, model.SeverityReview,
			"text layer reports %d pages, document structure reports %d", s.count, structural))
	}
}

// Name returns the source file path.
func (s *Source) Name() string { return s.name }

// PageCount returns the number of pages in the document.
func (s *Source) PageCount(_ context.Context) (int, error) {
	return s.count, nil
}

// Page extracts one page's positioned tokens. A page whose text layer is
// empty yields a PageInput with no items; the page number is recorded for
// EmptyPages.
func (s *Source) Page(ctx context.Context, number int) (model.PageInput, error) {
	if err := ctx.Err(); err != nil {
		return model.PageInput{}, err
	}
	if number < 1 || number > s.count {
		return model.PageInput{}, fmt.Errorf("page %d out of range 1..%d", number, s.count)
	}

	page := s.reader.Page(number)
	width, height := mediaBox(page)
	input := model.PageInput{
		Number: number,
		Width:  width,
		Height: height,
	}

	if page.V.IsNull() {
		s.markEmpty(number)
		return input, nil
	}

	content := page.Content()
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		input.Items = append(input.Items, model.RawTextItem{
			Text:      t.S,
			Transform: model.Matrix{t.FontSize, 0, 0, t.FontSize, t.X, t.Y},
			Width:     t.W,
			FontName:  t.Font,
		})
	}
	if len(input.Items) == 0 {
		s.markEmpty(number)
	}
	return input, nil
}

func (s *Source) markEmpty(number int) {
	s.mu.Lock()
	s.empty[number] = true
	s.mu.Unlock()
}

// EmptyPages lists pages seen so far whose text layer held no tokens,
// in ascending order. These are the candidates for an OCR pass.
func (s *Source) EmptyPages() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	pages := make([]int, 0, len(s.empty))
	for n := range s.empty {
		pages = append(pages, n)
	}
	sort.Ints(pages)
	return pages
}

// Warnings returns document-level findings from Open, for the caller to
// fold into the scan result.
func (s *Source) Warnings() []model.Warning {
	return s.warnings
}

// Close releases the underlying file.
func (s *Source) Close() error {
	return s.file.Close()
}

// mediaBox resolves a page's MediaBox, walking up the page tree for
// inherited values. Falls back to US Letter.
func mediaBox(page pdflib.Page) (width, height float64) {
	node := page.V
	for !node.IsNull() {
		box := node.Key("MediaBox")
		if !box.IsNull() && box.Len() == 4 {
			w := box.Index(2).Float64() - box.Index(0).Float64()
			h := box.Index(3).Float64() - box.Index(1).Float64()
			if w > 0 && h > 0 {
				return w, h
			}
		}
		node = node.Key("Parent")
	}
	return defaultPageWidth, defaultPageHeight
}
