package takeoff

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/classify"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/layout"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/parse"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/schedule"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/tables"
)

// Scanner runs the extraction pipeline over a page source. Configuration
// methods return a new Scanner instance; the generation counter is shared
// across clones so a new Scan on any clone supersedes a running one.
type Scanner struct {
	opts scanOptions
	gen  *atomic.Int64
}

// New creates a Scanner with default configuration.
func New() *Scanner {
	return &Scanner{
		opts: defaultOptions(),
		gen:  new(atomic.Int64),
	}
}

// clone copies the scanner with new options, keeping the shared
// generation counter.
func (s *Scanner) clone(opts scanOptions) *Scanner {
	return &Scanner{opts: opts, gen: s.gen}
}

// WithLayoutConfig sets the line-reconstruction configuration.
func (s *Scanner) WithLayoutConfig(config layout.Config) *Scanner {
	opts := s.opts.clone()
	opts.layoutConfig = config
	return s.clone(opts)
}

// WithTableConfig sets the table-detection configuration.
func (s *Scanner) WithTableConfig(config tables.Config) *Scanner {
	opts := s.opts.clone()
	opts.tableConfig = config
	return s.clone(opts)
}

// WithDetector selects a registered table detector by name.
func (s *Scanner) WithDetector(name string) *Scanner {
	opts := s.opts.clone()
	opts.detector = name
	return s.clone(opts)
}

// WithRules replaces the classifier rule table, typically one loaded via
// classify.LoadRulesFile.
func (s *Scanner) WithRules(rules []classify.Rule) *Scanner {
	opts := s.opts.clone()
	opts.rules = rules
	return s.clone(opts)
}

// WithVision enables the AI augmentation pass using the given
// collaborator and page imager. Both are required; the pass is skipped
// when either is nil.
func (s *Scanner) WithVision(vision Vision, imager PageImager) *Scanner {
	opts := s.opts.clone()
	opts.vision = vision
	opts.imager = imager
	return s.clone(opts)
}

// WithVisionTypes replaces the set of page types the vision pass visits.
func (s *Scanner) WithVisionTypes(types ...model.PageType) *Scanner {
	opts := s.opts.clone()
	opts.visionTypes = make(map[model.PageType]bool, len(types))
	for _, t := range types {
		opts.visionTypes[t] = true
	}
	return s.clone(opts)
}

// WithProgress sets the per-page progress callback.
func (s *Scanner) WithProgress(fn ProgressFunc) *Scanner {
	opts := s.opts.clone()
	opts.progress = fn
	return s.clone(opts)
}

// Scan processes every page of the source in document order and returns
// the aggregate result. Pages are processed strictly sequentially; after
// each page the progress callback fires and the scan checks for
// cancellation and supersession.
//
// Fatal errors arise only at the input boundary (page count, page fetch).
// On any error the partial result built so far is returned alongside it
// with Complete left false. A scan superseded by a newer Scan on the same
// Scanner returns ErrSuperseded.
func (s *Scanner) Scan(ctx context.Context, src PageSource) (*model.ExtractionResult, error) {
	gen := s.gen.Add(1)

	count, err := src.PageCount(ctx)
	if err != nil {
		return model.NewExtractionResult(uuid.NewString(), src.Name(), 0),
			fmt.Errorf("counting pages: %w", err)
	}

	result := model.NewExtractionResult(uuid.NewString(), src.Name(), count)
	detector, err := s.detector()
	if err != nil {
		return result, err
	}
	classifier := s.classifier()
	builder := layout.NewBuilderWithConfig(s.opts.layoutConfig)

	for n := 1; n <= count; n++ {
		if err := s.checkAlive(ctx, gen); err != nil {
			return result, err
		}

		page, err := src.Page(ctx, n)
		if err != nil {
			return result, fmt.Errorf("fetching page %d: %w", n, err)
		}

		partial, cls := s.extractPage(builder, detector, classifier, page)
		result.ClassifyPage(cls)
		result.Merge(partial)

		if s.opts.progress != nil {
			s.opts.progress(Progress{Page: n, Total: count, Classification: cls})
		}
	}

	// The augmentation pass runs strictly after the synchronous loop and
	// is best-effort throughout: a failed page becomes a warning, never
	// an abort.
	if s.opts.vision != nil && s.opts.imager != nil {
		if err := s.augment(ctx, gen, src, result); err != nil {
			return result, err
		}
	}

	result.Complete = true
	result.FinishedAt = time.Now().UTC()
	return result, nil
}

// checkAlive returns the reason this scan must stop, if any: context
// cancellation or supersession by a newer scan on the same Scanner.
func (s *Scanner) checkAlive(ctx context.Context, gen int64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scan canceled: %w", err)
	}
	if s.gen.Load() != gen {
		return ErrSuperseded
	}
	return nil
}

// detector resolves the configured table detector. The default aligned
// detector gets a fresh instance per scan so concurrent scans cannot
// fight over one Configure'd registry entry.
func (s *Scanner) detector() (tables.Detector, error) {
	var d tables.Detector
	if s.opts.detector == "" || s.opts.detector == "aligned" {
		d = tables.NewAlignedColumnDetector()
	} else {
		d = tables.GetDetector(s.opts.detector)
		if d == nil {
			return nil, fmt.Errorf("unknown table detector %q", s.opts.detector)
		}
	}
	if err := d.Configure(s.opts.tableConfig); err != nil {
		return nil, fmt.Errorf("configuring detector: %w", err)
	}
	return d, nil
}

// classifier builds the page classifier from the configured rule table.
func (s *Scanner) classifier() *classify.Classifier {
	if s.opts.rules != nil {
		return classify.NewWithRules(s.opts.rules)
	}
	return classify.New()
}

// extractPage runs the full per-page pipeline: normalize, reconstruct
// lines, detect tables, run the generic parsers, classify, then run the
// specialized parser the classification selects. Classification never
// fails; an unknown page keeps its generic extractions and skips the
// specialized step.
func (s *Scanner) extractPage(builder *layout.Builder, detector tables.Detector,
	classifier *classify.Classifier, page model.PageInput) (model.PartialResult, model.PageClassification) {

	items := model.NormalizeItems(page.Items)
	lines := builder.Build(items)
	text := layout.PageText(lines)

	found, err := detector.Detect(lines)
	var partial model.PartialResult
	if err != nil {
		// Detection trouble costs the page its tables, nothing more.
		partial.Warnings = append(partial.Warnings, model.Warnf(
			"table-detection", page.Number, model.SeverityError,
			"table detection failed: %v", err))
		found = nil
	}

	partial.Dimensions = parse.Dimensions(text)
	partial.FramingRefs = parse.References(text)
	partial.Rooms = parse.Rooms(text)
	partial.Scales = parse.Scales(text)

	cls := classifier.Classify(page.Number, classify.Signals{
		Text:           text,
		Tables:         found,
		DimensionCount: len(partial.Dimensions),
		RoomCount:      len(partial.Rooms),
	})

	switch cls.Type {
	case model.PageWallSchedule:
		for _, table := range found {
			specs, warnings := schedule.ParseWall(table, page.Number)
			partial.WallTypes = append(partial.WallTypes, specs...)
			partial.Warnings = append(partial.Warnings, warnings...)
		}
	case model.PageOpeningSchedule:
		for _, table := range found {
			openings, warnings := schedule.ParseOpenings(table, page.Number)
			partial.Openings = append(partial.Openings, openings...)
			partial.Warnings = append(partial.Warnings, warnings...)
		}
	case model.PageGeneralNotes:
		partial.Absorb(parse.Notes(text, page.Number))
	}

	return partial, cls
}

// augment runs the vision collaborator over every classified page whose
// type is in the configured set. Per-page failures are recorded as
// warnings; only cancellation or supersession stops the pass.
func (s *Scanner) augment(ctx context.Context, gen int64, src PageSource, result *model.ExtractionResult) error {
	flagged := result.PageClassifications(s.visionTypeList()...)

	for _, cls := range flagged {
		if err := s.checkAlive(ctx, gen); err != nil {
			return err
		}

		img, err := s.opts.imager.Image(ctx, cls.Page)
		if err != nil {
			result.AddWarning(model.Warnf("vision-render", cls.Page, model.SeverityError,
				"rendering page for vision: %v", err))
			continue
		}

		partial, err := s.opts.vision.Propose(ctx, VisionRequest{
			Page:              cls.Page,
			PageType:          cls.Type,
			ImagePNG:          img,
			SupplementaryText: s.pageText(ctx, src, cls.Page),
		})
		if err != nil {
			result.AddWarning(model.Warnf("vision-propose", cls.Page, model.SeverityError,
				"vision augmentation failed: %v", err))
			continue
		}

		result.Merge(partial)
	}
	return nil
}

// pageText re-reconstructs one page's text for the vision prompt. A
// fetch failure here only degrades the prompt, so it returns empty.
func (s *Scanner) pageText(ctx context.Context, src PageSource, page int) string {
	input, err := src.Page(ctx, page)
	if err != nil {
		return ""
	}
	builder := layout.NewBuilderWithConfig(s.opts.layoutConfig)
	return layout.PageText(builder.Build(model.NormalizeItems(input.Items)))
}

// visionTypeList flattens the configured vision type set.
func (s *Scanner) visionTypeList() []model.PageType {
	out := make([]model.PageType, 0, len(s.opts.visionTypes))
	for t, ok := range s.opts.visionTypes {
		if ok {
			out = append(out, t)
		}
	}
	return out
}
