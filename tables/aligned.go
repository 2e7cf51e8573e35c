package tables

import (
	"math"
	"sort"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// AlignedColumnDetector detects tables from the column alignment of
// reconstructed lines. It needs no gridlines or whitespace geometry, only
// the item X positions the line reconstructor already carries.
type AlignedColumnDetector struct {
	config Config
}

// NewAlignedColumnDetector creates a detector with default configuration
func NewAlignedColumnDetector() *AlignedColumnDetector {
	return &AlignedColumnDetector{
		config: DefaultConfig(),
	}
}

// Name returns the detector name
func (d *AlignedColumnDetector) Name() string {
	return "aligned"
}

// Configure sets detector parameters
func (d *AlignedColumnDetector) Configure(config Config) error {
	if config.BucketTolerance <= 0 {
		config.BucketTolerance = 6.0
	}
	if config.MinColumns < 2 {
		config.MinColumns = 2
	}
	if config.MinRunLines < 2 {
		config.MinRunLines = 3
	}
	if config.ColumnSlack < 0 {
		config.ColumnSlack = 1
	}
	d.config = config
	return nil
}

// run tracks a candidate table while consecutive lines keep aligning.
type run struct {
	start     int
	end       int
	reference []float64 // widest bucket set observed so far
}

// Detect finds aligned-column tables in the page's lines.
func (d *AlignedColumnDetector) Detect(lines []model.Line) ([]*model.Table, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	var tables []*model.Table
	var active *run

	finalize := func() {
		if active == nil {
			return
		}
		if active.end-active.start+1 >= d.config.MinRunLines {
			tables = append(tables, d.buildTable(lines, active))
		}
		active = nil
	}

	for i, line := range lines {
		buckets := d.columnBuckets(line)

		// Step 1: Single-column lines break any active run
		if len(buckets) < d.config.MinColumns {
			finalize()
			continue
		}

		// Step 2: Start a run on the first multi-column line
		if active == nil {
			active = &run{start: i, end: i, reference: buckets}
			continue
		}

		// Step 3: Extend while the column count stays within the
		// slack of the reference set; the reference grows to the
		// widest set observed
		diff := len(buckets) - len(active.reference)
		if diff < 0 {
			diff = -diff
		}
		if diff <= d.config.ColumnSlack {
			active.end = i
			if len(buckets) > len(active.reference) {
				active.reference = buckets
			}
			continue
		}

		// Step 4: Alignment changed too much; close this run and
		// start a fresh one at the current line
		finalize()
		active = &run{start: i, end: i, reference: buckets}
	}
	finalize()

	return tables, nil
}

// columnBuckets rounds each item's X to the nearest bucket multiple and
// returns the deduplicated, ascending bucket set.
func (d *AlignedColumnDetector) columnBuckets(line model.Line) []float64 {
	tol := d.config.BucketTolerance
	seen := make(map[float64]bool, len(line.Items))
	buckets := make([]float64, 0, len(line.Items))

	for _, item := range line.Items {
		b := math.Round(item.X/tol) * tol
		if !seen[b] {
			seen[b] = true
			buckets = append(buckets, b)
		}
	}

	sort.Float64s(buckets)
	return buckets
}

// buildTable converts a finalized run into a Table: boundaries pair each
// reference bucket with the next (the last extends to +Inf), cells take
// every item whose bucketed X lands inside [XMin, XMax), and the first
// row becomes the header.
func (d *AlignedColumnDetector) buildTable(lines []model.Line, r *run) *model.Table {
	bounds := make([]model.ColumnBound, len(r.reference))
	for i, b := range r.reference {
		xMax := math.Inf(1)
		if i+1 < len(r.reference) {
			xMax = r.reference[i+1]
		}
		bounds[i] = model.ColumnBound{XMin: b, XMax: xMax}
	}

	tol := d.config.BucketTolerance
	cells := make([][]string, 0, r.end-r.start+1)
	box := lines[r.start].Bounds

	for li := r.start; li <= r.end; li++ {
		line := lines[li]
		box = box.Union(line.Bounds)

		row := make([]string, len(bounds))
		for _, item := range line.Items {
			// Bucket the item X the same way the columns were
			// derived so boundary jitter cannot drop items.
			x := math.Round(item.X/tol) * tol
			for ci, bound := range bounds {
				if bound.Contains(x) {
					if row[ci] != "" {
						row[ci] += " "
					}
					row[ci] += item.Text
					break
				}
			}
		}
		cells = append(cells, row)
	}

	table := &model.Table{
		StartLine:    r.start,
		EndLine:      r.end,
		ColumnBounds: bounds,
		Cells:        cells,
		Bounds:       box,
	}
	if len(cells) > 0 {
		table.HeaderRow = cells[0]
	}
	return table
}
