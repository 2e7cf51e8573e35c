package takeoff

import (
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/classify"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/layout"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/tables"
)

// scanOptions holds the Scanner's configuration.
type scanOptions struct {
	layoutConfig layout.Config
	tableConfig  tables.Config
	detector     string
	rules        []classify.Rule

	vision      Vision
	imager      PageImager
	visionTypes map[model.PageType]bool

	progress ProgressFunc
}

// defaultVisionTypes are the page types worth a vision pass: the sheets
// that carry geometry or tabular data the text layer tends to mangle.
func defaultVisionTypes() map[model.PageType]bool {
	return map[model.PageType]bool{
		model.PageFloorPlan:       true,
		model.PageWallSchedule:    true,
		model.PageOpeningSchedule: true,
		model.PageStructuralPlan:  true,
		model.PageRoofPlan:        true,
	}
}

// defaultOptions returns the default scan options.
func defaultOptions() scanOptions {
	return scanOptions{
		layoutConfig: layout.DefaultConfig(),
		tableConfig:  tables.DefaultConfig(),
		detector:     "aligned",
		rules:        nil, // nil means classify.DefaultRules
		visionTypes:  defaultVisionTypes(),
	}
}

// clone creates a deep copy of scanOptions.
func (o scanOptions) clone() scanOptions {
	cloned := o

	if o.rules != nil {
		cloned.rules = make([]classify.Rule, len(o.rules))
		copy(cloned.rules, o.rules)
	}
	cloned.visionTypes = make(map[model.PageType]bool, len(o.visionTypes))
	for t, v := range o.visionTypes {
		cloned.visionTypes[t] = v
	}

	return cloned
}
