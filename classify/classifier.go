package classify

import (
	"strings"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// MinScore is the acceptance floor: a winning raw score below it yields
// PageUnknown.
const MinScore = 15.0

// notesTextLength is the text length beyond which a page with few
// dimensions and no tables reads as prose notes rather than a drawing.
const notesTextLength = 2000

// Signals carries everything the classifier looks at, all precomputed by
// earlier stages. Classification is a pure function of this struct.
type Signals struct {
	// Text is the page's reconstructed text, top to bottom.
	Text string

	// Tables are the detected tables for the page.
	Tables []*model.Table

	// DimensionCount is how many dimensions the dimension parser found.
	DimensionCount int

	// RoomCount is how many distinct room keywords the room parser found.
	RoomCount int
}

// Classifier scores pages against a rule table.
type Classifier struct {
	rules []Rule
}

// New creates a classifier with the built-in rule table.
func New() *Classifier {
	return &Classifier{rules: DefaultRules()}
}

// NewWithRules creates a classifier with a custom rule table, typically
// loaded via LoadRules.
func NewWithRules(rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify scores one page and returns the verdict. The winner is the
// highest-scoring type; confidence is the winner's share of all positive
// scores. A winner below MinScore reports PageUnknown with the confidence
// left intact so callers can still see how close the call was.
func (c *Classifier) Classify(page int, sig Signals) model.PageClassification {
	scores := make(map[model.PageType]float64, len(model.PageTypes()))

	// Step 1: declarative pattern rules
	for _, rule := range c.rules {
		if rule.PerOccurrence {
			n := len(rule.Pattern.FindAllStringIndex(sig.Text, -1))
			if n > 0 {
				scores[rule.Type] += rule.Weight * float64(n)
			}
		} else if rule.Pattern.MatchString(sig.Text) {
			scores[rule.Type] += rule.Weight
		}
	}

	// Step 2: structural signals not expressible as text patterns
	c.addStructuralScores(scores, sig)

	// Step 3: pick the winner
	best := model.PageUnknown
	bestScore := 0.0
	var sum float64
	for _, t := range model.PageTypes() {
		s := scores[t]
		if s > 0 {
			sum += s
		}
		if s > bestScore {
			best, bestScore = t, s
		}
	}

	confidence := 0.0
	if sum > 0 {
		confidence = bestScore / sum
	}
	if bestScore < MinScore {
		best = model.PageUnknown
	}

	return model.PageClassification{
		Page:       page,
		Type:       best,
		Confidence: confidence,
		Scores:     scores,
	}
}

// addStructuralScores applies the boosts that depend on tables and parser
// counts rather than text patterns.
func (c *Classifier) addStructuralScores(scores map[model.PageType]float64, sig Signals) {
	// Rooms and dimensions together are the signature of a floor plan.
	if sig.RoomCount > 2 {
		scores[model.PageFloorPlan] += 25
	}
	if sig.RoomCount > 5 {
		scores[model.PageFloorPlan] += 10
	}
	if sig.DimensionCount > 10 {
		scores[model.PageFloorPlan] += 10
	}

	// A table whose header mentions both stud and type is almost
	// certainly a wall schedule; mark plus size is the opening analogue.
	for _, table := range sig.Tables {
		header := strings.ToLower(strings.Join(table.HeaderRow, " "))
		if strings.Contains(header, "stud") && strings.Contains(header, "type") {
			scores[model.PageWallSchedule] += 30
		}
		if strings.Contains(header, "mark") &&
			(strings.Contains(header, "width") || strings.Contains(header, "size") || strings.Contains(header, "r.o.")) {
			scores[model.PageOpeningSchedule] += 25
		}
	}

	// Long prose with few dimensions and no tabular structure reads as
	// notes even when no notes heading survived extraction.
	if len(sig.Text) > notesTextLength && sig.DimensionCount < 5 && len(sig.Tables) == 0 {
		scores[model.PageGeneralNotes] += 30
	}
}
