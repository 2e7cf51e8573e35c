package classify

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// Rule binds one pattern to a page type and a weight. Patterns compile
// case-insensitively. A per-occurrence rule contributes its weight for
// every match in the page text; otherwise it contributes at most once.
type Rule struct {
	Type          model.PageType
	Pattern       *regexp.Regexp
	Weight        float64
	PerOccurrence bool
}

// ruleSpec is the YAML shape of one rule.
type ruleSpec struct {
	Type    model.PageType `yaml:"type"`
	Pattern string         `yaml:"pattern"`
	Weight  float64        `yaml:"weight"`
	Per     string         `yaml:"per"` // "once" (default) or "occurrence"
}

// ruleFile is the YAML shape of a rule table.
type ruleFile struct {
	Rules []ruleSpec `yaml:"rules"`
}

// LoadRules reads a rule table from YAML. Patterns are compiled with the
// case-insensitive flag; a pattern that fails to compile fails the whole
// load, since a partial rule table would silently skew every verdict.
func LoadRules(r io.Reader) ([]Rule, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("rule file contains no rules")
	}

	rules := make([]Rule, 0, len(file.Rules))
	for i, spec := range file.Rules {
		re, err := regexp.Compile("(?i)" + spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, spec.Type, err)
		}
		if spec.Weight == 0 {
			return nil, fmt.Errorf("rule %d (%s): zero weight", i, spec.Type)
		}
		rules = append(rules, Rule{
			Type:          spec.Type,
			Pattern:       re,
			Weight:        spec.Weight,
			PerOccurrence: spec.Per == "occurrence",
		})
	}
	return rules, nil
}

// LoadRulesFile reads a rule table from a YAML file on disk.
func LoadRulesFile(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rules file: %w", err)
	}
	defer f.Close()
	return LoadRules(f)
}

// mustRule compiles one built-in rule.
func mustRule(t model.PageType, pattern string, weight float64) Rule {
	return Rule{Type: t, Pattern: regexp.MustCompile("(?i)" + pattern), Weight: weight}
}

// mustEvery compiles one built-in per-occurrence rule.
func mustEvery(t model.PageType, pattern string, weight float64) Rule {
	r := mustRule(t, pattern, weight)
	r.PerOccurrence = true
	return r
}

// DefaultRules returns the built-in rule table. Exact sheet-title phrases
// carry the heaviest weights; supporting vocabulary adds smaller boosts so
// a page dominated by one sheet's language wins even when its title block
// was mangled by the text layer.
func DefaultRules() []Rule {
	return []Rule{
		// Title sheet
		mustRule(model.PageTitleSheet, `title\s+sheet`, 40),
		mustRule(model.PageTitleSheet, `cover\s+sheet`, 40),
		mustRule(model.PageTitleSheet, `sheet\s+index`, 30),
		mustRule(model.PageTitleSheet, `drawing\s+index`, 30),
		mustRule(model.PageTitleSheet, `vicinity\s+map`, 20),
		mustRule(model.PageTitleSheet, `project\s+(?:information|data|directory)`, 15),
		mustRule(model.PageTitleSheet, `code\s+(?:summary|analysis)`, 10),

		// Site plan
		mustRule(model.PageSitePlan, `site\s+plan`, 40),
		mustRule(model.PageSitePlan, `plot\s+plan`, 35),
		mustRule(model.PageSitePlan, `property\s+line`, 20),
		mustRule(model.PageSitePlan, `setback`, 15),
		mustRule(model.PageSitePlan, `easement`, 15),
		mustRule(model.PageSitePlan, `\blot\s+\d`, 10),

		// Floor plan
		mustRule(model.PageFloorPlan, `floor\s+plan`, 40),
		mustRule(model.PageFloorPlan, `\b(?:first|second|third|main|upper|lower)\s+floor\b`, 15),
		mustRule(model.PageFloorPlan, `\bsq\.?\s*ft\.?\b`, 10),

		// Elevation
		mustRule(model.PageElevation, `(?:north|south|east|west|front|rear|left|right)\s+elevation`, 40),
		mustRule(model.PageElevation, `\belevations?\b`, 25),
		mustRule(model.PageElevation, `finish(?:ed)?\s+(?:floor|grade)`, 10),
		mustRule(model.PageElevation, `\bridge\s+height\b`, 10),

		// Section / detail
		mustRule(model.PageSectionDetail, `(?:building|wall|typical)\s+section`, 35),
		mustRule(model.PageSectionDetail, `\bsections?\b`, 20),
		mustRule(model.PageSectionDetail, `\bdetails?\b`, 20),
		mustRule(model.PageSectionDetail, `\btyp(?:ical)?\.?\b`, 5),

		// Wall schedule
		mustRule(model.PageWallSchedule, `wall\s+schedule`, 50),
		mustRule(model.PageWallSchedule, `wall\s+types?\b`, 30),
		mustRule(model.PageWallSchedule, `wall\s+legend`, 25),
		mustRule(model.PageWallSchedule, `partition\s+schedule`, 40),

		// Door/window schedule
		mustRule(model.PageOpeningSchedule, `door\s+schedule`, 50),
		mustRule(model.PageOpeningSchedule, `window\s+schedule`, 50),
		mustRule(model.PageOpeningSchedule, `(?:door|window)\s+and\s+(?:door|window)\s+schedule`, 20),
		mustRule(model.PageOpeningSchedule, `rough\s+opening`, 15),

		// Structural plan
		mustRule(model.PageStructuralPlan, `(?:floor|ceiling)\s+framing\s+plan`, 45),
		mustRule(model.PageStructuralPlan, `framing\s+plan`, 35),
		mustRule(model.PageStructuralPlan, `foundation\s+plan`, 30),
		mustRule(model.PageStructuralPlan, `shear\s*wall`, 20),
		mustRule(model.PageStructuralPlan, `hold-?downs?\b`, 10),
		mustEvery(model.PageStructuralPlan, `\b(?:W\d{1,2}x\d{1,3}|HSS\d+x\d+)\b`, 3),

		// Roof plan
		mustRule(model.PageRoofPlan, `roof\s+(?:framing\s+)?plan`, 40),
		mustRule(model.PageRoofPlan, `truss\s+(?:layout|plan)`, 30),
		mustRule(model.PageRoofPlan, `\bridge\b`, 10),
		mustRule(model.PageRoofPlan, `\b(?:hip|valley)\b`, 8),
		mustRule(model.PageRoofPlan, `\b\d{1,2}\s*[/:]\s*12\b`, 10),

		// General notes
		mustRule(model.PageGeneralNotes, `general\s+notes`, 50),
		mustRule(model.PageGeneralNotes, `(?:framing|structural|foundation)\s+notes`, 40),
		mustRule(model.PageGeneralNotes, `design\s+criteria`, 20),
		mustRule(model.PageGeneralNotes, `nailing\s+schedule`, 15),
		mustEvery(model.PageGeneralNotes, `\bshall\b`, 2),
	}
}
