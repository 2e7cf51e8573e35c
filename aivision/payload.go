package aivision

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// payload mirrors the response schema. Numbers arrive as float64 and
// are rounded where the model expects integers.
type payload struct {
	WallTypes []struct {
		Type               string  `json:"type"`
		StudSize           string  `json:"studSize"`
		Spacing            float64 `json:"spacing"`
		Height             float64 `json:"height"`
		SheathingType      string  `json:"sheathingType"`
		SheathingThickness string  `json:"sheathingThickness"`
		Insulation         string  `json:"insulation"`
		Exterior           bool    `json:"exterior"`
		Notes              string  `json:"notes"`
	} `json:"wallTypes"`
	WallSegments []struct {
		WallType string  `json:"wallType"`
		Length   float64 `json:"length"`
		Exterior bool    `json:"exterior"`
	} `json:"wallSegments"`
	Openings []struct {
		Mark        string  `json:"mark"`
		Category    string  `json:"category"`
		Width       float64 `json:"width"`
		Height      float64 `json:"height"`
		Quantity    float64 `json:"quantity"`
		HeaderSize  string  `json:"headerSize"`
		HeaderCount float64 `json:"headerCount"`
	} `json:"openings"`
	Floors []struct {
		Level        string  `json:"level"`
		JoistSize    string  `json:"joistSize"`
		JoistSpacing float64 `json:"joistSpacing"`
		Subfloor     string  `json:"subfloor"`
		Notes        string  `json:"notes"`
	} `json:"floors"`
	Roofs []struct {
		RafterSize    string  `json:"rafterSize"`
		RafterSpacing float64 `json:"rafterSpacing"`
		Pitch         string  `json:"pitch"`
		Sheathing     string  `json:"sheathing"`
		Notes         string  `json:"notes"`
	} `json:"roofs"`
	StructuralMembers []struct {
		Kind string `json:"kind"`
		Size string `json:"size"`
		Note string `json:"note"`
	} `json:"structuralMembers"`
	SteelMembers []struct {
		Shape string `json:"shape"`
		Note  string `json:"note"`
	} `json:"steelMembers"`
}

// toPartial maps a validated payload into the pipeline's partial-result
// shape. Rows missing their key field are dropped with a review warning
// rather than failing the page.
func (p payload) toPartial(page int) model.PartialResult {
	var out model.PartialResult

	for _, w := range p.WallTypes {
		if w.Type == "" && w.StudSize == "" {
			out.Warnings = append(out.Warnings, model.Warnf(
				"vision-row-dropped", page, model.SeverityReview,
				"wall type row without type or stud size discarded"))
			continue
		}
		out.WallTypes = append(out.WallTypes, model.WallTypeSpec{
			Type:               w.Type,
			StudSize:           w.StudSize,
			Spacing:            int(w.Spacing),
			Height:             w.Height,
			SheathingType:      w.SheathingType,
			SheathingThickness: w.SheathingThickness,
			Insulation:         w.Insulation,
			Exterior:           w.Exterior,
			Notes:              w.Notes,
		})
	}

	for _, s := range p.WallSegments {
		if s.Length <= 0 {
			continue
		}
		out.WallSegments = append(out.WallSegments, model.WallSegment{
			WallType: s.WallType,
			Length:   s.Length,
			Exterior: s.Exterior,
		})
	}

	for _, o := range p.Openings {
		if o.Mark == "" {
			continue
		}
		qty := int(o.Quantity)
		if qty < 1 {
			qty = 1
		}
		out.Openings = append(out.Openings, model.Opening{
			Mark:        o.Mark,
			Category:    openingCategory(o.Category),
			Width:       o.Width,
			Height:      o.Height,
			Quantity:    qty,
			HeaderSize:  o.HeaderSize,
			HeaderCount: int(o.HeaderCount),
		})
	}

	for _, f := range p.Floors {
		out.FloorSpecs = append(out.FloorSpecs, model.FloorSpec{
			Level:        f.Level,
			JoistSize:    f.JoistSize,
			JoistSpacing: int(f.JoistSpacing),
			Subfloor:     f.Subfloor,
			Notes:        f.Notes,
		})
	}

	for _, r := range p.Roofs {
		out.RoofSpecs = append(out.RoofSpecs, model.RoofSpec{
			RafterSize:    r.RafterSize,
			RafterSpacing: int(r.RafterSpacing),
			Pitch:         r.Pitch,
			Sheathing:     r.Sheathing,
			Notes:         r.Notes,
		})
	}

	for _, m := range p.StructuralMembers {
		if m.Kind == "" && m.Size == "" {
			continue
		}
		out.StructuralMembers = append(out.StructuralMembers, model.StructuralMember{
			Kind: m.Kind,
			Size: m.Size,
			Note: m.Note,
		})
	}

	for _, s := range p.SteelMembers {
		if s.Shape == "" {
			continue
		}
		out.SteelMembers = append(out.SteelMembers, model.SteelMember{
			Shape: s.Shape,
			Note:  s.Note,
		})
	}

	return out
}

func openingCategory(s string) model.OpeningCategory {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "door":
		return model.CategoryDoor
	case "window":
		return model.CategoryWindow
	}
	return ""
}

// extractJSON recovers a JSON document from model output that may be
// wrapped in markdown fences or prose. Candidates are tried in order:
// the raw text, the fence-stripped text, then the outermost brace span.
func extractJSON(content string) (json.RawMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty model response")
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" && stripped != content {
		candidates = append(candidates, stripped)
	}
	for _, base := range candidates[:len(candidates):len(candidates)] {
		if span := braceSpan(base); span != "" && span != base {
			candidates = append(candidates, span)
		}
	}

	for _, candidate := range candidates {
		var probe any
		if err := json.Unmarshal([]byte(candidate), &probe); err == nil {
			return json.RawMessage(candidate), nil
		}
	}
	return nil, fmt.Errorf("no parseable JSON in model response")
}

func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// braceSpan returns the outermost {...} span, the usual shape of a
// prose-wrapped object answer.
func braceSpan(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}
