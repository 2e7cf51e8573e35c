package aivision

import (
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

const systemPrompt = `You are a construction-plan takeoff assistant. You read one plan sheet at a time and report framing quantities you can see in the drawing. Respond with a single JSON object matching the schema you were shown. Report only what is visibly supported by the sheet; leave arrays empty rather than guessing. All lengths are in feet, all spacings in inches on center.`

// promptFor returns the user prompt for one page type. Every prompt
// shares the same response schema; it differs in what the model is told
// to look for.
func promptFor(t model.PageType) string {
	intro := "This is a sheet from a residential construction plan set. "
	switch t {
	case model.PageFloorPlan:
		return intro + `It was classified as a floor plan. Measure the wall segments using the dimension strings and any wall-type callouts (circled or boxed tags like "A" or "W1"). Report each distinct wall run in wallSegments with its length in feet, its wall type tag if tagged, and whether it is an exterior wall. Also report any door/window marks with sizes into openings.` + schemaReminder
	case model.PageWallSchedule:
		return intro + `It was classified as a wall schedule. Read the schedule table and report one wallTypes entry per row: type tag, stud size (like "2x6"), spacing in inches on center, height in feet, sheathing, insulation, and whether the row describes an exterior wall.` + schemaReminder
	case model.PageOpeningSchedule:
		return intro + `It was classified as a door/window schedule. Report one openings entry per row: mark, category ("door" or "window"), width and height in feet, quantity, and header callout if the schedule gives one.` + schemaReminder
	case model.PageStructuralPlan:
		return intro + `It was classified as a structural framing plan. Report beam/post/girder callouts into structuralMembers, steel shapes (W, HSS, C, L designations) into steelMembers, and joist or rafter size/spacing callouts into floors or roofs as appropriate.` + schemaReminder
	case model.PageRoofPlan:
		return intro + `It was classified as a roof framing plan. Report rafter size and spacing, roof pitch (as "rise/12"), and sheathing into roofs; report any ridge/hip beam callouts into structuralMembers.` + schemaReminder
	default:
		return intro + `Report any framing takeoff data you can see: wall segments with lengths, schedule rows, member callouts.` + schemaReminder
	}
}

const schemaReminder = `

Answer with one JSON object shaped like:
{
  "wallTypes":   [{"type": "A", "studSize": "2x6", "spacing": 16, "height": 9.0, "sheathingType": "OSB", "sheathingThickness": "1/2\"", "insulation": "R-21", "exterior": true, "notes": ""}],
  "wallSegments": [{"wallType": "A", "length": 24.5, "exterior": true}],
  "openings":    [{"mark": "W1", "category": "window", "width": 3.0, "height": 4.0, "quantity": 2, "headerSize": "2x10", "headerCount": 2}],
  "floors":      [{"level": "second floor", "joistSize": "2x10", "joistSpacing": 16, "subfloor": "3/4\" T&G"}],
  "roofs":       [{"rafterSize": "2x8", "rafterSpacing": 24, "pitch": "6/12", "sheathing": "1/2\" OSB"}],
  "structuralMembers": [{"kind": "beam", "size": "6x12", "note": "ridge"}],
  "steelMembers": [{"shape": "W12x26", "note": "garage header"}]
}
Omit nothing you can see; use empty arrays for sections with no data.`

// responseSchema validates the shape of every vision answer before it is
// mapped. Extra properties are tolerated, wrong types are not.
var responseSchema = jsonschema.MustCompileString("vision-response.json", `{
  "type": "object",
  "properties": {
    "wallTypes": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "type": {"type": "string"},
          "studSize": {"type": "string"},
          "spacing": {"type": "number"},
          "height": {"type": "number"},
          "sheathingType": {"type": "string"},
          "sheathingThickness": {"type": "string"},
          "insulation": {"type": "string"},
          "exterior": {"type": "boolean"},
          "notes": {"type": "string"}
        }
      }
    },
    "wallSegments": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["length"],
        "properties": {
          "wallType": {"type": "string"},
          "length": {"type": "number", "minimum": 0},
          "exterior": {"type": "boolean"}
        }
      }
    },
    "openings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["mark"],
        "properties": {
          "mark": {"type": "string"},
          "category": {"type": "string", "enum": ["door", "window", ""]},
          "width": {"type": "number"},
          "height": {"type": "number"},
          "quantity": {"type": "number"},
          "headerSize": {"type": "string"},
          "headerCount": {"type": "number"}
        }
      }
    },
    "floors": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "level": {"type": "string"},
          "joistSize": {"type": "string"},
          "joistSpacing": {"type": "number"},
          "subfloor": {"type": "string"},
          "notes": {"type": "string"}
        }
      }
    },
    "roofs": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "rafterSize": {"type": "string"},
          "rafterSpacing": {"type": "number"},
          "pitch": {"type": "string"},
          "sheathing": {"type": "string"},
          "notes": {"type": "string"}
        }
      }
    },
    "structuralMembers": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "kind": {"type": "string"},
          "size": {"type": "string"},
          "note": {"type": "string"}
        }
      }
    },
    "steelMembers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["shape"],
        "properties": {
          "shape": {"type": "string"},
          "note": {"type": "string"}
        }
      }
    }
  }
}`)
