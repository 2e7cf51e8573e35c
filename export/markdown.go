package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// Markdown renders the result as a human-readable takeoff report.
func Markdown(r *model.ExtractionResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Framing Takeoff: %s\n\n", orDash(r.Source))
	fmt.Fprintf(&sb, "Scan `%s`, %d pages", r.ScanID, r.PageCount)
	if !r.Complete {
		sb.WriteString(" (incomplete)")
	}
	sb.WriteString("\n\n")

	if len(r.Pages) > 0 {
		sb.WriteString("## Pages\n\n")
		sb.WriteString("| Page | Type | Confidence |\n|---|---|---|\n")
		for _, p := range r.Pages {
			fmt.Fprintf(&sb, "| %d | %s | %.2f |\n", p.Page, p.Type, p.Confidence)
		}
		sb.WriteString("\n")
	}

	if len(r.WallTypes) > 0 {
		sb.WriteString("## Wall Types\n\n")
		sb.WriteString("| Type | Studs | Spacing | Height | Sheathing | Insulation | Exterior |\n|---|---|---|---|---|---|---|\n")
		for _, w := range r.WallTypes {
			sheathing := strings.TrimSpace(w.SheathingThickness + " " + w.SheathingType)
			fmt.Fprintf(&sb, "| %s | %s | %d\" o.c. | %s | %s | %s | %v |\n",
				orDash(w.Type), orDash(w.StudSize), w.Spacing,
				feet(w.Height), orDash(sheathing), orDash(w.Insulation), w.Exterior)
		}
		sb.WriteString("\n")
	}

	if len(r.WallSegments) > 0 {
		var total float64
		for _, s := range r.WallSegments {
			total += s.Length
		}
		fmt.Fprintf(&sb, "## Wall Segments\n\n%d segments, %.1f ft total\n\n", len(r.WallSegments), total)
		sb.WriteString("| Wall Type | Length | Exterior |\n|---|---|---|\n")
		for _, s := range r.WallSegments {
			fmt.Fprintf(&sb, "| %s | %s | %v |\n", orDash(s.WallType), feet(s.Length), s.Exterior)
		}
		sb.WriteString("\n")
	}

	if len(r.Openings) > 0 {
		sb.WriteString("## Openings\n\n")
		sb.WriteString("| Mark | Category | Size | Qty | Header |\n|---|---|---|---|---|\n")
		for _, o := range r.Openings {
			size := strings.TrimSpace(feet(o.Width) + " x " + feet(o.Height))
			header := o.HeaderSize
			if header != "" && o.HeaderCount > 0 {
				header = fmt.Sprintf("(%d) %s", o.HeaderCount, header)
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %d | %s |\n",
				orDash(o.Mark), orDash(string(o.Category)), size, o.Quantity, orDash(header))
		}
		sb.WriteString("\n")
	}

	if len(r.FloorSpecs) > 0 || len(r.RoofSpecs) > 0 {
		sb.WriteString("## Floor & Roof Systems\n\n")
		for _, f := range r.FloorSpecs {
			fmt.Fprintf(&sb, "- Floor%s: %s @ %d\" o.c.", level(f.Level), orDash(f.JoistSize), f.JoistSpacing)
			if f.Subfloor != "" {
				fmt.Fprintf(&sb, ", %s subfloor", f.Subfloor)
			}
			sb.WriteString("\n")
		}
		for _, ro := range r.RoofSpecs {
			fmt.Fprintf(&sb, "- Roof: %s @ %d\" o.c.", orDash(ro.RafterSize), ro.RafterSpacing)
			if ro.Pitch != "" {
				fmt.Fprintf(&sb, ", %s pitch", ro.Pitch)
			}
			if ro.Sheathing != "" {
				fmt.Fprintf(&sb, ", %s sheathing", ro.Sheathing)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(r.StructuralMembers) > 0 || len(r.SteelMembers) > 0 {
		sb.WriteString("## Structural Members\n\n")
		for _, m := range r.StructuralMembers {
			fmt.Fprintf(&sb, "- %s %s", orDash(m.Kind), m.Size)
			if m.Note != "" {
				fmt.Fprintf(&sb, " (%s)", m.Note)
			}
			sb.WriteString("\n")
		}
		for _, s := range r.SteelMembers {
			fmt.Fprintf(&sb, "- steel %s", s.Shape)
			if s.Note != "" {
				fmt.Fprintf(&sb, " (%s)", s.Note)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(r.Hardware) > 0 {
		sb.WriteString("## Hardware\n\n")
		for _, h := range r.Hardware {
			fmt.Fprintf(&sb, "- %s", h.Model)
			if h.Kind != "" {
				fmt.Fprintf(&sb, " (%s)", h.Kind)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(r.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w.String())
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// HTML renders the Markdown report to HTML, table extension enabled.
func HTML(r *model.ExtractionResult) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(r)), &buf); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func feet(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f ft", v)
}

func level(s string) string {
	if s == "" {
		return ""
	}
	return " (" + s + ")"
}
