// Package export renders a scan result into deliverable formats: an XLSX
// takeoff workbook for estimators and a Markdown/HTML report for review.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// Workbook renders the result as an XLSX file with one sheet per takeoff
// concern: Summary, Wall Types, Openings, Floors & Roofs, Dimensions.
func Workbook(result *model.ExtractionResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, result); err != nil {
		return nil, err
	}
	if err := writeWallSheet(f, result); err != nil {
		return nil, err
	}
	if err := writeOpeningSheet(f, result); err != nil {
		return nil, err
	}
	if err := writeFloorRoofSheet(f, result); err != nil {
		return nil, err
	}
	if err := writeDimensionSheet(f, result); err != nil {
		return nil, err
	}

	// excelize always starts with "Sheet1"; the summary replaces it.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}
	index, err := f.GetSheetIndex("Summary")
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeRows creates a sheet and fills a header row plus data rows.
func writeRows(f *excelize.File, sheet string, header []string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := setRow(f, sheet, 1, head); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, r *model.ExtractionResult) error {
	rows := [][]any{
		{"Scan ID", r.ScanID},
		{"Source", r.Source},
		{"Pages", r.PageCount},
		{"Complete", r.Complete},
		{"Started", r.StartedAt.Format("2006-01-02 15:04:05 MST")},
		{"Wall types", len(r.WallTypes)},
		{"Wall segments", len(r.WallSegments)},
		{"Openings", len(r.Openings)},
		{"Floor systems", len(r.FloorSpecs)},
		{"Roof systems", len(r.RoofSpecs)},
		{"Structural members", len(r.StructuralMembers) + len(r.SteelMembers)},
		{"Hardware callouts", len(r.Hardware)},
		{"Dimensions", len(r.Dimensions)},
		{"Warnings", len(r.Warnings)},
	}
	return writeRows(f, "Summary", []string{"Field", "Value"}, rows)
}

func writeWallSheet(f *excelize.File, r *model.ExtractionResult) error {
	header := []string{"Type", "Stud Size", "Spacing (o.c.)", "Height (ft)",
		"Sheathing", "Thickness", "Insulation", "Exterior", "Notes"}
	rows := make([][]any, 0, len(r.WallTypes)+len(r.WallSegments))
	for _, w := range r.WallTypes {
		rows = append(rows, []any{
			w.Type, w.StudSize, w.Spacing, w.Height,
			w.SheathingType, w.SheathingThickness, w.Insulation, w.Exterior, w.Notes,
		})
	}
	if err := writeRows(f, "Wall Types", header, rows); err != nil {
		return err
	}

	segHeader := []string{"Wall Type", "Length (ft)", "Exterior"}
	segRows := make([][]any, 0, len(r.WallSegments))
	for _, s := range r.WallSegments {
		segRows = append(segRows, []any{s.WallType, s.Length, s.Exterior})
	}
	return writeRows(f, "Wall Segments", segHeader, segRows)
}

func writeOpeningSheet(f *excelize.File, r *model.ExtractionResult) error {
	header := []string{"Mark", "Category", "Width (ft)", "Height (ft)", "Qty",
		"Header", "Header Ply", "Trimmers", "Kings", "Wall Type", "Notes"}
	rows := make([][]any, 0, len(r.Openings))
	for _, o := range r.Openings {
		rows = append(rows, []any{
			o.Mark, string(o.Category), o.Width, o.Height, o.Quantity,
			o.HeaderSize, o.HeaderCount, o.TrimmerStuds, o.KingStuds, o.WallType, o.Notes,
		})
	}
	return writeRows(f, "Openings", header, rows)
}

func writeFloorRoofSheet(f *excelize.File, r *model.ExtractionResult) error {
	header := []string{"System", "Level", "Member", "Spacing (o.c.)", "Deck/Pitch", "Notes"}
	rows := make([][]any, 0, len(r.FloorSpecs)+len(r.RoofSpecs)+len(r.StructuralMembers)+len(r.SteelMembers))
	for _, fl := range r.FloorSpecs {
		rows = append(rows, []any{"floor", fl.Level, fl.JoistSize, fl.JoistSpacing, fl.Subfloor, fl.Notes})
	}
	for _, ro := range r.RoofSpecs {
		deck := ro.Sheathing
		if ro.Pitch != "" {
			deck = strings.TrimSpace(ro.Pitch + " " + deck)
		}
		rows = append(rows, []any{"roof", "", ro.RafterSize, ro.RafterSpacing, deck, ro.Notes})
	}
	for _, m := range r.StructuralMembers {
		rows = append(rows, []any{m.Kind, "", m.Size, "", "", m.Note})
	}
	for _, s := range r.SteelMembers {
		rows = append(rows, []any{"steel", "", s.Shape, "", "", s.Note})
	}
	return writeRows(f, "Floors & Roofs", header, rows)
}

func writeDimensionSheet(f *excelize.File, r *model.ExtractionResult) error {
	header := []string{"Raw", "Feet", "Inches", "Kind"}
	rows := make([][]any, 0, len(r.Dimensions))
	for _, d := range r.Dimensions {
		rows = append(rows, []any{d.Raw, d.Feet, d.Inches(), string(d.Kind)})
	}
	return writeRows(f, "Dimensions", header, rows)
}
