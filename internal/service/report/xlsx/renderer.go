package xlsx

import (
	"bytes"
	"fmt"

	"github.com/siteplan/duration-planner/internal/estimation/calculators"
	"github.com/siteplan/duration-planner/internal/service/report/types"
	"github.com/xuri/excelize/v2"
)

const (
	SheetInputs    = "Inputs"
	SheetBreakdown = "Breakdown"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatXLSX
}

// Render builds a workbook with the inputs on one sheet and the phase
// breakdown on another. The returned string holds the raw xlsx bytes.
func (r *Renderer) Render(data *types.ReportData) (string, error) {
	if data.Estimate == nil {
		return "", fmt.Errorf("no estimate to render")
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	// the default sheet of a new workbook becomes the inputs sheet
	if err := f.SetSheetName(f.GetSheetName(0), SheetInputs); err != nil {
		return "", fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := r.writeInputs(f, data); err != nil {
		return "", err
	}

	breakdownIndex, err := f.NewSheet(SheetBreakdown)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet %s: %w", SheetBreakdown, err)
	}
	if err := r.writeBreakdown(f, data); err != nil {
		return "", err
	}
	f.SetActiveSheet(breakdownIndex)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.String(), nil
}

func (r *Renderer) writeInputs(f *excelize.File, data *types.ReportData) error {
	rows := [][]any{{"Parameter", "Value"}}

	input := data.Estimate.Input
	fields := calculators.Fields(&input)
	for _, key := range calculators.ParamKeys {
		rows = append(rows, []any{key, *fields[key]})
	}

	return writeRows(f, SheetInputs, rows)
}

func (r *Renderer) writeBreakdown(f *excelize.File, data *types.ReportData) error {
	estimate := data.Estimate
	rows := [][]any{
		{"Generated", data.Timestamps.Generated + " " + data.Timestamps.GeneratedTime},
		{"Gross floor area (m²)", estimate.Derived.GrossFloorArea},
		{"Workforce capacity (man-hours/day)", estimate.Derived.ManHoursPerDay},
		{},
	}

	if estimate.Undefined {
		rows = append(rows, []any{"Duration undefined", estimate.Message})
		return writeRows(f, SheetBreakdown, rows)
	}

	rows = append(rows, []any{"Phase", "Days", "Share (%)", "Basis"})
	for i, p := range estimate.Breakdown.Phases {
		var share any
		if i < len(data.Segments) {
			share = data.Segments[i].Share
		}
		rows = append(rows, []any{p.Phase.Label(), p.Days, share, p.Reason})
	}
	rows = append(rows,
		[]any{"Total", estimate.Breakdown.TotalDays},
		[]any{},
		[]any{"Total (weeks)", estimate.Total.Weeks},
		[]any{"Total (months)", estimate.Total.Months},
	)

	return writeRows(f, SheetBreakdown, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for j, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
