package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/siteplan/duration-planner/internal/estimation/calculators"
	"github.com/siteplan/duration-planner/internal/model"
	"github.com/siteplan/duration-planner/internal/service/report/types"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatCSV
}

func (r *Renderer) Render(data *types.ReportData) (string, error) {
	if data.Estimate == nil {
		return "", fmt.Errorf("no estimate to render")
	}

	var csvRows [][]string

	csvRows = append(csvRows, []string{"CONSTRUCTION DURATION ESTIMATE"})
	csvRows = append(csvRows, []string{fmt.Sprintf("Generated: %s at %s",
		data.Timestamps.Generated, data.Timestamps.GeneratedTime)})
	csvRows = append(csvRows, []string{""})

	csvRows = r.addInputs(csvRows, data.Estimate.Input)
	csvRows = r.addSummary(csvRows, data.Estimate)

	if data.Estimate.Undefined {
		csvRows = append(csvRows, []string{"NOTICE"})
		csvRows = append(csvRows, []string{data.Estimate.Message})
		return r.convertRowsToCSV(csvRows)
	}

	csvRows = r.addBreakdown(csvRows, data.Estimate.Breakdown, data.Segments)

	return r.convertRowsToCSV(csvRows)
}

func (r *Renderer) addInputs(csvRows [][]string, input model.ProjectInput) [][]string {
	csvRows = append(csvRows, []string{"INPUTS"})
	csvRows = append(csvRows, []string{"Parameter", "Value"})

	fields := calculators.Fields(&input)
	for _, key := range calculators.ParamKeys {
		csvRows = append(csvRows, []string{key, formatFloat(*fields[key])})
	}
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addSummary(csvRows [][]string, estimate *model.Estimate) [][]string {
	csvRows = append(csvRows, []string{"SUMMARY"})
	csvRows = append(csvRows, []string{"Metric", "Value", "Unit"})

	derived := estimate.Derived
	csvRows = append(csvRows, []string{"Gross floor area", fmt.Sprintf("%.2f", derived.GrossFloorArea), "m²"})
	csvRows = append(csvRows, []string{"Workforce capacity", fmt.Sprintf("%.2f", derived.ManHoursPerDay), "man-hours/day"})
	csvRows = append(csvRows, []string{"Finishing work", fmt.Sprintf("%.2f", derived.FinishesManHoursTotal), "man-hours"})
	csvRows = r.addDuration(csvRows, "Structure", &estimate.Structural)
	csvRows = r.addDuration(csvRows, "Finishes (remaining)", estimate.Finishes)
	csvRows = r.addDuration(csvRows, "Total", estimate.Total)
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addDuration(csvRows [][]string, name string, summary *model.DurationSummary) [][]string {
	if summary == nil {
		return append(csvRows, []string{name, "undefined", "days"})
	}
	return append(csvRows,
		[]string{name, fmt.Sprintf("%.2f", summary.Days), "days"},
		[]string{name, fmt.Sprintf("%.1f", summary.Weeks), "weeks"},
		[]string{name, fmt.Sprintf("%.1f", summary.Months), "months"},
	)
}

func (r *Renderer) addBreakdown(csvRows [][]string, breakdown model.Breakdown, segments []types.BarSegment) [][]string {
	csvRows = append(csvRows, []string{"PHASE BREAKDOWN"})
	csvRows = append(csvRows, []string{"Phase", "Days", "Share (%)", "Basis"})

	for i, p := range breakdown.Phases {
		share := ""
		if i < len(segments) {
			share = fmt.Sprintf("%.1f", segments[i].Share)
		}
		csvRows = append(csvRows, []string{p.Phase.Label(), fmt.Sprintf("%.2f", p.Days), share, p.Reason})
	}
	csvRows = append(csvRows, []string{"Total", fmt.Sprintf("%.2f", breakdown.TotalDays), "", ""})

	return csvRows
}

func (r *Renderer) convertRowsToCSV(csvRows [][]string) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, row := range csvRows {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return buf.String(), nil
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
