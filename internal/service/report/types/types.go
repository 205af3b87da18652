package types

import (
	"math"

	"github.com/siteplan/duration-planner/internal/model"
)

type ReportRenderer interface {
	Render(data *ReportData) (string, error)
	SupportedFormat() ReportFormat
}

type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatHTML ReportFormat = "html"
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatText ReportFormat = "text"
)

// ContentType is the media type used when the report is downloaded.
func (f ReportFormat) ContentType() string {
	switch f {
	case ReportFormatCSV:
		return "text/csv; charset=utf-8"
	case ReportFormatHTML:
		return "text/html; charset=utf-8"
	case ReportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension is the file name suffix of the format, without the dot.
func (f ReportFormat) Extension() string {
	if f == ReportFormatText {
		return "txt"
	}
	return string(f)
}

type ReportOptions struct {
	Format ReportFormat
	// Print renders the html page without the input form.
	Print bool
	// Query is the encoded input of the page, carried by the print link.
	Query string
}

type ReportData struct {
	Estimate   *model.Estimate
	Segments   []BarSegment
	Options    ReportOptions
	Timestamps ReportTimestamps
}

type ReportTimestamps struct {
	Generated     string
	GeneratedTime string
}

// MinSegmentPercent is the narrowest bar width so that zero-length phases
// stay visible.
const MinSegmentPercent = 1.0

// BarSegment is one phase of the breakdown bar. Share is the phase's real
// share of the total days; Percent is the drawn width.
type BarSegment struct {
	Phase   model.Phase
	Label   string
	Days    float64
	Share   float64
	Percent float64
}

// BarSegments computes the share of each phase in the total days and its bar
// width, never narrower than MinSegmentPercent.
func BarSegments(breakdown model.Breakdown) []BarSegment {
	segments := make([]BarSegment, 0, len(breakdown.Phases))
	for _, p := range breakdown.Phases {
		percent := 0.0
		if breakdown.TotalDays > 0 {
			percent = p.Days / breakdown.TotalDays * 100
		}
		segments = append(segments, BarSegment{
			Phase:   p.Phase,
			Label:   p.Phase.Label(),
			Days:    p.Days,
			Share:   percent,
			Percent: math.Max(percent, MinSegmentPercent),
		})
	}
	return segments
}

// HelpNote is the static usage note shown by the page and the CLI.
const HelpNote = `How to use the duration planner

1. Enter the area of one floor, the number of floors and the size of the crew.
2. Set the working policy: hours per day and working days per week.
3. Adjust the structural cycle (days per floor) and the share of finishing
   work that runs alongside the structure (overlap).
4. Fixed phases (pre-construction, foundation, commissioning) are entered in days.

The result is optimistic: it assumes a steady crew, no weather or supply
delays, and that finishing work is limited only by man-hours. Durations are
shown in days, in weeks of the chosen working week, and in months of 30.44 days.`
