package text

import (
	"fmt"
	"strings"

	"github.com/siteplan/duration-planner/internal/model"
	"github.com/siteplan/duration-planner/internal/service/report/types"
)

// barWidth is the number of characters of the terminal phase bar.
const barWidth = 50

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatText
}

func (r *Renderer) Render(data *types.ReportData) (string, error) {
	if data.Estimate == nil {
		return "", fmt.Errorf("no estimate to render")
	}

	estimate := data.Estimate
	var b strings.Builder

	fmt.Fprintf(&b, "Gross floor area:    %.2f m²\n", estimate.Derived.GrossFloorArea)
	fmt.Fprintf(&b, "Workforce capacity:  %.2f man-hours/day\n", estimate.Derived.ManHoursPerDay)
	fmt.Fprintf(&b, "Finishing work:      %.2f man-hours\n", estimate.Derived.FinishesManHoursTotal)
	b.WriteString("\n")

	writeDuration(&b, "Structure", &estimate.Structural)
	if estimate.Undefined {
		fmt.Fprintf(&b, "\n%s\n", estimate.Message)
		return b.String(), nil
	}
	writeDuration(&b, "Finishes (remaining)", estimate.Finishes)
	writeDuration(&b, "Total", estimate.Total)
	b.WriteString("\n")

	for i, p := range estimate.Breakdown.Phases {
		percent := types.MinSegmentPercent
		if i < len(data.Segments) {
			percent = data.Segments[i].Percent
		}
		fmt.Fprintf(&b, "%-28s %8.1f d  %s\n", p.Phase.Label(), p.Days, bar(percent))
	}

	return b.String(), nil
}

func writeDuration(b *strings.Builder, name string, summary *model.DurationSummary) {
	rounded := summary.Rounded()
	fmt.Fprintf(b, "%-21s%4.0f days, %5.1f weeks, %4.1f months\n", name+":", rounded.Days, rounded.Weeks, rounded.Months)
}

// bar draws at least one character so zero-length phases stay visible.
func bar(percent float64) string {
	n := int(percent / 100 * barWidth)
	if n < 1 {
		n = 1
	}
	return strings.Repeat("#", n)
}
