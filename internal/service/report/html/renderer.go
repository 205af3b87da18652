package html

import (
	"bytes"
	"fmt"
	"html/template"
	"math"

	"github.com/siteplan/duration-planner/internal/estimation/calculators"
	"github.com/siteplan/duration-planner/internal/model"
	"github.com/siteplan/duration-planner/internal/service/report/types"
)

type Renderer struct {
	page *template.Template
}

type field struct {
	Key   string
	Label string
	Unit  string
	Value float64
	Step  string
}

// slider is edited with a range input bound to a number input. Only the
// number input is submitted, so values off the range or its step survive a
// resubmission unchanged.
type slider struct {
	field
	Min float64
	Max float64
}

type segment struct {
	types.BarSegment
	Color template.CSS
}

type durationRow struct {
	Name    string
	Summary *model.DurationSummary
}

type templateData struct {
	CSS           template.CSS
	GeneratedDate string
	GeneratedTime string
	Print         bool
	PageURL       template.URL
	PrintURL      template.URL

	Fields  []field
	Sliders []slider

	Estimate  *model.Estimate
	Durations []durationRow
	Segments  []segment
}

var phaseColors = map[model.Phase]template.CSS{
	model.PhasePreConstruction:   "#95a5a6",
	model.PhaseFoundation:        "#8e6e53",
	model.PhaseStructural:        "#3498db",
	model.PhaseFinishesRemaining: "#27ae60",
	model.PhaseCommissioning:     "#f39c12",
}

var fieldLabels = map[string][2]string{
	calculators.ParamAreaPerFloor:           {"Area per floor", "m²"},
	calculators.ParamFloorCount:             {"Number of floors", ""},
	calculators.ParamWorkerCount:            {"Workers on site", ""},
	calculators.ParamHoursPerDay:            {"Hours per day", "h"},
	calculators.ParamDaysPerWeek:            {"Working days per week", "days"},
	calculators.ParamDaysPerFloorStructural: {"Structural cycle per floor", "days"},
	calculators.ParamFinishesManHoursPerM2:  {"Finishing + MEP effort", "man-hours/m²"},
	calculators.ParamPreConstructionDays:    {"Pre-construction", "days"},
	calculators.ParamFoundationDays:         {"Foundation", "days"},
	calculators.ParamCommissioningDays:      {"Commissioning", "days"},
	calculators.ParamOverlapFraction:        {"Finishes overlapped with structure", "fraction"},
}

func NewRenderer() *Renderer {
	return &Renderer{
		page: template.Must(template.New("page").Funcs(template.FuncMap{
			"days":    func(v float64) string { return fmt.Sprintf("%.0f", v) },
			"decimal": func(v float64) string { return fmt.Sprintf("%.1f", v) },
			"number":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
			"width":   func(v float64) template.CSS { return template.CSS(fmt.Sprintf("width: %.2f%%", v)) },
			"percent": func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
			"value":   func(v float64) string { return fmt.Sprintf("%g", v) },
		}).Parse(pageTemplate)),
	}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatHTML
}

func (r *Renderer) Render(data *types.ReportData) (string, error) {
	if data.Estimate == nil {
		return "", fmt.Errorf("no estimate to render")
	}

	templateData := templateData{
		CSS:           template.CSS(r.getCSS()),
		GeneratedDate: data.Timestamps.Generated,
		GeneratedTime: data.Timestamps.GeneratedTime,
		Print:         data.Options.Print,
		PageURL:       template.URL("/?" + data.Options.Query),
		PrintURL:      template.URL("/print?" + data.Options.Query),
		Estimate:      data.Estimate,
		Durations: []durationRow{
			{Name: "Structure", Summary: roundedPtr(&data.Estimate.Structural)},
			{Name: "Finishes + MEP (remaining)", Summary: roundedPtr(data.Estimate.Finishes)},
			{Name: "Total", Summary: roundedPtr(data.Estimate.Total)},
		},
	}

	templateData.Fields, templateData.Sliders = r.generateFields(data.Estimate.Input)

	for _, s := range data.Segments {
		templateData.Segments = append(templateData.Segments, segment{BarSegment: s, Color: phaseColors[s.Phase]})
	}

	return r.executeTemplate(templateData)
}

func (r *Renderer) executeTemplate(data templateData) (string, error) {
	var buf bytes.Buffer
	if err := r.page.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute HTML template: %w", err)
	}

	return buf.String(), nil
}

// generateFields splits the inputs into plain numeric fields and the two
// parameters edited with a range slider.
func (r *Renderer) generateFields(input model.ProjectInput) ([]field, []slider) {
	values := calculators.Fields(&input)

	var (
		fields  []field
		sliders []slider
	)
	for _, key := range calculators.ParamKeys {
		f := field{
			Key:   key,
			Label: fieldLabels[key][0],
			Unit:  fieldLabels[key][1],
			Value: *values[key],
			Step:  "any",
		}

		switch key {
		case calculators.ParamDaysPerFloorStructural:
			f.Step = "1"
			sliders = append(sliders, newSlider(f, 1, 30))
		case calculators.ParamOverlapFraction:
			f.Step = "0.05"
			sliders = append(sliders, newSlider(f, model.MinOverlapFraction, model.MaxOverlapFraction))
		default:
			fields = append(fields, f)
		}
	}

	return fields, sliders
}

// newSlider widens the range to cover the current value.
func newSlider(f field, lo, hi float64) slider {
	return slider{
		field: f,
		Min:   math.Min(lo, f.Value),
		Max:   math.Max(hi, f.Value),
	}
}

func roundedPtr(s *model.DurationSummary) *model.DurationSummary {
	if s == nil {
		return nil
	}
	rounded := s.Rounded()
	return &rounded
}

func (r *Renderer) getCSS() string {
	return `
        body { font-family: Arial, sans-serif; margin: 20px; background: #f5f5f5; }
        .container { max-width: 1100px; margin: 0 auto; background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .header { text-align: center; margin-bottom: 30px; }
        .header h1 { color: #2c3e50; margin-bottom: 10px; }
        .header p { color: #7f8c8d; }
        .actions { text-align: right; margin-bottom: 10px; }
        .actions a { margin-left: 15px; color: #3498db; }
        .actions .export { display: inline; margin-left: 15px; }
        .form-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(240px, 1fr)); gap: 15px; }
        .form-grid label { display: block; font-size: 13px; color: #2c3e50; margin-bottom: 4px; }
        .form-grid input[type=number] { width: 100%; padding: 6px; box-sizing: border-box; }
        .slider input[type=range] { width: 100%; }
        .summary-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 20px; margin: 30px 0; }
        .summary-card { background: #3498db; color: white; padding: 20px; border-radius: 8px; text-align: center; }
        .summary-card h4 { margin: 0 0 10px 0; font-size: 14px; font-weight: 600; }
        .summary-card .number { font-size: 28px; font-weight: bold; }
        .section { margin: 30px 0; }
        .section h2 { color: #2c3e50; border-left: 4px solid #3498db; padding-left: 15px; }
        .bar { display: flex; height: 36px; border-radius: 6px; overflow: hidden; }
        .bar div { color: white; font-size: 12px; line-height: 36px; text-align: center; white-space: nowrap; overflow: hidden; }
        .legend span { display: inline-block; margin-right: 15px; font-size: 13px; }
        .legend i { display: inline-block; width: 12px; height: 12px; margin-right: 5px; vertical-align: middle; }
        .undefined { background: #e74c3c; color: white; padding: 20px; border-radius: 8px; }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        th, td { padding: 10px 12px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background: #2c3e50; color: white; font-weight: 600; }
        .footer { text-align: center; margin-top: 40px; color: #7f8c8d; border-top: 1px solid #eee; padding-top: 20px; }
        @media print { body { background: white; margin: 0; } .container { box-shadow: none; } .actions { display: none; } }`
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Construction Duration Planner</title>
    <style>
        {{.CSS}}
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Construction Duration Planner</h1>
            <p>Optimistic estimate, generated: {{.GeneratedDate}} at {{.GeneratedTime}}</p>
        </div>

        <div class="actions">
            {{if .Print}}<a href="#" onclick="window.print(); return false;">Print</a><a href="{{.PageURL}}">Back to calculator</a>
            {{else}}<a href="{{.PrintURL}}">Print view</a><a href="/help">Help</a>
            <form method="post" action="/api/v1/export" class="export">
                {{range .Fields}}<input type="hidden" name="{{.Key}}" value="{{value .Value}}">{{end}}
                {{range .Sliders}}<input type="hidden" name="{{.Key}}" value="{{value .Value}}">{{end}}
                <select name="format" aria-label="Export format"><option value="yaml">YAML</option><option value="json">JSON</option></select>
                <button type="submit">Export inputs</button>
            </form>{{end}}
        </div>

        {{if not .Print}}
        <form method="get" action="/" id="inputs">
            <div class="form-grid">
                {{range .Fields}}
                <div>
                    <label for="{{.Key}}">{{.Label}}{{if .Unit}} ({{.Unit}}){{end}}</label>
                    <input type="number" id="{{.Key}}" name="{{.Key}}" value="{{value .Value}}" step="{{.Step}}" min="0" onchange="this.form.submit()">
                </div>
                {{end}}
                {{range .Sliders}}
                <div class="slider">
                    <label for="{{.Key}}">{{.Label}}{{if .Unit}} ({{.Unit}}){{end}}</label>
                    <input type="range" id="{{.Key}}-range" value="{{value .Value}}" min="{{value .Min}}" max="{{value .Max}}" step="{{.Step}}"
                        oninput="document.getElementById('{{.Key}}').value = this.value" onchange="this.form.submit()">
                    <input type="number" id="{{.Key}}" name="{{.Key}}" value="{{value .Value}}" step="any" min="0" onchange="this.form.submit()">
                </div>
                {{end}}
            </div>
            <noscript><p><button type="submit">Recalculate</button></p></noscript>
        </form>
        {{else}}
        <div class="section">
            <h2>Inputs</h2>
            <table>
                <thead><tr><th>Parameter</th><th>Value</th></tr></thead>
                <tbody>
                    {{range .Fields}}<tr><td>{{.Label}}</td><td>{{value .Value}}{{if .Unit}} {{.Unit}}{{end}}</td></tr>
                    {{end}}{{range .Sliders}}<tr><td>{{.Label}}</td><td>{{value .Value}}{{if .Unit}} {{.Unit}}{{end}}</td></tr>
                    {{end}}
                </tbody>
            </table>
        </div>
        {{end}}

        <div class="summary-grid">
            <div class="summary-card">
                <h4>Gross floor area</h4>
                <div class="number">{{number .Estimate.Derived.GrossFloorArea}} m²</div>
            </div>
            <div class="summary-card" style="background: #8e44ad;">
                <h4>Workforce capacity</h4>
                <div class="number">{{number .Estimate.Derived.ManHoursPerDay}} man-hours/day</div>
            </div>
            <div class="summary-card" style="background: #27ae60;">
                <h4>Structure ({{percent .Estimate.Input.OverlapFraction}} of finishes overlapped)</h4>
                <div class="number">{{days .Estimate.Derived.StructuralDays}} days</div>
            </div>
        </div>

        {{if .Estimate.Undefined}}
        <div class="section">
            <div class="undefined">
                <h2>Duration undefined</h2>
                <p>{{.Estimate.Message}}</p>
            </div>
        </div>
        {{else}}
        <div class="section">
            <h2>Durations</h2>
            <table>
                <thead><tr><th>Phase</th><th>Days</th><th>Weeks</th><th>Months</th></tr></thead>
                <tbody>
                    {{range .Durations}}<tr><td><strong>{{.Name}}</strong></td><td>{{days .Summary.Days}}</td><td>{{decimal .Summary.Weeks}}</td><td>{{decimal .Summary.Months}}</td></tr>
                    {{end}}
                </tbody>
            </table>
        </div>

        <div class="section">
            <h2>Phase breakdown</h2>
            <div class="bar">
                {{range .Segments}}<div style="{{width .Percent}}; background: {{.Color}};" title="{{.Label}}: {{days .Days}} days">{{days .Days}}</div>{{end}}
            </div>
            <p class="legend">
                {{range .Segments}}<span><i style="background: {{.Color}};"></i>{{.Label}} ({{days .Days}} d)</span>{{end}}
            </p>
        </div>
        {{end}}

        <div class="footer">
            <p>Weeks are counted in working weeks, months as 30.44 calendar days.</p>
        </div>
    </div>
</body>
</html>`
