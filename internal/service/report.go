package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/siteplan/duration-planner/internal/model"
	"github.com/siteplan/duration-planner/internal/service/report/csv"
	"github.com/siteplan/duration-planner/internal/service/report/html"
	"github.com/siteplan/duration-planner/internal/service/report/text"
	"github.com/siteplan/duration-planner/internal/service/report/types"
	"github.com/siteplan/duration-planner/internal/service/report/xlsx"
)

type ReportRenderer = types.ReportRenderer
type ReportFormat = types.ReportFormat
type ReportOptions = types.ReportOptions
type ReportData = types.ReportData
type BarSegment = types.BarSegment

const (
	ReportFormatCSV  = types.ReportFormatCSV
	ReportFormatHTML = types.ReportFormatHTML
	ReportFormatXLSX = types.ReportFormatXLSX
	ReportFormatText = types.ReportFormatText
)

// ReportFormats lists the formats a report can be downloaded in.
var ReportFormats = []string{
	string(ReportFormatCSV),
	string(ReportFormatXLSX),
	string(ReportFormatHTML),
	string(ReportFormatText),
}

type ReportService struct {
	renderers map[types.ReportFormat]types.ReportRenderer
	now       func() time.Time
}

func NewReportService() *ReportService {
	service := &ReportService{
		renderers: make(map[types.ReportFormat]types.ReportRenderer),
		now:       time.Now,
	}

	for _, renderer := range []types.ReportRenderer{
		csv.NewRenderer(),
		html.NewRenderer(),
		xlsx.NewRenderer(),
		text.NewRenderer(),
	} {
		service.renderers[renderer.SupportedFormat()] = renderer
	}

	return service
}

// ParseReportFormat maps a user supplied name to a registered format.
func (r *ReportService) ParseReportFormat(name string) (types.ReportFormat, error) {
	format := types.ReportFormat(strings.ToLower(strings.TrimSpace(name)))
	if format == "txt" {
		format = types.ReportFormatText
	}
	if _, exists := r.renderers[format]; !exists {
		return "", NewErrUnsupportedFormat("report", name)
	}
	return format, nil
}

// GenerateReport renders estimate in the format named by options. Undefined
// estimates are rendered too; every renderer shows the explanation instead of
// durations.
func (r *ReportService) GenerateReport(estimate *model.Estimate, options types.ReportOptions) (string, error) {
	if estimate == nil {
		return "", fmt.Errorf("failed to generate report: no estimate")
	}

	renderer, exists := r.renderers[options.Format]
	if !exists {
		return "", NewErrUnsupportedFormat("report", string(options.Format))
	}

	now := r.now()
	reportData := &types.ReportData{
		Estimate: estimate,
		Options:  options,
		Timestamps: types.ReportTimestamps{
			Generated:     now.Format("January 2, 2006"),
			GeneratedTime: now.Format("15:04:05"),
		},
	}
	if !estimate.Undefined {
		reportData.Segments = types.BarSegments(estimate.Breakdown)
	}

	return renderer.Render(reportData)
}
