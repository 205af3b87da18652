package v1alpha1

import (
	"fmt"
	"net/http"

	"github.com/siteplan/duration-planner/internal/handlers/v1alpha1/mappers"
	"github.com/siteplan/duration-planner/internal/service"
	"github.com/siteplan/duration-planner/pkg/log"
)

// (GET /api/v1/report)
func (h *ServiceHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	logger := log.NewDebugLogger("report_handler").
		WithContext(r.Context()).
		Operation("get_report").
		WithString("format", query.Get("format")).
		Build()

	name := query.Get("format")
	if name == "" {
		name = string(service.ReportFormatCSV)
	}
	format, err := h.reportSrv.ParseReportFormat(name)
	if err != nil {
		logger.Error(err).Log()
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	input := mappers.InputFromQuery(query).Clamp()
	estimate, err := h.estimate(r, input)
	if err != nil {
		logger.Error(err).Log()
		renderError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	content, err := h.reportSrv.GenerateReport(estimate, service.ReportOptions{
		Format: format,
		Print:  true,
		Query:  mappers.QueryFromInput(input),
	})
	if err != nil {
		logger.Error(err).Log()
		renderError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Success().WithInt("bytes", len(content)).Log()

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=duration-estimate.%s", format.Extension()))
	_, _ = w.Write([]byte(content))
}
