package v1alpha1

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/siteplan/duration-planner/internal/handlers/v1alpha1/mappers"
	"github.com/siteplan/duration-planner/internal/model"
	"github.com/siteplan/duration-planner/internal/service"
	"github.com/siteplan/duration-planner/internal/service/report/types"
	"github.com/siteplan/duration-planner/pkg/log"
	"github.com/siteplan/duration-planner/pkg/metrics"
	"github.com/siteplan/duration-planner/pkg/middleware"
)

// (GET /)
func (h *ServiceHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	metrics.UniqueVisitsPerWeek.IncreaseTotalUniqueVisit(middleware.ClientIP(r))
	h.renderPage(w, r, false)
}

// (GET /print)
func (h *ServiceHandler) GetPrintPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, true)
}

// (GET /help)
func (h *ServiceHandler) GetHelp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(types.HelpNote + "\n"))
}

// (GET /health)
func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, mappers.HealthReply{Status: "ok"})
}

func (h *ServiceHandler) renderPage(w http.ResponseWriter, r *http.Request, printMode bool) {
	logger := log.NewDebugLogger("page_handler").
		WithContext(r.Context()).
		Operation("render_page").
		Build()

	input := mappers.InputFromQuery(r.URL.Query()).Clamp()

	estimate, err := h.estimate(r, input)
	if err != nil {
		logger.Error(err).Log()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	page, err := h.reportSrv.GenerateReport(estimate, service.ReportOptions{
		Format: service.ReportFormatHTML,
		Print:  printMode,
		Query:  mappers.QueryFromInput(input),
	})
	if err != nil {
		logger.Error(err).Log()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	logger.Success().WithBool("print", printMode).WithBool("undefined", estimate.Undefined).Log()

	w.Header().Set("Content-Type", service.ReportFormatHTML.ContentType())
	_, _ = w.Write([]byte(page))
}

// estimate runs the estimation and treats an undefined or out of range
// duration as a valid outcome: the partial estimate carries the explanation.
func (h *ServiceHandler) estimate(r *http.Request, input model.ProjectInput) (*model.Estimate, error) {
	estimate, err := h.estimationSrv.Estimate(r.Context(), input)
	if err != nil {
		var undefinedErr *service.ErrUndefinedDuration
		var outOfRangeErr *service.ErrOutOfRange
		if errors.As(err, &undefinedErr) || errors.As(err, &outOfRangeErr) {
			return estimate, nil
		}
		return nil, err
	}
	return estimate, nil
}
