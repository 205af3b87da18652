package v1alpha1

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/siteplan/duration-planner/internal/handlers/v1alpha1/mappers"
	"github.com/siteplan/duration-planner/internal/service"
	"github.com/siteplan/duration-planner/pkg/requestid"
)

type ServiceHandler struct {
	estimationSrv *service.EstimationService
	reportSrv     *service.ReportService
}

func NewServiceHandler(estimationService *service.EstimationService, reportService *service.ReportService) *ServiceHandler {
	return &ServiceHandler{
		estimationSrv: estimationService,
		reportSrv:     reportService,
	}
}

// RegisterRoutes mounts the calculator pages and the JSON api on router.
func (h *ServiceHandler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.GetPage)
	router.Get("/print", h.GetPrintPage)
	router.Get("/help", h.GetHelp)
	router.Get("/health", h.Health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/defaults", h.GetDefaults)
		r.Post("/estimate", h.CreateEstimate)
		r.Post("/export", h.ExportInput)
		r.Post("/import", h.ImportInput)
		r.Get("/report", h.GetReport)
		r.Get("/version", h.GetVersion)
	})
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	_ = render.Render(w, r, mappers.ErrorReply{
		HTTPStatusCode: status,
		Message:        message,
		RequestId:      requestid.FromRequest(r),
	})
}

// decodeJSON reads a json body into v. An empty body leaves v unchanged.
func decodeJSON(body io.Reader, v any) error {
	if err := render.DecodeJSON(body, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
