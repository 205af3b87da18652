package v1alpha1

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/siteplan/duration-planner/internal/handlers/v1alpha1/mappers"
	"github.com/siteplan/duration-planner/internal/service"
	"github.com/siteplan/duration-planner/pkg/log"
	"github.com/siteplan/duration-planner/pkg/requestid"
)

// (GET /api/v1/defaults)
func (h *ServiceHandler) GetDefaults(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, mappers.InputReply{ProjectInput: h.estimationSrv.Defaults()})
}

// (POST /api/v1/estimate)
func (h *ServiceHandler) CreateEstimate(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("estimation_handler").
		WithContext(r.Context()).
		Operation("create_estimate").
		Build()

	// fields absent from the body keep their default value
	input := h.estimationSrv.Defaults()
	if err := decodeJSON(r.Body, &input); err != nil {
		logger.Error(err).Log()
		renderError(w, r, http.StatusBadRequest, "invalid estimate request: "+err.Error())
		return
	}

	input = input.Clamp()
	logger.Step("clamp_input").WithFloat("hours_per_day", input.HoursPerDay).WithFloat("overlap", input.OverlapFraction).Log()

	estimate, err := h.estimationSrv.Estimate(r.Context(), input)
	if err != nil {
		var undefinedErr *service.ErrUndefinedDuration
		if errors.As(err, &undefinedErr) {
			logger.Warn("undefined duration").Log()
			render.Status(r, http.StatusUnprocessableEntity)
			_ = render.Render(w, r, mappers.EstimateToApi(estimate, requestid.FromRequest(r)))
			return
		}
		var outOfRangeErr *service.ErrOutOfRange
		if errors.As(err, &outOfRangeErr) {
			logger.Warn("estimate out of range").Log()
			renderError(w, r, http.StatusUnprocessableEntity, estimate.Message+" ("+err.Error()+")")
			return
		}
		logger.Error(err).Log()
		renderError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Success().WithFloat("total_days", estimate.Breakdown.TotalDays).Log()
	_ = render.Render(w, r, mappers.EstimateToApi(estimate, requestid.FromRequest(r)))
}
