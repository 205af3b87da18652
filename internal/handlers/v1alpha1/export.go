package v1alpha1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"github.com/siteplan/duration-planner/internal/handlers/v1alpha1/mappers"
	"github.com/siteplan/duration-planner/internal/service"
	"github.com/siteplan/duration-planner/pkg/log"
)

// maxDocumentSize bounds the body of export and import requests.
const maxDocumentSize = 64 << 10

// (POST /api/v1/export)
//
// The body is a json input, or the calculator page's export form. Form fields
// follow the page query rules.
func (h *ServiceHandler) ExportInput(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentSize)
	fromForm := render.GetRequestContentType(r) == render.ContentTypeForm

	input := h.estimationSrv.Defaults()
	var decodeErr error
	if fromForm {
		if decodeErr = r.ParseForm(); decodeErr == nil {
			input = mappers.InputFromQuery(r.PostForm)
		}
	} else {
		decodeErr = decodeJSON(r.Body, &input)
	}

	logger := log.NewDebugLogger("export_handler").
		WithContext(r.Context()).
		Operation("export_input").
		WithString("format", r.FormValue("format")).
		Build()

	if decodeErr != nil {
		logger.Error(decodeErr).Log()
		renderError(w, r, http.StatusBadRequest, "invalid export request: "+decodeErr.Error())
		return
	}

	format, err := service.ParseExportFormat(r.FormValue("format"))
	if err != nil {
		logger.Error(err).Log()
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := service.ValidateInput(input); err != nil {
		logger.Error(err).Log()
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	data, err := service.ExportInput(input, format)
	if err != nil {
		logger.Error(err).Log()
		renderError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Success().WithInt("bytes", len(data)).Log()

	contentType := "application/yaml"
	if format == service.ExportFormatJSON {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=project.%s", format))
	_, _ = w.Write(data)
}

// (POST /api/v1/import)
func (h *ServiceHandler) ImportInput(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("export_handler").
		WithContext(r.Context()).
		Operation("import_input").
		Build()

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentSize))
	if err != nil {
		logger.Error(err).Log()
		renderError(w, r, http.StatusBadRequest, "failed to read document: "+err.Error())
		return
	}

	input, err := service.ParseInput(data)
	if err != nil {
		logger.Error(err).Log()
		status := http.StatusInternalServerError
		var invalidErr *service.ErrInvalidInput
		if errors.As(err, &invalidErr) {
			status = http.StatusBadRequest
		}
		renderError(w, r, status, err.Error())
		return
	}

	logger.Success().Log()
	_ = render.Render(w, r, mappers.InputReply{ProjectInput: input})
}
