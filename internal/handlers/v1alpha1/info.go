package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/siteplan/duration-planner/internal/handlers/v1alpha1/mappers"
	"github.com/siteplan/duration-planner/pkg/version"
)

// (GET /api/v1/version)
func (h *ServiceHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, mappers.VersionReply{Info: version.Get()})
}
