package mappers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/render"
	"github.com/siteplan/duration-planner/internal/estimation/calculators"
	"github.com/siteplan/duration-planner/internal/model"
	"github.com/siteplan/duration-planner/pkg/version"
)

// QueryFromInput encodes input as the query string understood by
// InputFromQuery.
func QueryFromInput(input model.ProjectInput) string {
	values := url.Values{}
	fields := calculators.Fields(&input)
	for _, key := range calculators.ParamKeys {
		values.Set(key, strconv.FormatFloat(*fields[key], 'g', -1, 64))
	}
	return values.Encode()
}

type EstimateReply struct {
	*model.Estimate
	RequestId string `json:"requestId,omitempty"`
}

type InputReply struct {
	model.ProjectInput
}

type ErrorReply struct {
	HTTPStatusCode int    `json:"-"`
	Message        string `json:"message"`
	RequestId      string `json:"requestId,omitempty"`
}

type HealthReply struct {
	Status string `json:"status"`
}

type VersionReply struct {
	version.Info
}

func EstimateToApi(estimate *model.Estimate, requestID string) EstimateReply {
	return EstimateReply{Estimate: estimate, RequestId: requestID}
}

func (e EstimateReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (i InputReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (e ErrorReply) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func (h HealthReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (v VersionReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
