package v1alpha1_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	handlers "github.com/siteplan/duration-planner/internal/handlers/v1alpha1"
	"github.com/siteplan/duration-planner/internal/model"
	"github.com/siteplan/duration-planner/internal/service"
)

type estimateResponse struct {
	model.Estimate
	RequestId string `json:"requestId"`
}

var _ = Describe("ServiceHandler", func() {
	var router *chi.Mux

	do := func(method, target string, body io.Reader) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, target, body))
		return rec
	}

	BeforeEach(func() {
		router = chi.NewRouter()
		handlers.NewServiceHandler(service.NewEstimationService(), service.NewReportService()).RegisterRoutes(router)
	})

	Context("pages", func() {
		It("renders the calculator with the defaults", func() {
			rec := do(http.MethodGet, "/", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(HavePrefix("text/html"))
			Expect(rec.Body.String()).To(ContainSubstring("<form"))
			Expect(rec.Body.String()).To(ContainSubstring("4995.00 m²"))
		})

		It("clamps query inputs", func() {
			rec := do(http.MethodGet, "/?hDay=40&overlapFraction=3", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`name="hDay" value="24"`))
			Expect(rec.Body.String()).To(ContainSubstring(`name="overlapFraction" value="0.95"`))
		})

		It("explains an undefined duration", func() {
			rec := do(http.MethodGet, "/?workers=", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Duration undefined"))
		})

		It("explains a duration out of range instead of printing Inf", func() {
			rec := do(http.MethodGet, "/?workers=1e-310", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Duration undefined"))
			Expect(rec.Body.String()).To(ContainSubstring("out of range"))
			Expect(rec.Body.String()).ToNot(ContainSubstring("Inf"))
		})

		It("renders the print view without the form", func() {
			rec := do(http.MethodGet, "/print?nFloors=3", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).ToNot(ContainSubstring("<form"))
		})

		It("serves the usage note and the health check", func() {
			rec := do(http.MethodGet, "/help", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("How to use"))

			rec = do(http.MethodGet, "/health", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"ok"`))
		})
	})

	Context("estimate api", func() {
		It("returns the defaults", func() {
			rec := do(http.MethodGet, "/api/v1/defaults", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var input model.ProjectInput
			Expect(json.Unmarshal(rec.Body.Bytes(), &input)).To(Succeed())
			Expect(input).To(Equal(model.DefaultProjectInput()))
		})

		It("estimates a partial body with defaults", func() {
			rec := do(http.MethodPost, "/api/v1/estimate", strings.NewReader(`{"nFloors": 9}`))
			Expect(rec.Code).To(Equal(http.StatusOK))

			var reply estimateResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &reply)).To(Succeed())
			Expect(reply.Undefined).To(BeFalse())
			Expect(reply.Derived.GrossFloorArea).To(Equal(4995.0))
			Expect(*reply.Derived.TotalDays).To(BeNumerically("~", 231.63, 0.005))
			Expect(reply.Breakdown.Phases).To(HaveLen(len(model.Phases)))
		})

		It("estimates an empty body as the defaults", func() {
			rec := do(http.MethodPost, "/api/v1/estimate", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("clamps the working policy", func() {
			rec := do(http.MethodPost, "/api/v1/estimate", strings.NewReader(`{"hDay": 30, "dWeek": 0}`))
			Expect(rec.Code).To(Equal(http.StatusOK))

			var reply estimateResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &reply)).To(Succeed())
			Expect(reply.Input.HoursPerDay).To(Equal(24.0))
			Expect(reply.Input.DaysPerWeek).To(Equal(1.0))
		})

		It("replies 422 with the partial estimate when the duration is undefined", func() {
			rec := do(http.MethodPost, "/api/v1/estimate", strings.NewReader(`{"workers": 0}`))
			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))

			var reply estimateResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &reply)).To(Succeed())
			Expect(reply.Undefined).To(BeTrue())
			Expect(reply.Message).ToNot(BeEmpty())
			Expect(reply.Derived.TotalDays).To(BeNil())
			Expect(reply.Derived.StructuralDays).To(Equal(90.0))
		})

		DescribeTable("replies 422 without non-finite numbers when a quantity overflows",
			func(body string) {
				rec := do(http.MethodPost, "/api/v1/estimate", strings.NewReader(body))
				Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
				Expect(rec.Header().Get("Content-Type")).To(HavePrefix("application/json"))

				var reply struct {
					Message string `json:"message"`
				}
				Expect(json.Unmarshal(rec.Body.Bytes(), &reply)).To(Succeed())
				Expect(reply.Message).To(ContainSubstring("out of range"))
			},
			Entry("huge gross floor area", `{"aFloor": 1e200, "nFloors": 1e200}`),
			Entry("tiny workforce", `{"workers": 1e-310}`),
			Entry("huge fixed phases", `{"preDays": 1e308, "foundDays": 1e308}`),
		)

		It("rejects malformed json", func() {
			rec := do(http.MethodPost, "/api/v1/estimate", strings.NewReader(`{"workers": `))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("invalid estimate request"))
		})
	})

	Context("export and import", func() {
		It("round trips through export and import", func() {
			rec := do(http.MethodPost, "/api/v1/export?format=yaml", strings.NewReader(`{"workers": 40, "overlapFraction": 0.5}`))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Disposition")).To(ContainSubstring("project.yaml"))

			rec = do(http.MethodPost, "/api/v1/import", bytes.NewReader(rec.Body.Bytes()))
			Expect(rec.Code).To(Equal(http.StatusOK))

			var input model.ProjectInput
			Expect(json.Unmarshal(rec.Body.Bytes(), &input)).To(Succeed())
			expected := model.DefaultProjectInput()
			expected.WorkerCount = 40
			expected.OverlapFraction = 0.5
			Expect(input).To(Equal(expected))
		})

		It("exports the calculator page form", func() {
			page := do(http.MethodGet, "/?workers=40", nil)
			Expect(page.Body.String()).To(ContainSubstring(`action="/api/v1/export"`))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/export",
				strings.NewReader("workers=40&overlapFraction=0.5&format=json"))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
			Expect(rec.Header().Get("Content-Disposition")).To(ContainSubstring("project.json"))

			var input model.ProjectInput
			Expect(json.Unmarshal(rec.Body.Bytes(), &input)).To(Succeed())
			expected := model.DefaultProjectInput()
			expected.WorkerCount = 40
			expected.OverlapFraction = 0.5
			Expect(input).To(Equal(expected))
		})

		It("exports json", func() {
			rec := do(http.MethodPost, "/api/v1/export?format=json", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
			Expect(rec.Body.String()).To(ContainSubstring(`"aFloor": 555`))
		})

		It("rejects an unknown export format", func() {
			rec := do(http.MethodPost, "/api/v1/export?format=xml", nil)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects an out of range export", func() {
			rec := do(http.MethodPost, "/api/v1/export", strings.NewReader(`{"overlapFraction": 1.5}`))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects an invalid document", func() {
			rec := do(http.MethodPost, "/api/v1/import", strings.NewReader("cranes: 3\n"))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("cranes"))
		})
	})

	Context("reports", func() {
		DescribeTable("downloads a report",
			func(format, contentType, filename string) {
				rec := do(http.MethodGet, "/api/v1/report?format="+format+"&nFloors=5", nil)
				Expect(rec.Code).To(Equal(http.StatusOK))
				Expect(rec.Header().Get("Content-Type")).To(HavePrefix(contentType))
				Expect(rec.Header().Get("Content-Disposition")).To(ContainSubstring(filename))
				Expect(rec.Body.Len()).To(BeNumerically(">", 0))
			},
			Entry("csv", "csv", "text/csv", "duration-estimate.csv"),
			Entry("xlsx", "xlsx", "application/vnd.openxmlformats", "duration-estimate.xlsx"),
			Entry("html", "html", "text/html", "duration-estimate.html"),
		)

		It("defaults to csv", func() {
			rec := do(http.MethodGet, "/api/v1/report", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(HavePrefix("text/csv"))
		})

		It("rejects an unknown format", func() {
			rec := do(http.MethodGet, "/api/v1/report?format=pdf", nil)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	It("reports the version", func() {
		rec := do(http.MethodGet, "/api/v1/version", nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("gitVersion"))
	})
})
