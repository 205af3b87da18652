package apiserver_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	apiserver "github.com/siteplan/duration-planner/internal/api_server"
	"github.com/siteplan/duration-planner/internal/config"
	"github.com/siteplan/duration-planner/pkg/metrics"
)

var _ = Describe("api server", func() {
	var cfg *config.Config

	BeforeEach(func() {
		var err error
		cfg, err = config.Load("")
		Expect(err).ToNot(HaveOccurred())
		cfg.Service.AllowedOrigins = []string{"https://planner.example.com"}
	})

	It("applies the middleware stack", func() {
		router := apiserver.New(cfg, nil).Router()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-Id", "req-42")
		req.Header.Set("Origin", "https://planner.example.com")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("X-Request-Id")).To(Equal("req-42"))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://planner.example.com"))
	})

	It("generates a request id when none is sent", func() {
		router := apiserver.New(cfg, nil).Router()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/estimate", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(fmt.Sprintf(`"requestId":"%s"`, rec.Header().Get("X-Request-Id"))))
	})

	It("serves until the context is cancelled", func() {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- apiserver.New(cfg, listener).Run(ctx)
		}()

		Eventually(func() (int, error) {
			resp, err := http.Get("http://" + listener.Addr().String() + "/health")
			if err != nil {
				return 0, err
			}
			defer resp.Body.Close()
			_, _ = io.Copy(io.Discard, resp.Body)
			return resp.StatusCode, nil
		}, 5*time.Second, 50*time.Millisecond).Should(Equal(http.StatusOK))

		cancel()
		Eventually(done, 10*time.Second).Should(Receive(BeNil()))
	})

	It("serves prometheus metrics", func() {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			_ = apiserver.NewMetricServer(listener).Run(ctx)
		}()

		Eventually(func() (string, error) {
			resp, err := http.Get("http://" + listener.Addr().String() + "/metrics")
			if err != nil {
				return "", err
			}
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			return string(body), err
		}, 5*time.Second, 50*time.Millisecond).Should(ContainSubstring("duration_planner_"))
	})

	It("resets the unique visits on every period", func() {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())

		metrics.UniqueVisitsPerWeek.IncreaseTotalUniqueVisit("10.0.0.1")
		Expect(metrics.UniqueVisitsPerWeek.Count()).To(BeNumerically(">=", 1))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			_ = apiserver.NewMetricServer(listener, apiserver.WithVisitsResetPeriod(20*time.Millisecond)).Run(ctx)
		}()

		Eventually(metrics.UniqueVisitsPerWeek.Count, 5*time.Second, 10*time.Millisecond).Should(BeZero())
	})
})
