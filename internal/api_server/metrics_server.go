package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/siteplan/duration-planner/pkg/metrics"
	"go.uber.org/zap"
)

const defaultVisitsResetPeriod = 7 * 24 * time.Hour

type MetricServerOption func(*MetricServer)

// WithVisitsResetPeriod changes how often the unique visitors gauge of the
// calculator page goes back to zero.
func WithVisitsResetPeriod(period time.Duration) MetricServerOption {
	return func(m *MetricServer) {
		if period > 0 {
			m.resetPeriod = period
		}
	}
}

// MetricServer exposes the prometheus registry on its own listener so the
// calculator port never serves /metrics.
type MetricServer struct {
	httpServer  *http.Server
	listener    net.Listener
	resetPeriod time.Duration
}

func NewMetricServer(listener net.Listener, opts ...MetricServerOption) *MetricServer {
	router := chi.NewRouter()
	router.Handle("/metrics", metrics.NewPrometheusMetricsHandler().Handler())

	m := &MetricServer{
		listener:    listener,
		resetPeriod: defaultVisitsResetPeriod,
		httpServer: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(m)
	}

	return m
}

func (m *MetricServer) Run(ctx context.Context) error {
	logger := zap.S().Named("metrics_server")

	go func() {
		<-ctx.Done()
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		m.httpServer.SetKeepAlivesEnabled(false)
		_ = m.httpServer.Shutdown(ctxTimeout)
		logger.Info("metrics server terminated")
	}()

	go m.resetVisits(ctx)

	logger.Infof("serving metrics: %s", m.listener.Addr())
	if err := m.httpServer.Serve(m.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (m *MetricServer) resetVisits(ctx context.Context) {
	ticker := time.NewTicker(m.resetPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			metrics.UniqueVisitsPerWeek.Reset()
			zap.S().Named("metrics_server").Infow("unique visits reset", "period", m.resetPeriod)
		case <-ctx.Done():
			return
		}
	}
}
