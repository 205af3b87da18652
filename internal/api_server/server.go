package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/siteplan/duration-planner/internal/config"
	handlers "github.com/siteplan/duration-planner/internal/handlers/v1alpha1"
	"github.com/siteplan/duration-planner/internal/service"
	"github.com/siteplan/duration-planner/pkg/log"
	"github.com/siteplan/duration-planner/pkg/metrics"
	"github.com/siteplan/duration-planner/pkg/middleware"
	"go.uber.org/zap"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	listener net.Listener
}

// New returns a new instance of a duration-planner server.
func New(
	cfg *config.Config,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:      cfg,
		listener: listener,
	}
}

// Router builds the handler tree with the middleware stack.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.Service.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{"Content-Disposition", "X-Request-Id"},
			MaxAge:         300,
		}),
		chiMiddleware.RequestID,
		middleware.RequestID,
		log.Logger(zap.L(), "router"),
		chiMiddleware.Recoverer,
	)

	h := handlers.NewServiceHandler(
		service.NewEstimationService(),
		service.NewReportService(),
	)
	h.RegisterRoutes(router)

	return router
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	srv := http.Server{
		Addr:              s.cfg.Service.Address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
