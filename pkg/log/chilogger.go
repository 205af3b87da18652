package log

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/siteplan/duration-planner/pkg/requestid"
	"go.uber.org/zap"
)

// quietPaths are polled by probes and logged at debug level only.
var quietPaths = map[string]bool{
	"/health": true,
	"/help":   true,
}

// Logger logs one line per HTTP request with its route, status, size and
// latency. An undefined estimate (422) is a normal calculator outcome and is
// logged at info level.
func Logger(l *zap.Logger, name string) func(next http.Handler) http.Handler {
	if l == nil {
		panic("log.Logger received a nil *zap.Logger")
	}

	logger := l.WithOptions(zap.AddCallerSkip(1)).Named(name)

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()

			defer func() {
				status := ww.Status()
				fields := []zap.Field{
					zap.String("type", "http_request"),
					zap.String("request_id", requestid.FromRequest(r)),
					zap.String("http_method", r.Method),
					zap.String("http_route", routePattern(r)),
					zap.String("http_query", r.URL.RawQuery),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Int("http_status_code", status),
					zap.String("http_status_text", statusLabel(status)),
					zap.Int("response_bytes", ww.BytesWritten()),
					zap.Duration("latency", time.Since(started)),
				}

				msg := fmt.Sprintf("%s %s", r.Method, r.URL.Path)
				switch {
				case status >= 500:
					logger.Error(msg, fields...)
				case status == http.StatusUnprocessableEntity:
					logger.Info(msg, fields...)
				case status >= 400:
					logger.Warn(msg, fields...)
				case r.Method == http.MethodGet && quietPaths[r.URL.Path]:
					logger.Debug(msg, fields...)
				default:
					logger.Info(msg, fields...)
				}
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func statusLabel(status int) string {
	switch {
	case status >= 100 && status < 300:
		return fmt.Sprintf("%d OK", status)
	case status >= 300 && status < 400:
		return fmt.Sprintf("%d Redirect", status)
	case status >= 400 && status < 500:
		return fmt.Sprintf("%d Client Error", status)
	case status >= 500:
		return fmt.Sprintf("%d Server Error", status)
	default:
		return fmt.Sprintf("%d Unknown", status)
	}
}
