package middleware

import (
	"fmt"
	"net/http"
	"todoapp/config"
	"todoapp/infras/otel"
	"todoapp/shared/cache"

	"github.com/felixge/httpsnoop"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	AccessLog(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

// Tracing opens the request span. httpsnoop keeps Hijacker and Flusher intact, so the live
// websocket upgrade passes through.
func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, fmt.Sprintf("%s %s", r.Method, r.URL.Path))
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": r.UserAgent(),
			"http.host":       r.Host,
			"http.source":     r.RemoteAddr,
			"http.request_id": chiMiddleware.GetReqID(ctx),
		})

		metrics := httpsnoop.CaptureMetrics(next, w, r.WithContext(ctx))

		if routeCtx := chi.RouteContext(ctx); routeCtx != nil {
			scope.SetAttribute("http.route", routeCtx.RoutePattern())
		}

		scope.SetAttribute("http.status_code", metrics.Code)

		if metrics.Code >= http.StatusInternalServerError {
			scope.TraceError(fmt.Errorf("%s %s: %d", r.Method, r.URL.Path, metrics.Code))
		}
	})
}

func (a *appMiddleware) AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics := httpsnoop.CaptureMetrics(next, w, r)

		event := log.Info()
		if metrics.Code >= http.StatusInternalServerError {
			event = log.Error()
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", metrics.Code).
			Int64("bytes", metrics.Written).
			Dur("duration", metrics.Duration).
			Str("request_id", chiMiddleware.GetReqID(r.Context())).
			Str("user_agent", r.UserAgent()).
			Msg("handled")
	})
}
