package router

import (
	"net/http"
	"time"
	"todoapp/config"
	_ "todoapp/docs" // swagger spec
	"todoapp/internal/handlers/health"
	"todoapp/internal/handlers/live"
	"todoapp/internal/handlers/page"
	"todoapp/internal/handlers/todo"
	"todoapp/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Todo   todo.Handler
	Live   live.Handler
	Page   page.Handler
	Health health.Handler
}

type Router struct {
	Config         *config.Config
	Middleware     middleware.AppMiddleware
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		r.Middleware.AccessLog,
		chiMiddleware.Recoverer,
	)

	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.Config.App.CORS.AllowedHeaders,
			AllowCredentials: r.Config.App.CORS.AllowCredentials,
			MaxAge:           r.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Use(r.Middleware.Tracing, r.Middleware.RateLimit())

	// Live sessions are long-lived, so the request timeout only covers the rest.
	r.DomainHandlers.Live.Router(router)

	router.Group(func(routerGroup chi.Router) {
		if timeout := r.Config.Server.RequestTimeoutSeconds; timeout > 0 {
			routerGroup.Use(chiMiddleware.Timeout(time.Duration(timeout) * time.Second))
		}

		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Page.Router(routerGroup)
		r.DomainHandlers.Todo.Router(routerGroup)

		routerGroup.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	})
}

// Handler builds the complete route tree.
func (r *Router) Handler() http.Handler {
	mux := chi.NewRouter()
	r.SetupRoutes(mux)

	return mux
}

func New(cfg *config.Config, appMiddleware middleware.AppMiddleware, domainHandlers DomainHandlers) Router {
	return Router{
		Config:         cfg,
		Middleware:     appMiddleware,
		DomainHandlers: domainHandlers,
	}
}
