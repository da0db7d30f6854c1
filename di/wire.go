//go:build wireinject
// +build wireinject

package di

import (
	"todoapp/config"
	"todoapp/infras/otel"
	"todoapp/infras/postgres"
	"todoapp/infras/redis"
	"todoapp/internal/handlers/health"
	"todoapp/internal/handlers/live"
	"todoapp/internal/handlers/page"
	todoHandler "todoapp/internal/handlers/todo"
	"todoapp/shared/cache"
	"todoapp/transport/http"
	"todoapp/transport/http/middleware"
	"todoapp/transport/http/router"
	"todoapp/web"

	todoEvent "todoapp/internal/domains/todo/event"
	todoRepository "todoapp/internal/domains/todo/repository"
	todoService "todoapp/internal/domains/todo/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	web.New,
	health.NewState,
)

var todoDomain = wire.NewSet(
	todoRepository.New,
	todoEvent.New,
	wire.Bind(new(todoEvent.Publisher), new(*todoEvent.RedisFeed)),
	wire.Bind(new(todoEvent.Subscriber), new(*todoEvent.RedisFeed)),
	todoService.New,
)

var domains = wire.NewSet(
	todoDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	todoHandler.New,
	live.NewHub,
	live.New,
	page.New,
	health.New,
	router.New,
)

func InitializeService() (*http.HTTP, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return nil, nil, nil
}
