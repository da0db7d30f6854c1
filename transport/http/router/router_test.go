package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"todoapp/config"
	"todoapp/infras/otel/mocks"
	todoMocks "todoapp/internal/domains/todo/mocks"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/internal/handlers/health"
	"todoapp/internal/handlers/live"
	"todoapp/internal/handlers/page"
	"todoapp/internal/handlers/todo"
	"todoapp/transport/http/middleware"
	"todoapp/transport/http/router"
	"todoapp/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newHandler(t *testing.T) (http.Handler, *todoMocks.MockTodoService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := todoMocks.NewMockTodoService(ctrl)

	cfg := &config.Config{}
	cfg.App.Name = "todoapp"
	cfg.Server.RequestTimeoutSeconds = 10
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"*"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete}
	cfg.App.CORS.AllowedHeaders = []string{"*"}

	view, err := web.New(cfg)
	require.NoError(t, err)

	otl := mocks.NewOtel()
	state := health.NewState()
	state.Set(health.ServerStateReady)

	hub := live.NewHub(cfg, svc, view, todoMocks.NewMockSubscriber(ctrl), otl)

	r := router.New(cfg, middleware.NewAppMiddleware(otl, cfg, nil), router.DomainHandlers{
		Todo:   todo.New(svc, view, otl),
		Live:   live.New(hub, otl),
		Page:   page.New(view),
		Health: health.New(state),
	})

	return r.Handler(), svc
}

func TestRouter_Routes(t *testing.T) {
	handler, svc := newHandler(t)

	svc.EXPECT().
		List(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(dto.TodosResponse{}, nil)

	tests := []struct {
		name     string
		method   string
		target   string
		wantCode int
	}{
		{"index", http.MethodGet, "/", http.StatusOK},
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"list", http.MethodGet, "/todo", http.StatusOK},
		{"swagger", http.MethodGet, "/swagger/doc.json", http.StatusOK},
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound},
		{"method not allowed", http.MethodPut, "/todo/a", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	handler, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/todo/a", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}
