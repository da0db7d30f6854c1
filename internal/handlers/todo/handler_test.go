package todo_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"todoapp/config"
	"todoapp/infras/otel/mocks"
	todoMocks "todoapp/internal/domains/todo/mocks"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/internal/handlers/todo"
	"todoapp/shared/constant"
	gDto "todoapp/shared/dto"
	"todoapp/shared/failure"
	"todoapp/web"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupRouter(t *testing.T) (*chi.Mux, *todoMocks.MockTodoService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := todoMocks.NewMockTodoService(ctrl)

	cfg := &config.Config{}
	cfg.App.Name = "todoapp"

	view, err := web.New(cfg)
	require.NoError(t, err)

	handler := todo.New(svc, view, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func serve(router http.Handler, method, target, body string, htmx bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	if htmx {
		req.Header.Set(constant.RequestHeaderHXRequest, "true")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_GetTodos(t *testing.T) {
	todos := dto.TodosResponse{{ID: "a", Content: "buy milk"}}

	t.Run("json", func(t *testing.T) {
		router, svc := setupRouter(t)

		svc.EXPECT().
			List(gomock.Any(), gDto.QueryParams{}, gomock.Any()).
			Return(todos, nil)

		rec := serve(router, http.MethodGet, "/todo", "", false)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":[{"id":"a","content":"buy milk","created_at":"","modified_at":""}]}`, rec.Body.String())
	})

	t.Run("empty store", func(t *testing.T) {
		router, svc := setupRouter(t)

		svc.EXPECT().
			List(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(dto.TodosResponse{}, nil)

		rec := serve(router, http.MethodGet, "/todo", "", false)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
	})

	t.Run("htmx fragment", func(t *testing.T) {
		router, svc := setupRouter(t)

		svc.EXPECT().
			List(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(todos, nil)

		rec := serve(router, http.MethodGet, "/todo", "", true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, constant.ContentTypeHTML, rec.Header().Get(constant.RequestHeaderContentType))
		assert.Contains(t, rec.Body.String(), `<ul id="todo-list">`)
		assert.Contains(t, rec.Body.String(), `value="buy milk"`)
	})

	t.Run("sorting and content filter are passed through", func(t *testing.T) {
		router, svc := setupRouter(t)

		svc.EXPECT().
			List(gomock.Any(), gDto.QueryParams{SortBy: "created_at", SortDir: gDto.SortDirDesc}, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.TodosResponse, error) {
				require.Len(t, filter.Filters, 1)
				assert.Equal(t, "milk", filter.Filters[0].(gDto.Filter).Value)

				return todos, nil
			})

		rec := serve(router, http.MethodGet, "/todo?sort_by=created_at&sort_dir=desc&content=milk", "", false)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown sort column", func(t *testing.T) {
		router, _ := setupRouter(t)

		rec := serve(router, http.MethodGet, "/todo?sort_by=password", "", false)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	for name, tc := range map[string]struct {
		query   string
		message string
	}{
		"unknown sort direction": {query: "sort_by=content&sort_dir=sideways", message: "invalid sort_dir parameter"},
		"malformed page":         {query: "page=abc", message: "invalid page parameter"},
		"negative limit":         {query: "limit=-5", message: "invalid limit parameter"},
	} {
		t.Run(name, func(t *testing.T) {
			router, _ := setupRouter(t)

			rec := serve(router, http.MethodGet, "/todo?"+tc.query, "", false)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"`+tc.message+`"}`, rec.Body.String())
		})
	}

	t.Run("store error", func(t *testing.T) {
		router, svc := setupRouter(t)

		svc.EXPECT().
			List(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, failure.StoreError(errors.New("connection refused")))

		rec := serve(router, http.MethodGet, "/todo", "", false)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"connection refused"}`, rec.Body.String())
	})
}

func TestHandler_CreateTodo(t *testing.T) {
	created := dto.TodoResponse{ID: "a", Content: "buy milk"}

	t.Run("json", func(t *testing.T) {
		router, svc := setupRouter(t)

		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateTodoRequest) (dto.TodoResponse, error) {
				require.NotNil(t, req.Content)
				assert.Equal(t, "buy milk", *req.Content)

				return created, nil
			})

		rec := serve(router, http.MethodPost, "/todo", `{"content":"buy milk"}`, false)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":{"id":"a","content":"buy milk","created_at":"","modified_at":""}}`, rec.Body.String())
	})

	t.Run("htmx fragment", func(t *testing.T) {
		router, svc := setupRouter(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil)

		rec := serve(router, http.MethodPost, "/todo", `{"content":"buy milk"}`, true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Body.String(), `<li id="todo-a">`))
	})

	t.Run("missing content", func(t *testing.T) {
		router, _ := setupRouter(t)

		rec := serve(router, http.MethodPost, "/todo", `{}`, false)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"content is required"}`, rec.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		router, _ := setupRouter(t)

		rec := serve(router, http.MethodPost, "/todo", `{"content":`, false)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store rejection", func(t *testing.T) {
		router, svc := setupRouter(t)

		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(dto.TodoResponse{}, failure.StoreError(errors.New("read only")))

		rec := serve(router, http.MethodPost, "/todo", `{"content":"buy milk"}`, false)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandler_UpdateTodo(t *testing.T) {
	t.Run("known id", func(t *testing.T) {
		router, svc := setupRouter(t)

		svc.EXPECT().
			Update(gomock.Any(), "a", gomock.Any()).
			Return(dto.TodoResponse{ID: "a", Content: "buy bread"}, nil)

		rec := serve(router, http.MethodPatch, "/todo/a", `{"content":"buy bread"}`, false)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"content":"buy bread"`)
	})

	t.Run("htmx fragment", func(t *testing.T) {
		router, svc := setupRouter(t)

		svc.EXPECT().
			Update(gomock.Any(), "a", gomock.Any()).
			Return(dto.TodoResponse{ID: "a", Content: "buy bread"}, nil)

		rec := serve(router, http.MethodPatch, "/todo/a", `{"content":"buy bread"}`, true)

		assert.Equal(t, constant.ContentTypeHTML, rec.Header().Get(constant.RequestHeaderContentType))
		assert.Contains(t, rec.Body.String(), `value="buy bread"`)
	})

	t.Run("unknown id", func(t *testing.T) {
		router, svc := setupRouter(t)

		svc.EXPECT().
			Update(gomock.Any(), "missing", gomock.Any()).
			Return(dto.TodoResponse{}, failure.NotFound("todo not found"))

		rec := serve(router, http.MethodPatch, "/todo/missing", `{"content":"buy bread"}`, false)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"todo not found"}`, rec.Body.String())
	})

	t.Run("null content", func(t *testing.T) {
		router, _ := setupRouter(t)

		rec := serve(router, http.MethodPatch, "/todo/a", `{"content":null}`, false)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_DeleteTodo(t *testing.T) {
	t.Run("echoes removed todo as json even for htmx", func(t *testing.T) {
		router, svc := setupRouter(t)

		svc.EXPECT().
			Delete(gomock.Any(), "a").
			Return(dto.TodoResponse{ID: "a", Content: "buy milk"}, nil)

		rec := serve(router, http.MethodDelete, "/todo/a", "", true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))
		assert.Contains(t, rec.Body.String(), `"id":"a"`)
	})

	t.Run("unknown id", func(t *testing.T) {
		router, svc := setupRouter(t)

		svc.EXPECT().
			Delete(gomock.Any(), "a").
			Return(dto.TodoResponse{}, failure.NotFound("todo not found"))

		rec := serve(router, http.MethodDelete, "/todo/a", "", false)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
