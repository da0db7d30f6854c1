package todo

import (
	"net/http"
	"todoapp/infras/otel"
	"todoapp/internal/domains/todo/model"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/internal/domains/todo/service"
	"todoapp/shared/constant"
	gDto "todoapp/shared/dto"
	"todoapp/shared/validator"
	"todoapp/transport/http/response"
	"todoapp/web"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const sortableFields = "omitempty,oneof=" + model.FieldContent + " " + constant.FieldCreatedAt + " " + constant.FieldModifiedAt

type Handler struct {
	service service.Todo
	view    *web.Renderer
	otel    otel.Otel
}

func New(service service.Todo, view *web.Renderer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		view:    view,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/todo", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTodos)
		routerGroup.Post("/", handler.CreateTodo)
		routerGroup.Patch("/{id}", handler.UpdateTodo)
		routerGroup.Delete("/{id}", handler.DeleteTodo)
	})
}

// GetTodos lists the todo collection.
// @Summary Get all todos
// @Description Retrieve the todo collection. Without query parameters the whole collection is returned.
// @Description Requests carrying HX-Request: true receive the rendered todo_list fragment instead.
// @Tags Todo
// @Produce json
// @Produce html
// @Param pagination query gDto.QueryParams false "Pagination and sorting parameters"
// @Param content query string false "Filter by content"
// @Success 200 {object} response.Data[dto.TodosResponse] "List of todos"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /todo [get]
func (handler *Handler) GetTodos(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodos")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	if err := queryParams.FromRequest(r, false); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("query", r.URL.RawQuery).Msg("invalid list todos query")

		response.WithError(w, err)

		return
	}

	if err := validator.ValidateVar(queryParams.SortBy, sortableFields); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if content := r.URL.Query().Get(model.FieldContent); content != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldContent,
			Operator: gDto.FilterOperatorLike,
			Value:    content,
			Table:    model.TableName,
		})
	}

	todos, err := handler.service.List(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get todos")

		response.WithError(w, err)

		return
	}

	scope.SetAttribute("todo.count", len(todos))

	if wantsFragment(r) {
		handler.fragment(w, func() ([]byte, error) { return handler.view.TodoList(todos) })

		return
	}

	response.WithJSON(w, http.StatusOK, todos)
}

// CreateTodo handles the creation of a new todo.
// @Summary Create a new todo
// @Description Create a todo with the given content. The store assigns its id.
// @Description Requests carrying HX-Request: true receive the rendered todo_list_item fragment instead.
// @Tags Todo
// @Accept json
// @Produce json
// @Produce html
// @Param request body dto.CreateTodoRequest true "Todo content"
// @Success 200 {object} response.Data[dto.TodoResponse] "Created todo"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /todo [post]
func (handler *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTodo")
	defer scope.End()

	var req dto.CreateTodoRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid create todo request")

		response.WithError(w, err)

		return
	}

	todo, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create todo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todo created " + todo.ID)

	if wantsFragment(r) {
		handler.fragment(w, func() ([]byte, error) { return handler.view.TodoListItem(todo) })

		return
	}

	response.WithJSON(w, http.StatusOK, todo)
}

// UpdateTodo replaces the content of a todo.
// @Summary Update a todo
// @Description Replace the content of the todo with the given id. The id never changes.
// @Description Requests carrying HX-Request: true receive the rendered todo_list_item fragment instead.
// @Tags Todo
// @Accept json
// @Produce json
// @Produce html
// @Param id path string true "Todo ID"
// @Param request body dto.UpdateTodoRequest true "New content"
// @Success 200 {object} response.Data[dto.TodoResponse] "Updated todo"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /todo/{id} [patch]
func (handler *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTodo")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateTodoRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("id", id).Msg("invalid update todo request")

		response.WithError(w, err)

		return
	}

	todo, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update todo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todo updated " + id)

	if wantsFragment(r) {
		handler.fragment(w, func() ([]byte, error) { return handler.view.TodoListItem(todo) })

		return
	}

	response.WithJSON(w, http.StatusOK, todo)
}

// DeleteTodo removes a todo and echoes it back. The echo is JSON for every client; htmx swaps
// the item out on its own.
// @Summary Delete a todo
// @Description Delete the todo with the given id and return it.
// @Tags Todo
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} response.Data[dto.TodoResponse] "Removed todo"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /todo/{id} [delete]
func (handler *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTodo")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	todo, err := handler.service.Delete(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete todo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todo deleted " + id)

	response.WithJSON(w, http.StatusOK, todo)
}

func (handler *Handler) fragment(w http.ResponseWriter, render func() ([]byte, error)) {
	html, err := render()
	if err != nil {
		log.Error().Err(err).Msg("failed to render fragment")

		response.WithError(w, err)

		return
	}

	response.WithHTML(w, http.StatusOK, html)
}

func wantsFragment(r *http.Request) bool {
	return r.Header.Get(constant.RequestHeaderHXRequest) == "true"
}
