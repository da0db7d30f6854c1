package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Todo=MockTodoService

import (
	"context"
	"fmt"
	"todoapp/infras/otel"
	"todoapp/internal/domains/todo/event"
	"todoapp/internal/domains/todo/model"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/internal/domains/todo/repository"
	"todoapp/shared"
	"todoapp/shared/constant"
	gDto "todoapp/shared/dto"
	"todoapp/shared/failure"

	"github.com/rs/zerolog/log"
)

const messageNotFound = "todo not found"

// Todo is the todo collection. Every error it returns is a *failure.Failure: NotFound for an
// unknown id, StoreError for anything the store rejected.
type Todo interface {
	List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.TodosResponse, error)
	Create(ctx context.Context, req dto.CreateTodoRequest) (dto.TodoResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateTodoRequest) (dto.TodoResponse, error)
	Delete(ctx context.Context, id string) (dto.TodoResponse, error)
}

type serviceImpl struct {
	repo      repository.Todo
	publisher event.Publisher
	otel      otel.Otel
}

func New(repo repository.Todo, publisher event.Publisher, otel otel.Otel) Todo {
	return &serviceImpl{
		repo:      repo,
		publisher: publisher,
		otel:      otel,
	}
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.TodosResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list todos")

		return res, failure.StoreError(fmt.Errorf("failed to list todos: %w", err))
	}

	res.FromModels(models)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTodoRequest) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	todo, err := s.repo.Insert(ctx, req.ToModel())
	if err != nil {
		log.Error().Err(err).Msg("failed to create todo")

		return res, failure.StoreError(fmt.Errorf("failed to create todo: %w", err))
	}

	res.FromModel(todo)
	s.publish(ctx, event.ActionCreated, res)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateTodoRequest) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	todo, found, err := s.repo.Update(ctx, shared.TransformFields(req), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update todo")

		return res, failure.StoreError(fmt.Errorf("failed to update todo: %w", err))
	}

	if !found {
		return res, failure.NotFound(messageNotFound) // nolint:wrapcheck
	}

	res.FromModel(todo)
	s.publish(ctx, event.ActionUpdated, res)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	todo, found, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete todo")

		return res, failure.StoreError(fmt.Errorf("failed to delete todo: %w", err))
	}

	if !found {
		return res, failure.NotFound(messageNotFound) // nolint:wrapcheck
	}

	res.FromModel(todo)
	s.publish(ctx, event.ActionDeleted, res)

	return res, nil
}

// publish never fails the operation: the mutation is already committed.
func (s *serviceImpl) publish(ctx context.Context, action event.Action, todo dto.TodoResponse) {
	if err := s.publisher.Publish(ctx, event.Change{Action: action, Todo: todo}); err != nil {
		log.Warn().Err(err).Str("action", string(action)).Str("id", todo.ID).Msg("failed to publish todo change")
	}
}
