package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"todoapp/infras/otel"
	"todoapp/infras/postgres"
	"todoapp/internal/domains/todo/model"
	gDto "todoapp/shared/dto"
	gRepo "todoapp/shared/repository"
)

// Todo is the todos store. Update and Delete report found=false instead of an error when
// no row has the given id.
type Todo interface {
	Insert(ctx context.Context, todo model.Todo) (model.Todo, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Todo, error)
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) (model.Todo, bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (model.Todo, bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Todo]
}

func New(db *postgres.Connection, otel otel.Otel) Todo {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Todo](model.EntityName, model.TableName, db, otel),
	}
}
