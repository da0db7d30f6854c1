package dto

import (
	"todoapp/internal/domains/todo/model"
	gDto "todoapp/shared/dto"
	gModel "todoapp/shared/model"
	"todoapp/shared/timezone"

	"github.com/google/uuid"
)

// CreateTodoRequest is the body of POST /todo. An empty string is valid content; a missing one is not.
type CreateTodoRequest struct {
	Content *string `json:"content" validate:"required"`
}

func (c *CreateTodoRequest) ToModel() model.Todo {
	now := timezone.Now()

	return model.Todo{
		ID:      uuid.NewString(),
		Content: *c.Content,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

// UpdateTodoRequest is the body of PATCH /todo/{id}. Content replaces the stored value wholesale.
type UpdateTodoRequest struct {
	Content *string `db:"content" json:"content" validate:"required"`
}

type TodoResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	gDto.Metadata
}

func (r *TodoResponse) FromModel(model model.Todo) {
	r.ID = model.ID
	r.Content = model.Content
	r.Metadata.FromModel(model.Metadata)
}

// TodosResponse is the collection; it is never nil so an empty store encodes as [].
type TodosResponse []TodoResponse

func (r *TodosResponse) FromModels(models []model.Todo) {
	res := make(TodosResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	*r = res
}
