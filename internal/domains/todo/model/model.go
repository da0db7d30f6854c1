package model

import "todoapp/shared/model"

const (
	TableName  = "todos"
	EntityName = "todo"

	FieldID      = "id"
	FieldContent = "content"
)

// Todo is one record of the todos table. Content is the only field a caller changes.
type Todo struct {
	ID      string `db:"id"`
	Content string `db:"content"`
	model.Metadata
}
