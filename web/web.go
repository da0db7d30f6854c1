// Package web renders the HTML surface: the index page and the todo fragments
// swapped in by htmx, both over plain requests and over the live websocket.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"todoapp/config"
	"todoapp/internal/domains/todo/model/dto"
)

const (
	templateIndex        = "index"
	templateTodoList     = "todo_list"
	templateTodoListItem = "todo_list_item"

	LivePath = "/live"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	templates *template.Template
	title     string
}

type indexData struct {
	Title    string
	LivePath string
}

type todoListData struct {
	Todos dto.TodosResponse
	OOB   bool
}

func New(cfg *config.Config) (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		templates: templates,
		title:     cfg.App.Name,
	}, nil
}

func (r *Renderer) Index() ([]byte, error) {
	return r.render(templateIndex, indexData{Title: r.title, LivePath: LivePath})
}

func (r *Renderer) TodoList(todos dto.TodosResponse) ([]byte, error) {
	return r.render(templateTodoList, todoListData{Todos: todos})
}

// LiveTodoList renders the list as an out-of-band swap, the form the htmx websocket extension expects.
func (r *Renderer) LiveTodoList(todos dto.TodosResponse) ([]byte, error) {
	return r.render(templateTodoList, todoListData{Todos: todos, OOB: true})
}

func (r *Renderer) TodoListItem(todo dto.TodoResponse) ([]byte, error) {
	return r.render(templateTodoListItem, todo)
}

func (r *Renderer) render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer

	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}

	return buf.Bytes(), nil
}
