package web_test

import (
	"strings"
	"testing"
	"todoapp/config"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *web.Renderer {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "todoapp"

	renderer, err := web.New(cfg)
	require.NoError(t, err)

	return renderer
}

func TestRenderer_TodoList(t *testing.T) {
	renderer := newRenderer(t)

	html, err := renderer.TodoList(dto.TodosResponse{
		{ID: "a", Content: "buy milk"},
		{ID: "b", Content: "walk dog"},
	})
	require.NoError(t, err)

	out := string(html)
	assert.True(t, strings.HasPrefix(out, `<ul id="todo-list">`))
	assert.Contains(t, out, `<li id="todo-a">`)
	assert.Contains(t, out, `value="walk dog"`)
	assert.Less(t, strings.Index(out, "todo-a"), strings.Index(out, "todo-b"))
	assert.NotContains(t, out, "hx-swap-oob")
}

func TestRenderer_EmptyList(t *testing.T) {
	renderer := newRenderer(t)

	html, err := renderer.TodoList(dto.TodosResponse{})
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<li")
}

func TestRenderer_LiveTodoList(t *testing.T) {
	renderer := newRenderer(t)

	html, err := renderer.LiveTodoList(dto.TodosResponse{{ID: "a", Content: "buy milk"}})
	require.NoError(t, err)
	assert.Contains(t, string(html), `hx-swap-oob="true"`)
}

func TestRenderer_TodoListItem_EscapesContent(t *testing.T) {
	renderer := newRenderer(t)

	html, err := renderer.TodoListItem(dto.TodoResponse{ID: "a", Content: `<script>alert("x")</script>`})
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `hx-patch="/todo/a"`)
	assert.NotContains(t, out, "<script>")
}

func TestRenderer_Index(t *testing.T) {
	renderer := newRenderer(t)

	html, err := renderer.Index()
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "<title>todoapp</title>")
	assert.Contains(t, out, `ws-connect="/live"`)
	assert.Contains(t, out, `hx-post="/todo"`)
}

// The list is only ever replaced whole (live push or refresh), so a create that races a live
// update can not leave the new item in the list twice.
func TestRenderer_IndexCreateDoesNotAppend(t *testing.T) {
	renderer := newRenderer(t)

	html, err := renderer.Index()
	require.NoError(t, err)

	out := string(html)
	assert.NotContains(t, out, `hx-swap="beforeend"`)
	assert.NotContains(t, out, `hx-target="#todo-list"`)
	assert.Contains(t, out, `hx-post="/todo" hx-ext="json-enc" hx-swap="none"`)
	assert.Contains(t, out, `hx-trigger="load, todo-refresh from:body" hx-swap="innerHTML"`)
}
