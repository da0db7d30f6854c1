package service_test

import (
	"context"
	"slices"
	"sync"
	"testing"
	"todoapp/infras/otel/mocks"
	"todoapp/internal/domains/todo/event"
	"todoapp/internal/domains/todo/model"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/internal/domains/todo/service"
	gDto "todoapp/shared/dto"
	"todoapp/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo keeps todos in insertion order and understands the id filter the service builds.
type memoryRepo struct {
	mu    sync.Mutex
	todos []model.Todo
}

func (r *memoryRepo) Insert(_ context.Context, todo model.Todo) (model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.todos = append(r.todos, todo)

	return todo, nil
}

func (r *memoryRepo) GetAll(_ context.Context, _ gDto.QueryParams, _ gDto.FilterGroup) ([]model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.todos), nil
}

func (r *memoryRepo) Update(_ context.Context, mod map[string]any, filter gDto.FilterGroup) (model.Todo, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(filter)
	if idx < 0 {
		return model.Todo{}, false, nil
	}

	if content, ok := mod[model.FieldContent].(string); ok {
		r.todos[idx].Content = content
	}

	return r.todos[idx], true, nil
}

func (r *memoryRepo) Delete(_ context.Context, filter gDto.FilterGroup) (model.Todo, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(filter)
	if idx < 0 {
		return model.Todo{}, false, nil
	}

	removed := r.todos[idx]
	r.todos = slices.Delete(r.todos, idx, idx+1)

	return removed, true, nil
}

func (r *memoryRepo) indexOf(filter gDto.FilterGroup) int {
	for _, f := range filter.Filters {
		byID, ok := f.(gDto.Filter)
		if !ok || byID.Field != model.FieldID {
			continue
		}

		return slices.IndexFunc(r.todos, func(todo model.Todo) bool { return todo.ID == byID.Value })
	}

	return -1
}

type recordingPublisher struct {
	mu      sync.Mutex
	changes []event.Change
}

func (p *recordingPublisher) Publish(_ context.Context, change event.Change) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.changes = append(p.changes, change)

	return nil
}

func newMemoryService() (service.Todo, *recordingPublisher) {
	publisher := &recordingPublisher{}

	return service.New(&memoryRepo{}, publisher, mocks.NewOtel()), publisher
}

func list(t *testing.T, svc service.Todo) dto.TodosResponse {
	t.Helper()

	todos, err := svc.List(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)

	return todos
}

func TestTodoCollection_Behaviour(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store lists an empty collection", func(t *testing.T) {
		svc, _ := newMemoryService()

		todos := list(t, svc)
		assert.NotNil(t, todos)
		assert.Empty(t, todos)
	})

	t.Run("create then list", func(t *testing.T) {
		svc, _ := newMemoryService()

		created, err := svc.Create(ctx, dto.CreateTodoRequest{Content: ptr("buy milk")})
		require.NoError(t, err)

		todos := list(t, svc)
		require.Len(t, todos, 1)
		assert.Equal(t, "buy milk", todos[0].Content)
		assert.NotEmpty(t, todos[0].ID)
		assert.Equal(t, created.ID, todos[0].ID)
	})

	t.Run("update changes only the addressed record", func(t *testing.T) {
		svc, _ := newMemoryService()

		first, err := svc.Create(ctx, dto.CreateTodoRequest{Content: ptr("buy milk")})
		require.NoError(t, err)
		second, err := svc.Create(ctx, dto.CreateTodoRequest{Content: ptr("walk dog")})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, first.ID, dto.UpdateTodoRequest{Content: ptr("buy bread")})
		require.NoError(t, err)
		assert.Equal(t, first.ID, updated.ID)

		todos := list(t, svc)
		require.Len(t, todos, 2)
		assert.Equal(t, first.ID, todos[0].ID)
		assert.Equal(t, "buy bread", todos[0].Content)
		assert.Equal(t, second.ID, todos[1].ID)
		assert.Equal(t, "walk dog", todos[1].Content)
	})

	t.Run("update unknown id leaves collection unchanged", func(t *testing.T) {
		svc, _ := newMemoryService()

		_, err := svc.Create(ctx, dto.CreateTodoRequest{Content: ptr("buy milk")})
		require.NoError(t, err)
		before := list(t, svc)

		_, err = svc.Update(ctx, "does-not-exist", dto.UpdateTodoRequest{Content: ptr("buy bread")})
		require.Error(t, err)
		assert.True(t, failure.IsNotFound(err))

		assert.Equal(t, before, list(t, svc))
	})

	t.Run("delete twice reports not found the second time", func(t *testing.T) {
		svc, _ := newMemoryService()

		created, err := svc.Create(ctx, dto.CreateTodoRequest{Content: ptr("buy milk")})
		require.NoError(t, err)

		removed, err := svc.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, removed.ID)
		assert.Empty(t, list(t, svc))

		_, err = svc.Delete(ctx, created.ID)
		require.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("create update delete leaves the store empty", func(t *testing.T) {
		svc, publisher := newMemoryService()

		created, err := svc.Create(ctx, dto.CreateTodoRequest{Content: ptr("buy milk")})
		require.NoError(t, err)
		_, err = svc.Update(ctx, created.ID, dto.UpdateTodoRequest{Content: ptr("buy bread")})
		require.NoError(t, err)
		_, err = svc.Delete(ctx, created.ID)
		require.NoError(t, err)

		assert.Empty(t, list(t, svc))

		actions := make([]event.Action, 0, len(publisher.changes))
		for _, change := range publisher.changes {
			actions = append(actions, change.Action)
		}

		assert.Equal(t, []event.Action{event.ActionCreated, event.ActionUpdated, event.ActionDeleted}, actions)
	})
}
