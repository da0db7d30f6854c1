package mocks_test

import (
	"testing"
	"todoapp/internal/domains/todo/event"
	"todoapp/internal/domains/todo/mocks"
	"todoapp/internal/domains/todo/repository"
	"todoapp/internal/domains/todo/service"

	"go.uber.org/mock/gomock"
)

// The repository and service interfaces are both named Todo, so their mocks only coexist in
// this package under distinct names.
var (
	_ repository.Todo  = (*mocks.MockTodo)(nil)
	_ service.Todo     = (*mocks.MockTodoService)(nil)
	_ event.Publisher  = (*mocks.MockPublisher)(nil)
	_ event.Subscriber = (*mocks.MockSubscriber)(nil)
)

func TestMocksAreDistinct(t *testing.T) {
	ctrl := gomock.NewController(t)

	var repo any = mocks.NewMockTodo(ctrl)
	var svc any = mocks.NewMockTodoService(ctrl)

	if _, ok := repo.(service.Todo); ok {
		t.Error("repository mock must not satisfy the service interface")
	}

	if _, ok := svc.(repository.Todo); ok {
		t.Error("service mock must not satisfy the repository interface")
	}
}
