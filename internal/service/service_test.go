package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"todoTracker/internal/models/todo"
	"todoTracker/internal/repository"
	"todoTracker/internal/service"
	"todoTracker/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockTodoRepository - мок репозитория
type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) Create(ctx context.Context, t *todo.Todo) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTodoRepository) GetByID(ctx context.Context, owner string, id primitive.ObjectID) (*todo.Todo, error) {
	args := m.Called(ctx, owner, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.Todo), args.Error(1)
}

func (m *MockTodoRepository) List(ctx context.Context, owner string, filter repository.ListFilter) ([]*todo.Todo, error) {
	args := m.Called(ctx, owner, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*todo.Todo), args.Error(1)
}

func (m *MockTodoRepository) Update(ctx context.Context, owner string, id primitive.ObjectID, fields repository.UpdateFields) (*todo.Todo, error) {
	args := m.Called(ctx, owner, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.Todo), args.Error(1)
}

func (m *MockTodoRepository) Delete(ctx context.Context, owner string, id primitive.ObjectID) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

func (m *MockTodoRepository) SetStatus(ctx context.Context, owner string, id primitive.ObjectID, status todo.Status) (*todo.Todo, error) {
	args := m.Called(ctx, owner, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.Todo), args.Error(1)
}

func (m *MockTodoRepository) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func strPtr(s string) *string {
	return &s
}

// TestCreateTodo_OwnerForced: владелец всегда из аргумента, статус по умолчанию
func TestCreateTodo_OwnerForced(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	svc := service.NewTodoService(mockRepo)

	var captured *todo.Todo
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*todo.Todo")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*todo.Todo)
		}).
		Return(nil)

	created, err := svc.CreateTodo(context.Background(), "user-1", validation.Input{
		Title: strPtr("Buy milk"),
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", created.Owner)
	assert.Equal(t, todo.StatusPending, created.Status)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, captured, created)

	mockRepo.AssertExpectations(t)
}

func TestCreateTodo_ValidationError(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	svc := service.NewTodoService(mockRepo)

	_, err := svc.CreateTodo(context.Background(), "user-1", validation.Input{
		Title: strPtr("   "),
	})
	require.Error(t, err)

	var busErr *service.BusinessError
	require.ErrorAs(t, err, &busErr)
	assert.Equal(t, "VALIDATION_ERROR", busErr.Code)

	// до репозитория дойти не должны
	mockRepo.AssertNotCalled(t, "Create")
}

// TestListTodos_InvalidStatusIgnored: невалидный фильтр - не ошибка
func TestListTodos_InvalidStatusIgnored(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	svc := service.NewTodoService(mockRepo)

	mockRepo.On("List", mock.Anything, "user-1", repository.ListFilter{
		Status: nil,
		Limit:  service.DefaultLimit,
		Skip:   0,
	}).Return([]*todo.Todo{}, nil)

	_, err := svc.ListTodos(context.Background(), "user-1", "bogus", 0, 0)
	require.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestListTodos_ValidStatusFilter(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	svc := service.NewTodoService(mockRepo)

	completed := todo.StatusCompleted
	mockRepo.On("List", mock.Anything, "user-1", repository.ListFilter{
		Status: &completed,
		Limit:  10,
		Skip:   5,
	}).Return([]*todo.Todo{}, nil)

	_, err := svc.ListTodos(context.Background(), "user-1", "completed", 10, 5)
	require.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

// TestListTodos_LimitClamped: limit ограничен сверху, отрицательный skip обнуляется
func TestListTodos_LimitClamped(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	svc := service.NewTodoService(mockRepo)

	mockRepo.On("List", mock.Anything, "user-1", repository.ListFilter{
		Limit: service.MaxLimit,
		Skip:  0,
	}).Return([]*todo.Todo{}, nil)

	_, err := svc.ListTodos(context.Background(), "user-1", "", 5000, -3)
	require.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestGetTodoByID_NotFound(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	svc := service.NewTodoService(mockRepo)

	id := primitive.NewObjectID()
	mockRepo.On("GetByID", mock.Anything, "user-1", id).Return(nil, repository.ErrNotFound)

	_, err := svc.GetTodoByID(context.Background(), "user-1", id)

	var busErr *service.BusinessError
	require.ErrorAs(t, err, &busErr)
	assert.Equal(t, "NOT_FOUND", busErr.Code)
}

func TestUpdateTodo_PartialFields(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	svc := service.NewTodoService(mockRepo)

	id := primitive.NewObjectID()
	title := "new title"
	expected := &todo.Todo{ID: id, Title: title, Owner: "user-1", Status: todo.StatusPending}

	mockRepo.On("Update", mock.Anything, "user-1", id, repository.UpdateFields{
		Title: &title,
	}).Return(expected, nil)

	updated, err := svc.UpdateTodo(context.Background(), "user-1", id, validation.Input{
		Title: strPtr("  new title  "),
	})
	require.NoError(t, err)
	assert.Equal(t, expected, updated)

	mockRepo.AssertExpectations(t)
}

func TestUpdateTodo_InvalidStatus(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	svc := service.NewTodoService(mockRepo)

	_, err := svc.UpdateTodo(context.Background(), "user-1", primitive.NewObjectID(), validation.Input{
		Status: strPtr("archived"),
	})

	var busErr *service.BusinessError
	require.ErrorAs(t, err, &busErr)
	assert.Equal(t, "VALIDATION_ERROR", busErr.Code)

	mockRepo.AssertNotCalled(t, "Update")
}

func TestDeleteTodo_NotFound(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	svc := service.NewTodoService(mockRepo)

	id := primitive.NewObjectID()
	mockRepo.On("Delete", mock.Anything, "user-1", id).Return(repository.ErrNotFound)

	err := svc.DeleteTodo(context.Background(), "user-1", id)

	var busErr *service.BusinessError
	require.ErrorAs(t, err, &busErr)
	assert.Equal(t, "NOT_FOUND", busErr.Code)
}

// TestToggleStatus_Successors: фиксированное отображение следующего статуса
func TestToggleStatus_Successors(t *testing.T) {
	cases := []struct {
		current todo.Status
		next    todo.Status
	}{
		{todo.StatusPending, todo.StatusInProgress},
		{todo.StatusInProgress, todo.StatusCompleted},
		{todo.StatusCompleted, todo.StatusPending},
		{todo.Status("garbage"), todo.StatusPending},
	}

	for _, tc := range cases {
		mockRepo := new(MockTodoRepository)
		svc := service.NewTodoService(mockRepo)

		id := primitive.NewObjectID()
		current := &todo.Todo{ID: id, Owner: "user-1", Status: tc.current, CreatedAt: time.Now()}
		toggled := &todo.Todo{ID: id, Owner: "user-1", Status: tc.next, CreatedAt: current.CreatedAt}

		mockRepo.On("GetByID", mock.Anything, "user-1", id).Return(current, nil)
		mockRepo.On("SetStatus", mock.Anything, "user-1", id, tc.next).Return(toggled, nil)

		result, err := svc.ToggleStatus(context.Background(), "user-1", id)
		require.NoError(t, err, "current=%s", tc.current)
		assert.Equal(t, tc.next, result.Status)

		mockRepo.AssertExpectations(t)
	}
}

func TestToggleStatus_NotFound(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	svc := service.NewTodoService(mockRepo)

	id := primitive.NewObjectID()
	mockRepo.On("GetByID", mock.Anything, "user-1", id).Return(nil, repository.ErrNotFound)

	_, err := svc.ToggleStatus(context.Background(), "user-1", id)

	var busErr *service.BusinessError
	require.ErrorAs(t, err, &busErr)
	assert.Equal(t, "NOT_FOUND", busErr.Code)

	mockRepo.AssertNotCalled(t, "SetStatus")
}

func TestToggleStatus_StorageError(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	svc := service.NewTodoService(mockRepo)

	id := primitive.NewObjectID()
	mockRepo.On("GetByID", mock.Anything, "user-1", id).Return(nil, errors.New("connection reset"))

	_, err := svc.ToggleStatus(context.Background(), "user-1", id)
	require.Error(t, err)

	var busErr *service.BusinessError
	assert.False(t, errors.As(err, &busErr))
}
