package inmemory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"todoTracker/internal/models/todo"
	"todoTracker/internal/repository"
	"todoTracker/internal/repository/todo/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTodo(owner, title string, status todo.Status, createdAt time.Time) *todo.Todo {
	return &todo.Todo{
		Title:     title,
		Status:    status,
		Owner:     owner,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestTodoStorage_Create(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	todoToCreate := newTodo("user-1", "Test Todo", todo.StatusPending, time.Now())
	err := storage.Create(ctx, todoToCreate)
	require.NoError(t, err)

	// id назначается хранилищем
	assert.False(t, todoToCreate.ID.IsZero())

	retrieved, err := storage.GetByID(ctx, "user-1", todoToCreate.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Todo", retrieved.Title)
}

// TestTodoStorage_OwnerScoping: чужой id неотличим от несуществующего
func TestTodoStorage_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	owned := newTodo("user-1", "mine", todo.StatusPending, time.Now())
	require.NoError(t, storage.Create(ctx, owned))

	_, err := storage.GetByID(ctx, "user-2", owned.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = storage.Update(ctx, "user-2", owned.ID, repository.UpdateFields{})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = storage.Delete(ctx, "user-2", owned.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = storage.SetStatus(ctx, "user-2", owned.ID, todo.StatusCompleted)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// сам владелец задачу видит
	_, err = storage.GetByID(ctx, "user-1", owned.ID)
	assert.NoError(t, err)
}

func TestTodoStorage_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	_, err := storage.GetByID(ctx, "user-1", primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestTodoStorage_List_Ordering: новые первыми, limit/skip после сортировки
func TestTodoStorage_List_Ordering(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	base := time.Now()
	for i := 0; i < 5; i++ {
		item := newTodo("user-1", fmt.Sprintf("todo-%d", i), todo.StatusPending, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, storage.Create(ctx, item))
	}

	all, err := storage.List(ctx, "user-1", repository.ListFilter{Limit: 50})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "todo-4", all[0].Title)
	assert.Equal(t, "todo-0", all[4].Title)

	// limit=2, skip=1 из 5 -> 2-я и 3-я по убыванию created_at
	page, err := storage.List(ctx, "user-1", repository.ListFilter{Limit: 2, Skip: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "todo-3", page[0].Title)
	assert.Equal(t, "todo-2", page[1].Title)
}

func TestTodoStorage_List_StatusFilter(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	now := time.Now()
	require.NoError(t, storage.Create(ctx, newTodo("user-1", "a", todo.StatusPending, now)))
	require.NoError(t, storage.Create(ctx, newTodo("user-1", "b", todo.StatusCompleted, now.Add(time.Minute))))
	require.NoError(t, storage.Create(ctx, newTodo("user-2", "c", todo.StatusCompleted, now)))

	completed := todo.StatusCompleted
	result, err := storage.List(ctx, "user-1", repository.ListFilter{Status: &completed, Limit: 50})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "b", result[0].Title)
}

func TestTodoStorage_List_SkipPastEnd(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	require.NoError(t, storage.Create(ctx, newTodo("user-1", "a", todo.StatusPending, time.Now())))

	result, err := storage.List(ctx, "user-1", repository.ListFilter{Limit: 50, Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, result)
}

// TestTodoStorage_Update: меняются только переданные поля, updated_at обновляется
func TestTodoStorage_Update(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	created := newTodo("user-1", "old title", todo.StatusPending, time.Now().Add(-time.Hour))
	created.Description = "old description"
	require.NoError(t, storage.Create(ctx, created))

	newTitle := "new title"
	updated, err := storage.Update(ctx, "user-1", created.ID, repository.UpdateFields{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "old description", updated.Description)
	assert.Equal(t, todo.StatusPending, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestTodoStorage_Delete(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	created := newTodo("user-1", "to delete", todo.StatusPending, time.Now())
	require.NoError(t, storage.Create(ctx, created))

	require.NoError(t, storage.Delete(ctx, "user-1", created.ID))

	// повторное удаление и чтение - not found
	assert.ErrorIs(t, storage.Delete(ctx, "user-1", created.ID), repository.ErrNotFound)
	_, err := storage.GetByID(ctx, "user-1", created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTodoStorage_SetStatus(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	created := newTodo("user-1", "toggle me", todo.StatusPending, time.Now().Add(-time.Minute))
	require.NoError(t, storage.Create(ctx, created))

	updated, err := storage.SetStatus(ctx, "user-1", created.ID, todo.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, todo.StatusInProgress, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}
