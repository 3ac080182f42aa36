package handlers

import (
	"context"

	"todoTracker/internal/models/todo"
	"todoTracker/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TodoService interface {
	ListTodos(ctx context.Context, owner, statusFilter string, limit, skip int64) ([]*todo.Todo, error)
	GetTodoByID(ctx context.Context, owner string, id primitive.ObjectID) (*todo.Todo, error)
	CreateTodo(ctx context.Context, owner string, input validation.Input) (*todo.Todo, error)
	UpdateTodo(ctx context.Context, owner string, id primitive.ObjectID, input validation.Input) (*todo.Todo, error)
	DeleteTodo(ctx context.Context, owner string, id primitive.ObjectID) error
	ToggleStatus(ctx context.Context, owner string, id primitive.ObjectID) (*todo.Todo, error)
	HealthCheck(ctx context.Context) error
}
