package service

import (
	"context"

	"todoTracker/internal/models/todo"
	repo "todoTracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TodoRepository interface {
	Create(ctx context.Context, todoToCreate *todo.Todo) error
	GetByID(ctx context.Context, owner string, id primitive.ObjectID) (*todo.Todo, error)
	List(ctx context.Context, owner string, filter repo.ListFilter) ([]*todo.Todo, error)
	Update(ctx context.Context, owner string, id primitive.ObjectID, fields repo.UpdateFields) (*todo.Todo, error)
	Delete(ctx context.Context, owner string, id primitive.ObjectID) error
	SetStatus(ctx context.Context, owner string, id primitive.ObjectID, status todo.Status) (*todo.Todo, error)
	HealthCheck(ctx context.Context) error
}
