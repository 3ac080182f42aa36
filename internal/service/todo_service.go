package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todoTracker/internal/logger"
	"todoTracker/internal/models/todo"
	repo "todoTracker/internal/repository"
	"todoTracker/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const DefaultLimit = 50
const MaxLimit = 100

// Бизнес-логика над задачами. Владелец передаётся явным аргументом
// в каждую операцию: никакого неявного состояния сессии ниже middleware.
type TodoService struct {
	repo TodoRepository
}

func NewTodoService(repo TodoRepository) TodoService {
	return TodoService{
		repo: repo,
	}
}

func (s *TodoService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

// ListTodos возвращает задачи владельца, новые первыми. Невалидный фильтр
// статуса молча игнорируется - возвращаются все статусы.
func (s *TodoService) ListTodos(ctx context.Context, owner, statusFilter string, limit, skip int64) ([]*todo.Todo, error) {
	filter := repo.ListFilter{
		Limit: limit,
		Skip:  skip,
	}

	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	if statusFilter != "" {
		status := todo.Status(statusFilter)
		if status.Valid() {
			filter.Status = &status
		} else {
			logger.Info("Service: Невалидный фильтр статуса игнорируется",
				zap.String("status", statusFilter))
		}
	}

	todos, err := s.repo.List(ctx, owner, filter)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	return todos, nil
}

func (s *TodoService) GetTodoByID(ctx context.Context, owner string, id primitive.ObjectID) (*todo.Todo, error) {
	result, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена",
				zap.String("owner", owner),
				zap.String("target_id", id.Hex()))
			return nil, NewNotFound(id.Hex())
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	return result, nil
}

// CreateTodo создаёт задачу. Владелец всегда берётся из аргумента owner,
// статус по умолчанию pending.
func (s *TodoService) CreateTodo(ctx context.Context, owner string, input validation.Input) (*todo.Todo, error) {
	norm, err := validation.Create(owner, input)
	if err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			logger.Info("Service: Ошибка валидации",
				zap.String("owner", owner),
				zap.String("field", vErr.Field))
			return nil, NewValidationError(vErr.Field, vErr.Reason)
		}
		return nil, fmt.Errorf("валидация: %w", err)
	}

	now := time.Now().UTC()
	todoToCreate := &todo.Todo{
		Title:     *norm.Title,
		Status:    *norm.Status,
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if norm.Description != nil {
		todoToCreate.Description = *norm.Description
	}

	if err := s.repo.Create(ctx, todoToCreate); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	return todoToCreate, nil
}

// UpdateTodo заменяет только переданные поля. Last-write-wins:
// проверки версии против параллельных обновлений нет.
func (s *TodoService) UpdateTodo(ctx context.Context, owner string, id primitive.ObjectID, input validation.Input) (*todo.Todo, error) {
	norm, err := validation.Partial(input)
	if err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			logger.Info("Service: Ошибка валидации",
				zap.String("owner", owner),
				zap.String("field", vErr.Field))
			return nil, NewValidationError(vErr.Field, vErr.Reason)
		}
		return nil, fmt.Errorf("валидация: %w", err)
	}

	fields := repo.UpdateFields{
		Title:       norm.Title,
		Description: norm.Description,
		Status:      norm.Status,
	}

	result, err := s.repo.Update(ctx, owner, id, fields)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена",
				zap.String("owner", owner),
				zap.String("target_id", id.Hex()))
			return nil, NewNotFound(id.Hex())
		}
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	return result, nil
}

func (s *TodoService) DeleteTodo(ctx context.Context, owner string, id primitive.ObjectID) error {
	err := s.repo.Delete(ctx, owner, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена",
				zap.String("owner", owner),
				zap.String("target_id", id.Hex()))
			return NewNotFound(id.Hex())
		}
		return fmt.Errorf("удаление задачи: %w", err)
	}

	return nil
}

// ToggleStatus переключает статус по циклу pending -> in_progress ->
// completed -> pending. Чтение и запись не атомарны: параллельные
// переключения одной задачи дают last-write-wins.
func (s *TodoService) ToggleStatus(ctx context.Context, owner string, id primitive.ObjectID) (*todo.Todo, error) {
	current, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена",
				zap.String("owner", owner),
				zap.String("target_id", id.Hex()))
			return nil, NewNotFound(id.Hex())
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	next := current.Status.Next()

	result, err := s.repo.SetStatus(ctx, owner, id, next)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound(id.Hex())
		}
		return nil, fmt.Errorf("переключение статуса: %w", err)
	}

	logger.Info("Service: Статус переключён",
		zap.String("owner", owner),
		zap.String("target_id", id.Hex()),
		zap.String("from", string(current.Status)),
		zap.String("to", string(next)))

	return result, nil
}
