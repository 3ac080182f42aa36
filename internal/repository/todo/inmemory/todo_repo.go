package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"todoTracker/internal/models/todo"
	repo "todoTracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TodoStorage - хранилище в памяти, контракт идентичен mongo-реализации.
// Используется в тестах и при repository.type: inmemory.
type TodoStorage struct {
	storage map[primitive.ObjectID]*todo.Todo
	mtx     sync.RWMutex
}

func NewTodoStorage() *TodoStorage {
	return &TodoStorage{
		storage: make(map[primitive.ObjectID]*todo.Todo),
	}
}

func (s *TodoStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TodoStorage) Create(ctx context.Context, todoToCreate *todo.Todo) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if todoToCreate.ID.IsZero() {
		todoToCreate.ID = primitive.NewObjectID()
	}

	stored := *todoToCreate
	s.storage[stored.ID] = &stored
	return nil
}

func (s *TodoStorage) GetByID(ctx context.Context, owner string, id primitive.ObjectID) (*todo.Todo, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	stored, ok := s.storage[id]
	if !ok || stored.Owner != owner {
		return nil, repo.ErrNotFound
	}

	result := *stored
	return &result, nil
}

func (s *TodoStorage) List(ctx context.Context, owner string, filter repo.ListFilter) ([]*todo.Todo, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	matched := []*todo.Todo{}
	for _, stored := range s.storage {
		if stored.Owner != owner {
			continue
		}
		if filter.Status != nil && stored.Status != *filter.Status {
			continue
		}
		item := *stored
		matched = append(matched, &item)
	}

	// новые первыми, limit/skip применяются после сортировки
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Skip >= int64(len(matched)) {
		return []*todo.Todo{}, nil
	}
	matched = matched[filter.Skip:]

	if filter.Limit > 0 && filter.Limit < int64(len(matched)) {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

func (s *TodoStorage) Update(ctx context.Context, owner string, id primitive.ObjectID, fields repo.UpdateFields) (*todo.Todo, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	stored, ok := s.storage[id]
	if !ok || stored.Owner != owner {
		return nil, repo.ErrNotFound
	}

	if fields.Title != nil {
		stored.Title = *fields.Title
	}
	if fields.Description != nil {
		stored.Description = *fields.Description
	}
	if fields.Status != nil {
		stored.Status = *fields.Status
	}
	stored.UpdatedAt = time.Now().UTC()

	result := *stored
	return &result, nil
}

func (s *TodoStorage) Delete(ctx context.Context, owner string, id primitive.ObjectID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	stored, ok := s.storage[id]
	if !ok || stored.Owner != owner {
		return repo.ErrNotFound
	}

	delete(s.storage, id)
	return nil
}

func (s *TodoStorage) SetStatus(ctx context.Context, owner string, id primitive.ObjectID, status todo.Status) (*todo.Todo, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	stored, ok := s.storage[id]
	if !ok || stored.Owner != owner {
		return nil, repo.ErrNotFound
	}

	stored.Status = status
	stored.UpdatedAt = time.Now().UTC()

	result := *stored
	return &result, nil
}
