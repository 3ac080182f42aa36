package repository

import "todoTracker/internal/models/todo"

// ListFilter - параметры выборки списка. Status == nil означает все статусы.
type ListFilter struct {
	Status *todo.Status
	Limit  int64
	Skip   int64
}

// UpdateFields - частичное обновление: меняются только non-nil поля
type UpdateFields struct {
	Title       *string
	Description *string
	Status      *todo.Status
}

func (f UpdateFields) Empty() bool {
	return f.Title == nil && f.Description == nil && f.Status == nil
}
