package dto

import "todoTracker/internal/validation"

// Запросы намеренно не содержат полей owner/user: владелец берётся
// только из сессии, значение из тела клиента игнорируется структурно.
type CreateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (r CreateTodoRequest) ToInput() validation.Input {
	return validation.Input{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
	}
}

func (r UpdateTodoRequest) ToInput() validation.Input {
	return validation.Input{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
	}
}
