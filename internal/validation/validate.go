package validation

import (
	"fmt"
	"strings"

	"todoTracker/internal/models/todo"
)

// Error - первое нарушенное ограничение payload-а
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("поле '%s': %s", e.Field, e.Reason)
}

// Единая таблица ограничений полей. Create и Partial читают одну и ту же
// таблицу: create требует обязательные поля, partial проверяет только переданные.
type constraint struct {
	required bool
	minLen   int
	maxLen   int
}

var constraints = map[string]constraint{
	"title":       {required: true, minLen: 1, maxLen: 255},
	"description": {required: false, minLen: 0, maxLen: 1000},
	"status":      {required: false},
}

// Input - кандидат payload-а. nil означает, что поле не передано.
type Input struct {
	Title       *string
	Description *string
	Status      *string
}

// Normalized - результат валидации: обрезанные и дефолтные значения.
// nil означает, что поле не трогаем (для частичного обновления).
type Normalized struct {
	Title       *string
	Description *string
	Status      *todo.Status
}

// Create проверяет payload создания целиком: title обязателен, owner
// подставляется сервером, статус по умолчанию pending.
func Create(owner string, in Input) (Normalized, error) {
	if strings.TrimSpace(owner) == "" {
		return Normalized{}, &Error{Field: "owner", Reason: "не задан владелец"}
	}

	norm, err := Partial(in)
	if err != nil {
		return Normalized{}, err
	}

	if norm.Title == nil {
		return Normalized{}, &Error{Field: "title", Reason: "обязательное поле"}
	}

	if norm.Status == nil {
		def := todo.StatusPending
		norm.Status = &def
	}

	return norm, nil
}

// Partial проверяет только переданные поля: каждое из них должно
// удовлетворять тем же ограничениям, что и при создании.
func Partial(in Input) (Normalized, error) {
	norm := Normalized{}

	title, err := checkText("title", in.Title)
	if err != nil {
		return Normalized{}, err
	}
	norm.Title = title

	description, err := checkText("description", in.Description)
	if err != nil {
		return Normalized{}, err
	}
	norm.Description = description

	status, err := checkStatus(in.Status)
	if err != nil {
		return Normalized{}, err
	}
	norm.Status = status

	return norm, nil
}

func checkText(field string, value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}

	c := constraints[field]
	trimmed := strings.TrimSpace(*value)

	if len(trimmed) < c.minLen {
		return nil, &Error{Field: field, Reason: "не может быть пустым"}
	}
	if len(trimmed) > c.maxLen {
		return nil, &Error{Field: field, Reason: fmt.Sprintf("длина не должна превышать %d символов", c.maxLen)}
	}

	return &trimmed, nil
}

func checkStatus(value *string) (*todo.Status, error) {
	if value == nil {
		return nil, nil
	}

	status := todo.Status(strings.TrimSpace(*value))
	if !status.Valid() {
		return nil, &Error{Field: "status", Reason: "недопустимое значение статуса"}
	}

	return &status, nil
}
