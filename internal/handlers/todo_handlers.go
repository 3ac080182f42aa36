package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"todoTracker/internal/handlers/dto"
	"todoTracker/internal/logger"
	"todoTracker/internal/middleware"
	"todoTracker/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type TodoHandler struct {
	TodoService TodoService
}

func NewTodoHandler(todoService TodoService) TodoHandler {
	return TodoHandler{
		TodoService: todoService,
	}
}

// GetTodos обрабатывает GET /api/todos?status=&limit=&skip=
func (h *TodoHandler) GetTodos(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := h.caller(w, r)
	if !ok {
		return
	}

	// невалидные limit/skip не являются ошибкой - берутся значения по умолчанию
	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil {
		limit = service.DefaultLimit
	}
	skip, err := strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64)
	if err != nil {
		skip = 0
	}

	todos, err := h.TodoService.ListTodos(r.Context(), owner, r.URL.Query().Get("status"), limit, skip)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "list_todos"),
			zap.String("owner", owner))
		respondServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(todos)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondList(w, todos, len(todos))
}

// PostTodo обрабатывает POST /api/todos
func (h *TodoHandler) PostTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := h.caller(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusBadRequest, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	created, err := h.TodoService.CreateTodo(r.Context(), owner, request.ToInput())
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "create_todo"),
			zap.String("owner", owner),
			zap.Duration("ms", time.Since(start)))
		respondServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("todo_id", created.ID.Hex()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	respondData(w, http.StatusCreated, created, "задача создана")
}

// GetTodoByID обрабатывает GET /api/todos/{id}
func (h *TodoHandler) GetTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	result, err := h.TodoService.GetTodoByID(r.Context(), owner, id)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "get_todo"),
			zap.String("owner", owner),
			zap.String("todo_id", id.Hex()))
		respondServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.String("todo_id", id.Hex()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondData(w, http.StatusOK, result, "")
}

// UpdateTodoByID обрабатывает PUT /api/todos/{id}
func (h *TodoHandler) UpdateTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusBadRequest, "Content-Type должен быть application/json")
		return
	}

	var request dto.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	updated, err := h.TodoService.UpdateTodo(r.Context(), owner, id, request.ToInput())
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "update_todo"),
			zap.String("owner", owner),
			zap.String("todo_id", id.Hex()))
		respondServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("todo_id", id.Hex()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondData(w, http.StatusOK, updated, "задача обновлена")
}

// DeleteTodoByID обрабатывает DELETE /api/todos/{id}
func (h *TodoHandler) DeleteTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	if err := h.TodoService.DeleteTodo(r.Context(), owner, id); err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "delete_todo"),
			zap.String("owner", owner),
			zap.String("todo_id", id.Hex()))
		respondServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("todo_id", id.Hex()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondMessage(w, http.StatusOK, "задача удалена")
}

// ToggleTodoStatus обрабатывает PATCH /api/todos/{id}/toggle
func (h *TodoHandler) ToggleTodoStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	toggled, err := h.TodoService.ToggleStatus(r.Context(), owner, id)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "toggle_status"),
			zap.String("owner", owner),
			zap.String("todo_id", id.Hex()))
		respondServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Статус переключён",
		zap.String("todo_id", id.Hex()),
		zap.String("status", string(toggled.Status)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondData(w, http.StatusOK, toggled, "статус переключён")
}

func (h *TodoHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := h.TodoService.HealthCheck(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "хранилище недоступно")
		return
	}
	respondMessage(w, http.StatusOK, "ok")
}

// caller достаёт владельца из контекста. Auth middleware уже отсёк
// неаутентифицированные запросы, пустое значение здесь - аномалия.
func (h *TodoHandler) caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := middleware.GetUserID(r.Context())
	if owner == "" {
		logger.Warn("HTTP: Запрос без владельца",
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return "", false
	}
	return owner, true
}

// todoID парсит {id} из пути. Невалидный hex не может указывать на
// существующую запись, поэтому ответ - тот же 404, что и для чужого id.
func (h *TodoHandler) todoID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	idParam := chi.URLParam(r, "id")

	id, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		logger.Warn("HTTP: Невалидный id",
			zap.String("id", idParam),
			zap.String("client_ip", r.RemoteAddr))
		respondServiceError(w, service.NewNotFound(idParam))
		return primitive.NilObjectID, false
	}

	return id, true
}
