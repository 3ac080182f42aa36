package handlers

import (
	"errors"
	"net/http"

	"todoTracker/internal/logger"
	"todoTracker/internal/service"

	"go.uber.org/zap"
)

// respondServiceError переводит ошибку сервиса в HTTP-ответ.
// Неожиданные ошибки (хранилище и т.п.) отдаются как 500, запрос не падает.
func respondServiceError(w http.ResponseWriter, err error) {
	var busErr *service.BusinessError
	if errors.As(err, &busErr) {
		statusCode := mapBusinessErrorToHTTP(busErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", busErr.Code),
			zap.Int("http_status", statusCode))

		respondError(w, statusCode, busErr.Message)
		return
	}

	logger.Error("HTTP: Внутренняя ошибка", err)
	respondError(w, http.StatusInternalServerError, err.Error())
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "VALIDATION_ERROR":
		return http.StatusBadRequest
	case "UNAUTHORIZED":
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
