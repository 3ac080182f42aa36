package handlers

import (
	"encoding/json"
	"net/http"
)

// Envelope - единый формат ответа API
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func respondJSON(w http.ResponseWriter, code int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(env)
}

func respondData(w http.ResponseWriter, code int, data any, message string) {
	respondJSON(w, code, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// respondList добавляет count - количество элементов после limit/skip
func respondList(w http.ResponseWriter, data any, count int) {
	respondJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

func respondMessage(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, Envelope{
		Success: true,
		Message: message,
	})
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, Envelope{
		Success: false,
		Message: message,
	})
}
