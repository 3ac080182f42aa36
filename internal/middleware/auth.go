package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"todoTracker/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const UserIdKey contextKey = "user_id"

// Auth проверяет Bearer-токен сессии и кладёт id пользователя в контекст.
// Без валидной сессии запрос обрывается с 401 до вызова handler-а.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, r, "отсутствует заголовок Authorization")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				unauthorized(w, r, "невалидный токен сессии")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				unauthorized(w, r, "невалидный токен сессии")
				return
			}
			userID, _ := claims["sub"].(string)
			if userID == "" {
				unauthorized(w, r, "невалидный токен сессии")
				return
			}

			ctx := context.WithValue(r.Context(), UserIdKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIdKey).(string); ok {
		return id
	}
	return ""
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	logger.Warn("HTTP: Запрос без валидной сессии",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.String("client_ip", r.RemoteAddr))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
