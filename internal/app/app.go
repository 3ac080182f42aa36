package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"todoTracker/internal/config"
	"todoTracker/internal/handlers"
	"todoTracker/internal/logger"
	"todoTracker/internal/middleware"
	"todoTracker/internal/repository/todo/inmemory"
	mongorepo "todoTracker/internal/repository/todo/mongo"
	"todoTracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type App struct {
	config    *config.Config
	server    *http.Server
	shutdowns []func(context.Context)
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(context.Context), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func(context.Context) {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	repo, err := a.initRepository(ctx)
	if err != nil {
		return err
	}

	todoService := service.NewTodoService(repo)
	todoHandler := handlers.NewTodoHandler(&todoService)

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.router(todoHandler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return nil
}

func (a *App) initRepository(ctx context.Context) (service.TodoRepository, error) {
	switch a.config.Repository.Type {
	case "inmemory":
		logger.Info("App: Используется хранилище в памяти")
		return inmemory.NewTodoStorage(), nil
	case "mongo", "":
		connectCtx, cancel := context.WithTimeout(ctx, a.config.Database.ConnectTimeout)
		defer cancel()

		storage, err := mongorepo.New(connectCtx, a.config.Database.URI, a.config.Database.Name)
		if err != nil {
			return nil, fmt.Errorf("инициализация mongodb: %w", err)
		}
		a.shutdowns = append(a.shutdowns, storage.Close)
		return storage, nil
	default:
		return nil, fmt.Errorf("неизвестный тип репозитория: %s", a.config.Repository.Type)
	}
}

func (a *App) router(todoHandler handlers.TodoHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimit(a.config.Server.RateLimit))

	// все маршруты задач за аутентификацией
	r.Route("/api/todos", func(r chi.Router) {
		r.Use(middleware.Auth([]byte(a.config.Auth.Secret)))

		r.Get("/", todoHandler.GetTodos)  // GET /api/todos
		r.Post("/", todoHandler.PostTodo) // POST /api/todos

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", todoHandler.GetTodoByID)              // GET /api/todos/{id}
			r.Put("/", todoHandler.UpdateTodoByID)           // PUT /api/todos/{id}
			r.Delete("/", todoHandler.DeleteTodoByID)        // DELETE /api/todos/{id}
			r.Patch("/toggle", todoHandler.ToggleTodoStatus) // PATCH /api/todos/{id}/toggle
		})
	})

	r.Get("/health", todoHandler.HealthCheck)

	return r
}

// Run блокируется до отмены контекста, затем гасит сервер и зависимости
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("App: Сервер запущен")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("сервер: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("App: Ошибка остановки сервера", err)
	}

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i](shutdownCtx)
	}

	return nil
}
