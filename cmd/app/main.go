package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/avoronin/todo-ai-api/internal/ai"
	"github.com/avoronin/todo-ai-api/internal/config"
	"github.com/avoronin/todo-ai-api/internal/handler"
	"github.com/avoronin/todo-ai-api/internal/repo"
	"github.com/avoronin/todo-ai-api/internal/service"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg := config.Load()
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GOOGLE_API_KEY not set, AI endpoints will return errors")
	}

	// Подключаем БД
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to Database.") // Fatal потому что дальнейшая работа теряет смысл
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Failed to ping the Database.")
	}
	logger.Info("Successfully connected to the Database!")

	// Одноразовая миграция при старте, до запуска сервера
	if cfg.ResetDB {
		logger.Warn("RESET_DB is set, dropping and recreating the tasks table")
		if err := repo.ResetSchema(context.Background(), pool); err != nil {
			log.Fatal("Failed to reset the schema.")
		}
	} else if err := repo.EnsureSchema(context.Background(), pool); err != nil {
		log.Fatal("Failed to ensure the schema.")
	}

	taskRepo := repo.NewTaskRepo(pool)
	taskService := service.NewTaskService(taskRepo)
	relay := ai.NewRelay(ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel))

	taskHandler := handler.NewTaskHandler(taskService, logger)
	aiHandler := handler.NewAIHandler(relay, logger)
	pageHandler := handler.NewPageHandler(taskService, logger)

	r := chi.NewRouter() // Создаем роутер
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Get("/", pageHandler.Index)
	r.Get("/tasks", taskHandler.List)
	r.Get("/categories", taskHandler.Categories)
	r.Post("/add", taskHandler.Add)
	r.Post("/complete/{id}", taskHandler.Toggle)
	r.Post("/delete/{id}", taskHandler.Delete)
	r.Post("/ask-ai", aiHandler.AskAI)
	r.Post("/motivate-me", aiHandler.Motivate)

	srv := http.Server{ // Создаем сервер
		Addr: ":" + cfg.Port,
		Handler: r,
		ReadTimeout: 10 * time.Second,
		WriteTimeout: 60 * time.Second, // ответ провайдера может идти долго
	}

	go func ()  { // Запуск сервера и обработка ошибок
		logger.Info("Server started at ", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	logger.Info("Server stopped succsessfully!")
}
