package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/dhamidullin/ds-test/internal/config"
	"github.com/dhamidullin/ds-test/internal/database"
	"github.com/dhamidullin/ds-test/internal/domain"
	"github.com/dhamidullin/ds-test/internal/repository"
	"github.com/dhamidullin/ds-test/internal/server"
	"github.com/dhamidullin/ds-test/internal/service"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	// Give in-flight requests 5 seconds to finish.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	if err := dbService.Close(); err != nil {
		log.Printf("Error closing database connection pool: %v", err)
	}

	log.Println("Server exiting")
	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var (
		dbService database.Service
		taskRepo  repository.TaskRepository
	)
	if cfg.DatabaseURL == "" {
		// Development fallback: no database configured, keep tasks in memory.
		log.Println("DATABASE_URL not set, using in-memory task store")
		dbService = database.Memory()
		taskRepo = repository.NewMemoryTaskRepository()
	} else {
		db, err := database.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.DB().AutoMigrate(&domain.Task{}); err != nil {
			log.Fatalf("Failed to auto-migrate database: %v", err)
		}
		dbService = db
		taskRepo = repository.NewGormTaskRepository(db.DB())
	}

	taskService := service.NewTaskService(taskRepo)
	apiServer := server.NewServer(cfg, taskService, dbService)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, done)

	log.Printf("Starting server on %s (env=%s)", apiServer.Addr, cfg.Env)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server ListenAndServe error: %v", err)
	}

	<-done
	log.Println("Graceful shutdown complete.")
}
