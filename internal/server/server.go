package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dhamidullin/ds-test/internal/config"
	"github.com/dhamidullin/ds-test/internal/database"
	"github.com/dhamidullin/ds-test/internal/service"
)

type Server struct {
	cfg         config.Config
	taskService service.TaskService
	db          database.Service
}

// NewServer builds the HTTP server for the task API. Dependencies are passed
// in explicitly; composition happens once in cmd/api.
func NewServer(cfg config.Config, taskService service.TaskService, db database.Service) *http.Server {
	appServer := &Server{
		cfg:         cfg,
		taskService: taskService,
		db:          db,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
