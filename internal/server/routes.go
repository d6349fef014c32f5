package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dhamidullin/ds-test/internal/domain"
	"github.com/dhamidullin/ds-test/internal/service"
	"github.com/dhamidullin/ds-test/internal/validate"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.healthHandler)

	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", s.listTasksHandler)
		r.Post("/", s.createTaskHandler)
		r.Get("/{id}", s.getTaskByIDHandler)
		r.Put("/{id}", s.updateTaskHandler)
		r.Delete("/{id}", s.deleteTaskHandler)
	})

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

func (s *Server) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.taskService.ListTasks(r.Context())
	if err != nil {
		s.respondWithTaskError(w, "ListTasks", err, "Failed to fetch tasks")
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

func (s *Server) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := s.taskService.CreateTask(r.Context(), req)
	if err != nil {
		s.respondWithTaskError(w, "CreateTask", err, "Failed to create task")
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) getTaskByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := validate.TaskID(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := s.taskService.GetTaskByID(r.Context(), id)
	if err != nil {
		s.respondWithTaskError(w, "GetTaskByID", err, "Failed to fetch task")
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := validate.TaskID(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req service.UpdateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := s.taskService.UpdateTask(r.Context(), id, req)
	if err != nil {
		s.respondWithTaskError(w, "UpdateTask", err, "Failed to update task")
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := validate.TaskID(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.taskService.DeleteTask(r.Context(), id); err != nil {
		s.respondWithTaskError(w, "DeleteTask", err, "Failed to delete task")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// respondWithTaskError maps the service error taxonomy onto the HTTP
// contract: validation messages surface verbatim as 400, absence is always
// the fixed 404 body, and anything else is logged and replaced with the
// operation's generic 500 message.
func (s *Server) respondWithTaskError(w http.ResponseWriter, op string, err error, generic string) {
	var ve *validate.ValidationError
	switch {
	case errors.As(err, &ve):
		respondWithError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, domain.ErrTaskNotFound):
		respondWithError(w, http.StatusNotFound, "Task not found")
	default:
		log.Printf("%s: %v", op, err)
		respondWithError(w, http.StatusInternalServerError, generic)
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling JSON response: %v", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
