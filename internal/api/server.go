// Package api exposes the task list over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tasktracker/internal/service"
)

// TaskManager is the task list as seen by the handlers.
// *tasks.Manager implements it.
type TaskManager interface {
	Create(ctx context.Context, text string) (service.Task, error)
	List(limit int) []service.Task
	Get(i int) (service.Task, error)
	Delete(ctx context.Context, i int) (service.Task, error)
	Len() int
}

// Server is the task HTTP API.
type Server struct {
	tasks     TaskManager
	listLimit int
	logger    *slog.Logger
	router    chi.Router
}

// NewServer creates a server over tasks. listLimit is the default number of
// tasks returned by GET /tasks.
func NewServer(tasks TaskManager, listLimit int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		tasks:     tasks,
		listLimit: listLimit,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/{index}", s.handleGet)
		r.Delete("/{index}", s.handleDelete)
	})

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }
