package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tasktracker/internal/service"
	"tasktracker/internal/tasks"
)

const maxBodySize = 1 << 20 // 1MB

type createRequest struct {
	Text *string `json:"text"`
}

type deleteResponse struct {
	Status string       `json:"status"`
	Task   service.Task `json:"task"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"tasks":  s.tasks.Len(),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := s.listLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeDetail(w, http.StatusUnprocessableEntity, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, s.tasks.List(limit))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}
	if req.Text == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "field required: text")
		return
	}

	task, err := s.tasks.Create(r.Context(), *req.Text)
	if err != nil {
		s.writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	idx, ok := parseIndex(w, r)
	if !ok {
		return
	}
	task, err := s.tasks.Get(idx)
	if err != nil {
		s.writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	idx, ok := parseIndex(w, r)
	if !ok {
		return
	}
	task, err := s.tasks.Delete(r.Context(), idx)
	if err != nil {
		s.writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Status: "deleted", Task: task})
}

// parseIndex reads the {index} path parameter. It writes a 422 and returns
// false if the parameter is not an integer.
func parseIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "task index must be an integer")
		return 0, false
	}
	return idx, true
}

// writeTaskError maps task errors onto HTTP statuses.
func (s *Server) writeTaskError(w http.ResponseWriter, err error) {
	var perr *tasks.PersistenceError
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, service.ErrInvalidTask):
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &perr):
		writeDetail(w, http.StatusInternalServerError, perr.Err.Error())
	default:
		s.logger.Error("unexpected task error", "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
