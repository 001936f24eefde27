// Package tasks coordinates the in-memory task list with the remote document.
//
// Every mutation follows the same shape: change the local list, replace the
// remote document with the whole list, and undo the local change if the
// remote write fails. Mutations hold the manager's write lock for the whole
// sequence, so an undo always restores exactly the list the call started from.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"tasktracker/internal/service"
	"tasktracker/internal/taskstore"
)

// verifyPrompt is the probe sent to the completion backend by Verify.
const verifyPrompt = "Reply with the single word: ok"

// PersistenceError reports a failed remote write. The local list has been
// rolled back when it is returned.
type PersistenceError struct {
	Op  string // "create" or "delete"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s not persisted: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Manager owns the task list.
type Manager struct {
	mu        sync.RWMutex
	store     *taskstore.Store
	remote    service.DocumentStore
	completer service.Completer
	logger    *slog.Logger
}

// NewManager creates a Manager with an empty list.
func NewManager(remote service.DocumentStore, completer service.Completer, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:     taskstore.New(nil),
		remote:    remote,
		completer: completer,
		logger:    logger,
	}
}

// Load fills the list from the remote document. On failure the list is left
// empty and an error wrapping service.ErrUpstreamUnavailable is returned;
// the manager stays usable.
func (m *Manager) Load(ctx context.Context) error {
	remote, err := m.remote.FetchLatest(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.store.Reset(nil)
		m.logger.Warn("remote store unreachable, starting with empty task list", "error", err)
		return fmt.Errorf("%w: %w", service.ErrUpstreamUnavailable, err)
	}
	m.store.Reset(remote)
	m.logger.Info("loaded tasks from remote store", "count", len(remote))
	return nil
}

// Create asks the completer for a solution, appends the task and persists
// the list. If persisting fails the task is removed again.
func (m *Manager) Create(ctx context.Context, text string) (service.Task, error) {
	if strings.TrimSpace(text) == "" {
		return service.Task{}, service.ErrInvalidTask
	}

	task := service.Task{
		Text:     text,
		Solution: m.completer.Complete(ctx, text),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.store.Append(task)
	if err := m.remote.ReplaceAll(ctx, m.store.Snapshot()); err != nil {
		if _, rbErr := m.store.RemoveAt(idx); rbErr != nil {
			m.logger.Error("rollback failed", "op", "create", "index", idx, "error", rbErr)
		}
		m.logger.Warn("create rolled back", "index", idx, "error", err)
		return service.Task{}, &PersistenceError{Op: "create", Err: err}
	}

	m.logger.Debug("task created", "index", idx)
	return task, nil
}

// List returns the first limit tasks in creation order.
func (m *Manager) List(limit int) []service.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.List(limit)
}

// Get returns the task at index i.
func (m *Manager) Get(i int) (service.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Get(i)
}

// Len returns the number of tasks.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Len()
}

// Delete removes the task at index i and persists the list. If persisting
// fails the task is put back at i.
func (m *Manager) Delete(ctx context.Context, i int) (service.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed, err := m.store.RemoveAt(i)
	if err != nil {
		return service.Task{}, err
	}

	if err := m.remote.ReplaceAll(ctx, m.store.Snapshot()); err != nil {
		if rbErr := m.store.InsertAt(i, removed); rbErr != nil {
			m.logger.Error("rollback failed", "op", "delete", "index", i, "error", rbErr)
		}
		m.logger.Warn("delete rolled back", "index", i, "error", err)
		return service.Task{}, &PersistenceError{Op: "delete", Err: err}
	}

	m.logger.Debug("task deleted", "index", i)
	return removed, nil
}

// Verify checks that both remote services answer. It returns one error per
// failing service; nil means both are reachable.
func (m *Manager) Verify(ctx context.Context) error {
	var errs []error
	if _, err := m.remote.FetchLatest(ctx); err != nil {
		errs = append(errs, fmt.Errorf("document store: %w", err))
	}
	if _, err := m.completer.Generate(ctx, verifyPrompt); err != nil {
		errs = append(errs, fmt.Errorf("completion endpoint: %w", err))
	}
	return errors.Join(errs...)
}
