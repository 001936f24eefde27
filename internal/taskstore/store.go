// Package taskstore holds the ordered in-memory task list.
package taskstore

import (
	"tasktracker/internal/service"
)

// Store is an ordered sequence of tasks addressed by position.
// It is not safe for concurrent use; its owner serializes access.
type Store struct {
	tasks []service.Task
}

// New creates a Store holding a copy of tasks.
func New(tasks []service.Task) *Store {
	s := &Store{}
	s.Reset(tasks)
	return s
}

// Reset replaces the contents with a copy of tasks.
func (s *Store) Reset(tasks []service.Task) {
	s.tasks = append([]service.Task(nil), tasks...)
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// Append adds t at the end and returns its index.
func (s *Store) Append(t service.Task) int {
	s.tasks = append(s.tasks, t)
	return len(s.tasks) - 1
}

// Get returns the task at index i.
func (s *Store) Get(i int) (service.Task, error) {
	if i < 0 || i >= len(s.tasks) {
		return service.Task{}, service.ErrNotFound
	}
	return s.tasks[i], nil
}

// RemoveAt removes and returns the task at index i.
// Later tasks shift down by one.
func (s *Store) RemoveAt(i int) (service.Task, error) {
	if i < 0 || i >= len(s.tasks) {
		return service.Task{}, service.ErrNotFound
	}
	t := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return t, nil
}

// InsertAt places t at index i, shifting later tasks up by one.
// i == Len() appends.
func (s *Store) InsertAt(i int, t service.Task) error {
	if i < 0 || i > len(s.tasks) {
		return service.ErrNotFound
	}
	s.tasks = append(s.tasks, service.Task{})
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = t
	return nil
}

// List returns a copy of the first limit tasks.
// A negative limit returns every task.
func (s *Store) List(limit int) []service.Task {
	n := len(s.tasks)
	if limit >= 0 && limit < n {
		n = limit
	}
	out := make([]service.Task, n)
	copy(out, s.tasks[:n])
	return out
}

// Snapshot returns a copy of every task.
func (s *Store) Snapshot() []service.Task {
	return s.List(-1)
}
