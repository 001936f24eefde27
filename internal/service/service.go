// Package service defines the backend-agnostic types and interfaces for task operations.
package service

import "context"

// DocumentStore persists the whole task list as one remote document.
// Handlers never import a provider client directly.
type DocumentStore interface {
	// FetchLatest returns the tasks in the latest version of the document.
	FetchLatest(ctx context.Context) ([]Task, error)

	// ReplaceAll overwrites the document with the full task list.
	// There are no partial updates.
	ReplaceAll(ctx context.Context, tasks []Task) error
}

// Completer produces a suggested solution for a task.
type Completer interface {
	// Generate sends prompt to the model and returns its raw answer.
	Generate(ctx context.Context, prompt string) (string, error)

	// Complete returns a solution for taskText. It never fails: on any
	// error it returns a fixed fallback string.
	Complete(ctx context.Context, taskText string) string
}

// Backends bundles the remote services a command needs.
type Backends struct {
	Store     DocumentStore
	Completer Completer
}
