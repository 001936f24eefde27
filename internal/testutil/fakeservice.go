// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"tasktracker/internal/service"
)

// FakeSolution is the answer FakeCompleter gives by default.
const FakeSolution = "fake solution"

// FakeStore is an in-memory implementation of service.DocumentStore for testing.
type FakeStore struct {
	mu       sync.Mutex
	document []service.Task

	// Error injection for testing
	FetchErr   error
	ReplaceErr error

	// Call counters
	FetchCalls   int
	ReplaceCalls int
}

// NewFakeStore creates a FakeStore whose document holds tasks.
func NewFakeStore(tasks ...service.Task) *FakeStore {
	return &FakeStore{document: append([]service.Task{}, tasks...)}
}

// Document returns a copy of the stored document.
func (f *FakeStore) Document() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.Task{}, f.document...)
}

// SetReplaceErr changes the injected ReplaceAll error under the lock.
func (f *FakeStore) SetReplaceErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ReplaceErr = err
}

// FetchLatest implements service.DocumentStore.
func (f *FakeStore) FetchLatest(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FetchCalls++
	if f.FetchErr != nil {
		return nil, &service.StoreError{Op: "fetch", Err: f.FetchErr}
	}
	return append([]service.Task{}, f.document...), nil
}

// ReplaceAll implements service.DocumentStore.
func (f *FakeStore) ReplaceAll(ctx context.Context, tasks []service.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ReplaceCalls++
	if f.ReplaceErr != nil {
		return &service.StoreError{Op: "replace", Err: f.ReplaceErr}
	}
	f.document = append([]service.Task{}, tasks...)
	return nil
}

// FakeCompleter is an implementation of service.Completer for testing.
type FakeCompleter struct {
	mu sync.Mutex

	// Answer is returned by Generate; empty means FakeSolution.
	Answer string

	// Fallback is returned by Complete when GenerateErr is set.
	Fallback string

	// Error injection for testing
	GenerateErr error

	// Prompts records every prompt passed to Generate.
	Prompts []string
}

// NewFakeCompleter creates a FakeCompleter with default answers.
func NewFakeCompleter() *FakeCompleter {
	return &FakeCompleter{Answer: FakeSolution, Fallback: "could not obtain a solution"}
}

// Generate implements service.Completer.
func (f *FakeCompleter) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Prompts = append(f.Prompts, prompt)
	if f.GenerateErr != nil {
		return "", f.GenerateErr
	}
	if f.Answer == "" {
		return FakeSolution, nil
	}
	return f.Answer, nil
}

// Complete implements service.Completer.
func (f *FakeCompleter) Complete(ctx context.Context, taskText string) string {
	answer, err := f.Generate(ctx, taskText)
	if err != nil {
		return f.Fallback
	}
	return answer
}
