// Package service defines the backend-agnostic types and interfaces for task operations.
package service

import "encoding/json"

// Task represents a single task item.
// Identity is positional: a task is addressed by its index in the list.
type Task struct {
	Text     string `json:"text"`
	Solution string `json:"solution"`
	IsDone   bool   `json:"is_done"`
}

// UnmarshalJSON decodes a task, accepting the legacy "original_text" field
// written by older documents when "text" is absent or empty.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw struct {
		Text         string `json:"text"`
		OriginalText string `json:"original_text"`
		Solution     string `json:"solution"`
		IsDone       bool   `json:"is_done"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Text = raw.Text
	if t.Text == "" {
		t.Text = raw.OriginalText
	}
	t.Solution = raw.Solution
	t.IsDone = raw.IsDone
	return nil
}
