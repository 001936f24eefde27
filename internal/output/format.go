// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasktracker/internal/service"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }] {TEXT}\n" where N is the 0-based API index.
func FormatTask(w io.Writer, index int, task service.Task) {
	mark := " "
	if task.IsDone {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", index, mark, normalizeText(task.Text))
}

// FormatSolution formats a task's solution beneath its task line.
// Each line of the solution is indented; an empty solution prints nothing.
func FormatSolution(w io.Writer, task service.Task) {
	solution := strings.TrimSpace(task.Solution)
	if solution == "" {
		return
	}
	for _, line := range strings.Split(solution, "\n") {
		fmt.Fprintf(w, "          %s\n", strings.TrimRight(line, "\r"))
	}
}

// normalizeText normalizes a task text for display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
