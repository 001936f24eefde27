package output

import (
	"bytes"
	"testing"

	"tasktracker/internal/service"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name  string
		index int
		task  service.Task
		want  string
	}{
		{"open", 0, service.Task{Text: "buy milk"}, "   0  [ ] buy milk\n"},
		{"done", 12, service.Task{Text: "pay rent", IsDone: true}, "  12  [x] pay rent\n"},
		{"newlines", 1, service.Task{Text: "a\nb\r\nc"}, "   1  [ ] a b  c\n"},
		{"empty", 2, service.Task{Text: "  "}, "   2  [ ] (untitled)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.index, tt.task)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatSolution(t *testing.T) {
	var buf bytes.Buffer
	FormatSolution(&buf, service.Task{Solution: "step one\r\nstep two\n"})
	want := "          step one\n          step two\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}

	buf.Reset()
	FormatSolution(&buf, service.Task{Solution: "   "})
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
