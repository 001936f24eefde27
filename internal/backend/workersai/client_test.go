package workersai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "api-key", "", time.Second, discard)
}

func TestClient_GenerateRequestShape(t *testing.T) {
	var req runRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/"+DefaultModel {
			t.Errorf("expected model path, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer api-key" {
			t.Errorf("expected bearer auth, got %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("bad body: %v", err)
		}
		w.Write([]byte(`{"result":{"response":"Go to the store."},"success":true}`))
	})

	got, err := c.Generate(context.Background(), "buy milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Go to the store." {
		t.Errorf("unexpected answer %q", got)
	}

	if req.MaxTokens != MaxTokens {
		t.Errorf("expected max_tokens %d, got %d", MaxTokens, req.MaxTokens)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != "system" || req.Messages[0].Content != systemPrompt {
		t.Errorf("unexpected system message %+v", req.Messages[0])
	}
	if req.Messages[1].Role != "user" || req.Messages[1].Content != "buy milk" {
		t.Errorf("unexpected user message %+v", req.Messages[1])
	}
}

func TestClient_GenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"non-2xx", http.StatusUnauthorized, `{"errors":[{"message":"Authentication error"}]}`},
		{"missing result", http.StatusOK, `{"success":false}`},
		{"empty response", http.StatusOK, `{"result":{"response":""}}`},
		{"malformed", http.StatusOK, `{"result":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			if _, err := c.Generate(context.Background(), "x"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestClient_CompleteFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if got := c.Complete(context.Background(), "buy milk"); got != FallbackSolution {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestClient_CompleteUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", "api-key", "", 200*time.Millisecond, discard)

	if got := c.Complete(context.Background(), "buy milk"); got != FallbackSolution {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestClient_CompleteSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"response":"answer"}}`))
	})

	if got := c.Complete(context.Background(), "q"); got != "answer" {
		t.Errorf("expected 'answer', got %q", got)
	}
}

func TestBaseURL(t *testing.T) {
	want := "https://api.cloudflare.com/client/v4/accounts/acct/ai/run"
	if got := BaseURL("acct"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
