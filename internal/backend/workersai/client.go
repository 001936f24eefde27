// Package workersai implements service.Completer on a hosted chat model
// reachable at {base}/{model}.
package workersai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"tasktracker/internal/backend/httpapi"
)

const (
	// DefaultModel is the model used when none is configured.
	DefaultModel = "@cf/meta/llama-2-7b-chat-int8"

	// FallbackSolution is returned by Complete when the model cannot be reached.
	FallbackSolution = "could not obtain a solution"

	// MaxTokens caps the length of a generated answer.
	MaxTokens = 500

	systemPrompt = "You are a helpful assistant"
)

// BaseURL returns the model-run endpoint for a provider account.
func BaseURL(accountID string) string {
	return "https://api.cloudflare.com/client/v4/accounts/" + accountID + "/ai/run"
}

// Client implements service.Completer.
type Client struct {
	sender httpapi.Sender
	model  string
	logger *slog.Logger
}

// New creates a completion client authenticated with a bearer apiKey.
func New(baseURL, apiKey, model string, timeout time.Duration, logger *slog.Logger) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"})
	httpClient := oauth2.NewClient(context.Background(), ts)
	return NewWithSender(httpapi.New(baseURL, nil, httpClient, timeout), model, logger)
}

// NewWithSender creates a client over an existing sender (for testing).
func NewWithSender(sender httpapi.Sender, model string, logger *slog.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{sender: sender, model: model, logger: logger}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type runRequest struct {
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type runResponse struct {
	Result *struct {
		Response *string `json:"response"`
	} `json:"result"`
}

// Generate sends a single-turn chat request and returns the model's answer.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := runRequest{
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: MaxTokens,
	}

	raw, err := c.sender.Send(ctx, http.MethodPost, c.model, req)
	if err != nil {
		return "", err
	}

	var resp runResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("malformed completion response: %w", err)
	}
	if resp.Result == nil || resp.Result.Response == nil {
		return "", fmt.Errorf("completion response missing result.response")
	}
	if strings.TrimSpace(*resp.Result.Response) == "" {
		return "", fmt.Errorf("completion response is empty")
	}
	return *resp.Result.Response, nil
}

// Complete returns a solution for taskText, or FallbackSolution if the
// model call fails for any reason.
func (c *Client) Complete(ctx context.Context, taskText string) string {
	answer, err := c.Generate(ctx, taskText)
	if err != nil {
		c.logger.Warn("completion failed, using fallback",
			"model", c.model,
			"status", httpapi.StatusCode(err),
			"error", err,
		)
		return FallbackSolution
	}
	return answer
}
