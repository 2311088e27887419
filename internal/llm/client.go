// Package llm provides the Ollama text-generation client used to narrate the world.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	DefaultURL   = "http://localhost:11434/api/generate"
	DefaultModel = "gemma3:1b"
)

// Config selects the endpoint and model.
type Config struct {
	URL     string
	Model   string
	Timeout time.Duration // Zero blocks until the service answers
}

// Client wraps the Ollama generate API. Calls are single-shot and non-streaming.
type Client struct {
	url        string
	model      string
	httpClient *http.Client
}

// NewClient creates a new generate client, filling in defaults for empty fields.
func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Client{
		url:   cfg.URL,
		model: cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Model returns the model identifier sent with every request.
func (c *Client) Model() string {
	return c.model
}

// request is the API request body.
type request struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// response is the API response body.
type response struct {
	Response        *string `json:"response"`
	PromptEvalCount int     `json:"prompt_eval_count"`
	EvalCount       int     `json:"eval_count"`
	TotalDuration   int64   `json:"total_duration"` // Nanoseconds
}

// Generate sends a prompt and returns the generated text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := request{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("API call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if apiResp.Response == nil {
		return "", errors.New("malformed response: no response field")
	}

	slog.Debug("ollama call",
		"model", c.model,
		"prompt_tokens", apiResp.PromptEvalCount,
		"output_tokens", apiResp.EvalCount,
		"duration", time.Duration(apiResp.TotalDuration),
	)

	return *apiResp.Response, nil
}
