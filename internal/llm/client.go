// Package llm provides the text-completion client used by the pipeline
// stages. The completion capability is deliberately small: prompt text in,
// completion text out. Callers own failure policy; no retry happens here.
package llm

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// CompletionClient is the opaque text-completion capability consumed by the
// pipeline. It is passed explicitly so tests can substitute a deterministic
// fake.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for the completion client.
type Config struct {
	Provider   string // "openai" (default, OpenAI-compatible) or "azure"
	Model      string
	APIKey     string
	BaseURL    string
	Deployment string // azure deployment name
	APIVersion string // azure api-version
	Timeout    time.Duration
	MaxTokens  int
}

// Client calls an OpenAI-compatible or Azure OpenAI chat completions endpoint.
// The client is immutable after construction and safe for concurrent use.
type Client struct {
	client    *resty.Client
	model     string
	endpoint  string
	maxTokens int
}

// NewClient creates a new completion client.
// Parameters:
//   - cfg: provider, model, credentials, and endpoint configuration.
//
// Returns:
//   - *Client: initialized completion client.
func NewClient(cfg *Config) *Client {
	client := resty.New()
	client.SetHeader("Content-Type", "application/json")

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 90 * time.Second
	}
	client.SetTimeout(timeout)

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1500
	}

	var endpoint string
	if cfg.Provider == "azure" {
		// Azure routes by deployment and authenticates with an api-key header.
		client.SetHeader("api-key", cfg.APIKey)
		endpoint = fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
			cfg.BaseURL, cfg.Deployment, url.QueryEscape(cfg.APIVersion))
	} else {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
		endpoint = baseURL + "/chat/completions"
	}

	return &Client{
		client:    client,
		model:     cfg.Model,
		endpoint:  endpoint,
		maxTokens: maxTokens,
	}
}

// GetModel returns the model name being used.
func (c *Client) GetModel() string {
	return c.model
}

// OpenAI-compatible Chat Completion API request/response structures
type chatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends a single-turn prompt and returns the completion text.
// Extraction prompts depend on reproducible output, so temperature is
// pinned to zero.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - prompt: full prompt text.
//
// Returns:
//   - string: completion text.
//   - error: non-nil if the API request fails or returns no choices.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: 0,
	}

	var resp chatResponse
	httpResp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(c.endpoint)

	if err != nil {
		return "", fmt.Errorf("failed to call completion API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		errorMsg := fmt.Sprintf("HTTP %d", httpResp.StatusCode())
		if resp.Error != nil {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		} else if len(httpResp.Body()) > 0 {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
		}
		return "", fmt.Errorf("completion API returned error: %s", errorMsg)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("completion API error: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response (status: %d)", httpResp.StatusCode())
	}

	return resp.Choices[0].Message.Content, nil
}
