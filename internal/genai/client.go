// Package genai implements the chat-completion client the assistant
// workflows use for text generation.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/settings"
)

// Parameters applied to every request.
const (
	maxTokens   = 2000
	temperature = 0.7
)

// Per-provider defaults, used when the endpoint setting is empty.
const (
	openAIEndpoint    = "https://api.openai.com/v1/chat/completions"
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"

	openAIModel    = "gpt-4o"
	anthropicModel = "claude-sonnet-4-5"
)

// Generator produces completion text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client calls a chat-style completion endpoint over HTTP. It reads
// provider, key, and endpoint from the settings store on every call, so
// settings changes take effect without reconstruction.
type Client struct {
	settings *settings.Store
	client   *http.Client
}

var _ Generator = (*Client)(nil)

// New creates a generation client bound to st.
func New(st *settings.Store) *Client {
	return &Client{settings: st, client: &http.Client{}}
}

type generateRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generate sends prompt as a single user message and returns the completion
// text. Calls are single-shot: no retry, no client-side timeout, no
// streaming. A 2xx response with no recognisable completion field yields an
// empty string and no error.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	s := c.settings.Current()
	if s.APIKey == "" {
		return "", fmt.Errorf("genai: %w, set it in settings first", apperr.ErrMissingAPIKey)
	}

	endpoint := s.APIEndpoint
	if endpoint == "" {
		endpoint = defaultEndpoint(s.APIProvider)
	}

	body, err := json.Marshal(generateRequest{
		Model:       modelFor(s.APIProvider),
		Messages:    []message{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("genai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("genai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", apperr.ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d: %s", apperr.ErrTransport, resp.StatusCode, excerpt(respBody))
	}

	return Extract(respBody), nil
}

func defaultEndpoint(provider string) string {
	if provider == settings.ProviderAnthropic {
		return anthropicEndpoint
	}
	return openAIEndpoint
}

func modelFor(provider string) string {
	if provider == settings.ProviderAnthropic {
		return anthropicModel
	}
	return openAIModel
}

// excerpt keeps error messages readable when the endpoint returns a long
// HTML or JSON error page.
func excerpt(body []byte) string {
	const max = 200
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "..."
}
