package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
)

const (
	defaultAnthropicURL     = "https://api.anthropic.com/v1/messages"
	defaultAnthropicModel   = "claude-3-5-haiku-latest"
	defaultAnthropicVersion = "2023-06-01"
)

// AnthropicBackend implements LLMBackend using the Anthropic Messages API.
type AnthropicBackend struct {
	apiKey     string
	model      string
	endpoint   string
	apiVersion string
	client     *http.Client
}

// AnthropicOption configures the AnthropicBackend.
type AnthropicOption func(*AnthropicBackend)

// WithAnthropicEndpoint overrides the default API endpoint.
func WithAnthropicEndpoint(url string) AnthropicOption {
	return func(b *AnthropicBackend) { b.endpoint = url }
}

// WithAnthropicModel overrides the default model. Empty keeps the default.
func WithAnthropicModel(model string) AnthropicOption {
	return func(b *AnthropicBackend) {
		if model != "" {
			b.model = model
		}
	}
}

// WithAnthropicAPIKey overrides the key read from ANTHROPIC_API_KEY.
func WithAnthropicAPIKey(key string) AnthropicOption {
	return func(b *AnthropicBackend) { b.apiKey = key }
}

// WithAnthropicHTTPClient sets a custom HTTP client.
func WithAnthropicHTTPClient(c *http.Client) AnthropicOption {
	return func(b *AnthropicBackend) { b.client = c }
}

// NewAnthropicBackend creates a new Anthropic Messages API backend.
func NewAnthropicBackend(opts ...AnthropicOption) *AnthropicBackend {
	b := &AnthropicBackend{
		apiKey:     os.Getenv("ANTHROPIC_API_KEY"),
		model:      defaultAnthropicModel,
		endpoint:   defaultAnthropicURL,
		apiVersion: defaultAnthropicVersion,
		client:     defaultHTTPClient(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the backend name.
func (*AnthropicBackend) Name() string {
	return "anthropic"
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature *float64           `json:"temperature,omitempty"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model string `json:"model"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Generate calls the Anthropic Messages API. The API has no JSON mode, so
// Format is carried by the prompt alone.
func (b *AnthropicBackend) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	if b.apiKey == "" {
		return GenerateResponse{}, errors.New("ANTHROPIC_API_KEY is not set")
	}

	body := anthropicRequest{
		Model:     b.model,
		MaxTokens: req.MaxTokens,
		System:    req.SystemMsg,
		Messages:  []anthropicMessage{{Role: "user", Content: req.Prompt}},
	}
	if body.MaxTokens <= 0 {
		body.MaxTokens = 512
	}
	if req.Temperature > 0 {
		body.Temperature = &req.Temperature
	}

	var resp anthropicResponse
	err := postJSON(ctx, b.client, b.endpoint, map[string]string{
		"x-api-key":         b.apiKey,
		"anthropic-version": b.apiVersion,
	}, body, &resp)
	if err != nil {
		return GenerateResponse{}, anthropicErr(err)
	}

	for _, c := range resp.Content {
		if c.Type == "text" {
			return GenerateResponse{
				Content: c.Text,
				Model:   resp.Model,
				Usage: TokenUsage{
					PromptTokens:     resp.Usage.InputTokens,
					CompletionTokens: resp.Usage.OutputTokens,
					TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
				},
			}, nil
		}
	}
	return GenerateResponse{}, errors.New("empty response from anthropic")
}

func anthropicErr(err error) error {
	var se *httpStatusError
	if !errors.As(err, &se) {
		return fmt.Errorf("calling anthropic API: %w", err)
	}
	var envelope struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(se.Body, &envelope) == nil && envelope.Error.Message != "" {
		return fmt.Errorf("anthropic API error (status %d): %s: %s",
			se.Status, envelope.Error.Type, envelope.Error.Message)
	}
	return fmt.Errorf("anthropic API error (status %d): %s", se.Status, string(se.Body))
}
