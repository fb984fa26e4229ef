package extract

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// OllamaBackend implements LLMBackend against a local Ollama server.
type OllamaBackend struct {
	endpoint string
	model    string
	client   *http.Client
}

// OllamaOption configures the OllamaBackend.
type OllamaOption func(*OllamaBackend)

// WithOllamaHTTPClient sets a custom HTTP client.
func WithOllamaHTTPClient(c *http.Client) OllamaOption {
	return func(b *OllamaBackend) { b.client = c }
}

// NewOllamaBackend creates a backend for the Ollama server at endpoint.
func NewOllamaBackend(endpoint, model string, opts ...OllamaOption) *OllamaBackend {
	b := &OllamaBackend{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		client:   defaultHTTPClient(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the backend name.
func (*OllamaBackend) Name() string {
	return "ollama"
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Format  string         `json:"format,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

// Generate calls the Ollama /api/generate endpoint without streaming.
func (b *OllamaBackend) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	body := ollamaRequest{
		Model:  b.model,
		Prompt: req.Prompt,
		System: req.SystemMsg,
	}
	if req.Format == FormatJSON {
		body.Format = FormatJSON
	}
	opts := map[string]any{}
	if req.Temperature > 0 {
		opts["temperature"] = req.Temperature
	}
	if req.MaxTokens > 0 {
		opts["num_predict"] = req.MaxTokens
	}
	if len(opts) > 0 {
		body.Options = opts
	}

	var resp ollamaResponse
	if err := postJSON(ctx, b.client, b.endpoint+"/api/generate", nil, body, &resp); err != nil {
		var se *httpStatusError
		if errors.As(err, &se) {
			return GenerateResponse{}, fmt.Errorf("ollama error (status %d): %s", se.Status, string(se.Body))
		}
		return GenerateResponse{}, fmt.Errorf("calling ollama: %w", err)
	}

	return GenerateResponse{
		Content: resp.Response,
		Model:   resp.Model,
		Usage: TokenUsage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		},
	}, nil
}
