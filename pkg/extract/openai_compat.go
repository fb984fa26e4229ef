package extract

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// DefaultOpenAIEndpoint is the OpenAI API base URL.
const DefaultOpenAIEndpoint = "https://api.openai.com/v1"

// OpenAICompatBackend implements LLMBackend for any server speaking the
// OpenAI chat completions API.
type OpenAICompatBackend struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

// OpenAICompatOption configures the OpenAICompatBackend.
type OpenAICompatOption func(*OpenAICompatBackend)

// WithOpenAICompatHTTPClient sets a custom HTTP client.
func WithOpenAICompatHTTPClient(c *http.Client) OpenAICompatOption {
	return func(b *OpenAICompatBackend) { b.client = c }
}

// WithOpenAICompatAPIKey overrides the bearer token read from
// OPENAI_API_KEY. Local servers usually need none.
func WithOpenAICompatAPIKey(key string) OpenAICompatOption {
	return func(b *OpenAICompatBackend) { b.apiKey = key }
}

// NewOpenAICompatBackend creates a backend for the API rooted at endpoint,
// e.g. https://api.openai.com/v1.
func NewOpenAICompatBackend(endpoint, model string, opts ...OpenAICompatOption) *OpenAICompatBackend {
	b := &OpenAICompatBackend{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		apiKey:   os.Getenv("OPENAI_API_KEY"),
		client:   defaultHTTPClient(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the backend name.
func (*OpenAICompatBackend) Name() string {
	return "openai_compat"
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatRequest struct {
	Model          string            `json:"model"`
	Messages       []openAIMessage   `json:"messages"`
	Temperature    float64           `json:"temperature,omitempty"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type openAIChatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Generate calls POST {endpoint}/chat/completions.
func (b *OpenAICompatBackend) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	body := openAIChatRequest{
		Model:       b.model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.SystemMsg != "" {
		body.Messages = append(body.Messages, openAIMessage{Role: "system", Content: req.SystemMsg})
	}
	body.Messages = append(body.Messages, openAIMessage{Role: "user", Content: req.Prompt})
	if req.Format == FormatJSON {
		body.ResponseFormat = map[string]string{"type": "json_object"}
	}

	var headers map[string]string
	if b.apiKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + b.apiKey}
	}

	var resp openAIChatResponse
	if err := postJSON(ctx, b.client, b.endpoint+"/chat/completions", headers, body, &resp); err != nil {
		var se *httpStatusError
		if errors.As(err, &se) {
			return GenerateResponse{}, fmt.Errorf("openai_compat error (status %d): %s", se.Status, string(se.Body))
		}
		return GenerateResponse{}, fmt.Errorf("calling openai_compat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return GenerateResponse{}, errors.New("no choices in openai_compat response")
	}

	return GenerateResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
