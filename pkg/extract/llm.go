package extract

import (
	"context"
	"fmt"
	"time"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

const defaultLLMTimeout = 20 * time.Second

// LLMExtractor reads preferences from free text by prompting an LLM backend.
type LLMExtractor struct {
	backend LLMBackend
	timeout time.Duration
}

// LLMExtractorOption configures an LLMExtractor.
type LLMExtractorOption func(*LLMExtractor)

// WithLLMTimeout bounds each extraction call.
func WithLLMTimeout(d time.Duration) LLMExtractorOption {
	return func(x *LLMExtractor) {
		if d > 0 {
			x.timeout = d
		}
	}
}

// NewLLMExtractor creates an extractor on top of backend.
func NewLLMExtractor(backend LLMBackend, opts ...LLMExtractorOption) *LLMExtractor {
	x := &LLMExtractor{backend: backend, timeout: defaultLLMTimeout}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Name returns the backend name.
func (x *LLMExtractor) Name() string {
	return x.backend.Name()
}

// Extract asks the backend for the preferences in text. Like
// ParsePreferences it may return usable preferences together with an
// error describing fields it had to drop.
func (x *LLMExtractor) Extract(ctx context.Context, text string) (domain.PreferenceSet, error) {
	prompt, err := RenderPreferencesPrompt(text)
	if err != nil {
		return domain.PreferenceSet{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	resp, err := x.backend.Generate(ctx, GenerateRequest{
		Prompt:      prompt,
		SystemMsg:   SystemPrompt,
		Format:      FormatJSON,
		Temperature: 0.1,
		MaxTokens:   256,
	})
	if err != nil {
		return domain.PreferenceSet{}, fmt.Errorf("generating with %s: %w", x.backend.Name(), err)
	}

	return ParsePreferences(resp.Content)
}
