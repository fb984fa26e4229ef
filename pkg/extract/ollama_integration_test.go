//go:build integration

package extract_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/carfinder/pkg/extract"
)

// TestLLMExtractor_OllamaIntegration requires a running Ollama instance.
// Run with: go test -tags=integration -run TestLLMExtractor_OllamaIntegration ./pkg/extract/...
//
// Optional environment variables:
//   - OLLAMA_ENDPOINT: Ollama endpoint (default: http://localhost:11434)
//   - OLLAMA_MODEL: Model to use (default: mistral)
func TestLLMExtractor_OllamaIntegration(t *testing.T) {
	endpoint := os.Getenv("OLLAMA_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:11434"
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = "mistral"
	}

	x := extract.NewLLMExtractor(extract.NewOllamaBackend(endpoint, model))

	got, err := x.Extract(context.Background(),
		"I need something for hauling a camper, ideally a Chevy, and I can spend about forty grand")
	if err != nil {
		t.Logf("extraction reported dropped fields: %v", err)
	}
	require.False(t, got.IsEmpty(), "expected at least one preference")
	t.Logf("extracted: %+v", got)
}
