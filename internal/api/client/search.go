package client

import (
	"context"
	"fmt"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// SearchRequest is the body of a hybrid search.
type SearchRequest struct {
	Preferences domain.PreferenceSet `json:"preferences"`
	UseLiveData *bool                `json:"use_live_data,omitempty"`
}

// SearchResponse is the result of a hybrid search.
type SearchResponse struct {
	Results []domain.SearchResult `json:"results"`
	Total   int                   `json:"total"`
}

// Search runs a hybrid search.
func (c *Client) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.post(ctx, "/api/v1/search", req, &resp); err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	return &resp, nil
}

// ChatRequest is one conversational turn. Preferences carries what earlier
// turns returned.
type ChatRequest struct {
	Message     string                `json:"message"`
	Preferences *domain.PreferenceSet `json:"preferences,omitempty"`
	UseLiveData *bool                 `json:"use_live_data,omitempty"`
}

// ChatResponse is the advisor's answer.
type ChatResponse struct {
	Preferences domain.PreferenceSet  `json:"preferences"`
	Extracted   domain.PreferenceSet  `json:"extracted"`
	Topic       string                `json:"topic"`
	Results     []domain.ScoredResult `json:"results"`
	TopPick     *domain.ScoredResult  `json:"top_pick,omitempty"`
	Reply       string                `json:"reply"`
}

// Chat sends one message to the advisor.
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.post(ctx, "/api/v1/chat", req, &resp); err != nil {
		return nil, fmt.Errorf("chatting: %w", err)
	}
	return &resp, nil
}

// ExtractResponse holds the preferences recognized in a text.
type ExtractResponse struct {
	Preferences domain.PreferenceSet `json:"preferences"`
	Topic       string               `json:"topic"`
}

// Extract asks the server to parse preferences out of text.
func (c *Client) Extract(ctx context.Context, text string) (*ExtractResponse, error) {
	var resp ExtractResponse
	if err := c.post(ctx, "/api/v1/extract", map[string]string{"text": text}, &resp); err != nil {
		return nil, fmt.Errorf("extracting preferences: %w", err)
	}
	return &resp, nil
}
