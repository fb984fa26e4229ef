package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/carfinder/internal/engine"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// Advisor answers chat messages.
type Advisor interface {
	Chat(ctx context.Context, msg string, prefs *domain.PreferenceSet, useLiveData bool) engine.ChatReply
}

// ChatHandler handles conversational search requests.
type ChatHandler struct {
	advisor     Advisor
	useLiveData bool
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(a Advisor, useLiveData bool) *ChatHandler {
	return &ChatHandler{advisor: a, useLiveData: useLiveData}
}

// ChatInput is the request body for the chat endpoint.
type ChatInput struct {
	Body struct {
		Message     string                `json:"message" minLength:"1" maxLength:"2000" doc:"What the shopper said" example:"I need a reliable SUV under $30k"`
		Preferences *domain.PreferenceSet `json:"preferences,omitempty" doc:"Preferences gathered earlier in the conversation"`
		UseLiveData *bool                 `json:"use_live_data,omitempty" doc:"Query live providers (default from server config)"`
	}
}

// ChatOutput is the response body for the chat endpoint.
type ChatOutput struct {
	Body engine.ChatReply
}

// Chat merges the message into the conversation's preferences and
// recommends matching vehicles.
func (h *ChatHandler) Chat(ctx context.Context, input *ChatInput) (*ChatOutput, error) {
	if p := input.Body.Preferences; p != nil && p.VehicleType != "" && !p.VehicleType.IsValid() {
		return nil, huma.Error422UnprocessableEntity("unknown vehicle_type " + string(p.VehicleType))
	}

	reply := h.advisor.Chat(ctx, input.Body.Message, input.Body.Preferences,
		liveData(input.Body.UseLiveData, h.useLiveData))
	return &ChatOutput{Body: reply}, nil
}

// RegisterChatRoutes registers chat endpoints with the Huma API.
func RegisterChatRoutes(api huma.API, h *ChatHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "chat",
		Method:      http.MethodPost,
		Path:        "/api/v1/chat",
		Summary:     "Chat with the shopping advisor",
		Description: "Extracts preferences from the message, merges them with the given " +
			"preferences and returns compatibility-scored recommendations. The returned " +
			"preferences should be sent back with the next message.",
		Tags:   []string{"chat"},
		Errors: []int{http.StatusUnprocessableEntity},
	}, h.Chat)
}
