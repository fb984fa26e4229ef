package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// Refresher fetches live listings into the cache.
type Refresher interface {
	RefreshLiveData(ctx context.Context, prefs *domain.PreferenceSet) domain.RefreshResult
}

// RefreshHandler handles manual cache refresh requests.
type RefreshHandler struct {
	refresher Refresher
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(r Refresher) *RefreshHandler {
	return &RefreshHandler{refresher: r}
}

// RefreshBody optionally narrows what a refresh fetches.
type RefreshBody struct {
	Preferences *domain.PreferenceSet `json:"preferences,omitempty" doc:"Preferences for the refresh search (default: budget up to the configured maximum)"`
}

// RefreshInput is the optional request body for the refresh endpoint.
type RefreshInput struct {
	Body *RefreshBody `required:"false"`
}

// RefreshOutput is the response body for the refresh endpoint.
type RefreshOutput struct {
	Body domain.RefreshResult
}

// Refresh pulls current listings from the live providers into the cache.
// A failed refresh is reported in the body, not as an HTTP error.
func (h *RefreshHandler) Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
	var prefs *domain.PreferenceSet
	if input.Body != nil {
		prefs = input.Body.Preferences
	}
	return &RefreshOutput{Body: h.refresher.RefreshLiveData(ctx, prefs)}, nil
}

// RegisterRefreshRoutes registers refresh endpoints with the Huma API.
func RegisterRefreshRoutes(api huma.API, h *RefreshHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "refresh-live-data",
		Method:      http.MethodPost,
		Path:        "/api/v1/refresh",
		Summary:     "Refresh the listing cache",
		Description: "Fetches current listings from the live providers and caches the new ones.",
		Tags:        []string{"sources"},
	}, h.Refresh)
}
