package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// SourceInspector reports on the listing sources.
type SourceInspector interface {
	DataSourceStatus(ctx context.Context) domain.DataSourceStatus
	Details(ctx context.Context, source, externalID string) (*domain.VehicleListing, bool)
}

// SourcesHandler handles source status and listing detail requests.
type SourcesHandler struct {
	sources SourceInspector
}

// NewSourcesHandler creates a new SourcesHandler.
func NewSourcesHandler(s SourceInspector) *SourcesHandler {
	return &SourcesHandler{sources: s}
}

// StatusOutput is the response body for the source status endpoint.
type StatusOutput struct {
	Body domain.DataSourceStatus
}

// Status reports the listing cache size and the configured providers.
func (h *SourcesHandler) Status(ctx context.Context, _ *struct{}) (*StatusOutput, error) {
	return &StatusOutput{Body: h.sources.DataSourceStatus(ctx)}, nil
}

// DetailsInput identifies one provider listing.
type DetailsInput struct {
	Source string `path:"source" doc:"Provider name" example:"cargurus"`
	ID     string `path:"id" doc:"Provider listing ID" example:"cg_001"`
}

// DetailsOutput is the response body for the listing details endpoint.
type DetailsOutput struct {
	Body *domain.VehicleListing
}

// Details fetches a listing from the provider that published it.
func (h *SourcesHandler) Details(ctx context.Context, input *DetailsInput) (*DetailsOutput, error) {
	l, ok := h.sources.Details(ctx, input.Source, input.ID)
	if !ok {
		return nil, huma.Error404NotFound("listing " + input.ID + " not found at " + input.Source)
	}
	return &DetailsOutput{Body: l}, nil
}

// RegisterSourcesRoutes registers source endpoints with the Huma API.
func RegisterSourcesRoutes(api huma.API, h *SourcesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-source-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/sources/status",
		Summary:     "Get data source status",
		Description: "Returns the number of cached listings and the live providers in use.",
		Tags:        []string{"sources"},
	}, h.Status)

	huma.Register(api, huma.Operation{
		OperationID: "get-listing-details",
		Method:      http.MethodGet,
		Path:        "/api/v1/sources/{source}/listings/{id}",
		Summary:     "Get listing details",
		Description: "Fetches the full listing from the provider that published it.",
		Tags:        []string{"sources"},
		Errors:      []int{http.StatusNotFound},
	}, h.Details)
}
