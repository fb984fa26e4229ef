package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// Searcher runs hybrid searches.
type Searcher interface {
	SearchHybrid(ctx context.Context, prefs domain.PreferenceSet, useLiveData bool) []domain.SearchResult
}

// SearchHandler handles vehicle search requests.
type SearchHandler struct {
	searcher    Searcher
	useLiveData bool
}

// NewSearchHandler creates a new SearchHandler. useLiveData is the default
// for requests that do not say.
func NewSearchHandler(s Searcher, useLiveData bool) *SearchHandler {
	return &SearchHandler{searcher: s, useLiveData: useLiveData}
}

// SearchInput is the request body for the search endpoint.
type SearchInput struct {
	Body struct {
		Preferences domain.PreferenceSet `json:"preferences,omitempty" doc:"Search preferences; unset fields are unconstrained"`
		UseLiveData *bool                `json:"use_live_data,omitempty" doc:"Query live providers (default from server config)"`
	}
}

// SearchOutput is the response body for the search endpoint.
type SearchOutput struct {
	Body struct {
		Results []domain.SearchResult `json:"results" doc:"Matching listings, most relevant first"`
		Total   int                   `json:"total" example:"20" doc:"Number of results returned"`
	}
}

// Search runs a hybrid search over live providers and the listing cache.
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if vt := input.Body.Preferences.VehicleType; vt != "" && !vt.IsValid() {
		return nil, huma.Error422UnprocessableEntity("unknown vehicle_type " + string(vt))
	}

	results := h.searcher.SearchHybrid(ctx, input.Body.Preferences, liveData(input.Body.UseLiveData, h.useLiveData))
	if results == nil {
		results = []domain.SearchResult{}
	}

	resp := &SearchOutput{}
	resp.Body.Results = results
	resp.Body.Total = len(results)
	return resp, nil
}

func liveData(requested *bool, fallback bool) bool {
	if requested != nil {
		return *requested
	}
	return fallback
}

// RegisterSearchRoutes registers search endpoints with the Huma API.
func RegisterSearchRoutes(api huma.API, h *SearchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-vehicles",
		Method:      http.MethodPost,
		Path:        "/api/v1/search",
		Summary:     "Search vehicle listings",
		Description: "Searches live providers or the local listing cache, removes duplicates " +
			"and returns listings ranked by relevance to the preferences.",
		Tags:   []string{"search"},
		Errors: []int{http.StatusUnprocessableEntity},
	}, h.Search)
}
