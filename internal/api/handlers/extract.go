package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/carfinder/pkg/extract"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// ExtractHandler handles preference extraction requests.
type ExtractHandler struct{}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler() *ExtractHandler {
	return &ExtractHandler{}
}

// ExtractInput is the request body for the extract endpoint.
type ExtractInput struct {
	Body struct {
		Text string `json:"text" minLength:"1" maxLength:"2000" doc:"Free-form shopping request" example:"hybrid sedan under $25,000 with heated seats"`
	}
}

// ExtractOutput is the response body for the extract endpoint.
type ExtractOutput struct {
	Body struct {
		Preferences domain.PreferenceSet `json:"preferences" doc:"Preferences recognized in the text"`
		Topic       extract.Topic        `json:"topic" example:"budget" doc:"What the text is mostly about"`
	}
}

// Extract turns free text into structured preferences.
func (*ExtractHandler) Extract(_ context.Context, input *ExtractInput) (*ExtractOutput, error) {
	resp := &ExtractOutput{}
	resp.Body.Preferences = extract.FromText(input.Body.Text)
	resp.Body.Topic = extract.DetectTopic(input.Body.Text)
	return resp, nil
}

// RegisterExtractRoutes registers extract endpoints with the Huma API.
func RegisterExtractRoutes(api huma.API, h *ExtractHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "extract-preferences",
		Method:      http.MethodPost,
		Path:        "/api/v1/extract",
		Summary:     "Extract preferences from text",
		Description: "Recognizes budget, make, fuel, year, mileage, vehicle type, truck class, " +
			"features, priorities and location in a shopping request.",
		Tags: []string{"chat"},
	}, h.Extract)
}
