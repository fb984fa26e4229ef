package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/carfinder/internal/store"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// VehicleLookup reads cached vehicles by VIN.
type VehicleLookup interface {
	GetByVIN(ctx context.Context, vin string) (*domain.VehicleRecord, error)
}

// VehiclesHandler serves vehicles from the local listing cache.
type VehiclesHandler struct {
	store VehicleLookup
}

// NewVehiclesHandler creates a new VehiclesHandler.
func NewVehiclesHandler(s VehicleLookup) *VehiclesHandler {
	return &VehiclesHandler{store: s}
}

// GetVehicleInput is the request for the VIN lookup.
type GetVehicleInput struct {
	VIN string `path:"vin" minLength:"11" maxLength:"17" doc:"Vehicle identification number" example:"1HGCV1F34MA012345"`
}

// GetVehicleOutput is the response for the VIN lookup.
type GetVehicleOutput struct {
	Body domain.VehicleRecord
}

// GetVehicle returns the cached vehicle with the given VIN.
func (h *VehiclesHandler) GetVehicle(ctx context.Context, input *GetVehicleInput) (*GetVehicleOutput, error) {
	vin := strings.ToUpper(input.VIN)
	rec, err := h.store.GetByVIN(ctx, vin)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("vehicle " + vin + " is not cached")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to read vehicle cache")
	}
	return &GetVehicleOutput{Body: *rec}, nil
}

// RegisterVehicleRoutes registers the cache lookup endpoint with the Huma API.
func RegisterVehicleRoutes(api huma.API, h *VehiclesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-vehicle",
		Method:      http.MethodGet,
		Path:        "/api/v1/vehicles/{vin}",
		Summary:     "Get a cached vehicle by VIN",
		Description: "Returns the vehicle stored in the local listing cache under the given VIN.",
		Tags:        []string{"vehicles"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetVehicle)
}
