package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// QuotaReporter exposes the daily call budget of a rate-limited provider.
// *sources.RateLimiter implements it.
type QuotaReporter interface {
	MaxDaily() int64
	DailyCount() int64
	Remaining() int64
	ResetAt() time.Time
}

// QuotaHandler provides the auto.dev quota status endpoint.
type QuotaHandler struct {
	rl QuotaReporter
}

// NewQuotaHandler creates a new QuotaHandler. rl may be nil when auto.dev
// is not configured.
func NewQuotaHandler(rl QuotaReporter) *QuotaHandler {
	return &QuotaHandler{rl: rl}
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		Provider   string    `json:"provider"    example:"auto.dev"             doc:"Provider the budget applies to"`
		DailyLimit int64     `json:"daily_limit" example:"1000"                 doc:"Configured daily API call budget; 0 means unlimited"`
		DailyUsed  int64     `json:"daily_used"  example:"142"                  doc:"API calls used in the current 24-hour window"`
		Remaining  int64     `json:"remaining"   example:"858"                  doc:"API calls remaining in the current window; -1 means unlimited"`
		ResetAt    time.Time `json:"reset_at"    example:"2025-06-16T14:30:00Z" doc:"When the current 24-hour window expires"`
	}
}

// GetQuota returns the current auto.dev quota status.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}
	resp.Body.Provider = "auto.dev"
	if h.rl == nil {
		return resp, nil
	}

	resp.Body.DailyLimit = max(h.rl.MaxDaily(), 0)
	resp.Body.DailyUsed = h.rl.DailyCount()
	resp.Body.Remaining = h.rl.Remaining()
	resp.Body.ResetAt = h.rl.ResetAt()
	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get auto.dev quota status",
		Description: "Returns the daily auto.dev call usage, remaining budget, and window reset time.",
		Tags:        []string{"sources"},
	}, h.GetQuota)
}
