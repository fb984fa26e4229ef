package client

import (
	"context"
	"fmt"
	"time"
)

// Quota is the auto.dev daily budget reported by the server.
type Quota struct {
	Provider   string    `json:"provider"`
	DailyLimit int64     `json:"daily_limit"`
	DailyUsed  int64     `json:"daily_used"`
	Remaining  int64     `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
}

// Unlimited reports whether the server enforces no daily budget.
func (q *Quota) Unlimited() bool {
	return q.DailyLimit <= 0
}

// Quota returns the server's auto.dev quota status.
func (c *Client) Quota(ctx context.Context) (*Quota, error) {
	var q Quota
	if err := c.get(ctx, "/api/v1/quota", &q); err != nil {
		return nil, fmt.Errorf("getting quota: %w", err)
	}
	return &q, nil
}
