package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded summaries. It is
// used when no notification backend is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards summaries with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendRefresh logs and discards a refresh summary.
func (n *NoOpNotifier) SendRefresh(_ context.Context, p *RefreshPayload) error {
	n.log.Debug("notification discarded (no backend configured)",
		"new_listings", p.NewListings,
		"fetched", p.Fetched,
	)
	return nil
}
