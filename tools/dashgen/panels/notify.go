package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// NotificationsSent returns a timeseries panel showing refresh notifications
// delivered.
func NotificationsSent() *timeseries.PanelBuilder {
	return series("Notifications Sent", "New-listing notifications delivered per hour", TSWidth).
		WithTarget(PromQuery(`sum(increase(`+jobSel("carfinder_notifications_sent_total")+`[1h]))`, "sent", "A")).
		WithTarget(PromQuery(quantile(0.95, "carfinder_notification_duration_seconds"), "p95 latency", "B"))
}

// NotificationFailures returns a stat panel showing webhook failures in the
// last 24 hours.
func NotificationFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Notification Failures (24h)").
		Description("Discord webhook deliveries that failed").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`increase(`+jobSel("carfinder_notification_failures_total")+`[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}
