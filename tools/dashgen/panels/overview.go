package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

func probeStat(title, description, metric string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(metric, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// HealthzStat returns a stat panel showing the health check status.
func HealthzStat() *stat.PanelBuilder {
	return probeStat("Healthz", "Health check status (1 = ok, 0 = failing)", "carfinder_healthz_up")
}

// ReadyzStat returns a stat panel showing the readiness check status.
func ReadyzStat() *stat.PanelBuilder {
	return probeStat("Readyz", "Readiness check status (1 = database reachable)", "carfinder_readyz_up")
}

// QuotaGauge returns a gauge panel showing auto.dev daily usage as a
// percentage of the default budget.
func QuotaGauge() *gauge.PanelBuilder {
	expr := fmt.Sprintf("carfinder_autodev_daily_usage / %d * 100", AutoDevDailyLimit)
	return gauge.NewPanelBuilder().
		Title("auto.dev Quota %").
		Description("Daily auto.dev calls as percentage of the budget").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(expr, "", "A")).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsGreenYellowRed(80, 95)).
		ColorScheme(ColorSchemeThresholds())
}

// NextRefreshStat returns a stat panel counting down to the next scheduled
// live data refresh.
func NextRefreshStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Next Refresh").
		Description("Time until the scheduler next pulls live listings").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(jobSel("carfinder_scheduler_next_refresh_timestamp")+" - time()", "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}
