// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/carfinder/tools/dashgen/panels"
)

// BuildOverview constructs the carfinder Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("carfinder Overview").
		Uid("carfinder-overview").
		Tags([]string{"carfinder"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.NextRefreshStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Providers").
		WithPanel(panels.SourceLatency()).
		WithPanel(panels.SourceListings()).
		WithPanel(panels.SourceFailures()))

	b.WithRow(dashboard.NewRowBuilder("Search").
		WithPanel(panels.SearchesByPath()).
		WithPanel(panels.Duplicates()).
		WithPanel(panels.AggregateLatency()).
		WithPanel(panels.LLMExtraction()).
		WithPanel(panels.MatchDistribution()))

	b.WithRow(dashboard.NewRowBuilder("Cache & Refresh").
		WithPanel(panels.CacheWrites()).
		WithPanel(panels.RefreshRuns()).
		WithPanel(panels.RefreshDuration()))

	b.WithRow(dashboard.NewRowBuilder("auto.dev").
		WithPanel(panels.APICallsRate()).
		WithPanel(panels.DailyUsage()).
		WithPanel(panels.LimitHits()))

	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationsSent()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
