package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("carfinder-recording-rules", RuleGroup{
		Name: "carfinder-recording",
		Rules: []Rule{
			{
				Record: "carfinder:http_requests:rate5m",
				Expr:   `sum(rate(carfinder_http_requests_total[5m])) by (path)`,
			},
			{
				Record: "carfinder:http_errors:rate5m",
				Expr:   `sum(rate(carfinder_http_requests_total{status=~"5.."}[5m])) by (path)`,
			},
			{
				Record: "carfinder:source_listings:rate5m",
				Expr:   `sum(rate(carfinder_source_listings_total[5m])) by (source)`,
			},
			{
				Record: "carfinder:source_failures:rate5m",
				Expr:   `sum(rate(carfinder_source_failures_total[5m])) by (source, reason)`,
			},
			{
				Record: "carfinder:searches:rate5m",
				Expr:   `sum(rate(carfinder_searches_total[5m])) by (path)`,
			},
			{
				Record: "carfinder:cache_writes:rate5m",
				Expr:   `sum(rate(carfinder_cache_writes_total[5m]))`,
			},
			{
				Record: "carfinder:autodev_api_calls:rate5m",
				Expr:   `sum(rate(carfinder_autodev_api_calls_total[5m]))`,
			},
		},
	})
}
