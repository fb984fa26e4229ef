package rules

func alert(name, expr, forDur, severity, summary, description string) Rule {
	return Rule{
		Alert:  name,
		Expr:   expr,
		For:    forDur,
		Labels: map[string]string{"severity": severity},
		Annotations: map[string]string{
			"summary":     summary,
			"description": description,
		},
	}
}

// AlertRules returns a PrometheusRule CR containing alert rules for
// carfinder operational monitoring.
func AlertRules() PrometheusRule {
	return newPrometheusRule("carfinder-alerts", RuleGroup{
		Name: "carfinder-alerts",
		Rules: []Rule{
			alert("CarfinderDown",
				`absent(up{job="carfinder"})`, "2m", "critical",
				"carfinder is down",
				"The carfinder job has been absent for more than 2 minutes."),
			alert("CarfinderReadinessDown",
				`carfinder_readyz_up == 0`, "2m", "critical",
				"carfinder readiness check is failing",
				"The listing cache has been unreachable for more than 2 minutes."),
			alert("CarfinderHighErrorRate",
				`sum(carfinder:http_errors:rate5m) / sum(carfinder:http_requests:rate5m) > 0.05`, "5m", "warning",
				"High HTTP error rate on carfinder",
				"More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes."),
			alert("CarfinderProviderFailures",
				`sum(carfinder:source_failures:rate5m) by (source) > 0.1`, "10m", "warning",
				"Listing provider {{ $labels.source }} is failing",
				"Searches against the provider have been failing at more than 0.1/s for 10 minutes."),
			alert("CarfinderLiveFallbacks",
				`increase(carfinder_live_fallbacks_total[15m]) > 5`, "5m", "warning",
				"Live searches are falling back to the cache",
				"Every live provider has failed for several searches in the last 15 minutes."),
			alert("CarfinderAutoDevQuotaHigh",
				`carfinder_autodev_daily_usage > 800`, "5m", "warning",
				"auto.dev daily usage is above 80% of the budget",
				"Daily auto.dev calls have exceeded 800 (default budget is 1000)."),
			alert("CarfinderAutoDevLimitReached",
				`increase(carfinder_autodev_daily_limit_hits_total[5m]) > 0`, "0m", "critical",
				"auto.dev daily budget has been spent",
				"The auto.dev provider is refusing requests until the budget window rolls over."),
			alert("CarfinderRefreshFailures",
				`increase(carfinder_refresh_runs_total{outcome="failure"}[1h]) > 2`, "0m", "warning",
				"Scheduled refreshes are failing",
				"More than two scheduled live data refreshes failed in the last hour."),
			alert("CarfinderNotificationFailures",
				`increase(carfinder_notification_failures_total[5m]) > 0`, "1m", "warning",
				"Notification delivery failures detected",
				"One or more new-listing notifications (Discord webhooks) have failed to send."),
		},
	})
}
