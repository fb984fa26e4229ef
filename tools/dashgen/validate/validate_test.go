package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/carfinder/tools/dashgen/rules"
)

var known = map[string]bool{
	"carfinder_http_requests_total":           true,
	"carfinder_http_request_duration_seconds": true,
	"carfinder:http_requests:rate5m":          true,
}

func TestExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		expr         string
		wantErrors   int
		wantWarnings int
	}{
		{name: "known counter", expr: `rate(carfinder_http_requests_total[5m])`},
		{name: "histogram bucket", expr: `histogram_quantile(0.95, sum(rate(carfinder_http_request_duration_seconds_bucket[5m])) by (le))`},
		{name: "recording rule", expr: `sum(carfinder:http_requests:rate5m)`},
		{name: "unknown metric", expr: `rate(carfinder_missing_total[5m])`, wantErrors: 1},
		{name: "unknown bucket", expr: `carfinder_missing_bucket`, wantErrors: 1},
		{name: "syntax error", expr: `sum(rate(`, wantErrors: 1},
		{name: "no selectors", expr: `time()`, wantWarnings: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Expr("test", tt.expr, known)
			assert.Len(t, res.Errors, tt.wantErrors, "errors: %v", res.Errors)
			assert.Len(t, res.Warnings, tt.wantWarnings, "warnings: %v", res.Warnings)
		})
	}
}

func TestCollectExprs(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"title": "dash",
		"panels": []any{
			map[string]any{
				"title":   "Request Rate",
				"targets": []any{map[string]any{"expr": "up"}},
			},
		},
	}

	got := collectExprs(tree, "")
	assert.Equal(t, []query{{where: "panel Request Rate", expr: "up"}}, got)
}

func TestRules(t *testing.T) {
	t.Parallel()

	pr := rules.PrometheusRule{
		Spec: rules.PrometheusRuleSpec{Groups: []rules.RuleGroup{{
			Name: "g",
			Rules: []rules.Rule{
				{Record: "carfinder:http_requests:rate5m", Expr: `sum(rate(carfinder_http_requests_total[5m]))`},
				{Record: "carfinder:unlisted:rate5m", Expr: `sum(rate(carfinder_http_requests_total[5m]))`},
				{Alert: "Broken", Expr: `carfinder_nope > 0`},
				{Expr: `up`},
			},
		}}},
	}

	res := Rules(pr, known)
	assert.False(t, res.Ok())
	assert.Len(t, res.Errors, 3)
}
