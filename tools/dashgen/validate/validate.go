// Package validate checks generated dashboards and rule files for PromQL
// syntax errors and references to metrics the server does not export.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/carfinder/tools/dashgen/rules"
)

// Result collects problems found while validating.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation produced no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Expr parses a single PromQL expression and checks every metric it selects
// against known. where identifies the expression in messages.
func Expr(where, expr string, known map[string]bool) Result {
	var res Result

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: parsing %q: %v", where, expr, err))
		return res
	}

	selectors := 0
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		selectors++
		if !metricKnown(vs.Name, known) {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: unknown metric %q", where, vs.Name))
		}
		return nil
	})
	if selectors == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %q selects no metrics", where, expr))
	}

	return res
}

func metricKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// Dashboard validates every query expression in a built dashboard.
func Dashboard(d dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(d)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return res
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return res
	}

	for _, q := range collectExprs(tree, "") {
		res.merge(Expr(q.where, q.expr, known))
	}
	return res
}

type query struct {
	where string
	expr  string
}

// collectExprs walks decoded dashboard JSON and returns every "expr" value,
// labeled with the title of the nearest enclosing panel.
func collectExprs(v any, title string) []query {
	var out []query
	switch node := v.(type) {
	case map[string]any:
		if t, ok := node["title"].(string); ok {
			title = t
		}
		if e, ok := node["expr"].(string); ok {
			out = append(out, query{where: "panel " + title, expr: e})
		}
		for _, child := range node {
			out = append(out, collectExprs(child, title)...)
		}
	case []any:
		for _, child := range node {
			out = append(out, collectExprs(child, title)...)
		}
	}
	return out
}

// Rules validates every expression in a PrometheusRule. Recording rules
// must record a name present in known so dashboards can reference it.
func Rules(pr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, g := range pr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Name()
			if r.Record != "" {
				if !known[r.Record] {
					res.Errors = append(res.Errors, fmt.Sprintf("%s/%s: recorded name is not in the known metrics", g.Name, r.Record))
				}
			}
			if name == "" {
				res.Errors = append(res.Errors, fmt.Sprintf("%s: rule has neither record nor alert", g.Name))
				continue
			}
			res.merge(Expr(g.Name+"/"+name, r.Expr, known))
		}
	}
	return res
}
