package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	apiclient "github.com/donaldgifford/carfinder/internal/api/client"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

var printer = message.NewPrinter(language.English)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printResultsTable(w io.Writer, results []domain.SearchResult) error {
	tw := newTabWriter(w)
	tw.writef("SOURCE\tID\tVEHICLE\tPRICE\tMILES\tLOCATION\tSCORE\tORIGIN\n")
	for i := range results {
		r := &results[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\t%.1f\t%s\n",
			r.Source,
			r.ExternalID,
			truncate(r.Title(), 36),
			formatPrice(r.Price),
			formatCount(r.Mileage),
			orDash(r.Location),
			r.Score,
			r.Origin,
		)
	}
	return tw.finish()
}

func printScoredTable(w io.Writer, results []domain.ScoredResult) error {
	tw := newTabWriter(w)
	tw.writef("MATCH\tFIT\tSOURCE\tID\tVEHICLE\tPRICE\tMILES\tWHY\n")
	for i := range results {
		r := &results[i]
		tw.writef("%.0f%%\t%.2f\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Match,
			r.Objective.Score,
			r.Source,
			r.ExternalID,
			truncate(r.Title(), 36),
			formatPrice(r.Price),
			formatCount(r.Mileage),
			truncate(r.Reasoning, 60),
		)
	}
	return tw.finish()
}

func printListingDetail(w io.Writer, l *domain.VehicleListing) error {
	tw := newTabWriter(w)
	tw.writef("Vehicle:\t%s\n", l.Title())
	tw.writef("Source:\t%s (%s)\n", l.Source, l.ExternalID)
	tw.writef("Price:\t%s\n", formatPrice(l.Price))
	tw.writef("Mileage:\t%s\n", formatCount(l.Mileage))
	if l.FuelType != "" {
		tw.writef("Fuel:\t%s\n", l.FuelType)
	}
	if l.Transmission != "" {
		tw.writef("Transmission:\t%s\n", l.Transmission)
	}
	if l.MPGCity != nil && l.MPGHighway != nil {
		tw.writef("MPG:\t%d city / %d highway\n", *l.MPGCity, *l.MPGHighway)
	}
	if l.SafetyRating != nil {
		tw.writef("Safety:\t%d/5\n", *l.SafetyRating)
	}
	tw.writef("Location:\t%s\n", orDash(l.Location))
	if l.DealerName != "" {
		tw.writef("Dealer:\t%s %s\n", l.DealerName, l.DealerPhone)
	}
	if l.VIN != "" {
		tw.writef("VIN:\t%s\n", l.VIN)
	}
	if len(l.Features) > 0 {
		tw.writef("Features:\t%s\n", strings.Join(l.Features, ", "))
	}
	if l.ListingURL != "" {
		tw.writef("URL:\t%s\n", l.ListingURL)
	}
	return tw.finish()
}

func printStatus(w io.Writer, s *domain.DataSourceStatus) error {
	tw := newTabWriter(w)
	tw.writef("Local database:\t%s (%s vehicles)\n",
		s.LocalDatabase.Status, printer.Sprintf("%d", s.LocalDatabase.VehicleCount))
	tw.writef("Live sources:\t%d\n", s.LiveSources.TotalSources)
	tw.writef("\nSOURCE\tAPI KEY\tBASE URL\n")

	names := append([]string(nil), s.LiveSources.ActiveSources...)
	sort.Strings(names)
	for _, name := range names {
		c := s.LiveSources.SourceCapabilities[name]
		tw.writef("%s\t%v\t%s\n", name, c.HasAPIKey, orDash(c.BaseURL))
	}
	return tw.finish()
}

func printQuota(w io.Writer, q *apiclient.Quota) error {
	tw := newTabWriter(w)
	tw.writef("Provider:\t%s\n", q.Provider)
	if q.Unlimited() {
		tw.writef("Daily limit:\tunlimited\n")
		tw.writef("Used:\t%s\n", printer.Sprintf("%d", q.DailyUsed))
	} else {
		tw.writef("Daily limit:\t%s\n", printer.Sprintf("%d", q.DailyLimit))
		tw.writef("Used:\t%s\n", printer.Sprintf("%d", q.DailyUsed))
		tw.writef("Remaining:\t%s\n", printer.Sprintf("%d", q.Remaining))
	}
	if !q.ResetAt.IsZero() {
		tw.writef("Resets at:\t%s\n", q.ResetAt.Local().Format(time.RFC1123))
	}
	return tw.finish()
}

func printPreferences(w io.Writer, p *domain.PreferenceSet) error {
	tw := newTabWriter(w)
	if p.IsEmpty() {
		tw.writef("No preferences recognized.\n")
		return tw.finish()
	}
	if p.Make != "" || p.Model != "" {
		tw.writef("Vehicle:\t%s\n", strings.TrimSpace(p.Make+" "+p.Model))
	}
	if p.VehicleType != "" {
		tw.writef("Type:\t%s\n", p.VehicleType)
	}
	if p.TruckClass != "" {
		tw.writef("Truck class:\t%s\n", p.TruckClass)
	}
	if p.BudgetMax != nil {
		tw.writef("Budget:\t%s\n", formatPrice(p.BudgetMax))
	}
	if p.YearMin != nil {
		tw.writef("Year from:\t%d\n", *p.YearMin)
	}
	if p.MileageMax != nil {
		tw.writef("Max mileage:\t%s\n", formatCount(p.MileageMax))
	}
	if p.FuelType != "" {
		tw.writef("Fuel:\t%s\n", p.FuelType)
	}
	if p.Location != "" {
		tw.writef("Location:\t%s\n", p.Location)
	}
	if len(p.DesiredFeatures) > 0 {
		tw.writef("Features:\t%s\n", strings.Join(p.DesiredFeatures, ", "))
	}
	if len(p.Priorities) > 0 {
		ps := make([]string, len(p.Priorities))
		for i, pr := range p.Priorities {
			ps[i] = string(pr)
		}
		tw.writef("Priorities:\t%s\n", strings.Join(ps, ", "))
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return printer.Sprintf("$%.0f", *p)
}

func formatCount(n *int) string {
	if n == nil {
		return "-"
	}
	return printer.Sprintf("%d", *n)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
