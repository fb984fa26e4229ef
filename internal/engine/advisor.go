package engine

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/donaldgifford/carfinder/internal/metrics"
	"github.com/donaldgifford/carfinder/pkg/extract"
	score "github.com/donaldgifford/carfinder/pkg/scorer"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// ChatReply is the advisor's answer to one chat message.
type ChatReply struct {
	// Preferences are the caller's preferences with this message merged in.
	Preferences domain.PreferenceSet `json:"preferences"`
	// Extracted is what this message alone contributed.
	Extracted domain.PreferenceSet  `json:"extracted"`
	Topic     extract.Topic         `json:"topic"`
	Results   []domain.ScoredResult `json:"results"`
	TopPick   *domain.ScoredResult  `json:"top_pick,omitempty"`
	Reply     string                `json:"reply"`
}

var printer = message.NewPrinter(language.English)

// Chat merges the preferences found in msg into prefs, searches, and ranks
// the results by compatibility. Until any preference is known it asks
// a question instead of searching.
func (eng *Engine) Chat(
	ctx context.Context,
	msg string,
	prefs *domain.PreferenceSet,
	useLiveData bool,
) ChatReply {
	ctx, span := tracer.Start(ctx, "engine.Chat")
	defer span.End()

	session := extract.NewSession(prefs)
	found := session.Apply(msg)
	if found.IsEmpty() && eng.fallback != nil {
		if p, ok := eng.extractFallback(ctx, msg); ok {
			session.Merge(p)
			found = p
		}
	}

	out := ChatReply{
		Preferences: session.Preferences(),
		Extracted:   found,
		Topic:       extract.DetectTopic(msg),
		Results:     []domain.ScoredResult{},
	}
	span.SetAttributes(attribute.String("topic", string(out.Topic)))

	if out.Preferences.IsEmpty() {
		out.Reply = topicPrompt(out.Topic)
		return out
	}

	results := eng.SearchHybrid(ctx, out.Preferences, useLiveData)
	out.Results = eng.Recommend(results, &out.Preferences)
	if len(out.Results) > 0 {
		out.TopPick = &out.Results[0]
	}
	out.Reply = composeReply(&out, useLiveData)

	span.SetAttributes(attribute.Int("results", len(out.Results)))
	return out
}

// extractFallback asks the fallback extractor for preferences. Fields it
// could not validate are dropped; the rest are used.
func (eng *Engine) extractFallback(ctx context.Context, msg string) (domain.PreferenceSet, bool) {
	ctx, span := tracer.Start(ctx, "engine.extractFallback")
	defer span.End()

	name := eng.fallback.Name()
	span.SetAttributes(attribute.String("backend", name))

	start := time.Now()
	p, err := eng.fallback.Extract(ctx, msg)
	metrics.LLMExtractionDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMExtractionFailuresTotal.WithLabelValues(name).Inc()
		eng.log.Warn("fallback preference extraction failed", "backend", name, "error", err)
	}
	return p, !p.IsEmpty()
}

// Recommend scores results for compatibility with p, hides those under the
// minimum match score and orders the rest best match first. Ties keep the
// relevance order. Each result also carries its weighted objective score,
// whose highlights feed the reasoning.
func (eng *Engine) Recommend(results []domain.SearchResult, p *domain.PreferenceSet) []domain.ScoredResult {
	year := eng.now().Year()
	scored := make([]domain.ScoredResult, len(results))
	for i := range results {
		l := &results[i].VehicleListing
		b := score.Compatibility(l, p)
		obj := score.Objective(l, p, year)
		metrics.MatchScoreDistribution.Observe(b.Total)
		scored[i] = domain.ScoredResult{
			SearchResult: results[i],
			Match:        b.Total,
			Breakdown:    b,
			Objective:    obj,
			Reasoning:    reasoning(l, p, &obj),
		}
	}

	kept := score.FilterMatches(scored, eng.minMatchScore)
	slices.SortStableFunc(kept, func(a, b domain.ScoredResult) int {
		switch {
		case a.Match > b.Match:
			return -1
		case a.Match < b.Match:
			return 1
		default:
			return 0
		}
	})
	return kept
}

// reasoning lists the stated preferences a listing satisfies followed by the
// objective highlights. Budget and safety come from the highlights, so they
// follow the shopper's weights.
func reasoning(l *domain.VehicleListing, p *domain.PreferenceSet, obj *domain.ObjectiveBreakdown) string {
	var reasons []string
	if p.FuelType != "" && l.FuelType == p.FuelType {
		reasons = append(reasons, "matches your "+strings.ToLower(p.FuelType)+" preference")
	}
	if p.Make != "" && strings.EqualFold(l.Make, p.Make) {
		reasons = append(reasons, "you asked for "+p.Make)
	}
	if p.YearMin != nil && l.Year >= *p.YearMin {
		reasons = append(reasons, strconv.Itoa(*p.YearMin)+" or newer")
	}
	reasons = append(reasons, obj.Highlights...)
	if len(reasons) == 0 {
		return obj.Explanation
	}
	return strings.Join(reasons, "; ")
}

func composeReply(r *ChatReply, useLiveData bool) string {
	var b strings.Builder

	if r.TopPick == nil {
		b.WriteString("I couldn't find a good match for those requirements yet.\n\n")
		b.WriteString("You could widen the budget, consider other makes or models, ")
		b.WriteString("or relax the year and mileage limits.\n")
		if !useLiveData {
			b.WriteString("Turning on live data also searches current market listings.\n")
		}
		b.WriteString("Tell me what matters most and I'll look for alternatives.")
		return b.String()
	}

	n := len(r.Results)
	printer.Fprintf(&b, "I found %d %s matching your criteria", n, plural(n, "vehicle", "vehicles"))
	if live := countLive(r.Results); live > 0 {
		printer.Fprintf(&b, ", %d from live listings", live)
	}
	b.WriteString(".\n\n")

	top := r.TopPick
	printer.Fprintf(&b, "My top pick is the %s with a %.0f%% match.\n", top.Title(), top.Match)
	if top.Price != nil {
		printer.Fprintf(&b, "Price: $%d%s\n", int64(*top.Price), budgetNote(*top.Price, r.Preferences.BudgetMax))
	}
	if top.Mileage != nil {
		printer.Fprintf(&b, "Mileage: %d miles\n", *top.Mileage)
	}
	switch {
	case top.MPGCity != nil && top.MPGHighway != nil:
		printer.Fprintf(&b, "Fuel economy: %d/%d MPG\n", *top.MPGCity, *top.MPGHighway)
	case top.FuelType == "Electric":
		b.WriteString("Fuel type: Electric\n")
	}
	if top.Reasoning != "" {
		b.WriteString("Why it fits: " + top.Reasoning + ".\n")
	}

	if q := followUp(r.Topic, &r.Preferences); q != "" {
		b.WriteString("\n" + q)
	}
	return strings.TrimRight(b.String(), "\n")
}

func countLive(results []domain.ScoredResult) int {
	n := 0
	for i := range results {
		if results[i].Origin == domain.OriginLive {
			n++
		}
	}
	return n
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func budgetNote(price float64, budget *float64) string {
	if budget == nil {
		return ""
	}
	switch savings := *budget - price; {
	case savings > 5000:
		return printer.Sprintf(" ($%d under budget)", int64(savings))
	case savings >= 0:
		return " (within budget)"
	default:
		return " (slightly over budget)"
	}
}

// followUp asks about the message's topic when the preferences still lack
// that detail.
func followUp(t extract.Topic, p *domain.PreferenceSet) string {
	switch {
	case t == extract.TopicBudget && p.BudgetMax == nil:
		return "What's the most you'd like to spend?"
	case t == extract.TopicVehicleType && p.VehicleType == "":
		return "Is this mostly for commuting, family trips or hauling?"
	case t == extract.TopicFuel && p.FuelType == "":
		return "Would you consider a hybrid or an electric car?"
	case t == extract.TopicFeatures && len(p.DesiredFeatures) == 0:
		return "Which features matter most, such as a backup camera, heated seats or navigation?"
	default:
		return ""
	}
}

// topicPrompt is the opening question asked before any preference is known.
func topicPrompt(t extract.Topic) string {
	switch t {
	case extract.TopicBudget:
		return "Knowing your budget helps a lot. What's the most you'd like to spend on a car?"
	case extract.TopicVehicleType:
		return "Vehicle type is a big decision. Is this for daily commuting, family needs or outdoor trips?"
	case extract.TopicFuel:
		return "How important is fuel economy to you? Are hybrid or electric options on the table?"
	case extract.TopicFeatures:
		return "Which features matter most to you? Backup cameras, heated seats, navigation or advanced safety?"
	case extract.TopicSearch:
		return "Happy to search. What's your budget range, and what type of vehicle interests you most?"
	default:
		return "Hi! Tell me your budget and the kind of driving you do most, " +
			"for example \"a reliable SUV under $30,000 for family trips\"."
	}
}
