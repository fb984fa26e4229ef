package score

import (
	"fmt"
	"strings"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// makeReliability is the baseline reliability of each make. Unlisted makes
// score defaultReliability.
var makeReliability = map[string]float64{
	"toyota":        0.95,
	"honda":         0.92,
	"mazda":         0.88,
	"subaru":        0.85,
	"hyundai":       0.82,
	"kia":           0.80,
	"ford":          0.75,
	"chevrolet":     0.72,
	"bmw":           0.70,
	"mercedes-benz": 0.68,
	"audi":          0.66,
	"volkswagen":    0.64,
}

const defaultReliability = 0.6

// Listings without a year or mileage are scored as if they had these.
const (
	assumedModelYear = 2020
	assumedMileage   = 50000
)

// commonFeatures each add a small bonus to the features factor.
var commonFeatures = []string{"backup camera", "bluetooth", "navigation", "heated seats"}

// Objective scores a listing on price, reliability, fuel efficiency, safety
// and features, weighted by the shopper's weights (or DefaultWeights when
// none were given). The result carries the highlights that justify it.
func Objective(l *domain.VehicleListing, p *domain.PreferenceSet, currentYear int) domain.ObjectiveBreakdown {
	w := domain.DefaultWeights()
	if p.Weights != nil {
		w = p.Weights.Normalized()
	}

	have := lowerSet(l.Features)
	o := domain.ObjectiveBreakdown{
		Price:          priceFactor(l.Price, p.BudgetMax),
		Reliability:    reliabilityFactor(l, currentYear),
		FuelEfficiency: fuelFactor(l),
		Safety:         safetyFactor(l.SafetyRating),
		Features:       featuresFactor(have, p.DesiredFeatures),
		Weights:        w,
	}

	total := o.Price*w.Price +
		o.Reliability*w.Reliability +
		o.FuelEfficiency*w.FuelEfficiency +
		o.Safety*w.Safety +
		o.Features*w.Features
	o.Score = clamp(total, 0, 1)

	o.Highlights = highlights(l, p, w, have)
	o.Explanation = explain(o.Highlights)

	return o
}

func priceFactor(price, budget *float64) float64 {
	if price == nil || *price <= 0 {
		return 0.5
	}
	if budget == nil || *budget <= 0 {
		return 0.8
	}

	ratio := *price / *budget
	switch {
	case ratio <= 0.7:
		return 1.0
	case ratio <= 0.9:
		return 0.9
	case ratio <= 1.0:
		return 0.7
	case ratio <= 1.1:
		return 0.4
	default:
		return 0.1
	}
}

func reliabilityFactor(l *domain.VehicleListing, currentYear int) float64 {
	base, ok := makeReliability[strings.ToLower(l.Make)]
	if !ok {
		base = defaultReliability
	}

	year := l.Year
	if year == 0 {
		year = assumedModelYear
	}
	var age float64
	switch a := currentYear - year; {
	case a <= 2:
		age = 1.0
	case a <= 5:
		age = 0.95
	case a <= 8:
		age = 0.85
	default:
		age = 0.7
	}

	miles := assumedMileage
	if l.Mileage != nil {
		miles = *l.Mileage
	}
	var wear float64
	switch {
	case miles <= 30000:
		wear = 1.0
	case miles <= 60000:
		wear = 0.95
	case miles <= 100000:
		wear = 0.85
	default:
		wear = 0.7
	}

	return base * age * wear
}

func averageMPG(l *domain.VehicleListing) (float64, bool) {
	if l.MPGCity == nil || l.MPGHighway == nil {
		return 0, false
	}
	return float64(*l.MPGCity+*l.MPGHighway) / 2, true
}

func fuelFactor(l *domain.VehicleListing) float64 {
	avg, ok := averageMPG(l)
	if !ok {
		return 0.5
	}
	switch {
	case avg >= 40:
		return 1.0
	case avg >= 30:
		return 0.8
	case avg >= 25:
		return 0.6
	case avg >= 20:
		return 0.4
	default:
		return 0.2
	}
}

func safetyFactor(rating *int) float64 {
	if rating == nil {
		return 0.6
	}
	return float64(*rating) / 5
}

func featuresFactor(have map[string]bool, desired []string) float64 {
	if len(desired) == 0 {
		return 0.8
	}
	if len(have) == 0 {
		return 0.3
	}

	s := float64(matchedFeatures(have, desired)) / float64(len(desired))
	for _, f := range commonFeatures {
		if have[f] {
			s += 0.05
		}
	}
	return min(s, 1.0)
}

func matchedFeatures(have map[string]bool, desired []string) int {
	n := 0
	for f := range lowerSet(desired) {
		if have[f] {
			n++
		}
	}
	return n
}

func lowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		if it = strings.ToLower(strings.TrimSpace(it)); it != "" {
			set[it] = true
		}
	}
	return set
}

// highlights lists the strengths worth mentioning for the factors the
// shopper weighted heavily.
func highlights(l *domain.VehicleListing, p *domain.PreferenceSet, w domain.Weights, have map[string]bool) []string {
	var out []string

	if w.Price > 0.2 && l.Price != nil && *l.Price > 0 && p.BudgetMax != nil && *p.BudgetMax > 0 {
		switch {
		case *l.Price <= *p.BudgetMax*0.8:
			out = append(out, "excellent value within your budget")
		case *l.Price <= *p.BudgetMax:
			out = append(out, "fits comfortably in your budget")
		}
	}

	if w.Reliability > 0.2 {
		switch strings.ToLower(l.Make) {
		case "toyota", "honda", "mazda":
			out = append(out, l.Make+" has excellent reliability ratings")
		}
	}

	if avg, ok := averageMPG(l); ok && w.FuelEfficiency > 0.2 && avg >= 30 {
		out = append(out, fmt.Sprintf("excellent fuel economy (%.1f MPG average)", avg))
	}

	if w.Safety > 0.15 && l.SafetyRating != nil && *l.SafetyRating >= 4 {
		out = append(out, fmt.Sprintf("high safety rating (%d/5 stars)", *l.SafetyRating))
	}

	if n := matchedFeatures(have, p.DesiredFeatures); n > 0 {
		out = append(out, fmt.Sprintf("includes %d of your desired features", n))
	}

	return out
}

func explain(highlights []string) string {
	if len(highlights) == 0 {
		return "Good overall match for your preferences"
	}
	return "Great choice because it offers " + strings.Join(highlights, ", ") + "."
}
