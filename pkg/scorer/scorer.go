package score

import (
	"math"
	"strings"

	domain "github.com/donaldgifford/carfinder/pkg/types"
	"github.com/donaldgifford/carfinder/pkg/vehicle"
)

// MinMatchScore is the compatibility score below which a result is not
// presented at all.
const MinMatchScore = 5.0

// DefaultMileageMax is the mileage ceiling assumed by Compatibility when the
// shopper did not give one.
const DefaultMileageMax = 100000

// SourceBonus maps a provider name to the fixed bonus RankScore adds for it.
type SourceBonus map[string]float64

// DefaultSourceBonus returns the default provider preference order.
func DefaultSourceBonus() SourceBonus {
	return SourceBonus{
		"cargurus":   5,
		"autotrader": 4,
		"cars.com":   3,
	}
}

// LiveProviders are the provider names that earn the relevance freshness
// bonus.
var LiveProviders = map[string]bool{
	"cars.com":   true,
	"autotrader": true,
	"cargurus":   true,
	"auto.dev":   true,
}

// RankScore is the aggregator's generic quality score. Terms have different
// natural ranges and the total is not capped.
func RankScore(l *domain.VehicleListing, c *domain.SearchCriteria, bonus SourceBonus, currentYear int) float64 {
	var s float64

	if c.PriceMin != nil && *c.PriceMin > 0 && c.PriceMax != nil && l.Price != nil {
		mid := (*c.PriceMin + *c.PriceMax) / 2
		if mid > 0 {
			s += math.Max(0, 1-math.Abs(*l.Price-mid)/mid) * 30
		}
	}

	if l.Mileage != nil {
		s += math.Max(0, 20*(1-float64(*l.Mileage)/100000))
	}

	if l.Year != 0 {
		s += math.Max(0, 15*(1-float64(currentYear-l.Year)/10))
	}

	if l.SafetyRating != nil {
		s += float64(*l.SafetyRating) * 5
	}

	if l.MPGCity != nil && l.MPGHighway != nil {
		avg := float64(*l.MPGCity+*l.MPGHighway) / 2
		s += math.Min(10, avg/3)
	}

	s += bonus[l.Source]

	return s
}

// RelevanceScore is the hybrid search sort key. It favors fresh provider
// data, budget headroom and newer, lower-mileage cars.
func RelevanceScore(l *domain.VehicleListing, p *domain.PreferenceSet, currentYear int) float64 {
	var s float64

	if LiveProviders[l.Source] {
		s += 10
	}

	if p.BudgetMax != nil && *p.BudgetMax > 0 && l.Price != nil && *l.Price <= *p.BudgetMax {
		s += (1 - *l.Price/(*p.BudgetMax)) * 20
	}

	if l.Mileage != nil {
		s += math.Max(0, 15*(1-float64(*l.Mileage)/150000))
	}

	if l.Year != 0 {
		s += math.Max(0, 10*(1-float64(currentYear-l.Year)/15))
	}

	if p.FuelType != "" && l.FuelType == p.FuelType {
		s += 15
	}

	if l.SafetyRating != nil {
		s += float64(*l.SafetyRating) * 3
	}

	return s
}

// Compatibility computes the user-facing 0-100 match between a listing and a
// shopper's preferences.
func Compatibility(l *domain.VehicleListing, p *domain.PreferenceSet) domain.MatchBreakdown {
	b := domain.MatchBreakdown{}

	if p.BudgetMax != nil && *p.BudgetMax > 0 && l.Price != nil && *l.Price <= *p.BudgetMax {
		b.Budget = (1 - *l.Price/(*p.BudgetMax)) * 30
	}

	b.VehicleType = vehicleTypeScore(l, p.VehicleType)

	if p.Make != "" && l.Make != "" && strings.EqualFold(p.Make, l.Make) {
		b.Make = 20
	}

	if p.FuelType != "" && l.FuelType == p.FuelType {
		b.Fuel = 15
	}

	if p.YearMin != nil && l.Year != 0 && l.Year >= *p.YearMin {
		b.Year = math.Min(15, float64(l.Year-*p.YearMin+1)*3)
	}

	if l.Mileage != nil {
		limit := DefaultMileageMax
		if p.MileageMax != nil && *p.MileageMax > 0 {
			limit = *p.MileageMax
		}
		if *l.Mileage <= limit {
			b.Mileage = (1 - float64(*l.Mileage)/float64(limit)) * 10
		}
	}

	if l.SafetyRating != nil {
		b.Safety = float64(*l.SafetyRating) / 5 * 10
	}

	b.Completeness = completenessPenalty(l)

	total := b.Budget + b.VehicleType + b.Make + b.Fuel + b.Year +
		b.Mileage + b.Safety + b.Completeness
	b.Total = clamp(total, 0, 100)

	return b
}

// FilterMatches drops results whose match score is below minScore.
func FilterMatches(results []domain.ScoredResult, minScore float64) []domain.ScoredResult {
	kept := make([]domain.ScoredResult, 0, len(results))
	for i := range results {
		if results[i].Match >= minScore {
			kept = append(kept, results[i])
		}
	}
	return kept
}

func vehicleTypeScore(l *domain.VehicleListing, t domain.VehicleType) float64 {
	switch t {
	case domain.VehicleTruck:
		if vehicle.IsTruck(l.Make, l.Model) {
			return 25
		}
		return -15
	case domain.VehicleSUV:
		if vehicle.IsSUVModel(l.Model) {
			return 25
		}
		return -10
	default:
		return 0
	}
}

// completenessPenalty charges 10 points per missing mileage, city mpg,
// highway mpg or year, plus 15 more once three or more are missing.
func completenessPenalty(l *domain.VehicleListing) float64 {
	missing := 0
	if l.Mileage == nil {
		missing++
	}
	if l.MPGCity == nil {
		missing++
	}
	if l.MPGHighway == nil {
		missing++
	}
	if l.Year == 0 {
		missing++
	}

	penalty := -10 * float64(missing)
	if missing >= 3 {
		penalty -= 15
	}
	return penalty
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
