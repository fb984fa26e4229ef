// Package domain defines the core business types for carfinder.
package domain

import (
	"strconv"
	"strings"
	"time"
)

// VehicleType is the body style a shopper asked for.
type VehicleType string

// Vehicle type constants.
const (
	VehicleSedan     VehicleType = "sedan"
	VehicleSUV       VehicleType = "suv"
	VehicleTruck     VehicleType = "truck"
	VehicleCoupe     VehicleType = "coupe"
	VehicleHatchback VehicleType = "hatchback"
	VehicleWagon     VehicleType = "wagon"
)

// AllVehicleTypes returns every recognized vehicle type in display order.
func AllVehicleTypes() []VehicleType {
	return []VehicleType{
		VehicleSedan,
		VehicleSUV,
		VehicleTruck,
		VehicleCoupe,
		VehicleHatchback,
		VehicleWagon,
	}
}

// IsValid reports whether t is one of the recognized vehicle types.
func (t VehicleType) IsValid() bool {
	switch t {
	case VehicleSedan, VehicleSUV, VehicleTruck, VehicleCoupe, VehicleHatchback, VehicleWagon:
		return true
	}
	return false
}

// Priority is a qualitative shopping priority.
type Priority string

// Priority constants.
const (
	PriorityReliability Priority = "reliability"
	PriorityFuelEconomy Priority = "fuel_economy"
	PrioritySafety      Priority = "safety"
	PriorityLuxury      Priority = "luxury"
)

// VehicleListing is one vehicle offer from one provider, normalized into a
// source-agnostic shape. Optional numeric fields are nil when the provider
// did not supply them. A listing is never modified after an adapter builds it.
type VehicleListing struct {
	Source     string `json:"source"`
	ExternalID string `json:"external_id"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	Year       int    `json:"year,omitempty"`

	Price        *float64 `json:"price,omitempty"`
	Mileage      *int     `json:"mileage,omitempty"`
	FuelType     string   `json:"fuel_type,omitempty"`
	Transmission string   `json:"transmission,omitempty"`
	Location     string   `json:"location,omitempty"`

	SafetyRating *int `json:"safety_rating,omitempty"`
	MPGCity      *int `json:"mpg_city,omitempty"`
	MPGHighway   *int `json:"mpg_highway,omitempty"`

	VIN         string   `json:"vin,omitempty"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features"`
	Images      []string `json:"images"`

	DealerName  string `json:"dealer_name,omitempty"`
	DealerPhone string `json:"dealer_phone,omitempty"`
	ListingURL  string `json:"listing_url,omitempty"`
	ListingDate string `json:"listing_date,omitempty"`
}

// Title returns "year make model", omitting an unknown year.
func (l *VehicleListing) Title() string {
	name := strings.TrimSpace(l.Make + " " + l.Model)
	if l.Year == 0 {
		return name
	}
	return strings.TrimSpace(strconv.Itoa(l.Year) + " " + name)
}

// VehicleRecord is a listing persisted in the local store.
type VehicleRecord struct {
	ID int64 `json:"id"`
	VehicleListing
	CachedAt time.Time `json:"cached_at"`
}

// SearchCriteria is a per-call provider query. Nil or empty fields place no
// constraint on that dimension.
type SearchCriteria struct {
	Make           string   `json:"make,omitempty"`
	Model          string   `json:"model,omitempty"`
	YearMin        *int     `json:"year_min,omitempty"`
	YearMax        *int     `json:"year_max,omitempty"`
	PriceMin       *float64 `json:"price_min,omitempty"`
	PriceMax       *float64 `json:"price_max,omitempty"`
	MileageMax     *int     `json:"mileage_max,omitempty"`
	Location       string   `json:"location,omitempty"`
	Radius         *int     `json:"radius,omitempty"`
	LimitPerSource int      `json:"limit_per_source,omitempty"`
}

// DefaultLimitPerSource is used when SearchCriteria.LimitPerSource is unset.
const DefaultLimitPerSource = 10

// Limit returns LimitPerSource, falling back to DefaultLimitPerSource.
func (c *SearchCriteria) Limit() int {
	if c.LimitPerSource <= 0 {
		return DefaultLimitPerSource
	}
	return c.LimitPerSource
}

// Matches reports whether a listing satisfies every constraint in c. A
// listing missing a constrained numeric field is not excluded by it.
func (c *SearchCriteria) Matches(l *VehicleListing) bool {
	if c.Make != "" && !strings.EqualFold(c.Make, l.Make) {
		return false
	}
	if c.Model != "" && !strings.EqualFold(c.Model, l.Model) {
		return false
	}
	if l.Price != nil {
		if c.PriceMin != nil && *l.Price < *c.PriceMin {
			return false
		}
		if c.PriceMax != nil && *l.Price > *c.PriceMax {
			return false
		}
	}
	if l.Year != 0 {
		if c.YearMin != nil && l.Year < *c.YearMin {
			return false
		}
		if c.YearMax != nil && l.Year > *c.YearMax {
			return false
		}
	}
	if c.MileageMax != nil && l.Mileage != nil && *l.Mileage > *c.MileageMax {
		return false
	}
	return true
}

// Weights is the relative importance of each shopping factor.
type Weights struct {
	Price          float64 `json:"price"`
	Reliability    float64 `json:"reliability"`
	FuelEfficiency float64 `json:"fuel_efficiency"`
	Safety         float64 `json:"safety"`
	Features       float64 `json:"features"`
}

// DefaultWeights returns the default factor weights.
func DefaultWeights() Weights {
	return Weights{
		Price:          0.30,
		Reliability:    0.25,
		FuelEfficiency: 0.20,
		Safety:         0.15,
		Features:       0.10,
	}
}

// Normalized returns w scaled so the factors sum to 1. A zero or negative
// total yields DefaultWeights.
func (w Weights) Normalized() Weights {
	total := w.Price + w.Reliability + w.FuelEfficiency + w.Safety + w.Features
	if total <= 0 {
		return DefaultWeights()
	}
	return Weights{
		Price:          w.Price / total,
		Reliability:    w.Reliability / total,
		FuelEfficiency: w.FuelEfficiency / total,
		Safety:         w.Safety / total,
		Features:       w.Features / total,
	}
}

// DefaultResultLimit is the number of results returned when
// PreferenceSet.Limit is unset.
const DefaultResultLimit = 20

// PreferenceSet holds shopping preferences accumulated from a conversation
// or a search form.
type PreferenceSet struct {
	Make       string   `json:"make,omitempty"`
	Model      string   `json:"model,omitempty"`
	YearMin    *int     `json:"year_min,omitempty"`
	YearMax    *int     `json:"year_max,omitempty"`
	PriceMin   *float64 `json:"price_min,omitempty"`
	BudgetMax  *float64 `json:"budget_max,omitempty"`
	MileageMax *int     `json:"mileage_max,omitempty"`
	Location   string   `json:"location,omitempty"`
	Radius     *int     `json:"radius,omitempty"`

	FuelType        string      `json:"fuel_type,omitempty"`
	VehicleType     VehicleType `json:"vehicle_type,omitempty"`
	DesiredFeatures []string    `json:"desired_features,omitempty"`
	Priorities      []Priority  `json:"priorities,omitempty"`
	TruckClass      string      `json:"truck_class,omitempty"`
	Weights         *Weights    `json:"weights,omitempty"`

	Limit int `json:"limit,omitempty"`
}

// ResultLimit returns Limit, falling back to DefaultResultLimit.
func (p *PreferenceSet) ResultLimit() int {
	if p.Limit <= 0 {
		return DefaultResultLimit
	}
	return p.Limit
}

// IsEmpty reports whether no preference has been captured yet.
func (p *PreferenceSet) IsEmpty() bool {
	return p.Make == "" && p.Model == "" && p.YearMin == nil && p.YearMax == nil &&
		p.PriceMin == nil && p.BudgetMax == nil && p.MileageMax == nil &&
		p.Location == "" && p.Radius == nil && p.FuelType == "" &&
		p.VehicleType == "" && len(p.DesiredFeatures) == 0 &&
		len(p.Priorities) == 0 && p.TruckClass == "" && p.Weights == nil
}

// Criteria derives a provider query from the preferences. The budget maps
// to PriceMax.
func (p *PreferenceSet) Criteria(limitPerSource int) SearchCriteria {
	return SearchCriteria{
		Make:           p.Make,
		Model:          p.Model,
		YearMin:        p.YearMin,
		YearMax:        p.YearMax,
		PriceMin:       p.PriceMin,
		PriceMax:       p.BudgetMax,
		MileageMax:     p.MileageMax,
		Location:       p.Location,
		Radius:         p.Radius,
		LimitPerSource: limitPerSource,
	}
}

// Origin tells whether a search result came from a live provider or from
// the local store.
type Origin string

// Origin constants.
const (
	OriginLive  Origin = "live"
	OriginLocal Origin = "local"
)

// SearchResult is a listing ranked by the hybrid search.
type SearchResult struct {
	VehicleListing
	Score    float64    `json:"score"`
	Origin   Origin     `json:"origin"`
	CachedAt *time.Time `json:"cached_at,omitempty"`
}

// MatchBreakdown shows the per-term contributions to a compatibility score.
type MatchBreakdown struct {
	Budget       float64 `json:"budget"`
	VehicleType  float64 `json:"vehicle_type"`
	Make         float64 `json:"make"`
	Fuel         float64 `json:"fuel"`
	Year         float64 `json:"year"`
	Mileage      float64 `json:"mileage"`
	Safety       float64 `json:"safety"`
	Completeness float64 `json:"completeness"`
	Total        float64 `json:"total"`
}

// ObjectiveBreakdown is the weighted five-factor score of a listing. Each
// factor and the Score are in 0..1.
type ObjectiveBreakdown struct {
	Price          float64  `json:"price"`
	Reliability    float64  `json:"reliability"`
	FuelEfficiency float64  `json:"fuel_efficiency"`
	Safety         float64  `json:"safety"`
	Features       float64  `json:"features"`
	Weights        Weights  `json:"weights"`
	Score          float64  `json:"score"`
	Highlights     []string `json:"highlights,omitempty"`
	Explanation    string   `json:"explanation"`
}

// ScoredResult pairs a search result with its user-facing compatibility
// score.
type ScoredResult struct {
	SearchResult
	Match     float64            `json:"match"`
	Breakdown MatchBreakdown     `json:"breakdown"`
	Objective ObjectiveBreakdown `json:"objective"`
	Reasoning string             `json:"reasoning,omitempty"`
}

// SourceCapability describes how a provider is configured.
type SourceCapability struct {
	HasAPIKey bool   `json:"has_api_key"`
	BaseURL   string `json:"base_url"`
}

// LiveSourceStats summarizes the registered providers.
type LiveSourceStats struct {
	TotalSources       int                         `json:"total_sources"`
	ActiveSources      []string                    `json:"active_sources"`
	SourceCapabilities map[string]SourceCapability `json:"source_capabilities"`
}

// LocalDatabaseStatus summarizes the local store.
type LocalDatabaseStatus struct {
	VehicleCount int    `json:"vehicle_count"`
	Status       string `json:"status"`
}

// DataSourceStatus reports on both the local store and live providers.
type DataSourceStatus struct {
	LocalDatabase LocalDatabaseStatus `json:"local_database"`
	LiveSources   LiveSourceStats     `json:"live_sources"`
}

// RefreshResult reports the outcome of a live-data refresh.
type RefreshResult struct {
	Success          bool      `json:"success"`
	NewListingsCount int       `json:"new_listings_count"`
	Error            string    `json:"error,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}
