package extract

import (
	"slices"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// Session accumulates preferences across the turns of one conversation.
// It is owned by the caller and is not safe for concurrent use.
type Session struct {
	prefs domain.PreferenceSet
	turns int
}

// NewSession starts a session, optionally seeded with known preferences.
func NewSession(seed *domain.PreferenceSet) *Session {
	s := &Session{}
	if seed != nil {
		s.prefs = Merge(domain.PreferenceSet{}, *seed)
	}
	return s
}

// Apply extracts preferences from one message, merges them into the
// session and returns what was extracted from this message alone.
func (s *Session) Apply(text string) domain.PreferenceSet {
	found := FromText(text)
	s.Merge(found)
	s.turns++
	return found
}

// Merge folds update into the session preferences.
func (s *Session) Merge(update domain.PreferenceSet) {
	s.prefs = Merge(s.prefs, update)
}

// Preferences returns a copy of the accumulated preferences.
func (s *Session) Preferences() domain.PreferenceSet {
	return Merge(domain.PreferenceSet{}, s.prefs)
}

// Turns is the number of messages applied so far.
func (s *Session) Turns() int {
	return s.turns
}

// Merge returns base with every field that update sets overwritten. Fields
// update leaves unset keep their base value; features and priorities are
// unioned. Neither argument is modified.
func Merge(base, update domain.PreferenceSet) domain.PreferenceSet {
	out := base
	out.DesiredFeatures = slices.Clone(base.DesiredFeatures)
	out.Priorities = slices.Clone(base.Priorities)

	if update.Make != "" {
		out.Make = update.Make
	}
	if update.Model != "" {
		out.Model = update.Model
	}
	if update.YearMin != nil {
		out.YearMin = clonePtr(update.YearMin)
	}
	if update.YearMax != nil {
		out.YearMax = clonePtr(update.YearMax)
	}
	if update.PriceMin != nil {
		out.PriceMin = clonePtr(update.PriceMin)
	}
	if update.BudgetMax != nil {
		out.BudgetMax = clonePtr(update.BudgetMax)
	}
	if update.MileageMax != nil {
		out.MileageMax = clonePtr(update.MileageMax)
	}
	if update.Location != "" {
		out.Location = update.Location
	}
	if update.Radius != nil {
		out.Radius = clonePtr(update.Radius)
	}
	if update.FuelType != "" {
		out.FuelType = update.FuelType
	}
	if update.VehicleType != "" {
		out.VehicleType = update.VehicleType
	}
	if update.TruckClass != "" {
		out.TruckClass = update.TruckClass
	}
	if update.Limit > 0 {
		out.Limit = update.Limit
	}

	for _, f := range update.DesiredFeatures {
		if !slices.Contains(out.DesiredFeatures, f) {
			out.DesiredFeatures = append(out.DesiredFeatures, f)
		}
	}
	for _, pr := range update.Priorities {
		if !slices.Contains(out.Priorities, pr) {
			out.Priorities = append(out.Priorities, pr)
		}
	}

	switch {
	case len(update.Priorities) > 0:
		w := WeightsFor(out.Priorities)
		out.Weights = &w
	case update.Weights != nil:
		w := update.Weights.Normalized()
		out.Weights = &w
	case base.Weights != nil:
		w := *base.Weights
		out.Weights = &w
	}

	return out
}

func clonePtr[T any](v *T) *T {
	c := *v
	return &c
}
