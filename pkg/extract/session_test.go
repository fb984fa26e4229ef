package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/carfinder/pkg/extract"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

func TestSession_Apply(t *testing.T) {
	t.Parallel()

	s := extract.NewSession(nil)

	s.Apply("I want a Toyota under 30k")
	s.Apply("actually a Honda with navigation")
	found := s.Apply("also heated seats")

	p := s.Preferences()
	assert.Equal(t, "Honda", p.Make, "re-extracted field overwrites")
	require.NotNil(t, p.BudgetMax, "fields not re-extracted persist")
	assert.InDelta(t, 30000.0, *p.BudgetMax, 0.001)
	assert.Equal(t, []string{"navigation", "heated seats"}, p.DesiredFeatures)
	assert.Equal(t, []string{"heated seats"}, found.DesiredFeatures)
	assert.Equal(t, 3, s.Turns())
}

func TestSession_Seed(t *testing.T) {
	t.Parallel()

	budget := 25000.0
	s := extract.NewSession(&domain.PreferenceSet{BudgetMax: &budget, Make: "Ford"})

	budget = 1
	p := s.Preferences()
	require.NotNil(t, p.BudgetMax)
	assert.InDelta(t, 25000.0, *p.BudgetMax, 0.001, "seed is copied")
	assert.Equal(t, "Ford", p.Make)
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	t.Parallel()

	year := 2018
	base := domain.PreferenceSet{
		YearMin:         &year,
		DesiredFeatures: []string{"sunroof"},
	}
	update := domain.PreferenceSet{
		DesiredFeatures: []string{"bluetooth", "sunroof"},
		Priorities:      []domain.Priority{domain.PriorityLuxury},
	}

	out := extract.Merge(base, update)

	assert.Equal(t, []string{"sunroof"}, base.DesiredFeatures)
	assert.Equal(t, []string{"sunroof", "bluetooth"}, out.DesiredFeatures)
	require.NotNil(t, out.YearMin)
	assert.Equal(t, 2018, *out.YearMin)
	require.NotNil(t, out.Weights)
	assert.Greater(t, out.Weights.Features, domain.DefaultWeights().Features)
	assert.Nil(t, base.Weights)
}

func TestMerge_PrioritiesUnionReweights(t *testing.T) {
	t.Parallel()

	base := extract.FromText("something reliable")
	out := extract.Merge(base, extract.FromText("and safe"))

	assert.ElementsMatch(t,
		[]domain.Priority{domain.PriorityReliability, domain.PrioritySafety},
		out.Priorities,
	)
	require.NotNil(t, out.Weights)
	want := extract.WeightsFor(out.Priorities)
	assert.Equal(t, want, *out.Weights)
}

func TestMerge_ExplicitWeightsNormalized(t *testing.T) {
	t.Parallel()

	out := extract.Merge(domain.PreferenceSet{}, domain.PreferenceSet{
		Weights: &domain.Weights{Price: 2, Safety: 2},
	})

	require.NotNil(t, out.Weights)
	assert.InDelta(t, 0.5, out.Weights.Price, 0.0001)
	assert.InDelta(t, 0.5, out.Weights.Safety, 0.0001)
}
