package cmd

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

func TestSearchFlags_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		start domain.PreferenceSet
		check func(t *testing.T, p *domain.PreferenceSet)
	}{
		{
			name: "unset flags leave extracted preferences alone",
			start: domain.PreferenceSet{
				Make: "Honda", BudgetMax: ptr(25000.0), VehicleType: domain.VehicleSedan,
			},
			check: func(t *testing.T, p *domain.PreferenceSet) {
				t.Helper()
				assert.Equal(t, "Honda", p.Make)
				require.NotNil(t, p.BudgetMax)
				assert.InDelta(t, 25000.0, *p.BudgetMax, 0.01)
				assert.Equal(t, domain.VehicleSedan, p.VehicleType)
			},
		},
		{
			name:  "flags override",
			args:  []string{"--make", "Toyota", "--budget", "30000", "--type", "SUV", "--limit", "5"},
			start: domain.PreferenceSet{Make: "Honda", BudgetMax: ptr(25000.0)},
			check: func(t *testing.T, p *domain.PreferenceSet) {
				t.Helper()
				assert.Equal(t, "Toyota", p.Make)
				require.NotNil(t, p.BudgetMax)
				assert.InDelta(t, 30000.0, *p.BudgetMax, 0.01)
				assert.Equal(t, domain.VehicleSUV, p.VehicleType)
				assert.Equal(t, 5, p.Limit)
			},
		},
		{
			name: "numeric ranges",
			args: []string{"--year-min", "2019", "--year-max", "2023", "--mileage-max", "40000", "--radius", "25", "--location", "80202"},
			check: func(t *testing.T, p *domain.PreferenceSet) {
				t.Helper()
				require.NotNil(t, p.YearMin)
				require.NotNil(t, p.YearMax)
				require.NotNil(t, p.MileageMax)
				require.NotNil(t, p.Radius)
				assert.Equal(t, 2019, *p.YearMin)
				assert.Equal(t, 2023, *p.YearMax)
				assert.Equal(t, 40000, *p.MileageMax)
				assert.Equal(t, 25, *p.Radius)
				assert.Equal(t, "80202", p.Location)
			},
		},
		{
			name: "zero budget is still applied when given",
			args: []string{"--budget", "0"},
			check: func(t *testing.T, p *domain.PreferenceSet) {
				t.Helper()
				require.NotNil(t, p.BudgetMax)
				assert.Zero(t, *p.BudgetMax)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var f searchFlags
			fs := pflag.NewFlagSet("search", pflag.ContinueOnError)
			f.register(fs)
			require.NoError(t, fs.Parse(tt.args))

			p := tt.start
			f.apply(fs, &p)
			tt.check(t, &p)
		})
	}
}
