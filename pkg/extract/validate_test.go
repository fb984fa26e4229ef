package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/carfinder/pkg/extract"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

func TestParsePreferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		want      domain.PreferenceSet
		wantErrIs error
		wantErr   bool
	}{
		{
			name: "full answer",
			content: `{"make":"toyota","model":"RAV4","year_min":2019,"year_max":2023,
				"budget_max":32000,"mileage_max":40000,"location":"30301","radius":25,
				"fuel_type":"hybrid","vehicle_type":"SUV","desired_features":["AWD"," awd ","Sunroof"]}`,
			want: domain.PreferenceSet{
				Make: "Toyota", Model: "RAV4",
				YearMin: ptr(2019), YearMax: ptr(2023),
				BudgetMax: ptr(32000.0), MileageMax: ptr(40000),
				Location: "30301", Radius: ptr(25),
				FuelType: "Hybrid", VehicleType: domain.VehicleSUV,
				DesiredFeatures: []string{"awd", "sunroof"},
			},
		},
		{
			name:    "code fence is stripped",
			content: "```json\n{\"make\":\"Mazda\"}\n```",
			want:    domain.PreferenceSet{Make: "Mazda"},
		},
		{
			name:    "truck class implies truck",
			content: `{"truck_class":"2500"}`,
			want:    domain.PreferenceSet{TruckClass: "2500", VehicleType: domain.VehicleTruck},
		},
		{
			name:    "empty object",
			content: `{}`,
			want:    domain.PreferenceSet{},
		},
		{
			name:      "bad fields are dropped and reported",
			content:   `{"make":"Honda","vehicle_type":"spaceship","budget_max":-5}`,
			want:      domain.PreferenceSet{Make: "Honda"},
			wantErrIs: extract.ErrInvalidEnum,
		},
		{
			name:      "inverted year range dropped",
			content:   `{"year_min":2023,"year_max":2018,"fuel_type":"Diesel"}`,
			want:      domain.PreferenceSet{FuelType: "Diesel"},
			wantErrIs: extract.ErrOutOfRange,
		},
		{
			name:      "non-zip location dropped",
			content:   `{"location":"Dallas, TX"}`,
			want:      domain.PreferenceSet{},
			wantErrIs: extract.ErrInvalidEnum,
		},
		{
			name:    "not JSON",
			content: `I think you want a Honda`,
			want:    domain.PreferenceSet{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := extract.ParsePreferences(tt.content)
			switch {
			case tt.wantErrIs != nil:
				require.ErrorIs(t, err, tt.wantErrIs)
			case tt.wantErr:
				require.Error(t, err)
			default:
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
