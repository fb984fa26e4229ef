package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/carfinder/internal/aggregate"
	score "github.com/donaldgifford/carfinder/pkg/scorer"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func car(id, mk, model string, year int, mileage *int, price *float64, vin string) domain.VehicleListing {
	return domain.VehicleListing{
		Source: "test", ExternalID: id, Make: mk, Model: model, Year: year,
		Mileage: mileage, Price: price, VIN: vin,
	}
}

func ids(ls []domain.VehicleListing) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ExternalID)
	}
	return out
}

func TestDedup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []domain.VehicleListing
		want  []string
	}{
		{
			name:  "empty",
			input: nil,
			want:  []string{},
		},
		{
			name: "same VIN keeps first",
			input: []domain.VehicleListing{
				car("1", "Toyota", "Camry", 2022, ptr(15000), ptr(28500.0), "4T1C11AK5NU123456"),
				car("2", "Toyota", "Camry", 2022, ptr(16000), ptr(27900.0), "4T1C11AK5NU123456"),
			},
			want: []string{"1"},
		},
		{
			name: "similar listings without VIN",
			input: []domain.VehicleListing{
				car("1", "Toyota", "Camry", 2022, ptr(15000), ptr(28500.0), "4T1C11AK5NU123456"),
				car("2", "TOYOTA", "camry", 2022, ptr(15000), ptr(28500.0), ""),
			},
			want: []string{"1"},
		},
		{
			name: "price truncates to whole dollars",
			input: []domain.VehicleListing{
				car("1", "Honda", "Civic", 2021, ptr(18500), ptr(22400.99), ""),
				car("2", "Honda", "Civic", 2021, ptr(18500), ptr(22400.01), ""),
				car("3", "Honda", "Civic", 2021, ptr(18500), ptr(22401.0), ""),
			},
			want: []string{"1", "3"},
		},
		{
			name: "unknown and zero mileage are distinct",
			input: []domain.VehicleListing{
				car("1", "Ford", "F-150", 2021, nil, ptr(42500.0), ""),
				car("2", "Ford", "F-150", 2021, ptr(0), ptr(42500.0), ""),
				car("3", "Ford", "F-150", 2021, nil, ptr(42500.0), ""),
			},
			want: []string{"1", "2"},
		},
		{
			name: "missing price keys as zero",
			input: []domain.VehicleListing{
				car("1", "Jeep", "Wrangler", 2020, ptr(40000), nil, ""),
				car("2", "Jeep", "Wrangler", 2020, ptr(40000), ptr(0.4), ""),
			},
			want: []string{"1"},
		},
		{
			name: "different VINs with the same key collapse",
			input: []domain.VehicleListing{
				car("1", "Subaru", "Outback", 2021, ptr(25000), ptr(31500.0), "4S4BTAFC5M3123456"),
				car("2", "Subaru", "Outback", 2021, ptr(25000), ptr(31500.0), "4S4BTAFC5M3999999"),
			},
			want: []string{"1"},
		},
		{
			name: "distinct cars are kept in order",
			input: []domain.VehicleListing{
				car("b", "BMW", "3 Series", 2020, ptr(28000), ptr(32900.0), "WBA5R1C50LA123456"),
				car("a", "Audi", "A4", 2020, ptr(28000), ptr(32900.0), ""),
			},
			want: []string{"b", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := aggregate.Dedup(tt.input)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, ids(got), ids(aggregate.Dedup(got)), "dedup must be idempotent")
		})
	}
}

func TestDedup_VINUniqueness(t *testing.T) {
	t.Parallel()

	var input []domain.VehicleListing
	for i := range 30 {
		vin := []string{"VIN0000000000000A", "VIN0000000000000B", "VIN0000000000000C"}[i%3]
		input = append(input, car(string(rune('a'+i%26)), "Kia", "Soul", 2015+i, ptr(i*1000), ptr(10000.0+float64(i)), vin))
	}

	seen := map[string]bool{}
	for _, l := range aggregate.Dedup(input) {
		assert.False(t, seen[l.VIN], "duplicate VIN %s", l.VIN)
		seen[l.VIN] = true
	}
	assert.Len(t, seen, 3)
}

func TestRank(t *testing.T) {
	t.Parallel()

	c := &domain.SearchCriteria{}

	t.Run("lower mileage ranks higher", func(t *testing.T) {
		t.Parallel()
		input := []domain.VehicleListing{
			car("high", "Honda", "Civic", 2021, ptr(90000), nil, ""),
			car("low", "Honda", "Civic", 2021, ptr(10000), nil, ""),
			car("mid", "Honda", "Civic", 2021, ptr(50000), nil, ""),
		}
		got := aggregate.Rank(input, c, score.DefaultSourceBonus(), 2025)
		assert.Equal(t, []string{"low", "mid", "high"}, ids(got))
		assert.Equal(t, "high", input[0].ExternalID, "input must not be reordered")
	})

	t.Run("source bonus breaks otherwise equal listings", func(t *testing.T) {
		t.Parallel()
		base := car("", "Honda", "Civic", 2021, ptr(20000), nil, "")
		var input []domain.VehicleListing
		for _, src := range []string{"cars.com", "unknown", "cargurus", "autotrader"} {
			l := base
			l.Source, l.ExternalID = src, src
			input = append(input, l)
		}
		got := aggregate.Rank(input, c, score.DefaultSourceBonus(), 2025)
		assert.Equal(t, []string{"cargurus", "autotrader", "cars.com", "unknown"}, ids(got))
	})

	t.Run("ties keep input order", func(t *testing.T) {
		t.Parallel()
		input := []domain.VehicleListing{
			car("first", "Kia", "Soul", 0, nil, nil, ""),
			car("second", "Kia", "Rio", 0, nil, nil, ""),
		}
		got := aggregate.Rank(input, c, nil, 2025)
		assert.Equal(t, []string{"first", "second"}, ids(got))
	})

	t.Run("price fit uses the range midpoint", func(t *testing.T) {
		t.Parallel()
		ranged := &domain.SearchCriteria{PriceMin: ptr(20000.0), PriceMax: ptr(30000.0)}
		input := []domain.VehicleListing{
			car("edge", "Kia", "Soul", 0, nil, ptr(20000.0), ""),
			car("center", "Kia", "Soul", 0, nil, ptr(25000.0), ""),
		}
		got := aggregate.Rank(input, ranged, nil, 2025)
		assert.Equal(t, []string{"center", "edge"}, ids(got))
	})
}

func TestDedupFunc(t *testing.T) {
	t.Parallel()

	type wrapped struct {
		listing domain.VehicleListing
		origin  string
	}
	input := []wrapped{
		{car("a", "Ford", "F-150", 2022, ptr(12000), ptr(41000.0), "1FTFW1E50NFA00001"), "live"},
		{car("b", "Ford", "F-150", 2022, ptr(12000), ptr(41000.0), ""), "local"},
		{car("c", "Ford", "Ranger", 2021, ptr(30000), ptr(29000.0), "1FTFW1E50NFA00001"), "local"},
		{car("d", "Ram", "1500", 2020, ptr(45000), ptr(33000.0), ""), "local"},
	}

	got := aggregate.DedupFunc(input, func(w *wrapped) *domain.VehicleListing { return &w.listing })

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].listing.ExternalID)
	assert.Equal(t, "live", got[0].origin)
	assert.Equal(t, "d", got[1].listing.ExternalID)
}
