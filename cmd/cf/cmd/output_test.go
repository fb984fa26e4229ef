package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/donaldgifford/carfinder/internal/api/client"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestPrintResultsTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printResultsTable(&buf, []domain.SearchResult{
		{
			VehicleListing: domain.VehicleListing{
				Source: "cargurus", ExternalID: "cg_001", Make: "Toyota", Model: "Camry", Year: 2022,
				Price: ptr(24500.0), Mileage: ptr(18000), Location: "Dallas, TX",
			},
			Score:  31.5,
			Origin: domain.OriginLive,
		},
		{
			VehicleListing: domain.VehicleListing{Source: "cars.com", ExternalID: "cars_009", Make: "Hyundai"},
			Origin:         domain.OriginLocal,
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "SOURCE")
	assert.Contains(t, out, "2022 Toyota Camry")
	assert.Contains(t, out, "$24,500")
	assert.Contains(t, out, "18,000")
	assert.Contains(t, out, "31.5")
	assert.Contains(t, out, "live")
	assert.Contains(t, out, "cars_009")
}

func TestPrintScoredTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printScoredTable(&buf, []domain.ScoredResult{{
		SearchResult: domain.SearchResult{
			VehicleListing: domain.VehicleListing{Source: "autotrader", ExternalID: "at_002", Make: "Honda", Model: "CR-V", Year: 2021},
		},
		Match:     43.7,
		Objective: domain.ObjectiveBreakdown{Score: 0.8375},
		Reasoning: "you asked for Honda",
	}})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "44%")
	assert.Contains(t, buf.String(), "0.84")
	assert.Contains(t, buf.String(), "you asked for Honda")
}

func TestPrintListingDetail(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printListingDetail(&buf, &domain.VehicleListing{
		Source: "autodev", ExternalID: "1HGCV1F30LA000001", Make: "Honda", Model: "Accord", Year: 2020,
		Price: ptr(21995.0), MPGCity: ptr(30), MPGHighway: ptr(38), SafetyRating: ptr(5),
		VIN: "1HGCV1F30LA000001", Features: []string{"Bluetooth", "Backup Camera"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2020 Honda Accord")
	assert.Contains(t, out, "$21,995")
	assert.Contains(t, out, "30 city / 38 highway")
	assert.Contains(t, out, "5/5")
	assert.Contains(t, out, "Bluetooth, Backup Camera")
	assert.NotContains(t, out, "Dealer:")
}

func TestPrintStatus(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printStatus(&buf, &domain.DataSourceStatus{
		LocalDatabase: domain.LocalDatabaseStatus{VehicleCount: 1250, Status: "active"},
		LiveSources: domain.LiveSourceStats{
			TotalSources:  2,
			ActiveSources: []string{"cars.com", "autotrader"},
			SourceCapabilities: map[string]domain.SourceCapability{
				"cars.com": {BaseURL: "https://www.cars.com"},
			},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "active (1,250 vehicles)")
	assert.Contains(t, out, "https://www.cars.com")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("autotrader")), bytes.Index(buf.Bytes(), []byte("cars.com")))
}

func TestPrintPreferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		prefs domain.PreferenceSet
		want  []string
	}{
		{
			name: "empty",
			want: []string{"No preferences recognized."},
		},
		{
			name: "truck request",
			prefs: domain.PreferenceSet{
				Make: "Ford", VehicleType: domain.VehicleTruck, TruckClass: "2500",
				BudgetMax: ptr(55000.0), Location: "75201",
				Priorities: []domain.Priority{domain.PriorityReliability},
			},
			want: []string{"Ford", "truck", "2500", "$55,000", "75201", "reliability"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, printPreferences(&buf, &tt.prefs))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a long...", truncate("a long title", 9))
}

func TestPrintQuota(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		q       apiclient.Quota
		want    []string
		notWant string
	}{
		{
			name: "limited",
			q:    apiclient.Quota{Provider: "auto.dev", DailyLimit: 1000, DailyUsed: 142, Remaining: 858},
			want: []string{"auto.dev", "1,000", "142", "858"},
		},
		{
			name:    "unlimited",
			q:       apiclient.Quota{Provider: "auto.dev", DailyUsed: 7, Remaining: -1},
			want:    []string{"unlimited", "7"},
			notWant: "Remaining",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, printQuota(&buf, &tt.q))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			if tt.notWant != "" {
				assert.NotContains(t, buf.String(), tt.notWant)
			}
		})
	}
}
