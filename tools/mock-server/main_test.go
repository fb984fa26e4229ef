package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadTestFixture(t *testing.T) []indexedListing {
	t.Helper()
	listings, err := loadFixture(filepath.Join("testdata", "listings.json"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return listings
}

func serve(t *testing.T, path string, auth bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	if auth {
		req.Header.Set("Authorization", "Bearer test-key")
	}
	w := httptest.NewRecorder()
	newMux(testLogger(), loadTestFixture(t), 0).ServeHTTP(w, req)
	return w
}

func decodeSearch(t *testing.T, w *httptest.ResponseRecorder) []listingFields {
	t.Helper()
	var resp listingsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	out := make([]listingFields, len(resp.Data))
	for i, raw := range resp.Data {
		if err := json.Unmarshal(raw, &out[i]); err != nil {
			t.Fatalf("decoding listing %d: %v", i, err)
		}
	}
	return out
}

func TestLoadFixture(t *testing.T) {
	listings := loadTestFixture(t)
	if len(listings) == 0 {
		t.Fatal("expected listings in fixture")
	}
	for i, l := range listings {
		if l.fields.ID == "" || l.fields.Vehicle.Make == "" {
			t.Errorf("listing %d missing id or make", i)
		}
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := loadFixture(filepath.Join("testdata", "nope.json")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestSearch_RequiresBearer(t *testing.T) {
	w := serve(t, "/listings", false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestSearch_Filters(t *testing.T) {
	tests := []struct {
		name  string
		query string
		check func(t *testing.T, got []listingFields)
	}{
		{
			name:  "no filters returns everything",
			query: "",
			check: func(t *testing.T, got []listingFields) {
				t.Helper()
				if len(got) != 9 {
					t.Errorf("len=%d, want 9", len(got))
				}
			},
		},
		{
			name:  "limit",
			query: "limit=1",
			check: func(t *testing.T, got []listingFields) {
				t.Helper()
				if len(got) != 1 {
					t.Errorf("len=%d, want 1", len(got))
				}
			},
		},
		{
			name:  "make is case-insensitive",
			query: "vehicle.make=toyota",
			check: func(t *testing.T, got []listingFields) {
				t.Helper()
				if len(got) != 2 {
					t.Fatalf("len=%d, want 2", len(got))
				}
				for _, l := range got {
					if l.Vehicle.Make != "Toyota" {
						t.Errorf("make=%q, want Toyota", l.Vehicle.Make)
					}
				}
			},
		},
		{
			name:  "price range",
			query: "retailListing.price=1-20000",
			check: func(t *testing.T, got []listingFields) {
				t.Helper()
				if len(got) != 1 || got[0].Vehicle.Model != "Corolla" {
					t.Errorf("got %+v, want only the Corolla", got)
				}
			},
		},
		{
			name:  "year floor and mileage cap",
			query: "vehicle.year=2022&retailListing.miles=0-25000",
			check: func(t *testing.T, got []listingFields) {
				t.Helper()
				if len(got) != 2 {
					t.Fatalf("len=%d, want 2", len(got))
				}
				for _, l := range got {
					if l.Vehicle.Year < 2022 || l.RetailListing.Miles > 25000 {
						t.Errorf("listing %s outside filter", l.ID)
					}
				}
			},
		},
		{
			name:  "year range",
			query: "vehicle.year=2019-2020",
			check: func(t *testing.T, got []listingFields) {
				t.Helper()
				for _, l := range got {
					if l.Vehicle.Year < 2019 || l.Vehicle.Year > 2020 {
						t.Errorf("year=%d outside 2019-2020", l.Vehicle.Year)
					}
				}
			},
		},
		{
			name:  "no match",
			query: "vehicle.make=Lamborghini",
			check: func(t *testing.T, got []listingFields) {
				t.Helper()
				if len(got) != 0 {
					t.Errorf("len=%d, want 0", len(got))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, "/listings?"+tt.query, true)
			if w.Code != http.StatusOK {
				t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
			}
			tt.check(t, decodeSearch(t, w))
		})
	}
}

func TestSearch_EmptyResultIsArray(t *testing.T) {
	w := serve(t, "/listings?vehicle.make=Lamborghini", true)
	if got := w.Body.String(); got != "{\"data\":[]}\n" {
		t.Errorf("body=%q, want empty data array", got)
	}
}

func TestSearch_BadRange(t *testing.T) {
	w := serve(t, "/listings?retailListing.price=cheap", true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestDetails(t *testing.T) {
	w := serve(t, "/listings/5YJ3E1EA7LF000004", true)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}
	var l listingFields
	if err := json.NewDecoder(w.Body).Decode(&l); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if l.Vehicle.Model != "Model 3" {
		t.Errorf("model=%q, want Model 3", l.Vehicle.Model)
	}

	w = serve(t, "/listings/UNKNOWN", true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestParseIntRange(t *testing.T) {
	tests := []struct {
		in      string
		lo, hi  int
		wantErr bool
	}{
		{in: "", lo: 0, hi: 0},
		{in: "2020", lo: 2020, hi: 0},
		{in: "1-30000", lo: 1, hi: 30000},
		{in: "x-1", wantErr: true},
		{in: "1-y", wantErr: true},
	}
	for _, tt := range tests {
		lo, hi, err := parseIntRange(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIntRange(%q) err=%v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("parseIntRange(%q)=(%d,%d), want (%d,%d)", tt.in, lo, hi, tt.lo, tt.hi)
		}
	}
}
