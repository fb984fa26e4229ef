// Package main implements a mock auto.dev listings API for local development.
// It serves canned listings from a JSON fixture so the server's live data
// path can be exercised without a real API key.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultLimit = 20

type listingsResponse struct {
	Data []json.RawMessage `json:"data"`
}

// listingFields are the attributes the mock filters on.
type listingFields struct {
	ID      string `json:"id"`
	Vehicle struct {
		Make  string `json:"make"`
		Model string `json:"model"`
		Year  int    `json:"year"`
	} `json:"vehicle"`
	RetailListing struct {
		Price float64 `json:"price"`
		Miles int     `json:"miles"`
	} `json:"retailListing"`
}

type indexedListing struct {
	raw    json.RawMessage
	fields listingFields
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/listings.json", "path to listings fixture")
	latency := flag.Duration("latency", 0, "delay added to every response")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	listings, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "listings", len(listings))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock auto.dev server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      newMux(logger, listings, *latency),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, listings []indexedListing, latency time.Duration) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /listings", searchHandler(logger, listings))
	mux.HandleFunc("GET /listings/{id}", detailsHandler(logger, listings))
	return requestLogger(logger, latency, requireBearer(logger, mux))
}

func loadFixture(path string) ([]indexedListing, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var resp listingsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}

	out := make([]indexedListing, 0, len(resp.Data))
	for i, raw := range resp.Data {
		var f listingFields
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parsing fixture listing %d: %w", i, err)
		}
		out = append(out, indexedListing{raw: raw, fields: f})
	}
	return out, nil
}

func requestLogger(logger *slog.Logger, latency time.Duration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		if latency > 0 {
			time.Sleep(latency)
		}
		next.ServeHTTP(w, r)
	})
}

// requireBearer rejects requests without a bearer token. The token itself
// is not checked.
func requireBearer(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			logger.Warn("request missing bearer token")
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing API key"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func searchHandler(logger *slog.Logger, listings []indexedListing) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		limit := defaultLimit
		if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
			limit = v
		}

		f, err := parseFilter(q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		matched := []json.RawMessage{}
		for i := range listings {
			if len(matched) == limit {
				break
			}
			if f.matches(&listings[i].fields) {
				matched = append(matched, listings[i].raw)
			}
		}

		writeJSON(w, http.StatusOK, listingsResponse{Data: matched})
		logger.Info("search", "query", r.URL.RawQuery, "returned", len(matched), "limit", limit)
	}
}

func detailsHandler(logger *slog.Logger, listings []indexedListing) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		for i := range listings {
			if listings[i].fields.ID == id {
				w.Header().Set("Content-Type", "application/json")
				//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
				w.Write(listings[i].raw)
				logger.Info("details", "id", id)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "listing not found"})
	}
}

// filter mirrors the query parameters the real API accepts. Zero bounds
// are open.
type filter struct {
	make, model        string
	yearMin, yearMax   int
	priceMin, priceMax float64
	milesMax           int
}

func parseFilter(q map[string][]string) (filter, error) {
	get := func(k string) string {
		if v := q[k]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	f := filter{
		make:  strings.ToLower(get("vehicle.make")),
		model: strings.ToLower(get("vehicle.model")),
	}

	var err error
	if f.yearMin, f.yearMax, err = parseIntRange(get("vehicle.year")); err != nil {
		return f, fmt.Errorf("vehicle.year: %w", err)
	}
	pMin, pMax, err := parseIntRange(get("retailListing.price"))
	if err != nil {
		return f, fmt.Errorf("retailListing.price: %w", err)
	}
	f.priceMin, f.priceMax = float64(pMin), float64(pMax)
	if _, f.milesMax, err = parseIntRange(get("retailListing.miles")); err != nil {
		return f, fmt.Errorf("retailListing.miles: %w", err)
	}
	return f, nil
}

// parseIntRange reads "a-b" as [a, b] and a lone "a" as [a, open).
func parseIntRange(s string) (lo, hi int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	loStr, hiStr, isRange := strings.Cut(s, "-")
	if lo, err = strconv.Atoi(loStr); err != nil {
		return 0, 0, fmt.Errorf("invalid range %q", s)
	}
	if !isRange {
		return lo, 0, nil
	}
	if hi, err = strconv.Atoi(hiStr); err != nil {
		return 0, 0, fmt.Errorf("invalid range %q", s)
	}
	return lo, hi, nil
}

func (f *filter) matches(l *listingFields) bool {
	switch {
	case f.make != "" && strings.ToLower(l.Vehicle.Make) != f.make:
		return false
	case f.model != "" && !strings.Contains(strings.ToLower(l.Vehicle.Model), f.model):
		return false
	case f.yearMin > 0 && l.Vehicle.Year < f.yearMin:
		return false
	case f.yearMax > 0 && l.Vehicle.Year > f.yearMax:
		return false
	case f.priceMin > 0 && l.RetailListing.Price < f.priceMin:
		return false
	case f.priceMax > 0 && l.RetailListing.Price > f.priceMax:
		return false
	case f.milesMax > 0 && l.RetailListing.Miles > f.milesMax:
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}
