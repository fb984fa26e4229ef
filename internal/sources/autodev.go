package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/donaldgifford/carfinder/internal/metrics"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

const (
	// AutoDevName is the provider name for auto.dev listings.
	AutoDevName = "auto.dev"

	// DefaultAutoDevURL is the production auto.dev API.
	DefaultAutoDevURL = "https://api.auto.dev"

	autoDevMaxLimit = 100
	maxFeatures     = 10
	maxImages       = 5
)

// StatusError is a non-200 response from a provider API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("auto.dev API error (status %d): %s", e.StatusCode, e.Body)
}

// AutoDev is the live auto.dev listings provider.
type AutoDev struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *RateLimiter
	log     *slog.Logger
}

// AutoDevOption configures the AutoDev client.
type AutoDevOption func(*AutoDev)

// WithAutoDevURL overrides the default API base URL.
func WithAutoDevURL(u string) AutoDevOption {
	return func(a *AutoDev) {
		a.baseURL = u
	}
}

// WithAutoDevHTTPClient overrides the default HTTP client.
func WithAutoDevHTTPClient(hc *http.Client) AutoDevOption {
	return func(a *AutoDev) {
		a.client = hc
	}
}

// WithAutoDevRateLimiter makes every request wait on r first.
func WithAutoDevRateLimiter(r *RateLimiter) AutoDevOption {
	return func(a *AutoDev) {
		a.limiter = r
	}
}

// WithAutoDevLogger sets the logger.
func WithAutoDevLogger(l *slog.Logger) AutoDevOption {
	return func(a *AutoDev) {
		a.log = l
	}
}

// NewAutoDev creates an auto.dev client authenticated with apiKey. The
// default HTTP client is traced with otelhttp.
func NewAutoDev(apiKey string, opts ...AutoDevOption) *AutoDev {
	a := &AutoDev{
		apiKey:  apiKey,
		baseURL: DefaultAutoDevURL,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name implements Adapter.
func (a *AutoDev) Name() string { return AutoDevName }

// Capability implements Adapter.
func (a *AutoDev) Capability() domain.SourceCapability {
	return domain.SourceCapability{HasAPIKey: a.apiKey != "", BaseURL: a.baseURL}
}

// Ping issues a one-result search and reports whether the API answered.
func (a *AutoDev) Ping(ctx context.Context) error {
	_, err := a.get(ctx, "listings", url.Values{"limit": []string{"1"}})
	return err
}

type autoDevSearchResponse struct {
	Data []json.RawMessage `json:"data"`
}

// Search implements Adapter.
func (a *AutoDev) Search(ctx context.Context, c domain.SearchCriteria) []domain.VehicleListing {
	body, err := a.get(ctx, "listings", searchParams(&c))
	if err != nil {
		return nil
	}

	var resp autoDevSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		a.log.Error("parsing auto.dev search response", "error", err)
		metrics.SourceFailuresTotal.WithLabelValues(AutoDevName, "decode").Inc()
		return nil
	}
	if len(resp.Data) == 0 {
		a.log.Warn("no vehicles returned from auto.dev")
		return nil
	}
	a.log.Debug("auto.dev returned vehicles", "count", len(resp.Data))

	limit := c.Limit()
	out := make([]domain.VehicleListing, 0, min(len(resp.Data), limit))
	for i, raw := range resp.Data {
		l, err := convertAutoDev(raw)
		if err != nil {
			a.log.Warn("skipping unparseable listing", "source", AutoDevName, "index", i, "error", err)
			metrics.SourceParseErrorsTotal.WithLabelValues(AutoDevName).Inc()
			continue
		}
		// The API does not always honor the mileage range.
		if c.MileageMax != nil && l.Mileage != nil && *l.Mileage > *c.MileageMax {
			a.log.Info("filtered listing over mileage limit",
				"make", l.Make, "model", l.Model,
				"mileage", *l.Mileage, "mileage_max", *c.MileageMax,
			)
			continue
		}
		out = append(out, l)
		if len(out) == limit {
			break
		}
	}
	return out
}

// GetDetails implements Adapter.
func (a *AutoDev) GetDetails(ctx context.Context, externalID string) (*domain.VehicleListing, bool) {
	body, err := a.get(ctx, "listings/"+url.PathEscape(externalID), nil)
	if err != nil {
		return nil, false
	}
	l, err := convertAutoDev(body)
	if err != nil {
		a.log.Warn("parsing auto.dev listing details", "id", externalID, "error", err)
		return nil, false
	}
	return &l, true
}

func searchParams(c *domain.SearchCriteria) url.Values {
	p := url.Values{}
	p.Set("limit", strconv.Itoa(min(c.Limit(), autoDevMaxLimit)))

	if c.Make != "" {
		p.Set("vehicle.make", c.Make)
	}
	if c.Model != "" {
		p.Set("vehicle.model", c.Model)
	}
	switch {
	case c.YearMin != nil && c.YearMax != nil:
		p.Set("vehicle.year", fmt.Sprintf("%d-%d", *c.YearMin, *c.YearMax))
	case c.YearMin != nil:
		p.Set("vehicle.year", strconv.Itoa(*c.YearMin))
	}
	switch {
	case c.PriceMin != nil && *c.PriceMin > 0 && c.PriceMax != nil:
		p.Set("retailListing.price", fmt.Sprintf("%d-%d", int(*c.PriceMin), int(*c.PriceMax)))
	case c.PriceMax != nil:
		p.Set("retailListing.price", fmt.Sprintf("1-%d", int(*c.PriceMax)))
	}
	if c.MileageMax != nil {
		p.Set("retailListing.miles", fmt.Sprintf("0-%d", *c.MileageMax))
	}
	if c.Location != "" {
		p.Set("zip", c.Location)
	}
	if c.Radius != nil {
		p.Set("distance", strconv.Itoa(*c.Radius))
	}
	return p
}

// get performs one authenticated GET and logs every failure with its
// status context.
func (a *AutoDev) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.AutoDevDailyLimitHits.Inc()
				metrics.SourceFailuresTotal.WithLabelValues(AutoDevName, "quota").Inc()
			}
			a.log.Warn("auto.dev request not sent", "error", err)
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.AutoDevDailyUsage.Set(float64(a.limiter.DailyCount()))
	}
	metrics.AutoDevAPICallsTotal.Inc()

	u := a.baseURL + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "carfinder/1.0")

	resp, err := a.client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			a.log.Error("auto.dev request timed out", "endpoint", endpoint)
			metrics.SourceFailuresTotal.WithLabelValues(AutoDevName, "timeout").Inc()
		} else {
			a.log.Error("auto.dev request failed", "endpoint", endpoint, "error", err)
			metrics.SourceFailuresTotal.WithLabelValues(AutoDevName, "transport").Inc()
		}
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		a.log.Error("reading auto.dev response", "endpoint", endpoint, "error", err)
		metrics.SourceFailuresTotal.WithLabelValues(AutoDevName, "transport").Inc()
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		a.logStatus(endpoint, resp.StatusCode, body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (a *AutoDev) logStatus(endpoint string, code int, body []byte) {
	switch {
	case code == http.StatusUnauthorized:
		a.log.Error("auto.dev authentication failed, check API key", "endpoint", endpoint, "status", code)
		metrics.SourceFailuresTotal.WithLabelValues(AutoDevName, "unauthorized").Inc()
	case code == http.StatusTooManyRequests:
		a.log.Warn("auto.dev rate limit exceeded", "endpoint", endpoint, "status", code)
		metrics.SourceFailuresTotal.WithLabelValues(AutoDevName, "rate_limited").Inc()
	case code >= http.StatusInternalServerError:
		a.log.Error("auto.dev server error", "endpoint", endpoint, "status", code)
		metrics.SourceFailuresTotal.WithLabelValues(AutoDevName, "server_error").Inc()
	default:
		a.log.Warn("auto.dev unexpected status", "endpoint", endpoint, "status", code, "body", string(body))
		metrics.SourceFailuresTotal.WithLabelValues(AutoDevName, "status").Inc()
	}
}

type autoDevListing struct {
	ID      Flex   `json:"id"`
	VIN     string `json:"vin"`
	Vehicle struct {
		Make           string                     `json:"make"`
		Model          string                     `json:"model"`
		Year           Flex                       `json:"year"`
		Fuel           string                     `json:"fuel"`
		Transmission   string                     `json:"transmission"`
		VIN            string                     `json:"vin"`
		SafetyRating   Flex                       `json:"safetyRating"`
		MPGCity        Flex                       `json:"mpgCity"`
		MPGHighway     Flex                       `json:"mpgHighway"`
		Specifications map[string]json.RawMessage `json:"specifications"`
	} `json:"vehicle"`
	RetailListing struct {
		Price      Flex   `json:"price"`
		Miles      Flex   `json:"miles"`
		City       string `json:"city"`
		State      string `json:"state"`
		Dealership *struct {
			City  string `json:"city"`
			State string `json:"state"`
		} `json:"dealership"`
		Images      []json.RawMessage `json:"images"`
		Description string            `json:"description"`
		Dealer      string            `json:"dealer"`
		Phone       string            `json:"phone"`
		VDP         string            `json:"vdp"`
		ListedDate  string            `json:"listedDate"`
	} `json:"retailListing"`
}

func convertAutoDev(raw []byte) (domain.VehicleListing, error) {
	var r autoDevListing
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.VehicleListing{}, fmt.Errorf("decoding auto.dev listing: %w", err)
	}

	vin := r.Vehicle.VIN
	if vin == "" {
		vin = r.VIN
	}
	id := r.ID.String()
	if id == "" {
		id = vin
	}
	if id == "" && r.Vehicle.Make == "" {
		return domain.VehicleListing{}, errors.New("auto.dev listing has no id, vin or make")
	}

	rl := &r.RetailListing
	location := ""
	switch {
	case rl.City != "" && rl.State != "":
		location = rl.City + ", " + rl.State
	case rl.Dealership != nil && rl.Dealership.City != "" && rl.Dealership.State != "":
		location = rl.Dealership.City + ", " + rl.Dealership.State
	}

	return domain.VehicleListing{
		Source:       AutoDevName,
		ExternalID:   id,
		Make:         TitleCase(r.Vehicle.Make),
		Model:        TitleCase(r.Vehicle.Model),
		Year:         ParseYear(r.Vehicle.Year.String()),
		Price:        ParsePrice(rl.Price.String()),
		Mileage:      ParseCount(rl.Miles.String()),
		FuelType:     TitleCase(r.Vehicle.Fuel),
		Transmission: TitleCase(r.Vehicle.Transmission),
		Location:     location,
		SafetyRating: ParseRating(r.Vehicle.SafetyRating.String()),
		MPGCity:      ParseCount(r.Vehicle.MPGCity.String()),
		MPGHighway:   ParseCount(r.Vehicle.MPGHighway.String()),
		VIN:          vin,
		Description:  rl.Description,
		Features:     specFeatures(r.Vehicle.Specifications),
		Images:       imageURLs(rl.Images),
		DealerName:   rl.Dealer,
		DealerPhone:  rl.Phone,
		ListingURL:   rl.VDP,
		ListingDate:  rl.ListedDate,
	}, nil
}

// specFeatures flattens the specification lists in category order. Entries
// that are not string lists are ignored.
func specFeatures(specs map[string]json.RawMessage) []string {
	categories := make([]string, 0, len(specs))
	for k := range specs {
		categories = append(categories, k)
	}
	slices.Sort(categories)

	var all []string
	for _, k := range categories {
		var items []string
		if err := json.Unmarshal(specs[k], &items); err != nil {
			continue
		}
		all = append(all, items...)
	}
	return capStrings(all, maxFeatures)
}

func imageURLs(images []json.RawMessage) []string {
	urls := make([]string, 0, len(images))
	for _, raw := range images {
		var img struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(raw, &img); err != nil {
			continue
		}
		urls = append(urls, img.URL)
	}
	return capStrings(urls, maxImages)
}
