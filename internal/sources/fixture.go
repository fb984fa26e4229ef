package sources

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/donaldgifford/carfinder/internal/metrics"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

// convertFunc maps one provider record to a listing. detailed selects the
// richer detail-page variant of the record.
type convertFunc func(raw json.RawMessage, detailed bool) (domain.VehicleListing, error)

// Fixture is a provider that serves canned marketplace payloads. Each
// provider has its own payload schema and converter; the payload is decoded
// on every call the same way a live response would be.
type Fixture struct {
	name     string
	baseURL  string
	envelope string
	payload  []byte
	convert  convertFunc
	latency  time.Duration
	log      *slog.Logger
}

// FixtureOption configures a Fixture provider.
type FixtureOption func(*Fixture)

// WithFixtureLogger sets the logger.
func WithFixtureLogger(l *slog.Logger) FixtureOption {
	return func(f *Fixture) {
		f.log = l
	}
}

// WithPayload replaces the embedded payload.
func WithPayload(data []byte) FixtureOption {
	return func(f *Fixture) {
		f.payload = data
	}
}

// WithLatency makes every call wait d before answering, or until the
// context is done.
func WithLatency(d time.Duration) FixtureOption {
	return func(f *Fixture) {
		f.latency = d
	}
}

func newFixture(name, baseURL, file, envelope string, convert convertFunc, opts ...FixtureOption) *Fixture {
	f := &Fixture{
		name:     name,
		baseURL:  baseURL,
		envelope: envelope,
		convert:  convert,
		log:      slog.Default(),
	}
	if data, err := fixtureFS.ReadFile("fixtures/" + file); err == nil {
		f.payload = data
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name implements Adapter.
func (f *Fixture) Name() string { return f.name }

// Capability implements Adapter.
func (f *Fixture) Capability() domain.SourceCapability {
	return domain.SourceCapability{HasAPIKey: false, BaseURL: f.baseURL}
}

// Search implements Adapter.
func (f *Fixture) Search(ctx context.Context, c domain.SearchCriteria) []domain.VehicleListing {
	if err := f.wait(ctx); err != nil {
		f.log.Warn("search abandoned", "source", f.name, "error", err)
		metrics.SourceFailuresTotal.WithLabelValues(f.name, "canceled").Inc()
		return nil
	}

	records, err := f.records()
	if err != nil {
		f.log.Error("decoding provider payload", "source", f.name, "error", err)
		metrics.SourceFailuresTotal.WithLabelValues(f.name, "decode").Inc()
		return nil
	}

	limit := c.Limit()
	out := make([]domain.VehicleListing, 0, min(len(records), limit))
	for i, raw := range records {
		l, err := f.convert(raw, false)
		if err != nil {
			f.log.Warn("skipping unparseable listing", "source", f.name, "index", i, "error", err)
			metrics.SourceParseErrorsTotal.WithLabelValues(f.name).Inc()
			continue
		}
		if !c.Matches(&l) {
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
func (f *Fixture) GetDetails(ctx context.Context, externalID string) (*domain.VehicleListing, bool) {
	if err := f.wait(ctx); err != nil {
		f.log.Warn("details abandoned", "source", f.name, "id", externalID, "error", err)
		return nil, false
	}

	records, err := f.records()
	if err != nil {
		f.log.Error("decoding provider payload", "source", f.name, "error", err)
		return nil, false
	}

	for i, raw := range records {
		l, err := f.convert(raw, true)
		if err != nil {
			f.log.Warn("skipping unparseable listing", "source", f.name, "index", i, "error", err)
			continue
		}
		if l.ExternalID == externalID {
			return &l, true
		}
	}
	return nil, false
}

func (f *Fixture) records() ([]json.RawMessage, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(f.payload, &env); err != nil {
		return nil, fmt.Errorf("parsing payload envelope: %w", err)
	}
	body, ok := env[f.envelope]
	if !ok {
		return nil, fmt.Errorf("payload has no %q field", f.envelope)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("parsing %q records: %w", f.envelope, err)
	}
	return records, nil
}

func (f *Fixture) wait(ctx context.Context) error {
	if f.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(f.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
