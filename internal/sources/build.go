package sources

import (
	"context"
	"log/slog"
	"time"
)

const defaultPingTimeout = 10 * time.Second

// Selection controls which providers Build registers.
type Selection struct {
	AutoDevKey      string
	AutoDevOptions  []AutoDevOption
	FixturesEnabled bool
	FixtureOptions  []FixtureOption
	PingTimeout     time.Duration
	Logger          *slog.Logger
}

// Build returns the providers to search. When an auto.dev key is set and
// the connection test passes, auto.dev is the only provider. Otherwise the
// fixture providers are used, if enabled.
func Build(ctx context.Context, sel Selection) []Adapter {
	log := sel.Logger
	if log == nil {
		log = slog.Default()
	}

	if sel.AutoDevKey != "" {
		live := NewAutoDev(sel.AutoDevKey, append([]AutoDevOption{WithAutoDevLogger(log)}, sel.AutoDevOptions...)...)

		timeout := sel.PingTimeout
		if timeout <= 0 {
			timeout = defaultPingTimeout
		}
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err := live.Ping(pctx)
		cancel()

		if err == nil {
			log.Info("using live listings provider", "source", AutoDevName)
			return []Adapter{live}
		}
		log.Warn("live provider connection test failed, using fixture providers",
			"source", AutoDevName, "error", err)
	}

	if !sel.FixturesEnabled {
		log.Warn("no listing providers available")
		return nil
	}

	opts := append([]FixtureOption{WithFixtureLogger(log)}, sel.FixtureOptions...)
	adapters := []Adapter{
		NewCarsCom(opts...),
		NewAutotrader(opts...),
		NewCarGurus(opts...),
	}
	log.Info("using fixture providers", "sources", Names(adapters))
	return adapters
}
