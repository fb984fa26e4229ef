package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/carfinder/internal/aggregate"
	"github.com/donaldgifford/carfinder/internal/config"
	"github.com/donaldgifford/carfinder/internal/engine"
	"github.com/donaldgifford/carfinder/internal/notify"
	"github.com/donaldgifford/carfinder/internal/sources"
	"github.com/donaldgifford/carfinder/internal/store"
	"github.com/donaldgifford/carfinder/internal/telemetry"
	"github.com/donaldgifford/carfinder/pkg/extract"
	"github.com/donaldgifford/carfinder/pkg/logger"
	score "github.com/donaldgifford/carfinder/pkg/scorer"
)

// app holds the wired dependencies shared by serve and refresh.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	store  *store.PostgresStore
	engine *engine.Engine
	quota  *sources.RateLimiter

	shutdownTracing telemetry.ShutdownFunc
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	_, shutdown, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		Endpoint:       cfg.Telemetry.Endpoint,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: Version,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRatio:    cfg.Telemetry.SampleRatio,
	}, telemetry.WithLogger(logger.ForComponent(log, "telemetry")))
	if err != nil {
		return nil, fmt.Errorf("setting up tracing: %w", err)
	}

	s, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), store.WithPoolSize(cfg.Database.PoolSize))
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := s.Migrate(ctx); err != nil {
		s.Close()
		_ = shutdown(ctx)
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	quota := newAutoDevLimiter(cfg)
	adapters := sources.Build(ctx, sourceSelection(cfg, quota, logger.ForComponent(log, "sources")))

	agg := aggregate.New(adapters,
		aggregate.WithTimeout(cfg.Sources.Timeout),
		aggregate.WithSourceBonus(sourceBonus(cfg)),
		aggregate.WithLogger(logger.ForComponent(log, "aggregate")),
	)

	engineOpts := []engine.EngineOption{
		engine.WithLogger(logger.ForComponent(log, "engine")),
		engine.WithDefaultLimit(cfg.Search.DefaultLimit),
		engine.WithLocalLimit(cfg.Search.LocalLimit),
		engine.WithDefaultRadius(cfg.Search.DefaultRadius),
		engine.WithLimitPerSource(cfg.Sources.LimitPerSource),
		engine.WithMinMatchScore(cfg.Search.MinMatchScore),
		engine.WithRefreshBudget(cfg.Schedule.RefreshBudgetMax),
	}
	if x := newFallbackExtractor(&cfg.LLM); x != nil {
		log.Info("llm fallback extraction enabled", "backend", x.Name())
		engineOpts = append(engineOpts, engine.WithFallbackExtractor(x))
	}

	eng := engine.NewEngine(s, agg, newNotifier(cfg, log), engineOpts...)

	return &app{
		cfg:             cfg,
		log:             log,
		store:           s,
		engine:          eng,
		quota:           quota,
		shutdownTracing: shutdown,
	}, nil
}

func (a *app) close(ctx context.Context) {
	a.store.Close()
	if err := a.shutdownTracing(ctx); err != nil {
		a.log.Warn("flushing traces", "error", err)
	}
}

// newAutoDevLimiter builds the limiter shared by the auto.dev adapter and
// the quota endpoint.
func newAutoDevLimiter(cfg *config.Config) *sources.RateLimiter {
	rl := cfg.Sources.AutoDev.RateLimit
	return sources.NewRateLimiter(rl.PerSecond, rl.Burst, rl.DailyLimit)
}

func sourceSelection(cfg *config.Config, limiter *sources.RateLimiter, log *slog.Logger) sources.Selection {
	ad := cfg.Sources.AutoDev
	return sources.Selection{
		AutoDevKey: ad.APIKey,
		AutoDevOptions: []sources.AutoDevOption{
			sources.WithAutoDevURL(ad.BaseURL),
			sources.WithAutoDevRateLimiter(limiter),
		},
		FixturesEnabled: cfg.Sources.UseFixtures(),
		PingTimeout:     cfg.Sources.Timeout,
		Logger:          log,
	}
}

func sourceBonus(cfg *config.Config) score.SourceBonus {
	if len(cfg.Sources.SourceBonus) == 0 {
		return score.DefaultSourceBonus()
	}
	return score.SourceBonus(cfg.Sources.SourceBonus)
}

// newFallbackExtractor builds the configured LLM extractor, or nil when no
// backend is set.
func newFallbackExtractor(l *config.LLMConfig) *extract.LLMExtractor {
	var backend extract.LLMBackend
	switch l.Backend {
	case "ollama":
		backend = extract.NewOllamaBackend(l.Ollama.Endpoint, l.Ollama.Model)
	case "anthropic":
		opts := []extract.AnthropicOption{extract.WithAnthropicModel(l.Anthropic.Model)}
		if l.Anthropic.APIKey != "" {
			opts = append(opts, extract.WithAnthropicAPIKey(l.Anthropic.APIKey))
		}
		backend = extract.NewAnthropicBackend(opts...)
	case "openai_compat":
		var opts []extract.OpenAICompatOption
		if l.OpenAICompat.APIKey != "" {
			opts = append(opts, extract.WithOpenAICompatAPIKey(l.OpenAICompat.APIKey))
		}
		backend = extract.NewOpenAICompatBackend(l.OpenAICompat.Endpoint, l.OpenAICompat.Model, opts...)
	default:
		return nil
	}
	return extract.NewLLMExtractor(backend, extract.WithLLMTimeout(l.Timeout))
}

func newNotifier(cfg *config.Config, log *slog.Logger) notify.Notifier {
	d := cfg.Notifications.Discord
	if d.Enabled {
		log.Info("discord notifications enabled")
		return notify.NewDiscordNotifier(d.WebhookURL)
	}
	return notify.NewNoOpNotifier(logger.ForComponent(log, "notify"))
}
