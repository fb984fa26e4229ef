// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Sources       SourcesConfig       `yaml:"sources"`
	Search        SearchConfig        `yaml:"search"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	LLM           LLMConfig           `yaml:"llm"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// SourcesConfig defines the listing providers.
type SourcesConfig struct {
	// Timeout bounds each provider's search.
	Timeout         time.Duration      `yaml:"timeout"`
	LimitPerSource  int                `yaml:"limit_per_source"`
	SourceBonus     map[string]float64 `yaml:"source_bonus"`
	FixturesEnabled *bool              `yaml:"fixtures_enabled"`
	AutoDev         AutoDevConfig      `yaml:"autodev"`
}

// UseFixtures reports whether the fixture providers may be registered.
// Unset means yes.
func (s *SourcesConfig) UseFixtures() bool {
	return s.FixturesEnabled == nil || *s.FixturesEnabled
}

// AutoDevConfig defines the live auto.dev provider. An empty APIKey
// disables it.
type AutoDevConfig struct {
	APIKey    string          `yaml:"api_key"`
	BaseURL   string          `yaml:"base_url"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines provider API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// SearchConfig defines hybrid search and matching behavior.
type SearchConfig struct {
	UseLiveData   bool    `yaml:"use_live_data"`
	DefaultLimit  int     `yaml:"default_limit"`
	LocalLimit    int     `yaml:"local_limit"`
	DefaultRadius int     `yaml:"default_radius"`
	MinMatchScore float64 `yaml:"min_match_score"`
}

// ScheduleConfig defines the periodic live data refresh. A negative
// RefreshInterval disables it.
type ScheduleConfig struct {
	RefreshInterval  time.Duration `yaml:"refresh_interval"`
	RefreshBudgetMax float64       `yaml:"refresh_budget_max"`
}

// Enabled reports whether scheduled refreshes should run.
func (s *ScheduleConfig) Enabled() bool {
	return s.RefreshInterval > 0
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// LLMConfig defines the optional LLM used by chat when the keyword rules
// find no preferences in a message. An empty Backend disables it.
type LLMConfig struct {
	Backend      string             `yaml:"backend"` // ollama, anthropic, openai_compat
	Timeout      time.Duration      `yaml:"timeout"`
	Ollama       OllamaConfig       `yaml:"ollama"`
	Anthropic    AnthropicConfig    `yaml:"anthropic"`
	OpenAICompat OpenAICompatConfig `yaml:"openai_compat"`
}

// Enabled reports whether an LLM backend is configured.
func (l *LLMConfig) Enabled() bool {
	return l.Backend != ""
}

// OllamaConfig defines Ollama-specific settings.
type OllamaConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

// AnthropicConfig defines Anthropic API settings. An empty APIKey falls
// back to ANTHROPIC_API_KEY.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// OpenAICompatConfig defines OpenAI-compatible endpoint settings.
type OpenAICompatConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

// TelemetryConfig defines OpenTelemetry trace export.
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	ServiceName string  `yaml:"service_name"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applySourcesDefaults(&cfg.Sources)
	applySearchDefaults(&cfg.Search)
	applyScheduleDefaults(&cfg.Schedule)
	applyLLMDefaults(&cfg.LLM)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 60 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applySourcesDefaults(s *SourcesConfig) {
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	if s.LimitPerSource == 0 {
		s.LimitPerSource = 10
	}
	if s.AutoDev.BaseURL == "" {
		s.AutoDev.BaseURL = "https://api.auto.dev"
	}
	applyRateLimitDefaults(&s.AutoDev.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 2.0
	}
	if r.Burst == 0 {
		r.Burst = 5
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 1000
	}
}

func applySearchDefaults(s *SearchConfig) {
	if s.DefaultLimit == 0 {
		s.DefaultLimit = 20
	}
	if s.LocalLimit == 0 {
		s.LocalLimit = 50
	}
	if s.DefaultRadius == 0 {
		s.DefaultRadius = 50
	}
	if s.MinMatchScore == 0 {
		s.MinMatchScore = 5
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.RefreshInterval == 0 {
		s.RefreshInterval = time.Hour
	}
	if s.RefreshBudgetMax == 0 {
		s.RefreshBudgetMax = 50000
	}
}

func applyLLMDefaults(l *LLMConfig) {
	if l.Timeout == 0 {
		l.Timeout = 20 * time.Second
	}
	if l.Ollama.Endpoint == "" {
		l.Ollama.Endpoint = "http://localhost:11434"
	}
	if l.Ollama.Model == "" {
		l.Ollama.Model = "mistral"
	}
	if l.OpenAICompat.Endpoint == "" {
		l.OpenAICompat.Endpoint = "https://api.openai.com/v1"
	}
	if l.OpenAICompat.Model == "" {
		l.OpenAICompat.Model = "gpt-4o-mini"
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "carfinder"
	}
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, errors.New("database.user is required"))
	}

	if cfg.Sources.Timeout < 0 {
		errs = append(errs, errors.New("sources.timeout must not be negative"))
	}
	if cfg.Sources.LimitPerSource < 0 || cfg.Sources.LimitPerSource > 100 {
		errs = append(errs, fmt.Errorf(
			"sources.limit_per_source must be between 1 and 100 (got %d)",
			cfg.Sources.LimitPerSource,
		))
	}
	if cfg.Sources.AutoDev.APIKey == "" && !cfg.Sources.UseFixtures() {
		errs = append(errs, errors.New(
			"sources.autodev.api_key is required when sources.fixtures_enabled is false",
		))
	}
	if cfg.Sources.AutoDev.RateLimit.PerSecond < 0 {
		errs = append(errs, errors.New("sources.autodev.rate_limit.per_second must not be negative"))
	}

	if cfg.Search.DefaultLimit < 0 {
		errs = append(errs, errors.New("search.default_limit must not be negative"))
	}
	if cfg.Search.MinMatchScore < 0 || cfg.Search.MinMatchScore > 100 {
		errs = append(errs, fmt.Errorf(
			"search.min_match_score must be between 0 and 100 (got %g)",
			cfg.Search.MinMatchScore,
		))
	}

	if cfg.Schedule.RefreshBudgetMax < 0 {
		errs = append(errs, errors.New("schedule.refresh_budget_max must not be negative"))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, errors.New(
			"notifications.discord.webhook_url is required when discord is enabled",
		))
	}

	switch cfg.LLM.Backend {
	case "", "ollama", "anthropic", "openai_compat":
	default:
		errs = append(errs, fmt.Errorf(
			"llm.backend must be one of: ollama, anthropic, openai_compat (got %q)",
			cfg.LLM.Backend,
		))
	}
	if cfg.LLM.Timeout < 0 {
		errs = append(errs, errors.New("llm.timeout must not be negative"))
	}

	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf(
			"telemetry.sample_ratio must be between 0 and 1 (got %g)",
			cfg.Telemetry.SampleRatio,
		))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json (got %q)",
			cfg.Logging.Format,
		))
	}

	return errors.Join(errs...)
}
