package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDB = `
database:
  host: localhost
  name: carfinder
  user: carfinder
`

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: minimalDB,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "carfinder", cfg.Database.Name)
				assert.Equal(t, "carfinder", cfg.Database.User)
				assert.True(t, cfg.Sources.UseFixtures())
				assert.Empty(t, cfg.Sources.AutoDev.APIKey)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: minimalDB,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.Database.PoolSize)

				assert.Equal(t, 30*time.Second, cfg.Sources.Timeout)
				assert.Equal(t, 10, cfg.Sources.LimitPerSource)
				assert.Nil(t, cfg.Sources.SourceBonus)
				assert.Equal(t, "https://api.auto.dev", cfg.Sources.AutoDev.BaseURL)
				assert.InDelta(t, 2.0, cfg.Sources.AutoDev.RateLimit.PerSecond, 0.001)
				assert.Equal(t, 5, cfg.Sources.AutoDev.RateLimit.Burst)
				assert.Equal(t, int64(1000), cfg.Sources.AutoDev.RateLimit.DailyLimit)

				assert.False(t, cfg.Search.UseLiveData)
				assert.Equal(t, 20, cfg.Search.DefaultLimit)
				assert.Equal(t, 50, cfg.Search.LocalLimit)
				assert.Equal(t, 50, cfg.Search.DefaultRadius)
				assert.InDelta(t, 5.0, cfg.Search.MinMatchScore, 0.001)

				assert.Equal(t, time.Hour, cfg.Schedule.RefreshInterval)
				assert.True(t, cfg.Schedule.Enabled())
				assert.InDelta(t, 50000.0, cfg.Schedule.RefreshBudgetMax, 0.001)

				assert.False(t, cfg.LLM.Enabled())
				assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
				assert.Equal(t, "http://localhost:11434", cfg.LLM.Ollama.Endpoint)
				assert.Equal(t, "mistral", cfg.LLM.Ollama.Model)
				assert.Equal(t, "https://api.openai.com/v1", cfg.LLM.OpenAICompat.Endpoint)
				assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAICompat.Model)

				assert.False(t, cfg.Telemetry.Enabled)
				assert.Equal(t, "carfinder", cfg.Telemetry.ServiceName)
				assert.Equal(t, "localhost:4317", cfg.Telemetry.Endpoint)
				assert.InDelta(t, 1.0, cfg.Telemetry.SampleRatio, 0.001)

				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: minimalDB + `  password: "${TEST_DB_PASSWORD}"
sources:
  autodev:
    api_key: "${TEST_AUTODEV_KEY}"
`,
			envVars: map[string]string{
				"TEST_DB_PASSWORD": "secret123",
				"TEST_AUTODEV_KEY": "ad_live_abc",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Database.Password)
				assert.Equal(t, "ad_live_abc", cfg.Sources.AutoDev.APIKey)
			},
		},
		{
			name: "anthropic llm backend",
			yaml: minimalDB + `llm:
  backend: anthropic
  timeout: 5s
  anthropic:
    api_key: sk-ant-test
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.True(t, cfg.LLM.Enabled())
				assert.Equal(t, "anthropic", cfg.LLM.Backend)
				assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
				assert.Equal(t, "sk-ant-test", cfg.LLM.Anthropic.APIKey)
				assert.Empty(t, cfg.LLM.Anthropic.Model)
			},
		},
		{
			name:    "unknown llm backend",
			yaml:    minimalDB + "llm:\n  backend: gemini\n",
			wantErr: `llm.backend must be one of: ollama, anthropic, openai_compat (got "gemini")`,
		},
		{
			name: "missing required database.host",
			yaml: `
database:
  name: carfinder
  user: carfinder
`,
			wantErr: "database.host is required",
		},
		{
			name: "missing required database.name",
			yaml: `
database:
  host: localhost
  user: carfinder
`,
			wantErr: "database.name is required",
		},
		{
			name: "missing required database.user",
			yaml: `
database:
  host: localhost
  name: carfinder
`,
			wantErr: "database.user is required",
		},
		{
			name: "fixtures disabled without a live key",
			yaml: minimalDB + `
sources:
  fixtures_enabled: false
`,
			wantErr: "sources.autodev.api_key is required",
		},
		{
			name: "fixtures disabled with a live key",
			yaml: minimalDB + `
sources:
  fixtures_enabled: false
  autodev:
    api_key: key
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.False(t, cfg.Sources.UseFixtures())
			},
		},
		{
			name: "limit per source above provider maximum",
			yaml: minimalDB + `
sources:
  limit_per_source: 250
`,
			wantErr: "sources.limit_per_source must be between 1 and 100",
		},
		{
			name: "min match score out of range",
			yaml: minimalDB + `
search:
  min_match_score: 120
`,
			wantErr: "search.min_match_score must be between 0 and 100",
		},
		{
			name: "discord enabled without webhook",
			yaml: minimalDB + `
notifications:
  discord:
    enabled: true
`,
			wantErr: "notifications.discord.webhook_url is required",
		},
		{
			name: "bad sample ratio",
			yaml: minimalDB + `
telemetry:
  sample_ratio: 1.5
`,
			wantErr: "telemetry.sample_ratio must be between 0 and 1",
		},
		{
			name: "bad logging format",
			yaml: minimalDB + `
logging:
  format: xml
`,
			wantErr: `logging.format must be one of: text, json (got "xml")`,
		},
		{
			name: "multiple errors are joined",
			yaml: `
database:
  port: 5432
logging:
  format: xml
`,
			wantErr: "database.host is required\ndatabase.name is required\ndatabase.user is required",
		},
		{
			name:    "invalid YAML",
			yaml:    "database: [unclosed",
			wantErr: "parsing config YAML",
		},
		{
			name: "negative refresh interval disables the scheduler",
			yaml: minimalDB + `
schedule:
  refresh_interval: -1s
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.False(t, cfg.Schedule.Enabled())
			},
		},
		{
			name: "full config overrides defaults",
			yaml: `
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 10s
  write_timeout: 20s
database:
  host: db.example.com
  port: 5433
  name: cars
  user: admin
  password: pass
  sslmode: require
  pool_size: 20
sources:
  timeout: 5s
  limit_per_source: 25
  source_bonus:
    cargurus: 8
    auto.dev: 2
  fixtures_enabled: true
  autodev:
    api_key: key
    base_url: http://localhost:8089
    rate_limit:
      per_second: 1
      burst: 2
      daily_limit: 300
search:
  use_live_data: true
  default_limit: 15
  local_limit: 80
  default_radius: 100
  min_match_score: 10
schedule:
  refresh_interval: 30m
  refresh_budget_max: 65000
notifications:
  discord:
    enabled: true
    webhook_url: https://discord.com/api/webhooks/123
telemetry:
  enabled: true
  endpoint: otel-collector:4317
  service_name: carfinder-staging
  insecure: true
  sample_ratio: 0.25
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 20*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 20, cfg.Database.PoolSize)

				assert.Equal(t, 5*time.Second, cfg.Sources.Timeout)
				assert.Equal(t, 25, cfg.Sources.LimitPerSource)
				assert.Equal(t, map[string]float64{"cargurus": 8, "auto.dev": 2}, cfg.Sources.SourceBonus)
				assert.Equal(t, "http://localhost:8089", cfg.Sources.AutoDev.BaseURL)
				assert.Equal(t, int64(300), cfg.Sources.AutoDev.RateLimit.DailyLimit)

				assert.True(t, cfg.Search.UseLiveData)
				assert.Equal(t, 15, cfg.Search.DefaultLimit)
				assert.Equal(t, 80, cfg.Search.LocalLimit)
				assert.Equal(t, 100, cfg.Search.DefaultRadius)
				assert.InDelta(t, 10.0, cfg.Search.MinMatchScore, 0.001)

				assert.Equal(t, 30*time.Minute, cfg.Schedule.RefreshInterval)
				assert.InDelta(t, 65000.0, cfg.Schedule.RefreshBudgetMax, 0.001)

				assert.True(t, cfg.Notifications.Discord.Enabled)
				assert.Equal(t, "https://discord.com/api/webhooks/123", cfg.Notifications.Discord.WebhookURL)

				assert.True(t, cfg.Telemetry.Enabled)
				assert.Equal(t, "otel-collector:4317", cfg.Telemetry.Endpoint)
				assert.Equal(t, "carfinder-staging", cfg.Telemetry.ServiceName)
				assert.True(t, cfg.Telemetry.Insecure)
				assert.InDelta(t, 0.25, cfg.Telemetry.SampleRatio, 0.001)

				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "basic DSN",
			cfg: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				Name:     "carfinder",
				User:     "carfinder",
				Password: "testpass",
				SSLMode:  "disable",
			},
			want: "host=localhost port=5432 dbname=carfinder user=carfinder password=testpass sslmode=disable",
		},
		{
			name: "production DSN",
			cfg: DatabaseConfig{
				Host:     "db.example.com",
				Port:     5433,
				Name:     "cars",
				User:     "admin",
				Password: "s3cret",
				SSLMode:  "require",
			},
			want: "host=db.example.com port=5433 dbname=cars user=admin password=s3cret sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
