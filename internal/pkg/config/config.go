package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Providers ProvidersConfig `yaml:"providers"`
	Cache     CacheConfig     `yaml:"cache"`
	API       APIConfig       `yaml:"api"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	Notify    NotifyConfig    `yaml:"notify"`
	Logging   LoggingConfig   `yaml:"logging"`
	Search    SearchConfig    `yaml:"search"`
}

type ProvidersConfig struct {
	// FetchTimeout bounds every external HTTP call; a fetch that exceeds it
	// is treated as a failure, not a hang.
	FetchTimeout time.Duration     `yaml:"fetch_timeout"`
	UserAgent    string            `yaml:"user_agent"`
	CricAPI      ProviderConfig    `yaml:"cricapi"`
	SportsDB     ProviderConfig    `yaml:"sportsdb"`
	APIFootball  ProviderConfig    `yaml:"apifootball"`
	BallDontLie  ProviderConfig    `yaml:"balldontlie"`
}

type ProviderConfig struct {
	Enabled  bool          `yaml:"enabled"`
	BaseURL  string        `yaml:"base_url"`
	APIKey   string        `yaml:"api_key"`
	Interval time.Duration `yaml:"interval"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type CacheConfig struct {
	// MaxEntries bounds the per-endpoint cache; oldest-inserted entries are
	// evicted first. Detail lookups create many distinct keys.
	MaxEntries int `yaml:"max_entries"`
}

type APIConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	AllowedOrigins    []string      `yaml:"allowed_origins"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"` // empty disables the second-level cache
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type NotifyConfig struct {
	TelegramBotToken string `yaml:"telegram_bot_token"` // empty disables alerts
	TelegramChatID   int64  `yaml:"telegram_chat_id"`
	// FailureThreshold is the number of consecutive failed poll cycles for
	// one provider before an alert is sent.
	FailureThreshold int `yaml:"failure_threshold"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

type SearchConfig struct {
	// FallbackThreshold: a category with fewer local hits than this triggers
	// background external enrichment.
	FallbackThreshold int `yaml:"fallback_threshold"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Providers.FetchTimeout <= 0 {
		c.Providers.FetchTimeout = 10 * time.Second
	}
	if c.Providers.CricAPI.Interval <= 0 {
		c.Providers.CricAPI.Interval = 30 * time.Minute
	}
	if c.Providers.CricAPI.CacheTTL <= 0 {
		c.Providers.CricAPI.CacheTTL = 25 * time.Minute
	}
	if c.Providers.SportsDB.Interval <= 0 {
		c.Providers.SportsDB.Interval = time.Minute
	}
	if c.Providers.SportsDB.CacheTTL <= 0 {
		c.Providers.SportsDB.CacheTTL = time.Minute
	}
	if c.Providers.APIFootball.Interval <= 0 {
		c.Providers.APIFootball.Interval = 2 * time.Minute
	}
	if c.Providers.APIFootball.CacheTTL <= 0 {
		c.Providers.APIFootball.CacheTTL = 2 * time.Minute
	}
	if c.Providers.BallDontLie.Interval <= 0 {
		c.Providers.BallDontLie.Interval = 5 * time.Minute
	}
	if c.Providers.BallDontLie.CacheTTL <= 0 {
		c.Providers.BallDontLie.CacheTTL = 4 * time.Minute
	}
	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = 512
	}
	if c.API.ReadHeaderTimeout <= 0 {
		c.API.ReadHeaderTimeout = 5 * time.Second
	}
	if c.Notify.FailureThreshold <= 0 {
		c.Notify.FailureThreshold = 3
	}
	if c.Search.FallbackThreshold <= 0 {
		c.Search.FallbackThreshold = 3
	}
}
