// Package config loads application configuration from file and environment
// and owns global logger initialization.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lendstack/prospect-pipeline/internal/qualify"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig      `yaml:"store" mapstructure:"store"`
	Apify     ApifyConfig      `yaml:"apify" mapstructure:"apify"`
	Anthropic AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Search    SearchConfig     `yaml:"search" mapstructure:"search"`
	Criteria  qualify.Criteria `yaml:"criteria" mapstructure:"criteria"`
	Outreach  OutreachConfig   `yaml:"outreach" mapstructure:"outreach"`
	Server    ServerConfig     `yaml:"server" mapstructure:"server"`
	Log       LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ApifyConfig holds Apify API settings for the Google Places crawler.
type ApifyConfig struct {
	Token   string `yaml:"token" mapstructure:"token"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Actor   string `yaml:"actor" mapstructure:"actor"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// SearchConfig configures live search behavior.
type SearchConfig struct {
	MaxResults    int     `yaml:"max_results" mapstructure:"max_results"`
	RadiusMiles   int     `yaml:"radius_miles" mapstructure:"radius_miles"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
}

// OutreachConfig configures email drafting.
type OutreachConfig struct {
	MaxTokens int64 `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROSPECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "prospects.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("apify.base_url", "https://api.apify.com/v2")
	v.SetDefault("apify.actor", "compass~crawler-google-places")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("search.max_results", 50)
	v.SetDefault("search.radius_miles", 25)
	v.SetDefault("search.rate_per_second", 2)
	v.SetDefault("outreach.max_tokens", 1024)
	v.SetDefault("criteria.min_monthly_revenue", 15000)
	v.SetDefault("criteria.min_business_age_months", 12)
	v.SetDefault("criteria.min_credit_score", 550)
	v.SetDefault("criteria.us_only", true)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Criteria.Validate(); err != nil {
		return nil, eris.Wrap(err, "config: criteria")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
