// Package config loads the application configuration from file and
// environment into an explicit typed struct.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Gemini GeminiConfig `yaml:"gemini" mapstructure:"gemini"`
	Enrich EnrichConfig `yaml:"enrich" mapstructure:"enrich"`
	Scrape ScrapeConfig `yaml:"scrape" mapstructure:"scrape"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// GeminiConfig holds model selection and retry settings. The API credential
// is deliberately not here: it comes only from GOOGLE_API_KEY.
type GeminiConfig struct {
	Model          string `yaml:"model" mapstructure:"model"`
	MaxRetries     int    `yaml:"max_retries" mapstructure:"max_retries"`
	RetryDelaySecs int    `yaml:"retry_delay_secs" mapstructure:"retry_delay_secs"`
}

// EnrichConfig configures the batch pipeline.
type EnrichConfig struct {
	BatchSize  int    `yaml:"batch_size" mapstructure:"batch_size"`
	MaxWorkers int    `yaml:"max_workers" mapstructure:"max_workers"`
	URLField   string `yaml:"url_field" mapstructure:"url_field"`
}

// ScrapeConfig configures web content fetching.
type ScrapeConfig struct {
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
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
	v.SetEnvPrefix("ENRICH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.max_retries", 5)
	v.SetDefault("gemini.retry_delay_secs", 60)
	v.SetDefault("enrich.batch_size", 10)
	v.SetDefault("enrich.max_workers", 4)
	v.SetDefault("scrape.timeout_secs", 15)
	v.SetDefault("scrape.rate_per_sec", 2.0)
	v.SetDefault("scrape.user_agent", "Mozilla/5.0 (compatible; EnrichBot/1.0)")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

	return &cfg, nil
}

// InitLogger builds the process logger and installs it as the zap global
// used by the cmd layer; components still receive it explicitly.
func InitLogger(cfg LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return logger, nil
}
