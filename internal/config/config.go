// Package config provides Viper-based hierarchical configuration management:
// defaults, then a config.yaml file, then FINSIGHT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// FINSIGHT_STORE_BACKEND for store.backend.
const EnvPrefix = "FINSIGHT"

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Store struct {
		Backend string `mapstructure:"backend" yaml:"backend"`
		Path    string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"store" yaml:"store"`

	Insights struct {
		MinConfidence      float64 `mapstructure:"min_confidence" yaml:"min_confidence"`
		MaxResults         int     `mapstructure:"max_results" yaml:"max_results"`
		UnusualSpendingCap int     `mapstructure:"unusual_spending_cap" yaml:"unusual_spending_cap"`
		CurrencySymbol     string  `mapstructure:"currency_symbol" yaml:"currency_symbol"`
	} `mapstructure:"insights" yaml:"insights"`

	Voice struct {
		ListenTimeoutSeconds int    `mapstructure:"listen_timeout_seconds" yaml:"listen_timeout_seconds"`
		HistorySize          int    `mapstructure:"history_size" yaml:"history_size"`
		HistoryDir           string `mapstructure:"history_dir" yaml:"history_dir"`
		CategoriesFile       string `mapstructure:"categories_file" yaml:"categories_file"`
	} `mapstructure:"voice" yaml:"voice"`

	Server struct {
		Address        string   `mapstructure:"address" yaml:"address"`
		AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	} `mapstructure:"server" yaml:"server"`
}

// ListenTimeout is the voice auto-stop timeout as a duration.
func (c *Config) ListenTimeout() time.Duration {
	return time.Duration(c.Voice.ListenTimeoutSeconds) * time.Second
}

// InitializeConfig loads the configuration from the default search paths.
func InitializeConfig() (*Config, error) {
	return Load("")
}

// Load builds the configuration. When configFile is empty, config.yaml is
// searched in $HOME/.finsight, .finsight and the working directory; a missing
// file is not an error. An explicit configFile must exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.finsight")
		v.AddConfigPath(".finsight")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration produced by the defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("store.backend", "csv")
	v.SetDefault("store.path", "transactions.csv")

	v.SetDefault("insights.min_confidence", 0.5)
	v.SetDefault("insights.max_results", 7)
	v.SetDefault("insights.unusual_spending_cap", 3)
	v.SetDefault("insights.currency_symbol", "$")

	v.SetDefault("voice.listen_timeout_seconds", 10)
	v.SetDefault("voice.history_size", 10)
	v.SetDefault("voice.history_dir", ".finsight/history")
	v.SetDefault("voice.categories_file", "")

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch strings.ToLower(config.Store.Backend) {
	case "memory":
	case "csv", "sqlite":
		if strings.TrimSpace(config.Store.Path) == "" {
			return fmt.Errorf("store.path is required for the %s backend", config.Store.Backend)
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be 'memory', 'csv' or 'sqlite')", config.Store.Backend)
	}

	if config.Insights.MinConfidence < 0.0 || config.Insights.MinConfidence > 1.0 {
		return fmt.Errorf("insights.min_confidence must be between 0.0 and 1.0, got: %f", config.Insights.MinConfidence)
	}

	if config.Insights.MaxResults < 1 {
		return fmt.Errorf("insights.max_results must be at least 1, got: %d", config.Insights.MaxResults)
	}

	if config.Insights.UnusualSpendingCap < 0 {
		return fmt.Errorf("insights.unusual_spending_cap must not be negative, got: %d", config.Insights.UnusualSpendingCap)
	}

	if config.Voice.HistorySize < 1 || config.Voice.HistorySize > 10 {
		return fmt.Errorf("voice.history_size must be between 1 and 10, got: %d", config.Voice.HistorySize)
	}

	if config.Voice.ListenTimeoutSeconds < 1 || config.Voice.ListenTimeoutSeconds > 300 {
		return fmt.Errorf("voice.listen_timeout_seconds must be between 1 and 300, got: %d", config.Voice.ListenTimeoutSeconds)
	}

	return nil
}
