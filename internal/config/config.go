// Package config loads and validates the launchpad service configuration.
package config

import (
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/viper"

	"curve-launchpad/internal/curve"
)

type Config struct {
	Authority      string `mapstructure:"authority"`
	FeeRecipient   string `mapstructure:"fee_recipient"`
	PlatformFeeBps uint16 `mapstructure:"platform_fee_bps"`
	PostgresURL    string `mapstructure:"postgres_url"`
	MetricsAddr    string `mapstructure:"metrics_addr"`
	EventBuffer    int    `mapstructure:"event_buffer"`
	LogFile        string `mapstructure:"log_file"`
	DebugLogging   bool   `mapstructure:"debug_logging"`
}

const (
	DefaultMetricsAddr = ":9090"
	DefaultEventBuffer = 1024
	DefaultLogFile     = "launchpad.log"
)

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"platform_fee_bps": curve.DefaultPlatformFeeBps,
		"metrics_addr":     DefaultMetricsAddr,
		"event_buffer":     DefaultEventBuffer,
		"log_file":         DefaultLogFile,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	v.AutomaticEnv()
	if pg := v.GetString("LAUNCHPAD_POSTGRES_URL"); pg != "" {
		cfg.PostgresURL = pg
	}

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if cfg.Authority == "" {
		return errors.New("missing authority in configuration")
	}
	if _, err := solana.PublicKeyFromBase58(cfg.Authority); err != nil {
		return errors.New("invalid authority address")
	}
	if cfg.FeeRecipient == "" {
		return errors.New("missing fee_recipient in configuration")
	}
	if _, err := solana.PublicKeyFromBase58(cfg.FeeRecipient); err != nil {
		return errors.New("invalid fee_recipient address")
	}
	if cfg.PlatformFeeBps > curve.MaxPlatformFeeBps {
		return errors.New("platform_fee_bps exceeds maximum")
	}
	if cfg.EventBuffer <= 0 {
		return errors.New("invalid event_buffer")
	}
	return nil
}
