package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"rs2tools/pkg/rs2crypto"
	"rs2tools/pkg/transform"
)

type Config struct {
	Sizing         string `mapstructure:"sizing"`          // terminated or compact
	Output         string `mapstructure:"output"`          // text or json
	HistoryDB      string `mapstructure:"history_db"`      // empty disables history
	ListenAddr     string `mapstructure:"listen_address"`  // serve command
	Workers        int    `mapstructure:"workers"`         // 0 means runtime.NumCPU()
	CompressOutput string `mapstructure:"compress_output"` // none, gzip or zstd
	Debug          bool   `mapstructure:"debug"`
	ConfigFile     string `mapstructure:"config_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Sizing:         "terminated",
		Output:         "text",
		HistoryDB:      "history.db",
		ListenAddr:     ":7780",
		CompressOutput: "none",
		ConfigFile:     "rs2tools",
	}
}

// Load reads configuration from file and environment, in that order of
// precedence (environment wins). An explicit path must exist; the default
// name is searched in ., $HOME/.rs2tools and /etc/rs2tools and may be absent.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	v.SetDefault("sizing", cfg.Sizing)
	v.SetDefault("output", cfg.Output)
	v.SetDefault("history_db", cfg.HistoryDB)
	v.SetDefault("listen_address", cfg.ListenAddr)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("compress_output", cfg.CompressOutput)
	v.SetDefault("debug", cfg.Debug)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(cfg.ConfigFile)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.rs2tools")
		v.AddConfigPath("/etc/rs2tools/")
	}
	v.SetEnvPrefix("RS2")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	if _, err := rs2crypto.ParseSizing(c.Sizing); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown output %q (want text or json)", c.Output)
	}
	if _, err := transform.ForName(c.CompressOutput); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// SizingMode returns the parsed Sizing. Validate must have succeeded.
func (c *Config) SizingMode() rs2crypto.Sizing {
	sz, _ := rs2crypto.ParseSizing(c.Sizing)
	return sz
}
