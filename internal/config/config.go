// Package config provides configuration management for the server.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the server configuration.
type Config struct {
	Addr       string `mapstructure:"addr"`
	LogLevel   string `mapstructure:"log_level"`
	MaxClients int    `mapstructure:"max_clients"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:       ":6379",
		LogLevel:   "info",
		MaxClients: 10000,
	}
}

// SetDefaults registers this Config's defaults on v, so an absent
// config file and absent flags still resolve to DefaultConfig.
func (c *Config) SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("addr", d.Addr)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("max_clients", d.MaxClients)
}

// Load resolves configuration from, in increasing precedence: built-in
// defaults, an optional YAML file at configPath, FLASHKV_-prefixed
// environment variables, and flags bound on flags (if non-nil).
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	cfg := &Config{}
	cfg.SetDefaults(v)

	v.SetEnvPrefix("FLASHKV")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
