package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied after loading
const (
	DefaultPort            = 16181
	DefaultWindowMinutes   = 60
	DefaultCacheSize       = 2048
	DefaultCacheTTLSeconds = 300
	DefaultTimezone        = "America/New_York"
)

// DefaultPaths are searched in order by LoadAppConfig
var DefaultPaths = []string{"config.yml", "/etc/bikewatch/config.yml"}

// Config is the global application configuration
var Config AppConfig

// ErrNoSystem is returned when no bikeshare system is configured
var ErrNoSystem = errors.New("no bikeshare system configured")

// LoadAppConfig loads and validates the application configuration from the first existing default path
func LoadAppConfig() error {
	var err error
	for _, p := range DefaultPaths {
		if _, statErr := os.Stat(p); statErr != nil {
			err = statErr
			continue
		}
		return LoadAppConfigFrom(p)
	}
	return err
}

// LoadAppConfigFrom loads, validates and installs the configuration at path
func LoadAppConfigFrom(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	Config = cfg
	return nil
}

// Parse decodes and validates YAML configuration, filling in defaults
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Traffic.WindowMinutes == 0 {
		cfg.Traffic.WindowMinutes = DefaultWindowMinutes
	}
	if cfg.Traffic.CacheSize == 0 {
		cfg.Traffic.CacheSize = DefaultCacheSize
	}
	if cfg.Traffic.CacheTTLSeconds == 0 {
		cfg.Traffic.CacheTTLSeconds = DefaultCacheTTLSeconds
	}
	for i := range cfg.Systems {
		if cfg.Systems[i].Timezone == "" {
			cfg.Systems[i].Timezone = DefaultTimezone
		}
	}
}

// SelectSystem chooses a system by name; fallback to first.
func SelectSystem(name string) (System, error) {
	if name != "" {
		for _, s := range Config.Systems {
			if s.Name == name {
				return s, nil
			}
		}
		return System{}, fmt.Errorf("no such system: %s", name)
	}
	if len(Config.Systems) > 0 {
		return Config.Systems[0], nil
	}
	return System{}, ErrNoSystem
}
