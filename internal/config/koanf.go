// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/weversync/config.yaml",
	"/etc/weversync/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultAPIURL is the production Weverse web API base URL.
const DefaultAPIURL = "https://weversewebapi.weverse.io/wapi/v1"

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Weverse: WeverseConfig{
			URL:                DefaultAPIURL,
			Token:              "",
			Username:           "",
			Password:           "",
			RequestTimeout:     30 * time.Second,
			RateLimitPerSecond: 5,
		},
		Sync: SyncConfig{
			CreateOldPosts:           true,
			CreateMedia:              false,
			CreateNotifications:      true,
			FollowNewCommunities:     false,
			PollInterval:             30 * time.Second,
			DirectoryRecheckInterval: 4 * time.Hour,
			LoginTimeout:             15 * time.Second,
			MaxPostPages:             0, // unlimited, termination driven by the remote "ended" flag
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
	}
}

// Load loads configuration with layered sources: defaults, then an optional
// YAML config file, then environment variables (highest priority).
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// WEVERSE_TOKEN -> weverse.token, SYNC_POLL_INTERVAL -> sync.poll_interval
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envPrefixes maps recognized environment variable prefixes to their koanf
// section. Variables without a recognized prefix are ignored so unrelated
// environment noise does not leak into the configuration.
var envPrefixes = map[string]string{
	"WEVERSE_": "weverse.",
	"SYNC_":    "sync.",
	"LOG_":     "logging.",
	"METRICS_": "metrics.",
}

// envTransformFunc transforms environment variable names to koanf paths:
// WEVERSE_TOKEN -> weverse.token, SYNC_MAX_POST_PAGES -> sync.max_post_pages.
func envTransformFunc(s string) string {
	for prefix, section := range envPrefixes {
		if strings.HasPrefix(s, prefix) {
			rest := strings.ToLower(strings.TrimPrefix(s, prefix))
			return section + rest
		}
	}
	return ""
}
