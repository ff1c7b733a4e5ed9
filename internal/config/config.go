// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

// Package config holds all application configuration loaded from environment
// variables and an optional YAML config file.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in sensible defaults for all optional settings
//  2. Config File: optional YAML file (config.yaml) for persistent settings
//  3. Environment Variables: override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Weverse WeverseConfig `koanf:"weverse"`
	Sync    SyncConfig    `koanf:"sync"`
	Logging LoggingConfig `koanf:"logging"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// WeverseConfig configures access to the Weverse platform API.
// Either Token, or Username+Password, must be supplied.
type WeverseConfig struct {
	// URL is the API base URL. Override only for testing against a fake server.
	URL string `koanf:"url"`

	// Token is a pre-obtained bearer token. Takes precedence over
	// username/password when set.
	Token string `koanf:"token"`

	// Username and Password are account credentials used to log in when no
	// token is supplied. The password is encrypted with the platform public
	// key before transmission.
	Username string `koanf:"username"`
	Password string `koanf:"password"`

	// RequestTimeout bounds each HTTP request to the API.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// RateLimitPerSecond caps outgoing API requests. 0 disables the limiter.
	RateLimitPerSecond float64 `koanf:"rate_limit_per_second"`
}

// SyncConfig configures the cache build and the notification poll loop.
type SyncConfig struct {
	// CreateOldPosts paginates every community's full post history during the
	// initial build. Can be very slow on large communities.
	CreateOldPosts bool `koanf:"create_old_posts"`

	// CreateMedia paginates every community's media categories during the
	// initial build.
	CreateMedia bool `koanf:"create_media"`

	// CreateNotifications fetches the most recent notification page during
	// the initial build.
	CreateNotifications bool `koanf:"create_notifications"`

	// FollowNewCommunities subscribes to any community in the platform
	// directory that the account does not yet follow, then caches it.
	FollowNewCommunities bool `koanf:"follow_new_communities"`

	// PollInterval is the notification poll loop tick.
	PollInterval time.Duration `koanf:"poll_interval"`

	// DirectoryRecheckInterval is how often the community directory is
	// re-scanned for newly available communities (when FollowNewCommunities
	// is enabled).
	DirectoryRecheckInterval time.Duration `koanf:"directory_recheck_interval"`

	// LoginTimeout bounds the wait for an in-flight login to resolve.
	LoginTimeout time.Duration `koanf:"login_timeout"`

	// MaxPostPages caps pagination per community as a safety valve against a
	// remote that never reports the end of the feed. 0 = unlimited, matching
	// the remote contract.
	MaxPostPages int `koanf:"max_post_pages"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// MetricsConfig configures the Prometheus scrape endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.Weverse.Token == "" && (c.Weverse.Username == "" || c.Weverse.Password == "") {
		return fmt.Errorf("weverse: either token or username+password must be set " +
			"(WEVERSE_TOKEN or WEVERSE_USERNAME/WEVERSE_PASSWORD)")
	}
	if c.Sync.PollInterval <= 0 {
		return fmt.Errorf("sync: poll_interval must be positive, got %s", c.Sync.PollInterval)
	}
	if c.Sync.LoginTimeout <= 0 {
		return fmt.Errorf("sync: login_timeout must be positive, got %s", c.Sync.LoginTimeout)
	}
	if c.Sync.MaxPostPages < 0 {
		return fmt.Errorf("sync: max_post_pages must be >= 0, got %d", c.Sync.MaxPostPages)
	}
	return nil
}
