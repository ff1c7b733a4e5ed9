// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WEVERSE_TOKEN", "test-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Weverse.URL != DefaultAPIURL {
		t.Errorf("URL: expected default %q, got %q", DefaultAPIURL, cfg.Weverse.URL)
	}
	if cfg.Sync.PollInterval != 30*time.Second {
		t.Errorf("PollInterval: expected 30s, got %s", cfg.Sync.PollInterval)
	}
	if cfg.Sync.LoginTimeout != 15*time.Second {
		t.Errorf("LoginTimeout: expected 15s, got %s", cfg.Sync.LoginTimeout)
	}
	if !cfg.Sync.CreateOldPosts {
		t.Error("CreateOldPosts: expected default true")
	}
	if cfg.Sync.FollowNewCommunities {
		t.Error("FollowNewCommunities: expected default false")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: expected info, got %q", cfg.Logging.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("WEVERSE_TOKEN", "abc")
	t.Setenv("SYNC_POLL_INTERVAL", "10s")
	t.Setenv("SYNC_MAX_POST_PAGES", "50")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Weverse.Token != "abc" {
		t.Errorf("Token: expected abc, got %q", cfg.Weverse.Token)
	}
	if cfg.Sync.PollInterval != 10*time.Second {
		t.Errorf("PollInterval: expected 10s, got %s", cfg.Sync.PollInterval)
	}
	if cfg.Sync.MaxPostPages != 50 {
		t.Errorf("MaxPostPages: expected 50, got %d", cfg.Sync.MaxPostPages)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: expected debug, got %q", cfg.Logging.Level)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("weverse:\n  username: fan@example.com\n  password: hunter2\nsync:\n  create_old_posts: false\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Weverse.Username != "fan@example.com" {
		t.Errorf("Username: expected fan@example.com, got %q", cfg.Weverse.Username)
	}
	if cfg.Sync.CreateOldPosts {
		t.Error("CreateOldPosts: expected false from config file")
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("weverse:\n  token: from-file\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("WEVERSE_TOKEN", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Weverse.Token != "from-env" {
		t.Errorf("Token: env should override file, got %q", cfg.Weverse.Token)
	}
}

func TestValidateMissingCredentials(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when neither token nor username+password supplied")
	}

	cfg.Weverse.Username = "user"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when password missing")
	}

	cfg.Weverse.Password = "pass"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error with username+password: %v", err)
	}
}

func TestValidateRanges(t *testing.T) {
	cfg := defaultConfig()
	cfg.Weverse.Token = "x"

	cfg.Sync.PollInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero poll_interval")
	}

	cfg = defaultConfig()
	cfg.Weverse.Token = "x"
	cfg.Sync.MaxPostPages = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative max_post_pages")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"WEVERSE_TOKEN", "weverse.token"},
		{"SYNC_POLL_INTERVAL", "sync.poll_interval"},
		{"LOG_FORMAT", "logging.format"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
