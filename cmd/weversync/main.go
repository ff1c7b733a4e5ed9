// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

// Package main is the entry point for the weversync daemon.
//
// Weversync builds an in-memory cache of a Weverse account's communities,
// artists, posts, comments, photos, videos, media, and notifications, then
// keeps it current by polling the notification feed and lazily fetching each
// newly referenced entity.
//
// # Startup Order
//
//  1. Configuration: environment variables and an optional YAML file (Koanf v2)
//  2. Authentication: bearer token, or username/password login with
//     RSA-encrypted password transmission
//  3. Cache build: communities, artists, tabs, then optionally historical
//     posts, media, and the notification feed
//  4. Poll loop: a supervised service re-checking the feed every poll
//     interval, with a slower timer re-scanning the community directory
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults.
//
// Authentication (one of):
//   - WEVERSE_TOKEN: a pre-obtained bearer token
//   - WEVERSE_USERNAME / WEVERSE_PASSWORD: account credentials
//
// Common settings:
//   - SYNC_CREATE_OLD_POSTS: paginate full post history (default true)
//   - SYNC_CREATE_MEDIA: paginate media streams (default false)
//   - SYNC_FOLLOW_NEW_COMMUNITIES: auto-follow directory additions
//   - SYNC_POLL_INTERVAL: notification poll tick (default 30s)
//   - METRICS_ENABLED / METRICS_ADDR: Prometheus scrape endpoint
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the poll loop at the next iteration boundary; an
// in-flight fetch-and-merge always completes before shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/tomtom215/weversync/internal/auth"
	"github.com/tomtom215/weversync/internal/config"
	"github.com/tomtom215/weversync/internal/logging"
	"github.com/tomtom215/weversync/internal/models"
	"github.com/tomtom215/weversync/internal/store"
	"github.com/tomtom215/weversync/internal/sync"
	"github.com/tomtom215/weversync/internal/weverse"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("api_url", cfg.Weverse.URL).
		Bool("token_auth", cfg.Weverse.Token != "").
		Dur("poll_interval", cfg.Sync.PollInterval).
		Msg("Starting weversync")

	tokens := auth.NewTokenManager(auth.Options{
		Token:        cfg.Weverse.Token,
		Username:     cfg.Weverse.Username,
		Password:     cfg.Weverse.Password,
		LoginTimeout: cfg.Sync.LoginTimeout,
	})
	client := weverse.NewClient(weverse.Options{
		BaseURL:            cfg.Weverse.URL,
		Tokens:             tokens,
		RequestTimeout:     cfg.Weverse.RequestTimeout,
		RateLimitPerSecond: cfg.Weverse.RateLimitPerSecond,
	})
	tokens.SetClient(client)

	manager := sync.NewManager(sync.ManagerOptions{
		Client: client,
		Tokens: tokens,
		Store:  store.New(),
		Sync:   cfg.Sync,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		logging.Fatal().Err(err).Msg("Cache build failed")
	}

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics.Addr)
	}

	poller := sync.NewPoller(sync.PollerOptions{
		Manager:           manager,
		Hook:              logNotifications,
		Interval:          cfg.Sync.PollInterval,
		FollowCommunities: cfg.Sync.FollowNewCommunities,
		DirectoryInterval: cfg.Sync.DirectoryRecheckInterval,
	})

	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
	supervisor := suture.New("weversync", suture.Spec{
		EventHook:        handler.MustHook(),
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		Timeout:          10 * time.Second,
	})
	supervisor.Add(poller)

	errCh := supervisor.ServeBackground(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Fatal().Err(err).Msg("Supervisor terminated")
		}
	}

	logging.Info().Msg("Shutdown complete")
}

// logNotifications is the default notification hook: structured logging of
// every new notification. Embedders replace this with their own delivery.
func logNotifications(_ context.Context, notifications []*models.Notification) {
	for _, n := range notifications {
		logging.Info().
			Int64("notification_id", n.ID).
			Int64("community_id", n.CommunityID).
			Str("community", n.CommunityName).
			Str("message", n.Message).
			Msg("New notification")
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logging.Info().Str("addr", addr).Msg("Metrics endpoint listening")
	if err := http.ListenAndServe(addr, mux); err != nil { //nolint:gosec // scrape endpoint, no request bodies
		logging.Error().Err(err).Msg("Metrics endpoint failed")
	}
}
