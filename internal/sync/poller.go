// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package sync

import (
	"context"
	"errors"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/weversync/internal/cache"
	"github.com/tomtom215/weversync/internal/logging"
	"github.com/tomtom215/weversync/internal/metrics"
	"github.com/tomtom215/weversync/internal/models"
)

// ErrNoHook means the poll loop was started without a notification hook.
var ErrNoHook = errors.New("sync: poller requires a notification hook")

// NotifyHook receives the new notifications of one poll tick. Invoked
// inline from the poll loop; a slow hook delays the next tick.
type NotifyHook func(ctx context.Context, notifications []*models.Notification)

// cacheUpdater is the slice of Manager the poller drives.
type cacheUpdater interface {
	UpdateCacheFromNotification(ctx context.Context) []*models.Notification
	FollowNewCommunities(ctx context.Context) error
}

const (
	defaultPollInterval      = 30 * time.Second
	defaultDirectoryInterval = 4 * time.Hour
)

// Poller is the long-lived notification poll loop, run under a suture
// supervisor. Each tick performs one incremental cache update and invokes
// the hook with the notifications not yet delivered. The stop signal (ctx
// cancellation) is observed at iteration boundaries only; an in-flight
// update always completes.
type Poller struct {
	manager  cacheUpdater
	hook     NotifyHook
	interval time.Duration

	// followCommunities enables the slow directory re-scan timer.
	followCommunities bool
	directoryInterval time.Duration

	// seen dedupes hook deliveries across ticks. The feed diff already
	// yields only notifications new since the previous snapshot; the seen
	// set additionally absorbs feed reordering across restarts of the loop.
	seen *cache.SeenSet
}

// PollerOptions configures a Poller.
type PollerOptions struct {
	Manager           *Manager
	Hook              NotifyHook
	Interval          time.Duration
	FollowCommunities bool
	DirectoryInterval time.Duration
}

// NewPoller creates the poll loop service.
func NewPoller(opts PollerOptions) *Poller {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	dirInterval := opts.DirectoryInterval
	if dirInterval <= 0 {
		dirInterval = defaultDirectoryInterval
	}
	return &Poller{
		manager:           opts.Manager,
		hook:              opts.Hook,
		interval:          interval,
		followCommunities: opts.FollowCommunities,
		directoryInterval: dirInterval,
		seen:              cache.NewSeenSet(0, 0),
	}
}

// Serve implements suture.Service. It fails permanently when no hook is
// configured and otherwise runs until the supervisor cancels ctx.
func (p *Poller) Serve(ctx context.Context) error {
	if p.hook == nil {
		return errors.Join(ErrNoHook, suture.ErrDoNotRestart)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	directoryTicker := time.NewTicker(p.directoryInterval)
	defer directoryTicker.Stop()

	logging.Info().Dur("interval", p.interval).Msg("[POLLER] Notification poll loop started")

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("[POLLER] Notification poll loop stopped")
			return ctx.Err()
		case <-ticker.C:
			p.tick(ctx)
		case <-directoryTicker.C:
			if p.followCommunities {
				if err := p.manager.FollowNewCommunities(ctx); err != nil {
					logging.Warn().Err(err).Msg("[POLLER] Directory re-scan failed")
				}
			}
		}
	}
}

// tick performs one poll iteration: update the cache, dedupe against prior
// deliveries, and invoke the hook when anything new remains.
func (p *Poller) tick(ctx context.Context) {
	metrics.PollerTicks.Inc()

	fresh := p.manager.UpdateCacheFromNotification(ctx)
	if len(fresh) == 0 {
		return
	}

	deliver := fresh[:0:0]
	for _, n := range fresh {
		if p.seen.Contains(n.ID) {
			continue
		}
		p.seen.Mark(n.ID)
		deliver = append(deliver, n)
	}

	if len(deliver) > 0 {
		p.hook(ctx, deliver)
	}
}
