// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package sync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/weversync/internal/cache"
	"github.com/tomtom215/weversync/internal/models"
)

// stubUpdater feeds canned notification batches to the poll loop.
type stubUpdater struct {
	mu          sync.Mutex
	batches     [][]*models.Notification
	calls       int
	followCalls int
}

func (s *stubUpdater) UpdateCacheFromNotification(_ context.Context) []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.batches) == 0 {
		return nil
	}
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return batch
}

func (s *stubUpdater) FollowNewCommunities(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followCalls++
	return nil
}

func newTestPoller(updater cacheUpdater, hook NotifyHook, interval, dirInterval time.Duration) *Poller {
	return &Poller{
		manager:           updater,
		hook:              hook,
		interval:          interval,
		followCommunities: dirInterval > 0,
		directoryInterval: orDefault(dirInterval, time.Hour),
		seen:              cache.NewSeenSet(0, 0),
	}
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}

func TestPollerRequiresHook(t *testing.T) {
	p := newTestPoller(&stubUpdater{}, nil, time.Millisecond, 0)

	err := p.Serve(context.Background())
	if !errors.Is(err, ErrNoHook) {
		t.Fatalf("expected ErrNoHook, got %v", err)
	}
	if !errors.Is(err, suture.ErrDoNotRestart) {
		t.Error("a missing hook must terminate the service permanently")
	}
}

func TestPollerDeliversEachNotificationOnce(t *testing.T) {
	n1 := &models.Notification{ID: 1, Message: "one"}
	n2 := &models.Notification{ID: 2, Message: "two"}
	updater := &stubUpdater{batches: [][]*models.Notification{
		{n1},
		{n1, n2}, // n1 resurfaces in the diff; only n2 is new to the hook
	}}

	delivered := make(chan []*models.Notification, 8)
	hook := func(_ context.Context, ns []*models.Notification) {
		delivered <- ns
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := newTestPoller(updater, hook, 5*time.Millisecond, 0)
	go p.Serve(ctx) //nolint:errcheck

	first := <-delivered
	if len(first) != 1 || first[0] != n1 {
		t.Fatalf("first delivery: %+v", first)
	}
	second := <-delivered
	if len(second) != 1 || second[0] != n2 {
		t.Fatalf("second delivery must dedupe n1, got %+v", second)
	}
}

func TestPollerEmptyTicksInvokeNoHook(t *testing.T) {
	updater := &stubUpdater{}
	var hookCalls int
	hook := func(_ context.Context, _ []*models.Notification) { hookCalls++ }

	ctx, cancel := context.WithCancel(context.Background())
	p := newTestPoller(updater, hook, time.Millisecond, 0)

	done := make(chan error, 1)
	go func() { done <- p.Serve(ctx) }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if hookCalls != 0 {
		t.Errorf("hook must not fire on empty ticks, fired %d times", hookCalls)
	}
	updater.mu.Lock()
	defer updater.mu.Unlock()
	if updater.calls == 0 {
		t.Error("poll loop never ticked")
	}
}

func TestPollerStopsAtIterationBoundary(t *testing.T) {
	updater := &stubUpdater{}
	ctx, cancel := context.WithCancel(context.Background())
	p := newTestPoller(updater, func(context.Context, []*models.Notification) {}, time.Hour, 0)

	done := make(chan error, 1)
	go func() { done <- p.Serve(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("poller did not observe the stop signal")
	}
}

func TestPollerDirectoryRescan(t *testing.T) {
	updater := &stubUpdater{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := newTestPoller(updater, func(context.Context, []*models.Notification) {}, time.Hour, 5*time.Millisecond)

	go p.Serve(ctx) //nolint:errcheck

	deadline := time.After(time.Second)
	for {
		updater.mu.Lock()
		calls := updater.followCalls
		updater.mu.Unlock()
		if calls > 0 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("directory re-scan never ran")
		case <-time.After(time.Millisecond):
		}
	}
}
