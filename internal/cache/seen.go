// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

// Package cache provides the bounded seen-ID set used by the notification
// poller to deduplicate hook deliveries.
package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/weversync/internal/metrics"
)

// seenEntry is a node in the recency list.
type seenEntry struct {
	id        int64
	prev      *seenEntry
	next      *seenEntry
	expiresAt time.Time
}

// SeenSet is a thread-safe LRU set of notification IDs with TTL expiry.
// O(1) Mark, Contains, and eviction: a doubly-linked recency list plus a
// map for lookup. Expiry is lazy, checked on access.
type SeenSet struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	items    map[int64]*seenEntry

	// head.next is most recently marked, tail.prev least recently marked.
	head *seenEntry
	tail *seenEntry
}

// NewSeenSet creates a SeenSet with the given capacity and TTL.
func NewSeenSet(capacity int, ttl time.Duration) *SeenSet {
	if capacity <= 0 {
		capacity = 1000
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	s := &SeenSet{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[int64]*seenEntry, capacity),
		head:     &seenEntry{},
		tail:     &seenEntry{},
	}
	s.head.next = s.tail
	s.tail.prev = s.head
	return s
}

// Contains reports whether id was marked and has not expired.
func (s *SeenSet) Contains(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[id]
	if !ok {
		metrics.SeenCacheMisses.Inc()
		return false
	}
	if time.Now().After(entry.expiresAt) {
		s.unlink(entry)
		delete(s.items, id)
		metrics.SeenCacheMisses.Inc()
		return false
	}
	metrics.SeenCacheHits.Inc()
	return true
}

// Mark records id as seen, refreshing recency and TTL for an existing
// entry. The least recently marked entry is evicted at capacity.
func (s *SeenSet) Mark(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.items[id]; ok {
		entry.expiresAt = time.Now().Add(s.ttl)
		s.unlink(entry)
		s.pushFront(entry)
		return
	}

	if len(s.items) >= s.capacity {
		oldest := s.tail.prev
		if oldest != s.head {
			s.unlink(oldest)
			delete(s.items, oldest.id)
		}
	}

	entry := &seenEntry{id: id, expiresAt: time.Now().Add(s.ttl)}
	s.items[id] = entry
	s.pushFront(entry)
}

// Len returns the number of entries, including not-yet-reaped expired ones.
func (s *SeenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *SeenSet) unlink(e *seenEntry) {
	e.prev.next = e.next
	e.next.prev = e.prev
}

func (s *SeenSet) pushFront(e *seenEntry) {
	e.next = s.head.next
	e.prev = s.head
	s.head.next.prev = e
	s.head.next = e
}
