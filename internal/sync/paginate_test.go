// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package sync

import (
	"context"
	"errors"
	"testing"
)

func TestFetchAllWalksEveryPage(t *testing.T) {
	pages := map[int64]struct {
		items []int
		ended bool
		next  int64
	}{
		0:   {items: []int{1, 2}, next: 100},
		100: {items: []int{3}, next: 200},
		200: {items: []int{4, 5}, ended: true},
	}

	var cursors []int64
	fetch := func(_ context.Context, cursor int64) ([]int, bool, int64, error) {
		cursors = append(cursors, cursor)
		p, ok := pages[cursor]
		if !ok {
			t.Fatalf("unexpected cursor %d", cursor)
		}
		return p.items, p.ended, p.next, nil
	}

	var got []int
	err := FetchAll(context.Background(), fetch, 0, func(v int) error {
		got = append(got, v)
		return nil
	})
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	want := []int{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visited %v, want %v", got, want)
		}
	}
	if len(cursors) != 3 || cursors[0] != 0 || cursors[1] != 100 || cursors[2] != 200 {
		t.Errorf("cursor sequence %v, want [0 100 200]", cursors)
	}
}

// The max-page guard bounds a remote that never reports the stream ended.
func TestFetchAllMaxPageGuard(t *testing.T) {
	var calls int
	fetch := func(_ context.Context, cursor int64) ([]int, bool, int64, error) {
		calls++
		return []int{1}, false, cursor + 1, nil
	}

	err := FetchAll(context.Background(), fetch, 5, func(int) error { return nil })
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if calls != 5 {
		t.Errorf("expected 5 page fetches, got %d", calls)
	}
}

func TestFetchAllPropagatesFetchError(t *testing.T) {
	wantErr := errors.New("boom")
	fetch := func(_ context.Context, cursor int64) ([]int, bool, int64, error) {
		if cursor == 0 {
			return []int{1}, false, 7, nil
		}
		return nil, false, 0, wantErr
	}

	var visited int
	err := FetchAll(context.Background(), fetch, 0, func(int) error {
		visited++
		return nil
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if visited != 1 {
		t.Errorf("items before the failure must still be visited, got %d", visited)
	}
}

func TestFetchAllPropagatesVisitError(t *testing.T) {
	wantErr := errors.New("bad item")
	fetch := func(_ context.Context, _ int64) ([]int, bool, int64, error) {
		return []int{1, 2, 3}, true, 0, nil
	}

	err := FetchAll(context.Background(), fetch, 0, func(v int) error {
		if v == 2 {
			return wantErr
		}
		return nil
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected visit error, got %v", err)
	}
}
