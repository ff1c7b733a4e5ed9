// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package sync

import "context"

// PageFunc fetches one page of a cursor-paginated collection. A zero cursor
// requests the first page. It returns the page items, whether the stream is
// exhausted, and the cursor for the next page.
type PageFunc[T any] func(ctx context.Context, cursor int64) (items []T, ended bool, next int64, err error)

// FetchAll drives a fetch-until-exhausted loop over a cursor-paginated
// endpoint, applying visit to every item in page order. Termination is
// driven by the remote's ended flag; maxPages is a caller-supplied safety
// valve against a remote that never reports the stream ended. Zero maxPages
// means unbounded.
func FetchAll[T any](ctx context.Context, fetch PageFunc[T], maxPages int, visit func(T) error) error {
	var cursor int64
	for page := 0; maxPages == 0 || page < maxPages; page++ {
		items, ended, next, err := fetch(ctx, cursor)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := visit(item); err != nil {
				return err
			}
		}
		if ended {
			return nil
		}
		cursor = next
	}
	return nil
}
