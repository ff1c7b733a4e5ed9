// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package weverse

import "errors"

// ErrNotFound is the sentinel for any non-auth fetch that yielded no data
// (404 or another non-200 status). Absence is a normal, expected outcome for
// optional fetches - a deleted post, an expired media item - so callers
// treat this as "no data", never as a fault.
var ErrNotFound = errors.New("weverse: no data")
