// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package models

// Tab is a named content category within a Community. Immutable after
// creation; equality is by ID.
type Tab struct {
	ID   int64
	Name string
}

// String returns the tab name.
func (t *Tab) String() string {
	return t.Name
}
