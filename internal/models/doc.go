// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

// Package models defines the cached entity graph for the Weverse platform:
// communities, artists, tabs, posts, comments, photos, videos, media,
// notifications, and announcements.
//
// Ownership: the store package is the single owner of every entity.
// Cross-references between entities (Post.Artist, Comment.Post, Photo.Post,
// Community.Artists, ...) are plain pointers into store-owned objects, never
// independent copies. Entities with a remote numeric ID are deduplicated by
// that ID; a Community is refreshed in place so outstanding references into
// it stay valid.
//
// Timestamps are kept as the wire strings the API returns; the engine never
// interprets them.
package models
