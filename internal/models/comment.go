// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package models

// Comment is an artist comment on a Post.
//
// Post is nil until wiring resolves it, and stays nil for a comment fetched
// standalone when the referenced post is not cached.
type Comment struct {
	ID           int64
	Body         string
	CommentCount int
	LikeCount    int
	HasMyLike    bool
	IsBlind      bool
	PostID       int64
	CreatedAt    string
	UpdatedAt    string

	Post *Post
}

// String returns the comment body.
func (c *Comment) String() string {
	return c.Body
}
