// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package models

// Post is a content item authored by an Artist, with comments, photos, and
// videos attached.
//
// Invariant: every Photo, Video, and Comment attached to a Post has its
// back-reference set to that exact Post instance. The wiring happens as part
// of construction (sync package) before the Post is published to the store,
// never afterwards.
type Post struct {
	ID                int64
	CommunityTabID    int64
	Type              string
	Body              string
	CommentCount      int
	LikeCount         int
	MaxCommentCount   int
	HasMyLike         bool
	HasMyBookmark     bool
	CreatedAt         string
	UpdatedAt         string
	IsLocked          bool
	IsBlind           bool
	IsActive          bool
	IsPrivate         bool
	IsHotTrendingPost bool
	IsLimitComment    bool

	// CommunityArtistID identifies the author within the community user ID
	// namespace; ArtistID is the platform-wide artist ID. Either may be used
	// to resolve the authoring Artist.
	CommunityArtistID int64
	ArtistID          int64

	// Owned attachments. ArtistComments holds artist comments only, newest
	// comment first when extended through the notification path.
	Photos         []*Photo
	Videos         []*Video
	ArtistComments []*Comment

	// Artist is the authoring artist, resolved during wiring. Nil when the
	// author is not in the cache (e.g. a post fetched before its community's
	// artist phase).
	Artist *Artist
}

// UpdateFrom copies the scalar fields of other into p, preserving p's
// identity, its attachments, and its Artist reference. Used when a post
// resurfaces (a re-fetch or a notification for an already cached ID) so
// back-references into the stored instance stay valid.
func (p *Post) UpdateFrom(other *Post) {
	p.CommunityTabID = other.CommunityTabID
	p.Type = other.Type
	p.Body = other.Body
	p.CommentCount = other.CommentCount
	p.LikeCount = other.LikeCount
	p.MaxCommentCount = other.MaxCommentCount
	p.HasMyLike = other.HasMyLike
	p.HasMyBookmark = other.HasMyBookmark
	p.CreatedAt = other.CreatedAt
	p.UpdatedAt = other.UpdatedAt
	p.IsLocked = other.IsLocked
	p.IsBlind = other.IsBlind
	p.IsActive = other.IsActive
	p.IsPrivate = other.IsPrivate
	p.IsHotTrendingPost = other.IsHotTrendingPost
	p.IsLimitComment = other.IsLimitComment
}

// PrependComment attaches a comment discovered through a notification ahead
// of all previously cached comments.
func (p *Post) PrependComment(c *Comment) {
	p.ArtistComments = append([]*Comment{c}, p.ArtistComments...)
}

// String returns the post body.
func (p *Post) String() string {
	return p.Body
}
