// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package models

// Artist is a content-creating identity within a Community.
//
// Artists live in two ID namespaces: ID is the platform-wide artist ID and
// CommunityUserID is the per-community user ID that post authorship refers
// to. The remote API does not unify the two, so lookups must accept either
// (see store.ArtistByID).
type Artist struct {
	ID                  int64
	CommunityUserID     int64
	Name                string
	ListName            []string
	IsOnline            bool
	ProfileNickname     string
	ProfileImgPath      string
	IsBirthday          bool
	GroupName           string
	MaxCommentCount     int
	CommunityID         int64
	IsEnabled           bool
	HasNewToFans        bool
	HasNewPrivateToFans bool
	ToFanLastID         int64
	ToFanLastCreatedAt  string
	ToFanLastExpireIn   string
	BirthdayImgURL      string

	// Community is the community this artist belongs to. Set during the
	// artist/tab fetch phase.
	Community *Community

	// Posts the artist authored, in discovery order. Posts fetched through a
	// notification are prepended so consumers see most-recent-first for that
	// path only.
	Posts []*Post
}

// AppendPost adds a post discovered through pagination.
func (a *Artist) AppendPost(p *Post) {
	a.Posts = append(a.Posts, p)
}

// PrependPost adds a post discovered through a notification, ahead of all
// previously cached posts.
func (a *Artist) PrependPost(p *Post) {
	a.Posts = append([]*Post{p}, a.Posts...)
}

// String returns the artist's primary name.
func (a *Artist) String() string {
	return a.Name
}
