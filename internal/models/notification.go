// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package models

// Notification is an untyped event record referring to a new Post, Comment,
// Media item, or Announcement. The kind of the referenced entity is NOT
// carried on the wire; it must be inferred from Message (sync.Classifier).
// Immutable after creation.
type Notification struct {
	ID                  int64
	Message             string
	BoldElement         string
	CommunityID         int64
	CommunityName       string
	ContentsType        string
	ContentsID          int64
	NotifiedAt          string
	IconImageURL        string
	ThumbnailImageURL   string
	ArtistID            int64
	IsMembershipContent bool
	IsWebOnly           bool
	Platform            string
}

// String returns the notification message.
func (n *Notification) String() string {
	return n.Message
}
