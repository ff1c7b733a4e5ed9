// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package models

// MediaType values observed on the wire.
const (
	MediaTypePhoto = "PHOTO"
	MediaTypeVideo = "VIDEO"
)

// Media is a separate content stream (photo gallery or video) not tied to a
// Post. Photos are populated only for PHOTO-type media, and lazily: the list
// endpoint omits photo detail, so a second fetch of the single media item is
// required before Photos is non-empty.
type Media struct {
	ID            int64
	CommunityID   int64
	Body          string
	Type          string
	ThumbnailPath string
	Title         string
	Level         string
	VideoLink     string
	YoutubeID     string

	Photos []*Photo
}

// String returns the media body.
func (m *Media) String() string {
	return m.Body
}

// PhotoCount returns the number of photos attached (zero until the detail
// fetch has run for PHOTO-type media).
func (m *Media) PhotoCount() int {
	return len(m.Photos)
}
