// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package models

import (
	"fmt"
	"strings"
)

// Video is a video attached to a Post.
//
// The remote list endpoint supplies no stable video ID, so identity is the
// video URL (optionally combined with the owning Post). Two distinct videos
// sharing a URL merge in the cache; this is an upstream data-quality gap,
// not something the client can repair by inventing synthetic IDs.
type Video struct {
	VideoURL        string
	ThumbnailURL    string
	ThumbnailWidth  int
	ThumbnailHeight int
	Length          int

	Post *Post
}

// String returns the video URL.
func (v *Video) String() string {
	return v.VideoURL
}

// VideoStream is a Video carrying streaming manifest paths for adaptive
// playback. Resolution-variant media playlists are derived from the master
// manifest path rather than fetched.
type VideoStream struct {
	Video

	HLSPath  string
	DashPath string

	// Resolutions lists the variant heights the master manifest advertises.
	Resolutions []int
}

// VariantURL derives the media playlist URL for a given resolution height
// from the HLS master manifest path. Returns "" when the stream has no HLS
// manifest or the height is not an advertised variant.
func (s *VideoStream) VariantURL(height int) string {
	if s.HLSPath == "" {
		return ""
	}
	for _, h := range s.Resolutions {
		if h == height {
			ext := ".m3u8"
			if !strings.HasSuffix(s.HLSPath, ext) {
				return ""
			}
			return fmt.Sprintf("%s_%dp%s", strings.TrimSuffix(s.HLSPath, ext), height, ext)
		}
	}
	return ""
}
