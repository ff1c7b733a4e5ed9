// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package models

// Photo is an image attached to either a Post or a Media item. The owner
// back-reference is polymorphic over context: exactly one of Post or Media
// is set per instance, depending on where the photo was discovered.
type Photo struct {
	ID                 int64
	MediaID            int64
	ContentIndex       int
	ThumbnailImgURL    string
	ThumbnailImgWidth  int
	ThumbnailImgHeight int
	OriginalImgURL     string
	OriginalImgWidth   int
	OriginalImgHeight  int
	FileName           string

	Post  *Post
	Media *Media
}

// String returns the file name.
func (p *Photo) String() string {
	return p.FileName
}
