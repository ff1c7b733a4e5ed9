// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package models

import (
	"regexp"
	"strings"
)

// Announcement is an administrative notice for a Community. Equality is by
// ID. Content and ImageURL are derived from the raw HTML at construction.
type Announcement struct {
	ID          int64
	CommunityID int64
	Title       string
	HTMLContent string
	CreatedAt   string
	ExposedAt   string
	CategoryID  int64
	FCOnly      bool

	// Content is HTMLContent with tags and entities stripped.
	Content string

	// ImageURL is the first image source found in HTMLContent, "" if none.
	ImageURL string
}

// htmlCleaner matches tags and character entities for plain-text derivation.
var htmlCleaner = regexp.MustCompile(`<.*?>|&([a-z0-9]+|#[0-9]{1,6}|#x[0-9a-f]{1,6});`)

// NewAnnouncement builds an Announcement and derives its plain-text content
// and first-image URL from the HTML body.
func NewAnnouncement(id, communityID, categoryID int64, title, htmlContent, createdAt, exposedAt string, fcOnly bool) *Announcement {
	return &Announcement{
		ID:          id,
		CommunityID: communityID,
		Title:       title,
		HTMLContent: htmlContent,
		CreatedAt:   createdAt,
		ExposedAt:   exposedAt,
		CategoryID:  categoryID,
		FCOnly:      fcOnly,
		Content:     stripHTML(htmlContent),
		ImageURL:    firstImageURL(htmlContent),
	}
}

// stripHTML removes tags and entities, keeping <br> as line breaks.
func stripHTML(content string) string {
	content = strings.ReplaceAll(content, "<br>", "\n")
	return htmlCleaner.ReplaceAllString(content, "")
}

// firstImageURL extracts the first src= attribute value by simple tag
// scanning, matching the remote's announcement HTML shape.
func firstImageURL(content string) string {
	srcLoc := strings.Index(content, "src=")
	if srcLoc == -1 {
		return ""
	}
	rest := content[srcLoc:]
	end := strings.Index(rest, " ")
	if end == -1 {
		end = len(rest)
	}
	src := rest[:end]
	src = strings.TrimPrefix(src, "src=")
	src = strings.ReplaceAll(src, `\`, "")
	src = strings.ReplaceAll(src, `"`, "")
	src = strings.TrimSuffix(src, ">")
	return src
}

// String returns the announcement content without HTML tags.
func (a *Announcement) String() string {
	return a.Content
}
