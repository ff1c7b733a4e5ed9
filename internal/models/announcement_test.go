// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package models

import "testing"

func TestNewAnnouncementStripsHTML(t *testing.T) {
	html := `<p>Hello <b>fans</b>!<br>See you soon &amp; thanks.</p>`
	a := NewAnnouncement(1, 10, 3, "Notice", html, "2021-01-01", "2021-01-02", false)

	want := "Hello fans!\nSee you soon  thanks."
	if a.Content != want {
		t.Errorf("Content: expected %q, got %q", want, a.Content)
	}
	if a.HTMLContent != html {
		t.Errorf("HTMLContent should keep the raw body, got %q", a.HTMLContent)
	}
}

func TestNewAnnouncementFirstImage(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "img with following attr",
			html: `<p><img src="https://cdn.example.com/a.jpg" width="10"></p>`,
			want: "https://cdn.example.com/a.jpg",
		},
		{
			name: "img at end of tag",
			html: `<img src="https://cdn.example.com/b.png">`,
			want: "https://cdn.example.com/b.png",
		},
		{
			name: "escaped quotes",
			html: `<img src=\"https://cdn.example.com/c.gif\" alt=\"x\">`,
			want: "https://cdn.example.com/c.gif",
		},
		{
			name: "no image",
			html: `<p>plain</p>`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnnouncement(1, 10, 3, "Notice", tt.html, "", "", false)
			if a.ImageURL != tt.want {
				t.Errorf("ImageURL: expected %q, got %q", tt.want, a.ImageURL)
			}
		})
	}
}

func TestCommunityUpdateFromPreservesReferences(t *testing.T) {
	artist := &Artist{ID: 5, Name: "Original Member"}
	c := &Community{ID: 1, Name: "old name", MemberCount: 10, Artists: []*Artist{artist}}

	c.UpdateFrom(&Community{ID: 1, Name: "new name", MemberCount: 20})

	if c.Name != "new name" || c.MemberCount != 20 {
		t.Errorf("scalar fields not updated: %+v", c)
	}
	if len(c.Artists) != 1 || c.Artists[0] != artist {
		t.Error("UpdateFrom must not touch the Artists back-references")
	}
}

func TestVideoStreamVariantURL(t *testing.T) {
	s := &VideoStream{
		HLSPath:     "https://cdn.example.com/stream/master.m3u8",
		Resolutions: []int{480, 720, 1080},
	}

	if got := s.VariantURL(720); got != "https://cdn.example.com/stream/master_720p.m3u8" {
		t.Errorf("VariantURL(720) = %q", got)
	}
	if got := s.VariantURL(360); got != "" {
		t.Errorf("unadvertised height should yield empty URL, got %q", got)
	}

	empty := &VideoStream{}
	if got := empty.VariantURL(720); got != "" {
		t.Errorf("stream without manifest should yield empty URL, got %q", got)
	}
}
