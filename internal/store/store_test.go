// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package store

import (
	"testing"

	"github.com/tomtom215/weversync/internal/models"
)

func TestMergeCommunityPreservesIdentity(t *testing.T) {
	s := New()

	first := &models.Community{ID: 1, Name: "old", MemberCount: 10}
	stored := s.MergeCommunity(first)
	if stored != first {
		t.Fatal("first merge should store the supplied object")
	}

	artist := &models.Artist{ID: 5, Community: stored}
	stored.Artists = []*models.Artist{artist}

	refetched := &models.Community{ID: 1, Name: "new", MemberCount: 20}
	merged := s.MergeCommunity(refetched)

	if merged != first {
		t.Error("re-merge of an existing ID must return the original object, not replace it")
	}
	if merged.Name != "new" || merged.MemberCount != 20 {
		t.Errorf("fields not updated in place: %+v", merged)
	}
	if artist.Community != merged {
		t.Error("artist back-reference invalidated by refresh")
	}

	got, ok := s.CommunityByID(1)
	if !ok || got != first {
		t.Error("lookup after refresh must return the original object")
	}
}

func TestArtistSecondaryIDLookup(t *testing.T) {
	s := New()
	s.AddArtist(&models.Artist{ID: 5, CommunityUserID: 99, Name: "Member"})

	byPrimary, ok := s.ArtistByID(5)
	if !ok || byPrimary.Name != "Member" {
		t.Error("primary ID lookup failed")
	}

	bySecondary, ok := s.ArtistByID(99)
	if !ok || bySecondary != byPrimary {
		t.Error("community_user_id fallback lookup failed")
	}

	if _, ok := s.ArtistByID(100); ok {
		t.Error("lookup of an ID in neither namespace must report not-found")
	}
}

func TestLookupMissingReturnsNotFound(t *testing.T) {
	s := New()
	if _, ok := s.CommunityByID(1); ok {
		t.Error("empty store community lookup should miss")
	}
	if _, ok := s.PostByID(1); ok {
		t.Error("empty store post lookup should miss")
	}
	if _, ok := s.VideoByURL("https://example.com/v.mp4"); ok {
		t.Error("empty store video lookup should miss")
	}
}

func TestAddPostCascadesAttachments(t *testing.T) {
	s := New()
	post := &models.Post{ID: 500}
	photo := &models.Photo{ID: 7, Post: post}
	video := &models.Video{VideoURL: "https://cdn.example.com/v.mp4", Post: post}
	post.Photos = []*models.Photo{photo}
	post.Videos = []*models.Video{video}

	s.AddPost(post)

	gotPhoto, ok := s.PhotoByID(7)
	if !ok || gotPhoto != photo {
		t.Error("owned photo must be retrievable by its own ID")
	}
	gotVideo, ok := s.VideoByURL("https://cdn.example.com/v.mp4")
	if !ok || gotVideo != video {
		t.Error("owned video must be retrievable by URL")
	}
}

func TestAddMediaCascadesPhotos(t *testing.T) {
	s := New()
	m := &models.Media{ID: 42, Type: models.MediaTypePhoto}
	for i := int64(1); i <= 3; i++ {
		m.Photos = append(m.Photos, &models.Photo{ID: i, MediaID: 42, Media: m})
	}

	s.AddMedia(m)

	gotMedia, ok := s.MediaByID(42)
	if !ok || gotMedia != m {
		t.Fatal("media lookup failed after cascade insert")
	}
	for i := int64(1); i <= 3; i++ {
		p, ok := s.PhotoByID(i)
		if !ok {
			t.Errorf("photo %d not independently retrievable", i)
			continue
		}
		if p.Media != m {
			t.Errorf("photo %d owner back-reference wrong", i)
		}
	}
}

func TestVideoIdentityByURLMerges(t *testing.T) {
	s := New()
	p1 := &models.Post{ID: 1}
	p2 := &models.Post{ID: 2}
	url := "https://cdn.example.com/shared.mp4"

	p1.Videos = []*models.Video{{VideoURL: url, Post: p1}}
	p2.Videos = []*models.Video{{VideoURL: url, Post: p2}}
	s.AddPost(p1)
	s.AddPost(p2)

	// Last insert wins for a shared URL; weak identity is the remote's
	// contract, not a bug to repair.
	v, ok := s.VideoByURL(url)
	if !ok {
		t.Fatal("video lookup failed")
	}
	if v.Post != p2 {
		t.Error("expected the most recently inserted video under the shared URL")
	}
}
