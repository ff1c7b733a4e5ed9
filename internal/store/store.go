// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

// Package store provides the identity-keyed in-memory entity cache.
//
// The Store is the single owner of every cached entity. Lookups are pure and
// return (entity, false) for absence, never an error. Mutation happens only
// through the sync orchestrator; all writes take the store lock and finish
// without any I/O under it, so critical sections stay short.
package store

import (
	"sync"

	"github.com/tomtom215/weversync/internal/metrics"
	"github.com/tomtom215/weversync/internal/models"
)

// Store holds every cached entity keyed by its remote ID (videos by URL,
// which is the only identity the remote supplies).
type Store struct {
	mu sync.RWMutex

	communities   map[int64]*models.Community
	artists       map[int64]*models.Artist
	tabs          map[int64]*models.Tab
	posts         map[int64]*models.Post
	comments      map[int64]*models.Comment
	photos        map[int64]*models.Photo
	videos        map[string]*models.Video
	media         map[int64]*models.Media
	notifications map[int64]*models.Notification
	announcements map[int64]*models.Announcement
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		communities:   make(map[int64]*models.Community),
		artists:       make(map[int64]*models.Artist),
		tabs:          make(map[int64]*models.Tab),
		posts:         make(map[int64]*models.Post),
		comments:      make(map[int64]*models.Comment),
		photos:        make(map[int64]*models.Photo),
		videos:        make(map[string]*models.Video),
		media:         make(map[int64]*models.Media),
		notifications: make(map[int64]*models.Notification),
		announcements: make(map[int64]*models.Announcement),
	}
}

// CommunityByID returns the community with the given ID.
func (s *Store) CommunityByID(id int64) (*models.Community, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.communities[id]
	return c, ok
}

// Communities returns a snapshot slice of all cached communities.
// Order is unspecified.
func (s *Store) Communities() []*models.Community {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Community, 0, len(s.communities))
	for _, c := range s.communities {
		out = append(out, c)
	}
	return out
}

// MergeCommunity inserts a community, or, when the ID already exists,
// updates the existing object's fields in place. The stored object's
// identity never changes on re-fetch, so Artist and Post back-references
// into it remain valid. Returns the stored instance.
func (s *Store) MergeCommunity(c *models.Community) *models.Community {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.communities[c.ID]; ok {
		existing.UpdateFrom(c)
		return existing
	}
	s.communities[c.ID] = c
	metrics.CacheEntities.WithLabelValues("community").Set(float64(len(s.communities)))
	return c
}

// ArtistByID returns the artist with the given ID, falling back to a linear
// scan over CommunityUserID when the primary namespace misses. The two ID
// namespaces are not unified by the remote API and both must be checked.
func (s *Store) ArtistByID(id int64) (*models.Artist, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.artists[id]; ok {
		return a, true
	}
	for _, a := range s.artists {
		if a.CommunityUserID == id {
			return a, true
		}
	}
	return nil, false
}

// AddArtist inserts an artist under its primary ID.
func (s *Store) AddArtist(a *models.Artist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artists[a.ID] = a
	metrics.CacheEntities.WithLabelValues("artist").Set(float64(len(s.artists)))
}

// TabByID returns the tab with the given ID.
func (s *Store) TabByID(id int64) (*models.Tab, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tabs[id]
	return t, ok
}

// AddTab inserts a tab.
func (s *Store) AddTab(t *models.Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabs[t.ID] = t
	metrics.CacheEntities.WithLabelValues("tab").Set(float64(len(s.tabs)))
}

// PostByID returns the post with the given ID.
func (s *Store) PostByID(id int64) (*models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	return p, ok
}

// AddPost inserts a post and its owned photos and videos under their own
// identities, so individual photo/video lookup works independently of the
// post lookup.
func (s *Store) AddPost(p *models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[p.ID] = p
	for _, photo := range p.Photos {
		s.photos[photo.ID] = photo
	}
	for _, video := range p.Videos {
		s.videos[video.VideoURL] = video
	}
	metrics.CacheEntities.WithLabelValues("post").Set(float64(len(s.posts)))
	metrics.CacheEntities.WithLabelValues("photo").Set(float64(len(s.photos)))
	metrics.CacheEntities.WithLabelValues("video").Set(float64(len(s.videos)))
}

// CommentByID returns the comment with the given ID.
func (s *Store) CommentByID(id int64) (*models.Comment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	return c, ok
}

// AddComment inserts a comment.
func (s *Store) AddComment(c *models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[c.ID] = c
	metrics.CacheEntities.WithLabelValues("comment").Set(float64(len(s.comments)))
}

// PhotoByID returns the photo with the given ID.
func (s *Store) PhotoByID(id int64) (*models.Photo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.photos[id]
	return p, ok
}

// VideoByURL returns the video with the given URL. Videos carry no remote
// ID; the URL is the only lookup key.
func (s *Store) VideoByURL(url string) (*models.Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.videos[url]
	return v, ok
}

// MediaByID returns the media item with the given ID.
func (s *Store) MediaByID(id int64) (*models.Media, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.media[id]
	return m, ok
}

// AddMedia inserts a media item and cascades every owned photo into the
// photo map under its own ID. The cascade must not be skipped: individual
// photo lookup is a supported path independent of lookup-by-media.
func (s *Store) AddMedia(m *models.Media) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media[m.ID] = m
	for _, photo := range m.Photos {
		s.photos[photo.ID] = photo
	}
	metrics.CacheEntities.WithLabelValues("media").Set(float64(len(s.media)))
	metrics.CacheEntities.WithLabelValues("photo").Set(float64(len(s.photos)))
}

// NotificationByID returns the notification with the given ID.
func (s *Store) NotificationByID(id int64) (*models.Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notifications[id]
	return n, ok
}

// AddNotification inserts a notification.
func (s *Store) AddNotification(n *models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[n.ID] = n
	metrics.CacheEntities.WithLabelValues("notification").Set(float64(len(s.notifications)))
}

// AnnouncementByID returns the announcement with the given ID.
func (s *Store) AnnouncementByID(id int64) (*models.Announcement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.announcements[id]
	return a, ok
}

// AddAnnouncement inserts an announcement.
func (s *Store) AddAnnouncement(a *models.Announcement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announcements[a.ID] = a
	metrics.CacheEntities.WithLabelValues("announcement").Set(float64(len(s.announcements)))
}
