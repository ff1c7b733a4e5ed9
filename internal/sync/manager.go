// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

/*
manager.go - Cache Build and Incremental Update Orchestration

The Manager drives the full cache build (Start) and incremental updates
(UpdateCacheFromNotification). The build sequence per community is strictly
ordered: community creation precedes artist/tab creation, which precedes
post/media fetching. Incremental updates classify each new notification and
perform exactly one fetch-and-merge per notification; any single
notification's follow-up failure is downgraded to a logged warning so a
long-running poll loop survives partial remote outages.
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/weversync/internal/auth"
	"github.com/tomtom215/weversync/internal/config"
	"github.com/tomtom215/weversync/internal/logging"
	"github.com/tomtom215/weversync/internal/metrics"
	"github.com/tomtom215/weversync/internal/models"
	"github.com/tomtom215/weversync/internal/store"
	"github.com/tomtom215/weversync/internal/weverse"
)

// Manager orchestrates the cache build and keeps it current from the
// notification feed.
type Manager struct {
	client     *weverse.Client
	tokens     *auth.TokenManager
	store      *store.Store
	classifier *Classifier
	cfg        config.SyncConfig

	// loaded flips to true once the initial build completes. generation
	// increments after every completed incremental update, giving readers an
	// honest change signal instead of a flickering loaded flag.
	loaded     atomic.Bool
	generation atomic.Uint64

	// mu guards the notification snapshot and the new-notification result of
	// the most recent incremental update.
	mu               sync.Mutex
	notifications    []*models.Notification
	newNotifications []*models.Notification
}

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	Client     *weverse.Client
	Tokens     *auth.TokenManager
	Store      *store.Store
	Classifier *Classifier
	Sync       config.SyncConfig
}

// NewManager creates a Manager. A nil Classifier gets the default triggers.
func NewManager(opts ManagerOptions) *Manager {
	classifier := opts.Classifier
	if classifier == nil {
		classifier = NewClassifier(DefaultTriggers())
	}
	return &Manager{
		client:     opts.Client,
		tokens:     opts.Tokens,
		store:      opts.Store,
		classifier: classifier,
		cfg:        opts.Sync,
	}
}

// Store returns the entity cache for lookups.
func (m *Manager) Store() *store.Store {
	return m.store
}

// CacheLoaded reports whether the initial build has completed.
func (m *Manager) CacheLoaded() bool {
	return m.loaded.Load()
}

// Generation returns the number of completed incremental updates. Readers
// can compare values across their own reads to detect concurrent mutation.
func (m *Manager) Generation() uint64 {
	return m.generation.Load()
}

// Start performs the full cache build: authenticate, fetch communities,
// artists and tabs, then optionally notifications, historical posts, and
// media. Terminal failures (credentials, token) propagate; the build does
// not retry.
func (m *Manager) Start(ctx context.Context) error {
	started := time.Now()

	if !m.tokens.HasCredentials() {
		return auth.ErrInvalidCredentials
	}

	if m.tokens.Token() == "" {
		if err := m.tokens.BeginLogin(ctx); err != nil {
			return err
		}
		if err := m.tokens.WaitForLogin(ctx); err != nil {
			return err
		}
	}

	if err := m.client.CheckToken(ctx); err != nil {
		return fmt.Errorf("%w: token probe failed: %w", auth.ErrInvalidToken, err)
	}

	communities, err := m.client.Communities(ctx)
	if err != nil {
		return fmt.Errorf("fetch communities: %w", err)
	}
	for _, raw := range communities {
		community := m.store.MergeCommunity(newCommunity(raw))
		if err := m.createArtistsAndTabs(ctx, community); err != nil {
			return err
		}
	}

	if m.cfg.FollowNewCommunities {
		if err := m.FollowNewCommunities(ctx); err != nil {
			logging.Warn().Err(err).Msg("[SYNC] Auto-follow of new communities failed")
		}
	}

	if m.cfg.CreateNotifications {
		if err := m.fetchNotifications(ctx); err != nil {
			return fmt.Errorf("fetch notifications: %w", err)
		}
	}

	for _, community := range m.store.Communities() {
		if m.cfg.CreateOldPosts {
			if err := m.createPosts(ctx, community); err != nil {
				return fmt.Errorf("community %d: paginate posts: %w", community.ID, err)
			}
		}
		if m.cfg.CreateMedia {
			if err := m.createMedia(ctx, community); err != nil {
				return fmt.Errorf("community %d: paginate media: %w", community.ID, err)
			}
		}
	}

	m.loaded.Store(true)
	metrics.SyncDuration.Observe(time.Since(started).Seconds())
	logging.Info().Int("communities", len(communities)).Dur("took", time.Since(started)).Msg("[SYNC] Cache build complete")
	return nil
}

// createArtistsAndTabs fetches one community's artists and tabs, wires the
// artist back-references, and inserts everything into the store.
func (m *Manager) createArtistsAndTabs(ctx context.Context, community *models.Community) error {
	detail, err := m.client.CommunityDetail(ctx, community.ID)
	if err != nil {
		if errors.Is(err, weverse.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("community %d: fetch detail: %w", community.ID, err)
	}

	community.Artists = community.Artists[:0]
	for _, raw := range detail.Artists {
		artist, known := m.store.ArtistByID(raw.ID)
		if !known {
			artist = newArtist(raw)
			m.store.AddArtist(artist)
		}
		artist.Community = community
		community.Artists = append(community.Artists, artist)
	}

	community.Tabs = community.Tabs[:0]
	for _, raw := range detail.Tabs {
		tab, known := m.store.TabByID(raw.ID)
		if !known {
			tab = newTab(raw)
			m.store.AddTab(tab)
		}
		community.Tabs = append(community.Tabs, tab)
	}

	return nil
}

// createPosts paginates a community's full artist-tab feed and inserts every
// post with its attachments wired.
func (m *Manager) createPosts(ctx context.Context, community *models.Community) error {
	fetch := func(ctx context.Context, cursor int64) ([]weverse.PostPayload, bool, int64, error) {
		page, err := m.client.ArtistTabPosts(ctx, community.ID, cursor)
		if err != nil {
			if errors.Is(err, weverse.ErrNotFound) {
				return nil, true, 0, nil
			}
			return nil, false, 0, err
		}
		return page.Posts, page.IsEnded, page.LastID, nil
	}

	return FetchAll(ctx, fetch, m.cfg.MaxPostPages, func(raw weverse.PostPayload) error {
		m.insertPost(raw, false)
		return nil
	})
}

// insertPost builds a post, resolves its authoring artist, attaches it to
// the artist's post list, and publishes it to the store. A post discovered
// through a notification is prepended so consumers observe it newest-first.
// An already cached ID is refreshed in place: the stored instance keeps its
// identity, attachments, and single slot in the artist's post list.
func (m *Manager) insertPost(raw weverse.PostPayload, fromNotification bool) *models.Post {
	if existing, ok := m.store.PostByID(raw.ID); ok {
		existing.UpdateFrom(newPost(raw))
		return existing
	}

	post := newPost(raw)

	artist, ok := m.store.ArtistByID(post.CommunityArtistID)
	if !ok && post.ArtistID != 0 {
		artist, ok = m.store.ArtistByID(post.ArtistID)
	}
	if ok {
		post.Artist = artist
		if fromNotification {
			artist.PrependPost(post)
		} else {
			artist.AppendPost(post)
		}
	}

	m.store.AddPost(post)
	return post
}

// createMedia paginates a community's media stream. Items come from the
// list endpoint without photo detail; photos are filled in lazily by the
// notification path's single-item fetch.
func (m *Manager) createMedia(ctx context.Context, community *models.Community) error {
	fetch := func(ctx context.Context, cursor int64) ([]weverse.MediaPayload, bool, int64, error) {
		page, err := m.client.MediaTab(ctx, community.ID, cursor)
		if err != nil {
			if errors.Is(err, weverse.ErrNotFound) {
				return nil, true, 0, nil
			}
			return nil, false, 0, err
		}
		return page.Medias, page.IsEnded, page.LastID, nil
	}

	return FetchAll(ctx, fetch, m.cfg.MaxPostPages, func(raw weverse.MediaPayload) error {
		m.store.AddMedia(newMedia(raw))
		return nil
	})
}

// FollowNewCommunities scans the platform directory for communities the
// account does not follow yet, subscribes to each, and runs the community
// and artist/tab build for the newly followed IDs.
func (m *Manager) FollowNewCommunities(ctx context.Context) error {
	directory, err := m.client.CommunityDirectory(ctx)
	if err != nil {
		return fmt.Errorf("fetch community directory: %w", err)
	}

	for _, raw := range directory {
		if _, known := m.store.CommunityByID(raw.ID); known {
			continue
		}
		if err := m.client.FollowCommunity(ctx, raw.ID); err != nil {
			logging.Warn().Err(err).Int64("community_id", raw.ID).Msg("[SYNC] Follow community failed")
			continue
		}
		community := m.store.MergeCommunity(newCommunity(raw))
		if err := m.createArtistsAndTabs(ctx, community); err != nil {
			return err
		}
		logging.Info().Int64("community_id", raw.ID).Str("name", raw.Name).Msg("[SYNC] Followed new community")
	}
	return nil
}

// fetchNotifications replaces the notification snapshot with the most
// recent feed page and inserts every notification into the store.
func (m *Manager) fetchNotifications(ctx context.Context) error {
	raw, err := m.client.Notifications(ctx)
	if err != nil {
		return err
	}

	fresh := make([]*models.Notification, 0, len(raw))
	for _, p := range raw {
		n := newNotification(p)
		m.store.AddNotification(n)
		fresh = append(fresh, n)
	}

	m.mu.Lock()
	m.notifications = fresh
	m.mu.Unlock()
	return nil
}

// UpdateCacheFromNotification re-fetches the notification feed, computes the
// notifications new since the previous snapshot, and performs one
// fetch-and-merge per new notification according to its classified kind.
// Failures are downgraded to warnings; the method returns whatever new
// notifications were computed, possibly none.
func (m *Manager) UpdateCacheFromNotification(ctx context.Context) []*models.Notification {
	m.mu.Lock()
	previous := make(map[int64]struct{}, len(m.notifications))
	for _, n := range m.notifications {
		previous[n.ID] = struct{}{}
	}
	m.mu.Unlock()

	raw, err := m.client.Notifications(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("[SYNC] Notification feed re-fetch failed")
		metrics.UpdateFailures.Inc()
		return nil
	}

	fresh := make([]*models.Notification, 0, len(raw))
	var newNotifs []*models.Notification
	for _, p := range raw {
		n := newNotification(p)
		m.store.AddNotification(n)
		fresh = append(fresh, n)
		if _, seen := previous[n.ID]; !seen {
			newNotifs = append(newNotifs, n)
		}
	}

	for _, n := range newNotifs {
		if err := m.applyNotification(ctx, n); err != nil {
			logging.Warn().Err(err).Int64("notification_id", n.ID).Str("message", n.Message).Msg("[SYNC] Incremental update failed")
			metrics.UpdateFailures.Inc()
		}
	}

	m.mu.Lock()
	m.notifications = fresh
	m.newNotifications = newNotifs
	m.mu.Unlock()
	m.generation.Add(1)
	return newNotifs
}

// applyNotification performs the single fetch-and-merge for one new
// notification. An unrecognized classification is a no-op: the cache entry
// for that event is simply never created.
func (m *Manager) applyNotification(ctx context.Context, n *models.Notification) error {
	switch m.classifier.Classify(n.Message) {
	case NotificationComment:
		return m.mergeComment(ctx, n)
	case NotificationPost:
		return m.mergePost(ctx, n)
	case NotificationMedia:
		return m.mergeMedia(ctx, n)
	case NotificationAnnouncement:
		return m.mergeAnnouncement(ctx, n)
	default:
		logging.Debug().Int64("notification_id", n.ID).Str("message", n.Message).Msg("[SYNC] Unrecognized notification dropped")
		return nil
	}
}

// mergeComment fetches the referenced post's artist comments, takes the
// newest, resolves its owning post from the cache, and prepends it to that
// post's comment list.
func (m *Manager) mergeComment(ctx context.Context, n *models.Notification) error {
	comments, err := m.client.ArtistComments(ctx, n.CommunityID, n.ContentsID)
	if err != nil {
		return fmt.Errorf("fetch artist comments: %w", err)
	}
	if len(comments) == 0 {
		return fmt.Errorf("post %d: empty artist comment list", n.ContentsID)
	}

	comment := newComment(comments[0])
	if post, ok := m.store.PostByID(comment.PostID); ok {
		comment.Post = post
		post.PrependComment(comment)
	}
	m.store.AddComment(comment)
	return nil
}

// mergePost fetches the referenced post and inserts it, prepending it to the
// authoring artist's post list.
func (m *Manager) mergePost(ctx context.Context, n *models.Notification) error {
	raw, err := m.client.Post(ctx, n.CommunityID, n.ContentsID)
	if err != nil {
		return fmt.Errorf("fetch post %d: %w", n.ContentsID, err)
	}
	m.insertPost(*raw, true)
	return nil
}

// mergeMedia fetches the referenced media item with its photo detail and
// cascade-inserts it.
func (m *Manager) mergeMedia(ctx context.Context, n *models.Notification) error {
	raw, err := m.client.Media(ctx, n.CommunityID, n.ContentsID)
	if err != nil {
		return fmt.Errorf("fetch media %d: %w", n.ContentsID, err)
	}
	m.store.AddMedia(newMedia(*raw))
	return nil
}

// mergeAnnouncement fetches the referenced notice and inserts it.
func (m *Manager) mergeAnnouncement(ctx context.Context, n *models.Notification) error {
	raw, err := m.client.Announcement(ctx, n.CommunityID, n.ContentsID)
	if err != nil {
		return fmt.Errorf("fetch announcement %d: %w", n.ContentsID, err)
	}
	m.store.AddAnnouncement(newAnnouncement(*raw))
	return nil
}

// CheckNewUserNotifications asks the platform whether unseen notifications
// exist and, when they do, runs an incremental cache update so the new
// activity is merged before the caller reads GetNewNotifications. The
// loaded flag stays up throughout; the generation counter records the
// update.
func (m *Manager) CheckNewUserNotifications(ctx context.Context) (bool, error) {
	hasNew, err := m.client.HasNewNotifications(ctx)
	if err != nil || !hasNew {
		return false, err
	}
	m.UpdateCacheFromNotification(ctx)
	return true, nil
}

// GetNewNotifications returns the new notifications computed by the most
// recent UpdateCacheFromNotification call, in feed order.
func (m *Manager) GetNewNotifications() []*models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Notification, len(m.newNotifications))
	copy(out, m.newNotifications)
	return out
}

// UserNotifications returns the current notification snapshot in feed order.
func (m *Manager) UserNotifications() []*models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Notification, len(m.notifications))
	copy(out, m.notifications)
	return out
}

// DetermineNotificationType exposes the classifier so callers can bucket a
// message themselves; classification is not automatic on ingestion.
func (m *Manager) DetermineNotificationType(message string) NotificationType {
	return m.classifier.Classify(message)
}

// TranslatePost requests a machine translation of a post body.
func (m *Manager) TranslatePost(ctx context.Context, communityID, postID int64, languageCode string) (string, error) {
	return m.client.TranslatePost(ctx, communityID, postID, languageCode)
}
