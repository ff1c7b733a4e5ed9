// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package sync

import (
	"strings"

	"github.com/tomtom215/weversync/internal/metrics"
)

// NotificationType is the inferred kind of entity a notification refers to.
// The feed does not carry a structured type field; the kind is inferred from
// the message text.
type NotificationType int

const (
	NotificationUnknown NotificationType = iota
	NotificationComment
	NotificationPost
	NotificationMedia
	NotificationAnnouncement
)

// String returns the bucket name.
func (t NotificationType) String() string {
	switch t {
	case NotificationComment:
		return "comment"
	case NotificationPost:
		return "post"
	case NotificationMedia:
		return "media"
	case NotificationAnnouncement:
		return "announcement"
	default:
		return "unknown"
	}
}

// TriggerSet holds the substring trigger phrases per bucket. Each bucket may
// carry phrases from multiple locales side by side. The set is data so that
// upstream message-format drift can be absorbed without a code change.
type TriggerSet struct {
	Comment      []string
	Post         []string
	Media        []string
	Announcement []string
}

// DefaultTriggers returns the trigger phrases observed in the English and
// Korean notification feeds.
func DefaultTriggers() TriggerSet {
	return TriggerSet{
		Comment: []string{
			"commented on",
			"replied to",
			"댓글을 남겼습니다",
			"답글을 남겼습니다",
		},
		Post: []string{
			"created a new post!",
			"shared a moment with you",
			"새로운 포스트를 올렸습니다",
			"모먼트를 공유했습니다",
		},
		Media: []string{
			"Check out the new media",
			"새로운 미디어를 확인해 보세요",
		},
		Announcement: []string{
			"New announcement",
			"새로운 공지사항",
		},
	}
}

// Classifier maps a notification message to a NotificationType with ordered,
// case-sensitive substring matching. Classification is a heuristic over an
// untyped feed; a miss returns NotificationUnknown, which is a normal
// outcome, not an error.
type Classifier struct {
	triggers TriggerSet
}

// NewClassifier creates a Classifier over the given trigger set.
func NewClassifier(triggers TriggerSet) *Classifier {
	return &Classifier{triggers: triggers}
}

// Classify returns the bucket for a notification message. Buckets are tested
// in fixed priority order: comment, then post, then media, then
// announcement. A message matching phrases from two buckets resolves to the
// earlier bucket; this ordering is load-bearing and must not change.
func (c *Classifier) Classify(message string) NotificationType {
	result := c.classify(message)
	metrics.NotificationsClassified.WithLabelValues(result.String()).Inc()
	return result
}

func (c *Classifier) classify(message string) NotificationType {
	if matchesAny(message, c.triggers.Comment) {
		return NotificationComment
	}
	if matchesAny(message, c.triggers.Post) {
		return NotificationPost
	}
	if matchesAny(message, c.triggers.Media) {
		return NotificationMedia
	}
	if matchesAny(message, c.triggers.Announcement) {
		return NotificationAnnouncement
	}
	return NotificationUnknown
}

func matchesAny(message string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(message, phrase) {
			return true
		}
	}
	return false
}
