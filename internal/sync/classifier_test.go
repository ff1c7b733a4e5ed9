// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package sync

import "testing"

func TestClassifierBuckets(t *testing.T) {
	c := NewClassifier(DefaultTriggers())

	tests := []struct {
		name    string
		message string
		want    NotificationType
	}{
		{"comment english", "UserX commented on ARTIST's post", NotificationComment},
		{"reply english", "UserX replied to your comment", NotificationComment},
		{"post english", "ARTIST created a new post!", NotificationPost},
		{"moment english", "ARTIST shared a moment with you", NotificationPost},
		{"media english", "Check out the new media", NotificationMedia},
		{"announcement english", "New announcement has been posted", NotificationAnnouncement},
		{"comment korean", "UserX님이 댓글을 남겼습니다", NotificationComment},
		{"post korean", "ARTIST님이 새로운 포스트를 올렸습니다", NotificationPost},
		{"unrecognized", "ARTIST is live now!", NotificationUnknown},
		{"empty", "", NotificationUnknown},
		{"case sensitive", "CHECK OUT THE NEW MEDIA", NotificationUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.message); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

// A message matching two buckets resolves to the earlier bucket in the
// priority order, comment before post.
func TestClassifierPriorityOrder(t *testing.T) {
	c := NewClassifier(DefaultTriggers())

	if got := c.Classify("UserX commented on a created a new post! thing"); got != NotificationComment {
		t.Errorf("comment trigger must win over post trigger, got %v", got)
	}
	if got := c.Classify("created a new post! Check out the new media"); got != NotificationPost {
		t.Errorf("post trigger must win over media trigger, got %v", got)
	}
}

func TestClassifierCustomTriggers(t *testing.T) {
	c := NewClassifier(TriggerSet{Media: []string{"fresh clip"}})

	if got := c.Classify("fresh clip dropped"); got != NotificationMedia {
		t.Errorf("custom trigger: got %v, want %v", got, NotificationMedia)
	}
	if got := c.Classify("commented on"); got != NotificationUnknown {
		t.Errorf("default phrases must not leak into a custom set, got %v", got)
	}
}

func TestNotificationTypeString(t *testing.T) {
	tests := []struct {
		typ  NotificationType
		want string
	}{
		{NotificationComment, "comment"},
		{NotificationPost, "post"},
		{NotificationMedia, "media"},
		{NotificationAnnouncement, "announcement"},
		{NotificationUnknown, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
