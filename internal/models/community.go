// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package models

// Community is a followable fan-community namespace on the platform,
// containing artists, tabs, and posts.
//
// A Community is created once per remote ID and updated in place on re-fetch
// (see UpdateFrom) so that Artist and Post back-references into it survive a
// refresh. Communities are never destroyed during a session.
type Community struct {
	ID              int64
	Name            string
	Description     string
	MemberCount     int
	HomeBanner      string
	Icon            string
	Banner          string
	FullName        string
	FCMember        bool
	ShowMemberCount bool

	// Artists and Tabs are back-references to store-owned entities, in the
	// order the API returned them.
	Artists []*Artist
	Tabs    []*Tab
}

// UpdateFrom copies the scalar fields of other into c, preserving c's
// identity and its Artists/Tabs references. Used on the community refresh
// path where the remote ID already exists in the store.
func (c *Community) UpdateFrom(other *Community) {
	c.Name = other.Name
	c.Description = other.Description
	c.MemberCount = other.MemberCount
	c.HomeBanner = other.HomeBanner
	c.Icon = other.Icon
	c.Banner = other.Banner
	c.FullName = other.FullName
	c.FCMember = other.FCMember
	c.ShowMemberCount = other.ShowMemberCount
}

// String returns the community name.
func (c *Community) String() string {
	return c.Name
}
