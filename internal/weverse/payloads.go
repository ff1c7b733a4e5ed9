// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package weverse

// Wire payload structures for the Weverse web API. Field names mirror the
// remote camelCase JSON exactly; the sync package maps them onto the cached
// model graph.

// CommunityPayload is one entry of GET /communities and /communities/info.
type CommunityPayload struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	MemberCount     int    `json:"memberCount"`
	HomeBannerImg   string `json:"homeBannerImgPath"`
	IconImg         string `json:"iconImgPath"`
	BannerImg       string `json:"bannerImgPath"`
	FullName        string `json:"fullname"`
	FCMember        bool   `json:"fcMember"`
	ShowMemberCount bool   `json:"showMemberCount"`
}

// communitiesResponse wraps GET /communities.
type communitiesResponse struct {
	Communities []CommunityPayload `json:"communities"`
}

// ArtistPayload is one artist of GET /communities/{id}.
type ArtistPayload struct {
	ID                  int64    `json:"id"`
	CommunityUserID     int64    `json:"communityUserId"`
	Name                string   `json:"name"`
	ListName            []string `json:"listName"`
	IsOnline            bool     `json:"isOnline"`
	ProfileNickName     string   `json:"profileNickName"`
	ProfileImgPath      string   `json:"profileImgPath"`
	IsBirthday          bool     `json:"isBirthday"`
	GroupName           string   `json:"groupName"`
	MaxCommentCount     int      `json:"maxCommentCount"`
	CommunityID         int64    `json:"communityId"`
	IsEnabled           bool     `json:"isEnabled"`
	HasNewToFans        bool     `json:"hasNewToFans"`
	HasNewPrivateToFans bool     `json:"hasNewPrivateToFans"`
	ToFanLastID         int64    `json:"toFanLastId"`
	ToFanLastCreatedAt  string   `json:"toFanLastCreatedAt"`
	ToFanLastExpireIn   string   `json:"toFanLastExpireIn"`
	BirthdayImgURL      string   `json:"birthdayImgUrl"`
}

// TabPayload is one tab of GET /communities/{id}.
type TabPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CommunityDetailPayload is the body of GET /communities/{id}.
type CommunityDetailPayload struct {
	Artists []ArtistPayload `json:"artists"`
	Tabs    []TabPayload    `json:"tabs"`
}

// PhotoPayload is one photo attached to a post or media item.
type PhotoPayload struct {
	ID              int64  `json:"id"`
	MediaID         int64  `json:"mediaId"`
	ContentIndex    int    `json:"contentIndex"`
	ThumbnailImgURL string `json:"thumbnailImgUrl"`
	ThumbnailImgW   int    `json:"thumbnailImgWidth"`
	ThumbnailImgH   int    `json:"thumbnailImgHeight"`
	OrgImgURL       string `json:"orgImgUrl"`
	OrgImgW         int    `json:"orgImgWidth"`
	OrgImgH         int    `json:"orgImgHeight"`
	DownloadImgName string `json:"downloadImgFilename"`
}

// VideoPayload is one video attached to a post. No stable remote ID exists;
// identity is the video URL.
type VideoPayload struct {
	VideoURL        string `json:"videoUrl"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	ThumbnailWidth  int    `json:"thumbnailWidth"`
	ThumbnailHeight int    `json:"thumbnailHeight"`
	Length          int    `json:"playTime"`
	HLSPath         string `json:"hlsPath"`
	DashPath        string `json:"dashPath"`
	Resolutions     []int  `json:"resolutions"`
}

// CommentPayload is one artist comment.
type CommentPayload struct {
	ID           int64  `json:"id"`
	Body         string `json:"body"`
	CommentCount int    `json:"commentCount"`
	LikeCount    int    `json:"likeCount"`
	HasMyLike    bool   `json:"hasMyLike"`
	IsBlind      bool   `json:"isBlind"`
	PostID       int64  `json:"postId"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// artistCommentsResponse wraps GET .../posts/{id}/comments.
type artistCommentsResponse struct {
	ArtistComments []CommentPayload `json:"artistComments"`
}

// PostPayload is one post of the artist-tab feed or GET .../posts/{id}.
type PostPayload struct {
	ID                int64                `json:"id"`
	CommunityTabID    int64                `json:"communityTabId"`
	Type              string               `json:"type"`
	Body              string               `json:"body"`
	CommentCount      int                  `json:"commentCount"`
	LikeCount         int                  `json:"likeCount"`
	MaxCommentCount   int                  `json:"maxCommentCount"`
	HasMyLike         bool                 `json:"hasMyLike"`
	HasMyBookmark     bool                 `json:"hasMyBookmark"`
	CreatedAt         string               `json:"createdAt"`
	UpdatedAt         string               `json:"updatedAt"`
	IsLocked          bool                 `json:"isLocked"`
	IsBlind           bool                 `json:"isBlind"`
	IsActive          bool                 `json:"isActive"`
	IsPrivate         bool                 `json:"isPrivate"`
	IsHotTrendingPost bool                 `json:"isHotTrendingPost"`
	IsLimitComment    bool                 `json:"isLimitComment"`
	CommunityUser     CommunityUserPayload `json:"communityUser"`
	Photos            []PhotoPayload       `json:"photos"`
	Videos            []VideoPayload       `json:"attachedVideos"`
	ArtistComments    []CommentPayload     `json:"artistComments"`
}

// CommunityUserPayload is the authorship envelope nested in each post. ID
// is the author's community user ID; ArtistID the platform-wide artist ID.
type CommunityUserPayload struct {
	ID       int64 `json:"id"`
	ArtistID int64 `json:"artistId"`
}

// PostPagePayload is one page of the cursor-paginated artist-tab feed.
type PostPagePayload struct {
	Posts   []PostPayload `json:"posts"`
	IsEnded bool          `json:"isEnded"`
	LastID  int64         `json:"lastId"`
}

// MediaPayload is one media item. Photos is populated only on the single-item
// endpoint; the list endpoint omits photo detail.
type MediaPayload struct {
	ID            int64          `json:"id"`
	CommunityID   int64          `json:"communityId"`
	Body          string         `json:"body"`
	Type          string         `json:"type"`
	ThumbnailPath string         `json:"thumbnailPath"`
	Title         string         `json:"title"`
	Level         string         `json:"level"`
	ExtVideoPath  string         `json:"extVideoPath"`
	YoutubeID     string         `json:"youtubeId"`
	Photos        []PhotoPayload `json:"photos"`
}

// mediaResponse wraps GET .../medias/{id}.
type mediaResponse struct {
	Media MediaPayload `json:"media"`
}

// MediaPagePayload is one page of a community's media stream.
type MediaPagePayload struct {
	Medias  []MediaPayload `json:"medias"`
	IsEnded bool           `json:"isEnded"`
	LastID  int64          `json:"lastId"`
}

// NotificationPayload is one entry of GET /stream/notifications.
type NotificationPayload struct {
	ID                  int64  `json:"id"`
	Message             string `json:"message"`
	BoldElement         string `json:"boldElement"`
	CommunityID         int64  `json:"communityId"`
	CommunityName       string `json:"communityName"`
	ContentsType        string `json:"contentsType"`
	ContentsID          int64  `json:"contentsId"`
	NotifiedAt          string `json:"notifiedAt"`
	IconImageURL        string `json:"iconImageUrl"`
	ThumbnailImageURL   string `json:"thumbnailImageUrl"`
	ArtistID            int64  `json:"artistId"`
	IsMembershipContent bool   `json:"isMembershipContent"`
	IsWebOnly           bool   `json:"isWebOnly"`
	Platform            string `json:"platform"`
}

// notificationsResponse wraps GET /stream/notifications.
type notificationsResponse struct {
	Notifications []NotificationPayload `json:"notifications"`
}

// hasNewResponse wraps GET /stream/notifications/has-new.
type hasNewResponse struct {
	HasNew bool `json:"has_new"`
}

// AnnouncementPayload is one community notice.
type AnnouncementPayload struct {
	ID          int64  `json:"id"`
	CommunityID int64  `json:"communityId"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	CreatedAt   string `json:"createdAt"`
	ExposedAt   string `json:"exposedAt"`
	CategoryID  int64  `json:"categoryId"`
	FCOnly      bool   `json:"fcOnly"`
}

// noticesResponse wraps GET /communities/{id}/notices/.
type noticesResponse struct {
	Notices []AnnouncementPayload `json:"notices"`
}

// translateResponse wraps GET .../translate.
type translateResponse struct {
	Translation string `json:"translation"`
}

// commentBodyResponse wraps GET .../comments/{id}.
type commentBodyResponse struct {
	Body string `json:"body"`
}

// loginResponse wraps POST /auth/login and /auth/token.
type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
