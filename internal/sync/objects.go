// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package sync

import (
	"github.com/tomtom215/weversync/internal/models"
	"github.com/tomtom215/weversync/internal/weverse"
)

// Constructors from wire payloads to cached model entities. Pure field
// mapping except for newPost, which also wires attachment back-references;
// the wiring is part of construction so a Post is never published with
// partially set back-references.

func newCommunity(p weverse.CommunityPayload) *models.Community {
	return &models.Community{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		MemberCount:     p.MemberCount,
		HomeBanner:      p.HomeBannerImg,
		Icon:            p.IconImg,
		Banner:          p.BannerImg,
		FullName:        p.FullName,
		FCMember:        p.FCMember,
		ShowMemberCount: p.ShowMemberCount,
	}
}

func newArtist(p weverse.ArtistPayload) *models.Artist {
	return &models.Artist{
		ID:                  p.ID,
		CommunityUserID:     p.CommunityUserID,
		Name:                p.Name,
		ListName:            p.ListName,
		IsOnline:            p.IsOnline,
		ProfileNickname:     p.ProfileNickName,
		ProfileImgPath:      p.ProfileImgPath,
		IsBirthday:          p.IsBirthday,
		GroupName:           p.GroupName,
		MaxCommentCount:     p.MaxCommentCount,
		CommunityID:         p.CommunityID,
		IsEnabled:           p.IsEnabled,
		HasNewToFans:        p.HasNewToFans,
		HasNewPrivateToFans: p.HasNewPrivateToFans,
		ToFanLastID:         p.ToFanLastID,
		ToFanLastCreatedAt:  p.ToFanLastCreatedAt,
		ToFanLastExpireIn:   p.ToFanLastExpireIn,
		BirthdayImgURL:      p.BirthdayImgURL,
	}
}

func newTab(p weverse.TabPayload) *models.Tab {
	return &models.Tab{ID: p.ID, Name: p.Name}
}

func newPhoto(p weverse.PhotoPayload) *models.Photo {
	return &models.Photo{
		ID:                 p.ID,
		MediaID:            p.MediaID,
		ContentIndex:       p.ContentIndex,
		ThumbnailImgURL:    p.ThumbnailImgURL,
		ThumbnailImgWidth:  p.ThumbnailImgW,
		ThumbnailImgHeight: p.ThumbnailImgH,
		OriginalImgURL:     p.OrgImgURL,
		OriginalImgWidth:   p.OrgImgW,
		OriginalImgHeight:  p.OrgImgH,
		FileName:           p.DownloadImgName,
	}
}

func newVideo(p weverse.VideoPayload) *models.Video {
	return &models.Video{
		VideoURL:        p.VideoURL,
		ThumbnailURL:    p.ThumbnailURL,
		ThumbnailWidth:  p.ThumbnailWidth,
		ThumbnailHeight: p.ThumbnailHeight,
		Length:          p.Length,
	}
}

func newComment(p weverse.CommentPayload) *models.Comment {
	return &models.Comment{
		ID:           p.ID,
		Body:         p.Body,
		CommentCount: p.CommentCount,
		LikeCount:    p.LikeCount,
		HasMyLike:    p.HasMyLike,
		IsBlind:      p.IsBlind,
		PostID:       p.PostID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// newPost builds a Post and wires every owned photo, video, and artist
// comment back to the new instance before returning it.
func newPost(p weverse.PostPayload) *models.Post {
	post := &models.Post{
		ID:                p.ID,
		CommunityTabID:    p.CommunityTabID,
		Type:              p.Type,
		Body:              p.Body,
		CommentCount:      p.CommentCount,
		LikeCount:         p.LikeCount,
		MaxCommentCount:   p.MaxCommentCount,
		HasMyLike:         p.HasMyLike,
		HasMyBookmark:     p.HasMyBookmark,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		IsLocked:          p.IsLocked,
		IsBlind:           p.IsBlind,
		IsActive:          p.IsActive,
		IsPrivate:         p.IsPrivate,
		IsHotTrendingPost: p.IsHotTrendingPost,
		IsLimitComment:    p.IsLimitComment,
		CommunityArtistID: p.CommunityUser.ID,
		ArtistID:          p.CommunityUser.ArtistID,
	}

	for _, raw := range p.Photos {
		photo := newPhoto(raw)
		photo.Post = post
		post.Photos = append(post.Photos, photo)
	}
	for _, raw := range p.Videos {
		video := newVideo(raw)
		video.Post = post
		post.Videos = append(post.Videos, video)
	}
	for _, raw := range p.ArtistComments {
		comment := newComment(raw)
		comment.Post = post
		post.ArtistComments = append(post.ArtistComments, comment)
	}

	return post
}

func newMedia(p weverse.MediaPayload) *models.Media {
	media := &models.Media{
		ID:            p.ID,
		CommunityID:   p.CommunityID,
		Body:          p.Body,
		Type:          p.Type,
		ThumbnailPath: p.ThumbnailPath,
		Title:         p.Title,
		Level:         p.Level,
		VideoLink:     p.ExtVideoPath,
		YoutubeID:     p.YoutubeID,
	}
	for _, raw := range p.Photos {
		photo := newPhoto(raw)
		photo.Media = media
		media.Photos = append(media.Photos, photo)
	}
	return media
}

func newNotification(p weverse.NotificationPayload) *models.Notification {
	return &models.Notification{
		ID:                  p.ID,
		Message:             p.Message,
		BoldElement:         p.BoldElement,
		CommunityID:         p.CommunityID,
		CommunityName:       p.CommunityName,
		ContentsType:        p.ContentsType,
		ContentsID:          p.ContentsID,
		NotifiedAt:          p.NotifiedAt,
		IconImageURL:        p.IconImageURL,
		ThumbnailImageURL:   p.ThumbnailImageURL,
		ArtistID:            p.ArtistID,
		IsMembershipContent: p.IsMembershipContent,
		IsWebOnly:           p.IsWebOnly,
		Platform:            p.Platform,
	}
}

func newAnnouncement(p weverse.AnnouncementPayload) *models.Announcement {
	return models.NewAnnouncement(p.ID, p.CommunityID, p.CategoryID, p.Title, p.Content, p.CreatedAt, p.ExposedAt, p.FCOnly)
}
