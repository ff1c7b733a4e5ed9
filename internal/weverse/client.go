// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

/*
client.go - Weverse Web API Client

This file implements the HTTP client for the Weverse web API with consistent
request configuration.

Request Configuration:
  - Authentication: Authorization: Bearer header on all requests
  - Rate Limiting: token bucket limiter shared across all calls
  - Circuit Breaker: transport failures and 5xx responses trip the breaker
  - Status Mapping: 401 marks the token expired and retries once after
    recovery, 404 and other non-200 statuses surface as ErrNotFound

The client never interprets payloads beyond decoding; building the cached
object graph out of the raw payloads is the sync package's job.
*/

//nolint:staticcheck // File documentation, not package doc
package weverse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/weversync/internal/auth"
	"github.com/tomtom215/weversync/internal/logging"
)

const defaultRequestTimeout = 30 * time.Second

// TokenSource supplies the bearer token for API requests and absorbs
// expiry signals. *auth.TokenManager satisfies it.
type TokenSource interface {
	Token() string
	MarkExpired()
	EnsureValid(ctx context.Context) error
}

// Client is an authenticated Weverse web API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *requestBreaker
}

// Options configures a Client.
type Options struct {
	// BaseURL is the API root without a trailing slash,
	// e.g. "https://weversewebapi.weverse.io/wapi/v1".
	BaseURL string

	// Tokens supplies bearer tokens. Required for all endpoints except
	// Login and Refresh.
	Tokens TokenSource

	// RequestTimeout bounds each HTTP request. Zero means 30 seconds.
	RequestTimeout time.Duration

	// RateLimitPerSecond caps outgoing requests. Zero disables limiting.
	RateLimitPerSecond float64
}

// NewClient creates a Weverse API client.
func NewClient(opts Options) *Client {
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	var limiter *rate.Limiter
	if opts.RateLimitPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitPerSecond), 1)
	}

	return &Client{
		baseURL:    opts.BaseURL,
		tokens:     opts.Tokens,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		breaker:    newRequestBreaker(),
	}
}

// requestConfig holds configuration for building API requests.
type requestConfig struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	noAuth bool
}

// doRequest executes one API request and decodes the response into result.
// A 401 marks the token expired, recovers through the token source and
// retries exactly once. 404 and other non-200 statuses return ErrNotFound.
func (c *Client) doRequest(ctx context.Context, cfg requestConfig, result interface{}) error {
	retried := false
	for {
		status, err := c.execute(ctx, cfg, result)
		if err != nil {
			return err
		}

		switch {
		case status == http.StatusOK:
			return nil
		case status == http.StatusUnauthorized && !cfg.noAuth:
			if retried {
				return auth.ErrInvalidToken
			}
			retried = true
			c.tokens.MarkExpired()
			if err := c.tokens.EnsureValid(ctx); err != nil {
				return err
			}
		case status == http.StatusNotFound:
			logging.Debug().Str("path", cfg.path).Msg("[WEVERSE] No data for request")
			return ErrNotFound
		default:
			logging.Warn().Int("status", status).Str("path", cfg.path).Msg("[WEVERSE] Unexpected response status")
			return ErrNotFound
		}
	}
}

// execute performs a single HTTP round trip through the rate limiter and
// circuit breaker. It returns the status code; the body is decoded into
// result only on 200.
func (c *Client) execute(ctx context.Context, cfg requestConfig, result interface{}) (int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	reqURL := fmt.Sprintf("%s%s", c.baseURL, cfg.path)

	var bodyReader *bytes.Reader
	if cfg.body != nil {
		raw, err := json.Marshal(cfg.body)
		if err != nil {
			return 0, fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	var req *http.Request
	var err error
	if bodyReader != nil {
		req, err = http.NewRequestWithContext(ctx, cfg.method, reqURL, bodyReader)
	} else {
		req, err = http.NewRequestWithContext(ctx, cfg.method, reqURL, http.NoBody)
	}
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if cfg.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !cfg.noAuth {
		req.Header.Set("Authorization", "Bearer "+c.tokens.Token())
	}
	if len(cfg.query) > 0 {
		req.URL.RawQuery = cfg.query.Encode()
	}

	resp, err := c.breaker.roundTrip(c.httpClient, req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK && result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return 0, fmt.Errorf("decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

// doJSONRequest is a convenience wrapper for authenticated GET requests.
func (c *Client) doJSONRequest(ctx context.Context, path string, result interface{}) error {
	return c.doRequest(ctx, requestConfig{
		method: http.MethodGet,
		path:   path,
	}, result)
}

// CheckToken probes the current token against the profile endpoint.
// It returns nil when the token is accepted.
func (c *Client) CheckToken(ctx context.Context) error {
	err := c.doJSONRequest(ctx, "/users/me", nil)
	if errors.Is(err, ErrNotFound) {
		// The probe only cares about authentication, not the body.
		return nil
	}
	return err
}

// Communities lists the communities the account follows.
func (c *Client) Communities(ctx context.Context) ([]CommunityPayload, error) {
	var resp communitiesResponse
	if err := c.doJSONRequest(ctx, "/communities/", &resp); err != nil {
		return nil, err
	}
	return resp.Communities, nil
}

// CommunityDirectory lists every community on the platform, followed or not.
func (c *Client) CommunityDirectory(ctx context.Context) ([]CommunityPayload, error) {
	var resp communitiesResponse
	if err := c.doJSONRequest(ctx, "/communities/info/", &resp); err != nil {
		return nil, err
	}
	return resp.Communities, nil
}

// CommunityDetail retrieves the artists and tabs of one community.
func (c *Client) CommunityDetail(ctx context.Context, communityID int64) (*CommunityDetailPayload, error) {
	var resp CommunityDetailPayload
	path := fmt.Sprintf("/communities/%d", communityID)
	if err := c.doJSONRequest(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ArtistTabPosts retrieves one page of a community's artist-tab feed.
// A zero cursor fetches the newest page; otherwise the page starts after
// the given post ID.
func (c *Client) ArtistTabPosts(ctx context.Context, communityID, from int64) (*PostPagePayload, error) {
	var resp PostPagePayload
	path := fmt.Sprintf("/communities/%d/posts/artistTab", communityID)
	query := url.Values{}
	if from != 0 {
		query.Set("from", fmt.Sprintf("%d", from))
	}
	err := c.doRequest(ctx, requestConfig{
		method: http.MethodGet,
		path:   path,
		query:  query,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Post retrieves a single post with its attachments and artist comments.
func (c *Client) Post(ctx context.Context, communityID, postID int64) (*PostPayload, error) {
	var resp PostPayload
	path := fmt.Sprintf("/communities/%d/posts/%d", communityID, postID)
	if err := c.doJSONRequest(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ArtistComments retrieves the artist comments on a post, newest first.
func (c *Client) ArtistComments(ctx context.Context, communityID, postID int64) ([]CommentPayload, error) {
	var resp artistCommentsResponse
	path := fmt.Sprintf("/communities/%d/posts/%d/comments/", communityID, postID)
	if err := c.doJSONRequest(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.ArtistComments, nil
}

// Media retrieves a single media item with its photo detail.
func (c *Client) Media(ctx context.Context, communityID, mediaID int64) (*MediaPayload, error) {
	var resp mediaResponse
	path := fmt.Sprintf("/communities/%d/medias/%d", communityID, mediaID)
	if err := c.doJSONRequest(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp.Media, nil
}

// MediaTab retrieves one page of a community's media stream.
func (c *Client) MediaTab(ctx context.Context, communityID, from int64) (*MediaPagePayload, error) {
	var resp MediaPagePayload
	path := fmt.Sprintf("/communities/%d/medias", communityID)
	query := url.Values{}
	if from != 0 {
		query.Set("from", fmt.Sprintf("%d", from))
	}
	err := c.doRequest(ctx, requestConfig{
		method: http.MethodGet,
		path:   path,
		query:  query,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Notifications retrieves the account's notification feed, newest first.
func (c *Client) Notifications(ctx context.Context) ([]NotificationPayload, error) {
	var resp notificationsResponse
	if err := c.doJSONRequest(ctx, "/stream/notifications/", &resp); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

// HasNewNotifications asks the platform whether unseen notifications exist.
func (c *Client) HasNewNotifications(ctx context.Context) (bool, error) {
	var resp hasNewResponse
	if err := c.doJSONRequest(ctx, "/stream/notifications/has-new/", &resp); err != nil {
		return false, err
	}
	return resp.HasNew, nil
}

// Announcements retrieves the notice board of a community.
func (c *Client) Announcements(ctx context.Context, communityID int64) ([]AnnouncementPayload, error) {
	var resp noticesResponse
	path := fmt.Sprintf("/communities/%d/notices/", communityID)
	if err := c.doJSONRequest(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Notices, nil
}

// Announcement retrieves a single community notice.
func (c *Client) Announcement(ctx context.Context, communityID, noticeID int64) (*AnnouncementPayload, error) {
	var resp AnnouncementPayload
	path := fmt.Sprintf("/communities/%d/notices/%d", communityID, noticeID)
	if err := c.doJSONRequest(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CommentBody retrieves the body of a single comment.
func (c *Client) CommentBody(ctx context.Context, communityID, commentID int64) (string, error) {
	var resp commentBodyResponse
	path := fmt.Sprintf("/communities/%d/comments/%d/", communityID, commentID)
	if err := c.doJSONRequest(ctx, path, &resp); err != nil {
		return "", err
	}
	return resp.Body, nil
}

// FollowCommunity joins a community on behalf of the account.
func (c *Client) FollowCommunity(ctx context.Context, communityID int64) error {
	path := fmt.Sprintf("/communities/%d/follow", communityID)
	return c.doRequest(ctx, requestConfig{
		method: http.MethodPost,
		path:   path,
	}, nil)
}

// TranslatePost requests a machine translation of a post body.
func (c *Client) TranslatePost(ctx context.Context, communityID, postID int64, languageCode string) (string, error) {
	var resp translateResponse
	path := fmt.Sprintf("/communities/%d/posts/%d/translate", communityID, postID)
	query := url.Values{}
	query.Set("languageCode", languageCode)
	err := c.doRequest(ctx, requestConfig{
		method: http.MethodGet,
		path:   path,
		query:  query,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Translation, nil
}

// TranslateComment requests a machine translation of a comment body.
func (c *Client) TranslateComment(ctx context.Context, communityID, commentID int64, languageCode string) (string, error) {
	var resp translateResponse
	path := fmt.Sprintf("/communities/%d/comments/%d/translate", communityID, commentID)
	query := url.Values{}
	query.Set("languageCode", languageCode)
	err := c.doRequest(ctx, requestConfig{
		method: http.MethodGet,
		path:   path,
		query:  query,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Translation, nil
}

// Login exchanges credentials for a token pair. The password must already
// be encrypted with the platform public key. Implements auth.LoginClient.
func (c *Client) Login(ctx context.Context, username, encryptedPassword, deviceID string) (auth.Credentials, error) {
	var resp loginResponse
	err := c.doRequest(ctx, requestConfig{
		method: http.MethodPost,
		path:   "/auth/login/",
		noAuth: true,
		body: map[string]string{
			"grant_type": "password",
			"client_id":  "weverse-test",
			"username":   username,
			"password":   encryptedPassword,
			"device_id":  deviceID,
		},
	}, &resp)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return auth.Credentials{}, auth.ErrLoginFailed
		}
		return auth.Credentials{}, err
	}
	if resp.AccessToken == "" {
		return auth.Credentials{}, auth.ErrLoginFailed
	}
	return auth.Credentials{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, nil
}

// Refresh exchanges a refresh token for a fresh token pair. Implements
// auth.LoginClient.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (auth.Credentials, error) {
	var resp loginResponse
	err := c.doRequest(ctx, requestConfig{
		method: http.MethodPost,
		path:   "/auth/token/",
		noAuth: true,
		body: map[string]string{
			"grant_type":    "refresh_token",
			"client_id":     "weverse-test",
			"refresh_token": refreshToken,
		},
	}, &resp)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return auth.Credentials{}, auth.ErrLoginFailed
		}
		return auth.Credentials{}, err
	}
	if resp.AccessToken == "" {
		return auth.Credentials{}, auth.ErrLoginFailed
	}
	return auth.Credentials{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, nil
}
