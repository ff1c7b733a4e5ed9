// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package weverse

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
)

// staticTokens is a TokenSource with a fixed token and a counter of
// MarkExpired calls. EnsureValid optionally swaps in a second token.
type staticTokens struct {
	token    string
	next     string
	expired  atomic.Int32
	validErr error
}

func (s *staticTokens) Token() string { return s.token }

func (s *staticTokens) MarkExpired() { s.expired.Add(1) }

func (s *staticTokens) EnsureValid(_ context.Context) error {
	if s.validErr != nil {
		return s.validErr
	}
	if s.next != "" {
		s.token = s.next
	}
	return nil
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *staticTokens, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := &staticTokens{token: "tok-1"}
	client := NewClient(Options{BaseURL: srv.URL, Tokens: tokens})
	return client, tokens, srv
}

func checkNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"communities":[{"id":1,"name":"dreamcatcher"}]}`)) //nolint:errcheck
	}))

	communities, err := client.Communities(context.Background())
	checkNoError(t, err)

	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization header: expected %q, got %q", "Bearer tok-1", gotAuth)
	}
	if len(communities) != 1 || communities[0].ID != 1 || communities[0].Name != "dreamcatcher" {
		t.Errorf("unexpected communities payload: %+v", communities)
	}
}

func TestClientNotFound(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.Post(context.Background(), 1, 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientUnauthorizedRetriesOnce(t *testing.T) {
	var calls atomic.Int32
	var secondAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		secondAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"notifications":[{"id":7,"message":"hi"}]}`)) //nolint:errcheck
	})
	client, tokens, _ := newTestClient(t, handler)
	tokens.next = "tok-2"

	notifs, err := client.Notifications(context.Background())
	checkNoError(t, err)

	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 requests, got %d", got)
	}
	if got := tokens.expired.Load(); got != 1 {
		t.Errorf("expected 1 MarkExpired call, got %d", got)
	}
	if secondAuth != "Bearer tok-2" {
		t.Errorf("retry Authorization header: expected %q, got %q", "Bearer tok-2", secondAuth)
	}
	if len(notifs) != 1 || notifs[0].ID != 7 {
		t.Errorf("unexpected notifications payload: %+v", notifs)
	}
}

func TestClientUnauthorizedTwiceGivesUp(t *testing.T) {
	client, tokens, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	tokens.next = "tok-2"

	_, err := client.Notifications(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := tokens.expired.Load(); got != 1 {
		t.Errorf("expected 1 MarkExpired call, got %d", got)
	}
}

func TestClientUnauthorizedRecoveryFailure(t *testing.T) {
	client, tokens, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	wantErr := errors.New("no credentials")
	tokens.validErr = wantErr

	_, err := client.Notifications(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected recovery error, got %v", err)
	}
}

func TestClientServerErrorSurfacesTransportFailure(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Communities(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response, got nil")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("500 must not map to ErrNotFound")
	}
}

func TestClientPaginationCursor(t *testing.T) {
	var gotFrom string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFrom = r.URL.Query().Get("from")
		w.Write([]byte(`{"posts":[{"id":10}],"isEnded":true,"lastId":10}`)) //nolint:errcheck
	}))

	page, err := client.ArtistTabPosts(context.Background(), 14, 999)
	checkNoError(t, err)

	if gotFrom != "999" {
		t.Errorf("from cursor: expected %q, got %q", "999", gotFrom)
	}
	if !page.IsEnded || page.LastID != 10 || len(page.Posts) != 1 {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestClientFirstPageOmitsCursor(t *testing.T) {
	var hadFrom bool
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hadFrom = r.URL.Query().Has("from")
		w.Write([]byte(`{"posts":[],"isEnded":true,"lastId":0}`)) //nolint:errcheck
	}))

	_, err := client.ArtistTabPosts(context.Background(), 14, 0)
	checkNoError(t, err)

	if hadFrom {
		t.Error("first page request must not carry a from cursor")
	}
}

func TestClientPostAuthorshipEnvelope(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"posts":[{"id":10,"communityUser":{"id":99,"artistId":5}}],"isEnded":true,"lastId":10}`)) //nolint:errcheck
	}))

	page, err := client.ArtistTabPosts(context.Background(), 14, 0)
	checkNoError(t, err)

	if len(page.Posts) != 1 {
		t.Fatalf("expected one post, got %d", len(page.Posts))
	}
	if got := page.Posts[0].CommunityUser; got.ID != 99 || got.ArtistID != 5 {
		t.Errorf("authorship must decode from the nested communityUser object, got %+v", got)
	}
}

func TestClientMediaUnwrapsEnvelope(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"media":{"id":55,"type":"PHOTO","title":"behind"}}`)) //nolint:errcheck
	}))

	media, err := client.Media(context.Background(), 14, 55)
	checkNoError(t, err)

	if media.ID != 55 || media.Type != "PHOTO" || media.Title != "behind" {
		t.Errorf("unexpected media payload: %+v", media)
	}
}

func TestClientAnnouncementsUnwrapsList(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/communities/14/notices/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"notices":[{"id":7,"title":"Fan sign"},{"id":6,"title":"Membership"}]}`)) //nolint:errcheck
	}))

	notices, err := client.Announcements(context.Background(), 14)
	checkNoError(t, err)

	if len(notices) != 2 || notices[0].ID != 7 || notices[1].Title != "Membership" {
		t.Errorf("unexpected notices: %+v", notices)
	}
}

func TestClientHasNewNotifications(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"has_new":true}`)) //nolint:errcheck
	}))

	hasNew, err := client.HasNewNotifications(context.Background())
	checkNoError(t, err)
	if !hasNew {
		t.Error("expected has_new to be reported")
	}
}

func TestClientLogin(t *testing.T) {
	var gotBody map[string]string
	var gotAuth string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := decodeJSONBody(r, &gotBody); err != nil {
			t.Errorf("decode login body: %v", err)
		}
		w.Write([]byte(`{"accessToken":"at-new","refreshToken":"rt-new"}`)) //nolint:errcheck
	}))

	creds, err := client.Login(context.Background(), "fan@example.com", "enc:pw", "device-1")
	checkNoError(t, err)

	if gotAuth != "" {
		t.Errorf("login must not send Authorization, got %q", gotAuth)
	}
	if gotBody["username"] != "fan@example.com" || gotBody["password"] != "enc:pw" || gotBody["device_id"] != "device-1" {
		t.Errorf("unexpected login body: %+v", gotBody)
	}
	if creds.AccessToken != "at-new" || creds.RefreshToken != "rt-new" {
		t.Errorf("unexpected credentials: %+v", creds)
	}
}

func TestClientLoginRejected(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Login(context.Background(), "fan@example.com", "enc:bad", "device-1")
	if err == nil {
		t.Fatal("expected login error, got nil")
	}
}

func TestClientCheckTokenTreatsBodyAsOptional(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.CheckToken(context.Background()); err != nil {
		t.Fatalf("CheckToken: %v", err)
	}
}

func decodeJSONBody(r *http.Request, into *map[string]string) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(into)
}
