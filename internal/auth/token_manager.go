// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

// Package auth owns the bearer-token lifecycle for the Weverse API: login
// with username/password, silent refresh, and the waiting contract for
// callers that need an authenticated token while a login is in flight.
//
// State machine:
//
//	NoCredentials -> LoggingIn -> Authenticated -> (TokenExpired -> Refreshing -> Authenticated)*
//
// Credentials are an immutable snapshot swapped atomically under the manager
// lock; callers always observe a consistent access/refresh token pair.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tomtom215/weversync/internal/logging"
)

// State is the token lifecycle state.
type State int

const (
	// StateNoCredentials: no token and no login dispatched yet.
	StateNoCredentials State = iota
	// StateLoggingIn: a login request is in flight.
	StateLoggingIn
	// StateAuthenticated: access and refresh tokens are set and assumed
	// valid until a 401 marks them expired.
	StateAuthenticated
	// StateTokenExpired: a 401 response invalidated the access token.
	StateTokenExpired
	// StateRefreshing: a silent refresh or re-login is in flight.
	StateRefreshing
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	switch s {
	case StateNoCredentials:
		return "no_credentials"
	case StateLoggingIn:
		return "logging_in"
	case StateAuthenticated:
		return "authenticated"
	case StateTokenExpired:
		return "token_expired"
	case StateRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// Credentials is an immutable access/refresh token snapshot.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// LoginClient performs the remote login and refresh calls. Implemented by
// the weverse API client; abstracted here so the manager carries no HTTP
// concerns.
type LoginClient interface {
	// Login exchanges username + encrypted password for credentials.
	// DeviceID accompanies the payload for remote device tracking.
	Login(ctx context.Context, username, encryptedPassword, deviceID string) (Credentials, error)

	// Refresh exchanges a refresh token for fresh credentials.
	Refresh(ctx context.Context, refreshToken string) (Credentials, error)
}

// DefaultLoginTimeout bounds WaitForLogin when Options leaves it zero.
const DefaultLoginTimeout = 15 * time.Second

// Options configures a TokenManager.
type Options struct {
	// Token is a pre-obtained bearer token. When set, the manager starts
	// authenticated and username/password are only a re-login fallback.
	Token string

	// Username and Password are the login credentials.
	Username string
	Password string

	// LoginTimeout bounds WaitForLogin. Default: DefaultLoginTimeout.
	LoginTimeout time.Duration

	// Client performs the remote calls. Required for login/refresh paths.
	Client LoginClient

	// Encrypter transforms the password before it enters the login payload.
	// Default: PlatformEncrypter (RSA-OAEP with the bundled platform key).
	Encrypter PasswordEncrypter
}

// TokenManager mediates concurrent access to the bearer token during
// (re)authentication.
type TokenManager struct {
	mu       sync.Mutex
	state    State
	creds    Credentials
	username string
	password string
	deviceID string
	timeout  time.Duration
	client   LoginClient
	encrypt  PasswordEncrypter

	// loginDone is closed when the in-flight login resolves; loginErr holds
	// the terminal error, nil on success. Replaced per attempt.
	loginDone chan struct{}
	loginErr  error
}

// NewTokenManager creates a TokenManager from Options.
func NewTokenManager(opts Options) *TokenManager {
	tm := &TokenManager{
		username: opts.Username,
		password: opts.Password,
		deviceID: uuid.NewString(),
		timeout:  opts.LoginTimeout,
		client:   opts.Client,
		encrypt:  opts.Encrypter,
	}
	if tm.timeout <= 0 {
		tm.timeout = DefaultLoginTimeout
	}
	if tm.encrypt == nil {
		tm.encrypt = PlatformEncrypter()
	}
	if opts.Token != "" {
		tm.creds = Credentials{AccessToken: opts.Token}
		tm.state = StateAuthenticated
	}
	return tm
}

// SetClient installs the login client after construction. The token manager
// and the API client reference each other, so one side has to be wired in a
// second step.
func (tm *TokenManager) SetClient(client LoginClient) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.client = client
}

// HasCredentials reports whether a token or a username/password pair was
// supplied. When false, every authenticated operation fails with
// ErrInvalidCredentials.
func (tm *TokenManager) HasCredentials() bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.creds.AccessToken != "" || (tm.username != "" && tm.password != "")
}

// State returns the current lifecycle state.
func (tm *TokenManager) State() State {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.state
}

// Token returns the current access token ("" when unauthenticated).
func (tm *TokenManager) Token() string {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.creds.AccessToken
}

// TokenUsable reports whether the current access token looks usable: set,
// and, when it parses as a JWT, not past its exp claim. Opaque tokens are
// assumed usable; the authenticated probe call is the authority.
func (tm *TokenManager) TokenUsable() bool {
	tm.mu.Lock()
	token := tm.creds.AccessToken
	state := tm.state
	tm.mu.Unlock()

	if token == "" || state == StateTokenExpired {
		return false
	}
	exp, ok := tokenExpiry(token)
	if !ok {
		return true
	}
	return time.Now().Before(exp)
}

// tokenExpiry extracts the exp claim without signature verification. The
// client holds no signing key; expiry is the only claim consulted.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// BeginLogin dispatches a fire-and-forget login. Callers that need the
// result block on WaitForLogin. Returns ErrInvalidCredentials when no
// username/password pair is available; a no-op when a login is already in
// flight.
func (tm *TokenManager) BeginLogin(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.username == "" || tm.password == "" {
		return ErrInvalidCredentials
	}
	if tm.state == StateLoggingIn {
		return nil
	}

	tm.state = StateLoggingIn
	tm.loginDone = make(chan struct{})
	tm.loginErr = nil
	done := tm.loginDone

	go tm.login(ctx, done)
	return nil
}

// login performs the remote login and resolves the waiters. Runs without
// the lock held during I/O.
func (tm *TokenManager) login(ctx context.Context, done chan struct{}) {
	encrypted, err := tm.encrypt(tm.password)
	if err != nil {
		tm.resolveLogin(done, Credentials{}, fmt.Errorf("%w: encrypt password: %w", ErrLoginFailed, err))
		return
	}

	creds, err := tm.client.Login(ctx, tm.username, encrypted, tm.deviceID)
	if err != nil {
		tm.resolveLogin(done, Credentials{}, fmt.Errorf("%w: %w", ErrLoginFailed, err))
		return
	}
	tm.resolveLogin(done, creds, nil)
}

// resolveLogin swaps in the credential snapshot and releases the waiters.
func (tm *TokenManager) resolveLogin(done chan struct{}, creds Credentials, err error) {
	tm.mu.Lock()
	if err != nil {
		tm.state = StateNoCredentials
		tm.loginErr = err
		logging.Warn().Err(err).Msg("Login failed")
	} else {
		tm.creds = creds
		tm.state = StateAuthenticated
		logging.Info().Msg("Login complete")
	}
	tm.mu.Unlock()
	close(done)
}

// WaitForLogin blocks until the in-flight login resolves, the configured
// timeout elapses (ErrLoginTimeout), or ctx is canceled. Returns nil
// immediately when already authenticated.
func (tm *TokenManager) WaitForLogin(ctx context.Context) error {
	tm.mu.Lock()
	state := tm.state
	done := tm.loginDone
	tm.mu.Unlock()

	if state == StateAuthenticated {
		return nil
	}
	if done == nil {
		return ErrInvalidCredentials
	}

	timer := time.NewTimer(tm.timeout)
	defer timer.Stop()

	select {
	case <-done:
		tm.mu.Lock()
		defer tm.mu.Unlock()
		return tm.loginErr
	case <-timer.C:
		return ErrLoginTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// MarkExpired records a 401 response against the current token. The next
// EnsureValid call attempts recovery.
func (tm *TokenManager) MarkExpired() {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.state == StateAuthenticated {
		tm.state = StateTokenExpired
		logging.Debug().Msg("Access token marked expired")
	}
}

// EnsureValid recovers an expired token: silent refresh when a refresh
// token exists, full re-login with the stored username/password otherwise.
// The caller retries its original call exactly once after a nil return. A
// failed recovery surfaces as ErrLoginFailed (or ErrInvalidToken when no
// recovery path exists), addressed to the caller of the original call.
func (tm *TokenManager) EnsureValid(ctx context.Context) error {
	tm.mu.Lock()
	if tm.state == StateAuthenticated {
		tm.mu.Unlock()
		return nil
	}
	if tm.state == StateLoggingIn || tm.state == StateRefreshing {
		tm.mu.Unlock()
		return tm.WaitForLogin(ctx)
	}

	refreshToken := tm.creds.RefreshToken
	canRelogin := tm.username != "" && tm.password != ""
	if refreshToken == "" && !canRelogin {
		tm.mu.Unlock()
		return ErrInvalidToken
	}

	// One done channel per recovery attempt, shared by the refresh and
	// re-login paths, so a concurrent EnsureValid waits on this attempt
	// instead of a stale (or nil) channel from an earlier login.
	done := make(chan struct{})
	tm.state = StateRefreshing
	tm.loginDone = done
	tm.loginErr = nil
	tm.mu.Unlock()

	if refreshToken != "" {
		creds, err := tm.client.Refresh(ctx, refreshToken)
		if err == nil {
			tm.mu.Lock()
			tm.creds = creds
			tm.state = StateAuthenticated
			tm.mu.Unlock()
			close(done)
			logging.Debug().Msg("Token refreshed")
			return nil
		}
		logging.Warn().Err(err).Msg("Token refresh failed")
		if !canRelogin {
			wrapped := fmt.Errorf("%w: %w", ErrLoginFailed, err)
			tm.mu.Lock()
			tm.state = StateTokenExpired
			tm.loginErr = wrapped
			tm.mu.Unlock()
			close(done)
			return wrapped
		}
	}

	// Full re-login path.
	tm.mu.Lock()
	tm.state = StateLoggingIn
	tm.mu.Unlock()

	tm.login(ctx, done)
	return tm.WaitForLogin(ctx)
}
