// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package auth

import "errors"

var (
	// ErrInvalidCredentials means neither a token nor a username/password
	// pair was supplied. Terminal; the caller must supply credentials and
	// retry the whole cache build.
	ErrInvalidCredentials = errors.New("auth: no token or username/password supplied")

	// ErrLoginFailed means the remote login endpoint rejected the
	// credentials. Propagated to every waiter of the in-flight login.
	ErrLoginFailed = errors.New("auth: login rejected by remote")

	// ErrLoginTimeout means an in-flight login did not resolve within the
	// wait budget.
	ErrLoginTimeout = errors.New("auth: login did not complete in time")

	// ErrInvalidToken means the bearer token is unusable and no recovery
	// path (refresh, re-login) succeeded.
	ErrInvalidToken = errors.New("auth: bearer token rejected")
)
