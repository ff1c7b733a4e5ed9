// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // OAEP-SHA1 is the remote login contract, not a local integrity choice
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"sync"
)

// PasswordEncrypter transforms a plaintext password before it enters the
// login payload. The transform shields the payload from passive observation;
// it is not an authentication step.
type PasswordEncrypter func(password string) (string, error)

// platformPublicKeyPEM is the RSA public key bundled with the official web
// client. The login endpoint only accepts passwords encrypted against it.
const platformPublicKeyPEM = `-----BEGIN PUBLIC KEY-----
MIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEAoDAb3VT878h3Hb7nmczH
8jl/UChDmxNOD3/9u80WnNPwkSAlyL2YYsLyyPnUxy2vjDnpoFdHEW5cOKojFk6L
F3MkZThxSKtWcWLTbMv+0DnnysZtPAKksLYUog+IpTA/pL58v3hk+aY2tGSnU+gK
kreGYmUJRW58IKtICOQnR5NWxXRnoio/9wfPpne2dfA1PAnhZ6WZGc2LhLNvf6g8
8td1oKgDnHIc8Wjd1sqiE1lzLGEg1D9Gl83OOulRvazdcxzEHibxXS8ZylpRkWf3
1f0JAl8cXi70A1ThtVhK8+1NIH3TwdOeilY4Ux+zAAt10d0rClxnBMYKQLOTGAbf
AwIDAQAB
-----END PUBLIC KEY-----`

var (
	platformKeyOnce sync.Once
	platformKey     *rsa.PublicKey
	platformKeyErr  error
)

// PlatformEncrypter returns the default encrypter using the bundled
// platform public key.
func PlatformEncrypter() PasswordEncrypter {
	return func(password string) (string, error) {
		platformKeyOnce.Do(func() {
			platformKey, platformKeyErr = parsePublicKey([]byte(platformPublicKeyPEM))
		})
		if platformKeyErr != nil {
			return "", platformKeyErr
		}
		return encryptOAEP(platformKey, password)
	}
}

// KeyEncrypter returns an encrypter for an explicit PEM public key.
// Used by tests and by deployments that pin a rotated platform key.
func KeyEncrypter(pemKey []byte) (PasswordEncrypter, error) {
	key, err := parsePublicKey(pemKey)
	if err != nil {
		return nil, err
	}
	return func(password string) (string, error) {
		return encryptOAEP(key, password)
	}, nil
}

func parsePublicKey(pemKey []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, fmt.Errorf("auth: no PEM block in public key")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("auth: parse public key: %w", err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("auth: public key is not RSA")
	}
	return key, nil
}

func encryptOAEP(key *rsa.PublicKey, password string) (string, error) {
	ciphertext, err := rsa.EncryptOAEP(sha1.New(), rand.Reader, key, []byte(password), nil)
	if err != nil {
		return "", fmt.Errorf("auth: encrypt password: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
