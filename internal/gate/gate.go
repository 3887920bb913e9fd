// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gate implements the shared-secret check in front of the chat log
// viewer. This is a UI convenience gate, not authentication: a single
// configured string is compared against the candidate, with no hashing,
// rate limiting, or lockout. Anyone treating it as a security boundary is
// holding it wrong.
package gate

import (
	"crypto/subtle"
	"errors"
)

// ErrNotConfigured is returned when no secret is configured. The log
// viewer stays disabled entirely in that case.
var ErrNotConfigured = errors.New("log password not configured")

// ErrMismatch is returned for an incorrect candidate.
var ErrMismatch = errors.New("incorrect password")

// Gate holds the configured secret and the session-lifetime grant flag.
// The grant is never persisted; a restart always re-locks the viewer.
type Gate struct {
	secret  string
	granted bool
}

// New creates a gate for the configured secret. An empty secret produces a
// gate that always reports ErrNotConfigured.
func New(secret string) *Gate {
	return &Gate{secret: secret}
}

// Configured reports whether a secret is set.
func (g *Gate) Configured() bool {
	return g.secret != ""
}

// Verify checks candidate against the configured secret. On success the
// grant flag is set for the rest of the session. Mismatches may be retried
// without limit.
func (g *Gate) Verify(candidate string) error {
	if g.secret == "" {
		return ErrNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(g.secret)) != 1 {
		return ErrMismatch
	}
	g.granted = true
	return nil
}

// Granted reports whether a prior Verify succeeded this session.
func (g *Gate) Granted() bool {
	return g.granted
}

// Revoke clears the grant flag.
func (g *Gate) Revoke() {
	g.granted = false
}
