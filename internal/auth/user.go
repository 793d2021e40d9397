// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements user identity and session management.

It covers account registration, credential verification, and the token
pair lifecycle: short-lived RS256 access tokens plus long-lived refresh
tokens stored hashed in Redis and rotated on every refresh.

# Architecture

  - Service: Orchestrates registration, login, refresh and bootstrap.
  - UserRepository: PostgreSQL account storage.
  - SessionStore: Redis-backed refresh-token sessions.
*/
package auth

import (
	"time"

	"github.com/taibuivan/hikari/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Hikari platform.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Never serialized.
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	AvatarURL    string       `json:"avatar_url,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// # Token Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// Short to limit the blast radius of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is how long a refresh-token session survives in Redis.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32
)
