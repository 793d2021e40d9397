// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given identifier.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByLogin returns the account whose username or email matches the
		given login value.
	*/
	FindByLogin(context context.Context, login string) (*User, error)

	/*
		Create persists a brand-new account.

		Returns:
		  - error: apperr.Conflict when the username or email is taken
	*/
	Create(context context.Context, user *User) error

	/*
		TouchLastLogin stamps the account's last successful login time.
	*/
	TouchLastLogin(context context.Context, userID string) error

	/*
		AdminExists reports whether any admin account is present.
	*/
	AdminExists(context context.Context) (bool, error)
}

// # Session Data Access

/*
SessionStore defines the volatile storage contract for refresh-token
sessions. Keys are token hashes, never raw tokens; expiry is enforced by
the store's TTL.
*/
type SessionStore interface {

	/*
		Save binds a token hash to a user for the given duration.
	*/
	Save(context context.Context, tokenHash, userID string, ttl time.Duration) error

	/*
		Resolve returns the user bound to a token hash.

		Returns:
		  - string: UserID
		  - error: apperr.Unauthorized when the session is absent or expired
	*/
	Resolve(context context.Context, tokenHash string) (string, error)

	/*
		Revoke removes a session. Revoking an absent session is not an error.
	*/
	Revoke(context context.Context, tokenHash string) error
}
