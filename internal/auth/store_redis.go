// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/hikari/internal/platform/apperr"
	"github.com/taibuivan/hikari/internal/platform/constants"
)

// # Redis Session Store

// redisSessionStore implements the [SessionStore] interface on Redis.
// Redis's TTL handling doubles as session expiry, so no sweeper runs.
type redisSessionStore struct {
	client *redis.Client
}

// NewSessionStore constructs a Redis backed session store.
func NewSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

// sessionKey namespaces a token hash into the session keyspace.
func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

/*
Save binds a token hash to a user for the given duration.
*/
func (store *redisSessionStore) Save(context context.Context, tokenHash, userID string, ttl time.Duration) error {

	if err := store.client.Set(context, sessionKey(tokenHash), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to save session: %w", err)
	}

	return nil
}

/*
Resolve returns the user bound to a token hash.
*/
func (store *redisSessionStore) Resolve(context context.Context, tokenHash string) (string, error) {

	userID, err := store.client.Get(context, sessionKey(tokenHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.Unauthorized("Invalid or expired refresh token")
		}
		return "", fmt.Errorf("redis: failed to resolve session: %w", err)
	}

	return userID, nil
}

/*
Revoke removes a session. Revoking an absent session is not an error.
*/
func (store *redisSessionStore) Revoke(context context.Context, tokenHash string) error {

	if err := store.client.Del(context, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("redis: failed to revoke session: %w", err)
	}

	return nil
}
