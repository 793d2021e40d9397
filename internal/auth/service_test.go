// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hikari/internal/platform/apperr"
	"github.com/taibuivan/hikari/internal/platform/sec"
)

// # Test Doubles

type fakeUsers struct {
	byID        map[string]*User
	adminExists bool
	lastLogins  []string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*User{}}
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (f *fakeUsers) FindByLogin(_ context.Context, login string) (*User, error) {
	for _, user := range f.byID {
		if user.Username == login || strings.EqualFold(user.Email, login) {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUsers) Create(_ context.Context, user *User) error {
	for _, existing := range f.byID {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("Username or email is already registered")
		}
	}
	f.byID[user.ID] = user
	if user.Role == sec.RoleAdmin {
		f.adminExists = true
	}
	return nil
}

func (f *fakeUsers) TouchLastLogin(_ context.Context, userID string) error {
	f.lastLogins = append(f.lastLogins, userID)
	return nil
}

func (f *fakeUsers) AdminExists(_ context.Context) (bool, error) {
	return f.adminExists, nil
}

type fakeSessions struct {
	byHash map[string]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byHash: map[string]string{}}
}

func (f *fakeSessions) Save(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	f.byHash[tokenHash] = userID
	return nil
}

func (f *fakeSessions) Resolve(_ context.Context, tokenHash string) (string, error) {
	userID, ok := f.byHash[tokenHash]
	if !ok {
		return "", apperr.Unauthorized("Invalid or expired refresh token")
	}
	return userID, nil
}

func (f *fakeSessions) Revoke(_ context.Context, tokenHash string) error {
	delete(f.byHash, tokenHash)
	return nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(userID, username, _ string, _ time.Duration) (string, error) {
	return "signed:" + userID + ":" + username, nil
}

func newTestService() (*Service, *fakeUsers, *fakeSessions) {
	users := newFakeUsers()
	sessions := newFakeSessions()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(users, sessions, fakeTokens{}, logger), users, sessions
}

func registerMember(t *testing.T, service *Service, username, password string) *User {
	t.Helper()
	user, err := service.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: password,
	})
	require.NoError(t, err)
	return user
}

// # Registration

/*
TestRegister_NormalizesAndHashes verifies new accounts store a lowercase
username, the member role, and a verifiable bcrypt hash.
*/
func TestRegister_NormalizesAndHashes(t *testing.T) {
	service, users, _ := newTestService()

	user, err := service.Register(context.Background(), RegisterInput{
		Username: "ReaderOne",
		Email:    "reader@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "readerone", user.Username)
	assert.Equal(t, sec.RoleMember, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct horse", user.PasswordHash))
	assert.Len(t, users.byID, 1)
}

/*
TestRegister_DuplicateIdentity verifies a taken username surfaces the
store's conflict.
*/
func TestRegister_DuplicateIdentity(t *testing.T) {
	service, _, _ := newTestService()
	registerMember(t, service, "reader", "first password")

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "reader",
		Email:    "other@example.com",
		Password: "second password",
	})

	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError))
	assert.Equal(t, "CONFLICT", appError.Code)
}

// # Login

/*
TestLogin_IssuesTokenPair verifies a valid login yields an access token,
a stored refresh session, and a last-login stamp.
*/
func TestLogin_IssuesTokenPair(t *testing.T) {
	service, users, sessions := newTestService()
	user := registerMember(t, service, "reader", "correct horse")

	session, err := service.Login(context.Background(), LoginInput{
		Login:    "reader",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "signed:"+user.ID+":reader", session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Len(t, sessions.byHash, 1)
	assert.Equal(t, []string{user.ID}, users.lastLogins)

	// Only the hash may reach the store.
	for hash := range sessions.byHash {
		assert.NotEqual(t, session.RefreshToken, hash)
	}
}

/*
TestLogin_GenericFailureMessage verifies unknown users and wrong
passwords are indistinguishable to the caller.
*/
func TestLogin_GenericFailureMessage(t *testing.T) {
	service, _, _ := newTestService()
	registerMember(t, service, "reader", "correct horse")

	_, unknownErr := service.Login(context.Background(), LoginInput{
		Login: "nobody", Password: "whatever",
	})
	_, wrongErr := service.Login(context.Background(), LoginInput{
		Login: "reader", Password: "wrong horse",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

/*
TestLogin_DisabledAccount verifies deactivated accounts cannot
authenticate even with valid credentials.
*/
func TestLogin_DisabledAccount(t *testing.T) {
	service, users, _ := newTestService()
	user := registerMember(t, service, "reader", "correct horse")
	users.byID[user.ID].IsActive = false

	_, err := service.Login(context.Background(), LoginInput{
		Login: "reader", Password: "correct horse",
	})

	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError))
	assert.Equal(t, "UNAUTHORIZED", appError.Code)
}

// # Refresh Rotation

/*
TestRefreshSession_RotatesToken verifies the presented token is revoked
and its replacement works exactly once.
*/
func TestRefreshSession_RotatesToken(t *testing.T) {
	service, _, sessions := newTestService()
	registerMember(t, service, "reader", "correct horse")

	first, err := service.Login(context.Background(), LoginInput{
		Login: "reader", Password: "correct horse",
	})
	require.NoError(t, err)

	second, err := service.RefreshSession(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Len(t, sessions.byHash, 1)

	// Replaying the original token must fail after rotation.
	_, err = service.RefreshSession(context.Background(), first.RefreshToken)
	require.Error(t, err)
}

/*
TestLogout_Idempotent verifies revoking an unknown token succeeds.
*/
func TestLogout_Idempotent(t *testing.T) {
	service, _, _ := newTestService()

	require.NoError(t, service.Logout(context.Background(), "never-issued"))
}

// # Bootstrap

/*
TestBootstrap_CreatesFirstAdminOnce verifies the setup flow creates one
admin and conflicts afterwards.
*/
func TestBootstrap_CreatesFirstAdminOnce(t *testing.T) {
	service, _, _ := newTestService()

	admin, err := service.Bootstrap(context.Background(), "Admin", "admin@hikari.app", "bootstrap pass")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, admin.Role)
	assert.Equal(t, "admin", admin.Username)

	_, err = service.Bootstrap(context.Background(), "Admin", "admin@hikari.app", "bootstrap pass")

	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError))
	assert.Equal(t, "CONFLICT", appError.Code)
}

/*
TestBootstrap_RequiresConfiguredPassword verifies setup refuses to mint
an admin without a configured password.
*/
func TestBootstrap_RequiresConfiguredPassword(t *testing.T) {
	service, users, _ := newTestService()

	_, err := service.Bootstrap(context.Background(), "admin", "admin@hikari.app", "")
	require.Error(t, err)
	assert.Empty(t, users.byID)
}
