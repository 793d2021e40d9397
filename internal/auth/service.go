// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/hikari/internal/platform/apperr"
	"github.com/taibuivan/hikari/internal/platform/sec"
	"github.com/taibuivan/hikari/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for signing access tokens.
// [*sec.TokenService] satisfies it.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements the authentication use cases.
type Service struct {
	users    UserRepository
	sessions SessionStore
	tokens   TokenProvider
	logger   *slog.Logger
}

// NewService constructs a new auth [Service].
func NewService(users UserRepository, sessions SessionStore, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// # Registration

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register hashes the password and persists a new member account.

Description: Usernames are stored lowercase so logins are
case-insensitive. The unique constraints on username and email are the
conflict authority; no pre-check races against them.

Returns:
  - *User: The created account
  - error: apperr.Conflict when the identity is taken
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     strings.ToLower(input.Username),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleMember,
		IsActive:     true,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// # Authentication

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Username or email.
	Password string
}

// Session represents a successfully established token pair.
type Session struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates credentials and issues a token pair.

Description: Lookup failures and wrong passwords share one generic
message to prevent account enumeration. The refresh token leaves this
method exactly once; only its hash is stored.

Returns:
  - *Session: Transport-ready credentials
  - error: apperr.Unauthorized on bad credentials or a disabled account
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {

	user, err := service.users.FindByLogin(context, input.Login)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !user.IsActive {
		return nil, apperr.Unauthorized("Account is disabled")
	}

	session, err := service.issueSession(context, user)
	if err != nil {
		return nil, err
	}

	// Best effort; a failed stamp must not fail the login.
	if err := service.users.TouchLastLogin(context, user.ID); err != nil {
		service.logger.Warn("last_login_stamp_failed",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	return session, nil
}

/*
RefreshSession rotates a refresh token.

Description: The presented token is revoked before its replacement is
issued, so a replayed token dies on second use.

Returns:
  - *Session: Fresh credentials
  - error: apperr.Unauthorized on an unknown or expired token
*/
func (service *Service) RefreshSession(context context.Context, refreshToken string) (*Session, error) {

	tokenHash := sec.HashToken(refreshToken)

	userID, err := service.sessions.Resolve(context, tokenHash)
	if err != nil {
		return nil, err
	}

	if err := service.sessions.Revoke(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth: failed to rotate session: %w", err)
	}

	user, err := service.users.FindByID(context, userID)
	if err != nil || !user.IsActive {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	return service.issueSession(context, user)
}

/*
Logout revokes the presented refresh token. Idempotent.
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	return service.sessions.Revoke(context, sec.HashToken(refreshToken))
}

/*
Me returns the account behind an authenticated request.
*/
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.users.FindByID(context, userID)
}

// issueSession mints the access token and a stored refresh session.
func (service *Service) issueSession(context context.Context, user *User) (*Session, error) {

	accessToken, err := service.tokens.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to sign access token: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to generate refresh token: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	if err := service.sessions.Save(context, sec.HashToken(refreshToken), user.ID, RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth: failed to store session: %w", err)
	}

	return &Session{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # First-Run Bootstrap

/*
Bootstrap creates the platform's first admin account.

Description: Runs at most once per deployment: as soon as any admin
exists the endpoint answers 409 and the configured credentials are never
consulted again.

Returns:
  - *User: The created admin
  - error: apperr.Conflict when an admin already exists,
    apperr.ValidationError when no bootstrap password is configured
*/
func (service *Service) Bootstrap(context context.Context, username, email, password string) (*User, error) {

	exists, err := service.users.AdminExists(context)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Platform is already set up")
	}

	if password == "" {
		return nil, apperr.ValidationError("Admin bootstrap password is not configured")
	}

	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to hash bootstrap password: %w", err)
	}

	admin := &User{
		ID:           uuid.New(),
		Username:     strings.ToLower(username),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleAdmin,
		IsActive:     true,
	}

	if err := service.users.Create(context, admin); err != nil {
		return nil, err
	}

	service.logger.Info("platform_bootstrapped", slog.String("admin_id", admin.ID))

	return admin, nil
}
