// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hikari/internal/platform/apperr"
	"github.com/taibuivan/hikari/internal/platform/database/schema"
	"github.com/taibuivan/hikari/internal/platform/dberr"
	"github.com/taibuivan/hikari/internal/platform/sec"
)

// # PostgreSQL Repository

// userRepository implements the [UserRepository] interface using pgx.
type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed account store.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// accountColumns lists the account columns in scan order.
func accountColumns() string {
	accountTable := schema.UserAccount
	return strings.Join([]string{
		accountTable.ID, accountTable.Username, accountTable.Email,
		accountTable.Password, accountTable.Role, accountTable.IsActive,
		accountTable.LastLoginAt, accountTable.AvatarURL,
		accountTable.CreatedAt, accountTable.UpdatedAt,
	}, ", ")
}

// scanAccount hydrates one account row.
func scanAccount(row pgx.Row) (*User, error) {
	var user User
	var role string
	var avatarURL *string
	err := row.Scan(
		&user.ID, &user.Username, &user.Email,
		&user.PasswordHash, &role, &user.IsActive,
		&user.LastLoginAt, &avatarURL,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres: failed to scan account: %w", err)
	}

	user.Role = sec.UserRole(role)
	if avatarURL != nil {
		user.AvatarURL = *avatarURL
	}
	return &user, nil
}

/*
FindByID returns the account with the given identifier.
*/
func (repository *userRepository) FindByID(context context.Context, id string) (*User, error) {

	accountTable := schema.UserAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns(), accountTable.Table, accountTable.ID)

	return scanAccount(repository.pool.QueryRow(context, query, id))
}

/*
FindByLogin returns the account matching a username or email.

Description: Email comparison is case-insensitive; usernames are stored
lowercase so an exact match suffices.
*/
func (repository *userRepository) FindByLogin(context context.Context, login string) (*User, error) {

	accountTable := schema.UserAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 OR LOWER(%s) = LOWER($1)`,
		accountColumns(), accountTable.Table, accountTable.Username, accountTable.Email)

	return scanAccount(repository.pool.QueryRow(context, query, login))
}

/*
Create persists a brand-new account.
*/
func (repository *userRepository) Create(context context.Context, user *User) error {

	accountTable := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		accountTable.Table,
		accountTable.ID, accountTable.Username, accountTable.Email,
		accountTable.Password, accountTable.Role, accountTable.IsActive)

	_, err := repository.pool.Exec(context, query,
		user.ID, user.Username, user.Email,
		user.PasswordHash, string(user.Role), user.IsActive)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Username or email is already registered")
		}
		return fmt.Errorf("postgres: failed to create account: %w", err)
	}

	return nil
}

/*
TouchLastLogin stamps the account's last successful login time.
*/
func (repository *userRepository) TouchLastLogin(context context.Context, userID string) error {

	accountTable := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1`,
		accountTable.Table, accountTable.LastLoginAt, accountTable.ID)

	if _, err := repository.pool.Exec(context, query, userID); err != nil {
		return fmt.Errorf("postgres: failed to touch last login: %w", err)
	}

	return nil
}

/*
AdminExists reports whether any admin account is present.
*/
func (repository *userRepository) AdminExists(context context.Context) (bool, error) {

	accountTable := schema.UserAccount
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		accountTable.Table, accountTable.Role)

	var exists bool
	if err := repository.pool.QueryRow(context, query, string(sec.RoleAdmin)).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check admin existence: %w", err)
	}

	return exists, nil
}
