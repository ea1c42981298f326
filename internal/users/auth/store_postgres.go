// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kinora/kinora/internal/platform/dberr"
	"github.com/kinora/kinora/internal/platform/sec"
)

// conflictEmailInUse is the user-facing message for unique violations on the
// email column.
const conflictEmailInUse = "Email already in use"

// PostgresUserRepository implements [UserRepository] backed by the
// users.account table.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository constructs a [PostgresUserRepository].
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// selectColumns is the canonical column list for scanning a full User.
const selectColumns = `
	id, email, passwordhash,
	name, COALESCE(firstname, ''), COALESCE(lastname, ''),
	age, COALESCE(avatarurl, ''),
	role, isactive,
	COALESCE(resettoken, ''), resetexpires,
	createdat, updatedat`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var user User
	var role string
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash,
		&user.Name, &user.FirstName, &user.LastName,
		&user.Age, &user.AvatarURL,
		&role, &user.IsActive,
		&user.ResetToken, &user.ResetExpires,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = sec.UserRole(role)
	return &user, nil
}

// FindByID loads a user by primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + selectColumns + ` FROM users.account WHERE id = $1`

	user, err := scanUser(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	return user, nil
}

// FindByEmail loads a user by canonical email. Matching is done on the
// lowercased column so lookups agree with the unique index.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + selectColumns + ` FROM users.account WHERE LOWER(email) = LOWER($1)`

	user, err := scanUser(repository.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	return user, nil
}

// FindByResetToken loads the user holding the given reset token.
func (repository *PostgresUserRepository) FindByResetToken(ctx context.Context, token string) (*User, error) {
	query := `SELECT ` + selectColumns + ` FROM users.account WHERE resettoken = $1`

	user, err := scanUser(repository.pool.QueryRow(ctx, query, token))
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	return user, nil
}

// Create inserts a new account row. A unique violation on the email index is
// surfaced as a 409 Conflict.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users.account (
			id, email, passwordhash,
			name, firstname, lastname,
			age, avatarurl, role, isactive,
			createdat, updatedat
		) VALUES (
			$1, $2, $3,
			$4, NULLIF($5, ''), NULLIF($6, ''),
			$7, NULLIF($8, ''), $9, $10,
			$11, $12
		)`

	_, err := repository.pool.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash,
		user.Name, user.FirstName, user.LastName,
		user.Age, user.AvatarURL, string(user.Role), user.IsActive,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, conflictEmailInUse)
	}
	return nil
}

// Update persists mutable profile fields of an existing account.
func (repository *PostgresUserRepository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users.account SET
			email = $2,
			name = $3,
			firstname = NULLIF($4, ''),
			lastname = NULLIF($5, ''),
			age = $6,
			avatarurl = NULLIF($7, ''),
			role = $8,
			isactive = $9,
			updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query,
		user.ID, user.Email,
		user.Name, user.FirstName, user.LastName,
		user.Age, user.AvatarURL, string(user.Role), user.IsActive,
	)
	if err != nil {
		return dberr.Wrap(err, conflictEmailInUse)
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored hash and clears any pending reset token
// in the same statement. The atomicity here is what makes a reset link
// single-use: a second consume attempt finds no matching token row.
func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query := `
		UPDATE users.account SET
			passwordhash = $2,
			resettoken = NULL,
			resetexpires = NULL,
			updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// SetResetToken stores a reset token and its expiry. Issuing a new token
// overwrites any previous one, so only the latest link works.
func (repository *PostgresUserRepository) SetResetToken(ctx context.Context, userID, token string, expires time.Time) error {
	query := `
		UPDATE users.account SET
			resettoken = $2,
			resetexpires = $3,
			updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, userID, token, expires)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// ClearResetToken removes any pending reset token.
func (repository *PostgresUserRepository) ClearResetToken(ctx context.Context, userID string) error {
	query := `
		UPDATE users.account SET
			resettoken = NULL,
			resetexpires = NULL,
			updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, userID)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Delete removes the account row.
func (repository *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.pool.Exec(ctx, `DELETE FROM users.account WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// ResolveRole implements the middleware RoleResolver contract with a narrow
// query instead of a full row load.
func (repository *PostgresUserRepository) ResolveRole(ctx context.Context, userID string) (sec.UserRole, error) {
	var role string
	err := repository.pool.QueryRow(ctx,
		`SELECT role FROM users.account WHERE id = $1`, userID,
	).Scan(&role)
	if err != nil {
		return "", dberr.Wrap(err, "")
	}
	return sec.UserRole(role), nil
}
