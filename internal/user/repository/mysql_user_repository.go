// Package repository provides data persistence implementations for user entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/analytics/internal/database"
	"github.com/allisson/analytics/internal/user/domain"

	apperrors "github.com/allisson/analytics/internal/errors"
)

// MySQLUserRepository handles user persistence for MySQL
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, email, password, created_at, updated_at)
			  VALUES (?, ?, ?, ?, NOW(), NOW())`

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, uuidBytes, user.Username, user.Email, user.Password)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return mapUniqueViolation(err)
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a non-deleted user by ID
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, password, created_at, updated_at
			  FROM users WHERE id = ? AND deleted_at IS NULL`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return r.scanUser(querier.QueryRowContext(ctx, query, uuidBytes), "failed to get user by id")
}

// GetByUsername retrieves a non-deleted user by username
func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, password, created_at, updated_at
			  FROM users WHERE username = ? AND deleted_at IS NULL`

	return r.scanUser(querier.QueryRowContext(ctx, query, username), "failed to get user by username")
}

// ListAll retrieves a page of non-deleted users, newest first.
func (r *MySQLUserRepository) ListAll(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, password, created_at, updated_at
			  FROM users
			  WHERE deleted_at IS NULL
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer func() { _ = rows.Close() }()

	users := []*domain.User{}
	for rows.Next() {
		var user domain.User
		var idBytes []byte

		err := rows.Scan(&idBytes, &user.Username, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}

		id, err := uuid.FromBytes(idBytes)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		user.ID = id

		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}

	return users, nil
}

// SoftDelete stamps deleted_at on an active user in a single statement. The
// deleted_at IS NULL predicate means a second delete affects no rows. The row
// is never removed, so the username and email stay reserved.
func (r *MySQLUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users
			  SET deleted_at = ?
			  WHERE id = ? AND deleted_at IS NULL`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), uuidBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to soft delete user")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read delete result")
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ExistsByUsername reports whether a user with the given username exists.
// Soft-deleted rows still count, so their usernames cannot be claimed again.
func (r *MySQLUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`

	if err := querier.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check username existence")
	}
	return exists, nil
}

// ExistsByEmail reports whether a user with the given email exists,
// soft-deleted rows included.
func (r *MySQLUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`

	if err := querier.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check email existence")
	}
	return exists, nil
}

// scanUser scans a user row, converting the BINARY(16) id column back to a UUID.
func (r *MySQLUserRepository) scanUser(row *sql.Row, wrapMsg string) (*domain.User, error) {
	var user domain.User
	var idBytes []byte

	err := row.Scan(&idBytes, &user.Username, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, wrapMsg)
	}

	id, err := uuid.FromBytes(idBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	user.ID = id

	return &user, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry" for unique constraint violations
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "error 1062")
}
