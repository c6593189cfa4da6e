// Package repository implements data persistence for events.
// Repositories support both PostgreSQL and MySQL. All reads exclude
// soft-deleted rows; deletion stamps deleted_at and deleted_by in a single
// statement so the row is never removed.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/analytics/internal/database"
	eventDomain "github.com/allisson/analytics/internal/event/domain"

	apperrors "github.com/allisson/analytics/internal/errors"
)

// PostgreSQLEventRepository implements Event persistence for PostgreSQL databases.
type PostgreSQLEventRepository struct {
	db *sql.DB
}

// NewPostgreSQLEventRepository creates a new PostgreSQL Event repository instance.
func NewPostgreSQLEventRepository(db *sql.DB) *PostgreSQLEventRepository {
	return &PostgreSQLEventRepository{db: db}
}

const postgresEventColumns = `id, type, origin, target, user_id, created_at, created_by,
			  updated_at, updated_by, deleted_at, deleted_by`

// Create inserts a new event into the PostgreSQL database.
func (p *PostgreSQLEventRepository) Create(ctx context.Context, event *eventDomain.Event) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO events (id, type, origin, target, user_id, created_at, created_by, updated_at, updated_by)
			  VALUES ($1, $2, $3, $4, $5, NOW(), $6, NOW(), $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		event.ID,
		event.Type,
		event.From,
		event.To,
		event.UserID,
		event.CreatedBy,
		event.UpdatedBy,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create event")
	}
	return nil
}

// GetByID retrieves a non-deleted event by its ID.
func (p *PostgreSQLEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*eventDomain.Event, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresEventColumns + `
			  FROM events
			  WHERE id = $1 AND deleted_at IS NULL`

	var event eventDomain.Event
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Type,
		&event.From,
		&event.To,
		&event.UserID,
		&event.CreatedAt,
		&event.CreatedBy,
		&event.UpdatedAt,
		&event.UpdatedBy,
		&event.DeletedAt,
		&event.DeletedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eventDomain.ErrEventNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get event by id")
	}

	return &event, nil
}

// ListByUserID retrieves a page of non-deleted events owned by the given user,
// newest first.
func (p *PostgreSQLEventRepository) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*eventDomain.Event, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresEventColumns + `
			  FROM events
			  WHERE user_id = $1 AND deleted_at IS NULL
			  ORDER BY created_at DESC
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list events")
	}
	defer func() { _ = rows.Close() }()

	events := []*eventDomain.Event{}
	for rows.Next() {
		var event eventDomain.Event
		err := rows.Scan(
			&event.ID,
			&event.Type,
			&event.From,
			&event.To,
			&event.UserID,
			&event.CreatedAt,
			&event.CreatedBy,
			&event.UpdatedAt,
			&event.UpdatedBy,
			&event.DeletedAt,
			&event.DeletedBy,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan event")
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate events")
	}

	return events, nil
}

// Update modifies a non-deleted event and re-stamps updated_at and updated_by.
func (p *PostgreSQLEventRepository) Update(ctx context.Context, event *eventDomain.Event) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE events
			  SET type = $1, origin = $2, target = $3, updated_at = NOW(), updated_by = $4
			  WHERE id = $5 AND deleted_at IS NULL`

	result, err := querier.ExecContext(
		ctx,
		query,
		event.Type,
		event.From,
		event.To,
		event.UpdatedBy,
		event.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update event")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read update result")
	}
	if affected == 0 {
		return eventDomain.ErrEventNotFound
	}
	return nil
}

// SoftDelete stamps deleted_at and deleted_by on an active event. Both fields
// are set in one statement; the deleted_at IS NULL predicate makes the
// operation idempotent-safe, a second delete affects no rows.
func (p *PostgreSQLEventRepository) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE events
			  SET deleted_at = $1, deleted_by = $2
			  WHERE id = $3 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), deletedBy, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to soft delete event")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read delete result")
	}
	if affected == 0 {
		return eventDomain.ErrEventNotFound
	}
	return nil
}
