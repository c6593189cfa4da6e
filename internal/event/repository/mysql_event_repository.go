// Package repository implements data persistence for events.
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

// MySQLEventRepository implements Event persistence for MySQL databases.
type MySQLEventRepository struct {
	db *sql.DB
}

// NewMySQLEventRepository creates a new MySQL Event repository instance.
func NewMySQLEventRepository(db *sql.DB) *MySQLEventRepository {
	return &MySQLEventRepository{db: db}
}

const mysqlEventColumns = `id, type, origin, target, user_id, created_at, created_by,
			  updated_at, updated_by, deleted_at, deleted_by`

// Create inserts a new event into the MySQL database.
func (m *MySQLEventRepository) Create(ctx context.Context, event *eventDomain.Event) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO events (id, type, origin, target, user_id, created_at, created_by, updated_at, updated_by)
			  VALUES (?, ?, ?, ?, ?, NOW(), ?, NOW(), ?)`

	idBytes, err := uuidBytes(event.ID)
	if err != nil {
		return err
	}
	userIDBytes, err := uuidBytes(event.UserID)
	if err != nil {
		return err
	}
	createdByBytes, err := uuidBytes(event.CreatedBy)
	if err != nil {
		return err
	}
	updatedByBytes, err := uuidBytes(event.UpdatedBy)
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		event.Type,
		event.From,
		event.To,
		userIDBytes,
		createdByBytes,
		updatedByBytes,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create event")
	}
	return nil
}

// GetByID retrieves a non-deleted event by its ID.
func (m *MySQLEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*eventDomain.Event, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlEventColumns + `
			  FROM events
			  WHERE id = ? AND deleted_at IS NULL`

	idBytes, err := uuidBytes(id)
	if err != nil {
		return nil, err
	}

	row := querier.QueryRowContext(ctx, query, idBytes)
	event, err := scanMySQLEvent(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eventDomain.ErrEventNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get event by id")
	}

	return event, nil
}

// ListByUserID retrieves a page of non-deleted events owned by the given user,
// newest first.
func (m *MySQLEventRepository) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*eventDomain.Event, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlEventColumns + `
			  FROM events
			  WHERE user_id = ? AND deleted_at IS NULL
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	userIDBytes, err := uuidBytes(userID)
	if err != nil {
		return nil, err
	}

	rows, err := querier.QueryContext(ctx, query, userIDBytes, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list events")
	}
	defer func() { _ = rows.Close() }()

	events := []*eventDomain.Event{}
	for rows.Next() {
		event, err := scanMySQLEvent(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan event")
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate events")
	}

	return events, nil
}

// Update modifies a non-deleted event and re-stamps updated_at and updated_by.
func (m *MySQLEventRepository) Update(ctx context.Context, event *eventDomain.Event) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE events
			  SET type = ?, origin = ?, target = ?, updated_at = NOW(), updated_by = ?
			  WHERE id = ? AND deleted_at IS NULL`

	updatedByBytes, err := uuidBytes(event.UpdatedBy)
	if err != nil {
		return err
	}
	idBytes, err := uuidBytes(event.ID)
	if err != nil {
		return err
	}

	result, err := querier.ExecContext(ctx, query, event.Type, event.From, event.To, updatedByBytes, idBytes)
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

// SoftDelete stamps deleted_at and deleted_by on an active event in a single
// statement.
func (m *MySQLEventRepository) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE events
			  SET deleted_at = ?, deleted_by = ?
			  WHERE id = ? AND deleted_at IS NULL`

	idBytes, err := uuidBytes(id)
	if err != nil {
		return err
	}
	deletedByBytes, err := uuidBytes(deletedBy)
	if err != nil {
		return err
	}

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), deletedByBytes, idBytes)
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

// uuidBytes converts a UUID to its BINARY(16) representation.
func uuidBytes(id uuid.UUID) ([]byte, error) {
	b, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	return b, nil
}

// scanMySQLEvent scans an event row, converting BINARY(16) columns back to UUIDs.
func scanMySQLEvent(scan func(dest ...any) error) (*eventDomain.Event, error) {
	var event eventDomain.Event
	var idBytes, userIDBytes, createdByBytes, updatedByBytes, deletedByBytes []byte

	err := scan(
		&idBytes,
		&event.Type,
		&event.From,
		&event.To,
		&userIDBytes,
		&event.CreatedAt,
		&createdByBytes,
		&event.UpdatedAt,
		&updatedByBytes,
		&event.DeletedAt,
		&deletedByBytes,
	)
	if err != nil {
		return nil, err
	}

	if event.ID, err = uuid.FromBytes(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal event id")
	}
	if event.UserID, err = uuid.FromBytes(userIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}
	if event.CreatedBy, err = uuid.FromBytes(createdByBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal created_by")
	}
	if event.UpdatedBy, err = uuid.FromBytes(updatedByBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal updated_by")
	}
	if deletedByBytes != nil {
		deletedBy, err := uuid.FromBytes(deletedByBytes)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal deleted_by")
		}
		event.DeletedBy = &deletedBy
	}

	return &event, nil
}
