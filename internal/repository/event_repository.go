package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Deepthi1510/department-association/internal/model"
)

// ErrEventNotFound is returned when an event cannot be found.
var ErrEventNotFound = errors.New("event not found")

// EventRepo encapsulates all database queries for events. Events are
// owned by associations; their participant_count is a cached
// aggregate kept by the association-management surface, not by the
// registration engine.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the provided DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// Create inserts a new event and populates the generated ID.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO event (assoc_id, event_name, event_date, venue, description, participant_count) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.AssociationID, e.Name, e.Date, e.Venue, e.Description, e.ParticipantCount)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// GetByID fetches an event by ID, returning ErrEventNotFound on a miss.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = `SELECT event_id, assoc_id, event_name, event_date, venue, description, participant_count FROM event WHERE event_id = ?`
	var e model.Event
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&e.ID, &e.AssociationID, &e.Name, &e.Date, &e.Venue, &e.Description, &e.ParticipantCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns all events ordered by date.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT event_id, assoc_id, event_name, event_date, venue, description, participant_count FROM event ORDER BY event_date`
	return r.queryEvents(ctx, q)
}

// ListByAssociation returns the events of one association ordered by date.
func (r *EventRepo) ListByAssociation(ctx context.Context, assocID uint64) ([]model.Event, error) {
	const q = `SELECT event_id, assoc_id, event_name, event_date, venue, description, participant_count FROM event WHERE assoc_id = ? ORDER BY event_date`
	return r.queryEvents(ctx, q, assocID)
}

func (r *EventRepo) queryEvents(ctx context.Context, q string, args ...interface{}) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.AssociationID, &e.Name, &e.Date, &e.Venue, &e.Description, &e.ParticipantCount); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites all mutable columns, returning ErrEventNotFound
// when no row is affected.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	const q = `UPDATE event SET assoc_id = ?, event_name = ?, event_date = ?, venue = ?, description = ?, participant_count = ? WHERE event_id = ?`
	res, err := r.db.ExecContext(ctx, q, e.AssociationID, e.Name, e.Date, e.Venue, e.Description, e.ParticipantCount, e.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete removes an event, returning ErrEventNotFound when no row is
// affected.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM event WHERE event_id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}
