package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Deepthi1510/department-association/internal/model"
)

// ErrActivityNotFound is returned when an activity cannot be found.
var ErrActivityNotFound = errors.New("activity not found")

// ActivityRepo encapsulates CRUD queries for activities. The cached
// participant_count column is written here only on create/update of
// the activity itself; during registration traffic it is owned by
// RegistrationRepo's transactional recount.
type ActivityRepo struct {
	db *sql.DB
}

// NewActivityRepo constructs an ActivityRepo with the provided DB handle.
func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

// Create inserts a new activity and populates the generated ID. New
// activities start with a zero participant count.
func (r *ActivityRepo) Create(ctx context.Context, a *model.Activity) error {
	const q = `INSERT INTO activity (event_id, activity_name, description, start_time, end_time, participant_count) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.EventID, a.Name, a.Description, a.StartTime, a.EndTime, a.ParticipantCount)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID fetches an activity by ID, returning ErrActivityNotFound on a miss.
func (r *ActivityRepo) GetByID(ctx context.Context, id uint64) (*model.Activity, error) {
	const q = `SELECT activity_id, event_id, activity_name, description, start_time, end_time, participant_count FROM activity WHERE activity_id = ?`
	var a model.Activity
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.EventID, &a.Name, &a.Description, &a.StartTime, &a.EndTime, &a.ParticipantCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns all activities ordered by id.
func (r *ActivityRepo) List(ctx context.Context) ([]model.Activity, error) {
	const q = `SELECT activity_id, event_id, activity_name, description, start_time, end_time, participant_count FROM activity ORDER BY activity_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanActivities(rows)
}

// Update rewrites all mutable columns, returning ErrActivityNotFound
// when no row is affected.
func (r *ActivityRepo) Update(ctx context.Context, a *model.Activity) error {
	const q = `UPDATE activity SET event_id = ?, activity_name = ?, description = ?, start_time = ?, end_time = ?, participant_count = ? WHERE activity_id = ?`
	res, err := r.db.ExecContext(ctx, q, a.EventID, a.Name, a.Description, a.StartTime, a.EndTime, a.ParticipantCount, a.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrActivityNotFound
	}
	return nil
}

// Delete removes an activity, returning ErrActivityNotFound when no
// row is affected.
func (r *ActivityRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM activity WHERE activity_id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrActivityNotFound
	}
	return nil
}
