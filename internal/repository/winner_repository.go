package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Deepthi1510/department-association/internal/model"
)

// ErrWinnerNotFound is returned when a winner record cannot be found.
var ErrWinnerNotFound = errors.New("winner not found")

// WinnerRepo encapsulates queries for activity winners. Winners are
// declared by faculty once an activity concludes.
type WinnerRepo struct {
	db *sql.DB
}

// NewWinnerRepo constructs a WinnerRepo with the provided DB handle.
func NewWinnerRepo(db *sql.DB) *WinnerRepo {
	return &WinnerRepo{db: db}
}

// Create inserts a winner record and populates the generated ID. A
// duplicate (activity_id, position) pair is surfaced as the driver's
// duplicate-key error for the handler to map.
func (r *WinnerRepo) Create(ctx context.Context, w *model.ActivityWinner) error {
	const q = `INSERT INTO activity_winners (activity_id, student_id, position) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, w.ActivityID, w.StudentID, w.Position)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	w.ID = uint64(id)
	return nil
}

// GetByID fetches a winner record, returning ErrWinnerNotFound on a miss.
func (r *WinnerRepo) GetByID(ctx context.Context, id uint64) (*model.ActivityWinner, error) {
	const q = `SELECT winner_id, activity_id, student_id, position FROM activity_winners WHERE winner_id = ?`
	var w model.ActivityWinner
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&w.ID, &w.ActivityID, &w.StudentID, &w.Position); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWinnerNotFound
		}
		return nil, err
	}
	return &w, nil
}

// ListByActivity returns the winners of one activity ordered by position.
func (r *WinnerRepo) ListByActivity(ctx context.Context, activityID uint64) ([]model.ActivityWinner, error) {
	const q = `SELECT winner_id, activity_id, student_id, position FROM activity_winners WHERE activity_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, q, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ActivityWinner, 0)
	for rows.Next() {
		var w model.ActivityWinner
		if err := rows.Scan(&w.ID, &w.ActivityID, &w.StudentID, &w.Position); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites all mutable columns, returning ErrWinnerNotFound
// when no row is affected.
func (r *WinnerRepo) Update(ctx context.Context, w *model.ActivityWinner) error {
	const q = `UPDATE activity_winners SET activity_id = ?, student_id = ?, position = ? WHERE winner_id = ?`
	res, err := r.db.ExecContext(ctx, q, w.ActivityID, w.StudentID, w.Position, w.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWinnerNotFound
	}
	return nil
}

// Delete removes a winner record, returning ErrWinnerNotFound when no
// row is affected.
func (r *WinnerRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM activity_winners WHERE winner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWinnerNotFound
	}
	return nil
}
