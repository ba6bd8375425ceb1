package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Deepthi1510/department-association/internal/model"
)

// ErrAdviserNotFound is returned when a faculty adviser link cannot be found.
var ErrAdviserNotFound = errors.New("faculty adviser not found")

// AdviserRepo encapsulates queries for association faculty advisers.
type AdviserRepo struct {
	db *sql.DB
}

// NewAdviserRepo constructs an AdviserRepo with the provided DB handle.
func NewAdviserRepo(db *sql.DB) *AdviserRepo {
	return &AdviserRepo{db: db}
}

// Create inserts an adviser link and populates the generated ID.
func (r *AdviserRepo) Create(ctx context.Context, a *model.FacultyAdviser) error {
	const q = `INSERT INTO association_faculty_advisers (assoc_id, faculty_id, role) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.AssociationID, a.FacultyID, a.Role)
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

// GetByID fetches an adviser link, returning ErrAdviserNotFound on a miss.
func (r *AdviserRepo) GetByID(ctx context.Context, id uint64) (*model.FacultyAdviser, error) {
	const q = `SELECT adviser_id, assoc_id, faculty_id, role FROM association_faculty_advisers WHERE adviser_id = ?`
	var a model.FacultyAdviser
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.AssociationID, &a.FacultyID, &a.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdviserNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByAssociation returns the advisers of one association ordered by id.
func (r *AdviserRepo) ListByAssociation(ctx context.Context, assocID uint64) ([]model.FacultyAdviser, error) {
	const q = `SELECT adviser_id, assoc_id, faculty_id, role FROM association_faculty_advisers WHERE assoc_id = ? ORDER BY adviser_id`
	rows, err := r.db.QueryContext(ctx, q, assocID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.FacultyAdviser, 0)
	for rows.Next() {
		var a model.FacultyAdviser
		if err := rows.Scan(&a.ID, &a.AssociationID, &a.FacultyID, &a.Role); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AdvisesAssociation reports whether the faculty member advises the
// given association. Faculty-side activity management is scoped with
// this check.
func (r *AdviserRepo) AdvisesAssociation(ctx context.Context, facultyID, assocID uint64) (bool, error) {
	const q = `SELECT 1 FROM association_faculty_advisers WHERE faculty_id = ? AND assoc_id = ? LIMIT 1`
	var one int
	if err := r.db.QueryRowContext(ctx, q, facultyID, assocID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Update rewrites all mutable columns, returning ErrAdviserNotFound
// when no row is affected.
func (r *AdviserRepo) Update(ctx context.Context, a *model.FacultyAdviser) error {
	const q = `UPDATE association_faculty_advisers SET assoc_id = ?, faculty_id = ?, role = ? WHERE adviser_id = ?`
	res, err := r.db.ExecContext(ctx, q, a.AssociationID, a.FacultyID, a.Role, a.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAdviserNotFound
	}
	return nil
}

// Delete removes an adviser link, returning ErrAdviserNotFound when
// no row is affected.
func (r *AdviserRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM association_faculty_advisers WHERE adviser_id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAdviserNotFound
	}
	return nil
}
