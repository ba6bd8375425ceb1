package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Deepthi1510/department-association/internal/model"
)

// ErrFacultyNotFound is returned when a faculty member cannot be found.
var ErrFacultyNotFound = errors.New("faculty not found")

// FacultyRepo encapsulates all database queries for faculty members.
type FacultyRepo struct {
	db *sql.DB
}

// NewFacultyRepo constructs a FacultyRepo with the provided DB handle.
func NewFacultyRepo(db *sql.DB) *FacultyRepo {
	return &FacultyRepo{db: db}
}

// Create inserts a new faculty member and populates the generated ID.
func (r *FacultyRepo) Create(ctx context.Context, f *model.Faculty) error {
	const q = `INSERT INTO faculty (f_name, f_email, f_phone, designation) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, f.Name, f.Email, f.Phone, f.Designation)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// GetByID fetches a faculty member by ID, returning ErrFacultyNotFound on a miss.
func (r *FacultyRepo) GetByID(ctx context.Context, id uint64) (*model.Faculty, error) {
	const q = `SELECT faculty_id, f_name, f_email, f_phone, designation FROM faculty WHERE faculty_id = ?`
	var f model.Faculty
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&f.ID, &f.Name, &f.Email, &f.Phone, &f.Designation); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFacultyNotFound
		}
		return nil, err
	}
	return &f, nil
}

// List returns all faculty members ordered by id.
func (r *FacultyRepo) List(ctx context.Context) ([]model.Faculty, error) {
	const q = `SELECT faculty_id, f_name, f_email, f_phone, designation FROM faculty ORDER BY faculty_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Faculty, 0)
	for rows.Next() {
		var f model.Faculty
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.Phone, &f.Designation); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites all mutable columns, returning ErrFacultyNotFound
// when no row is affected.
func (r *FacultyRepo) Update(ctx context.Context, f *model.Faculty) error {
	const q = `UPDATE faculty SET f_name = ?, f_email = ?, f_phone = ?, designation = ? WHERE faculty_id = ?`
	res, err := r.db.ExecContext(ctx, q, f.Name, f.Email, f.Phone, f.Designation, f.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFacultyNotFound
	}
	return nil
}

// Delete removes a faculty member, returning ErrFacultyNotFound when
// no row is affected.
func (r *FacultyRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM faculty WHERE faculty_id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFacultyNotFound
	}
	return nil
}
