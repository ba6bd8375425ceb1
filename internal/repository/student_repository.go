package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Deepthi1510/department-association/internal/model"
)

// ErrStudentNotFound is returned when a student cannot be found.
var ErrStudentNotFound = errors.New("student not found")

// StudentRepo encapsulates all database queries for students.
type StudentRepo struct {
	db *sql.DB
}

// NewStudentRepo constructs a StudentRepo with the provided DB handle.
func NewStudentRepo(db *sql.DB) *StudentRepo {
	return &StudentRepo{db: db}
}

// Create inserts a new student and populates the generated ID.
func (r *StudentRepo) Create(ctx context.Context, s *model.Student) error {
	const q = `INSERT INTO student (s_name, s_email, phone) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Email, s.Phone)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches a student by ID, returning ErrStudentNotFound on a miss.
func (r *StudentRepo) GetByID(ctx context.Context, id uint64) (*model.Student, error) {
	const q = `SELECT student_id, s_name, s_email, phone FROM student WHERE student_id = ?`
	var s model.Student
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Name, &s.Email, &s.Phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns all students ordered by id.
func (r *StudentRepo) List(ctx context.Context) ([]model.Student, error) {
	const q = `SELECT student_id, s_name, s_email, phone FROM student ORDER BY student_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Student, 0)
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites all mutable columns, returning ErrStudentNotFound
// when no row is affected.
func (r *StudentRepo) Update(ctx context.Context, s *model.Student) error {
	const q = `UPDATE student SET s_name = ?, s_email = ?, phone = ? WHERE student_id = ?`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Email, s.Phone, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// Delete removes a student, returning ErrStudentNotFound when no row
// is affected.
func (r *StudentRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM student WHERE student_id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStudentNotFound
	}
	return nil
}
