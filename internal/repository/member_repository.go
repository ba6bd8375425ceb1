package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Deepthi1510/department-association/internal/model"
)

// ErrMemberNotFound is returned when an association member cannot be found.
var ErrMemberNotFound = errors.New("association member not found")

// MemberRepo encapsulates queries for association memberships.
type MemberRepo struct {
	db *sql.DB
}

// NewMemberRepo constructs a MemberRepo with the provided DB handle.
func NewMemberRepo(db *sql.DB) *MemberRepo {
	return &MemberRepo{db: db}
}

// Create inserts a membership row and populates the generated ID.
func (r *MemberRepo) Create(ctx context.Context, m *model.AssociationMember) error {
	const q = `INSERT INTO association_members (assoc_id, student_id, role, joined_date) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.AssociationID, m.StudentID, m.Role, m.JoinedDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches a membership row, returning ErrMemberNotFound on a miss.
func (r *MemberRepo) GetByID(ctx context.Context, id uint64) (*model.AssociationMember, error) {
	const q = `SELECT member_id, assoc_id, student_id, role, joined_date FROM association_members WHERE member_id = ?`
	var m model.AssociationMember
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.AssociationID, &m.StudentID, &m.Role, &m.JoinedDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListByAssociation returns the members of one association ordered by id.
func (r *MemberRepo) ListByAssociation(ctx context.Context, assocID uint64) ([]model.AssociationMember, error) {
	const q = `SELECT member_id, assoc_id, student_id, role, joined_date FROM association_members WHERE assoc_id = ? ORDER BY member_id`
	rows, err := r.db.QueryContext(ctx, q, assocID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.AssociationMember, 0)
	for rows.Next() {
		var m model.AssociationMember
		if err := rows.Scan(&m.ID, &m.AssociationID, &m.StudentID, &m.Role, &m.JoinedDate); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AssociationForStudent returns the association a student belongs to.
// Students with no membership yield ErrMemberNotFound. When a student
// somehow belongs to several associations the lowest member_id wins.
func (r *MemberRepo) AssociationForStudent(ctx context.Context, studentID uint64) (*model.AssociationMember, error) {
	const q = `SELECT member_id, assoc_id, student_id, role, joined_date FROM association_members WHERE student_id = ? ORDER BY member_id LIMIT 1`
	var m model.AssociationMember
	if err := r.db.QueryRowContext(ctx, q, studentID).Scan(&m.ID, &m.AssociationID, &m.StudentID, &m.Role, &m.JoinedDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Update rewrites all mutable columns, returning ErrMemberNotFound
// when no row is affected.
func (r *MemberRepo) Update(ctx context.Context, m *model.AssociationMember) error {
	const q = `UPDATE association_members SET assoc_id = ?, student_id = ?, role = ?, joined_date = ? WHERE member_id = ?`
	res, err := r.db.ExecContext(ctx, q, m.AssociationID, m.StudentID, m.Role, m.JoinedDate, m.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// Delete removes a membership row, returning ErrMemberNotFound when
// no row is affected.
func (r *MemberRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM association_members WHERE member_id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMemberNotFound
	}
	return nil
}
