// Package repository contains data access logic separated from HTTP handlers.
// This file covers the association table. An association owns events and has
// student members and faculty advisers.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Deepthi1510/department-association/internal/model"
)

// ErrAssociationNotFound is returned when an association cannot be found.
var ErrAssociationNotFound = errors.New("association not found")

// AssociationRepo encapsulates all database queries for associations.
type AssociationRepo struct {
	db *sql.DB
}

// NewAssociationRepo constructs an AssociationRepo with the provided DB handle.
func NewAssociationRepo(db *sql.DB) *AssociationRepo {
	return &AssociationRepo{db: db}
}

// Create inserts a new association. On success the ID field is
// populated with the auto-generated value.
func (r *AssociationRepo) Create(ctx context.Context, a *model.Association) error {
	const q = `INSERT INTO association (assoc_name, establishment_year, department_id, description) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.EstablishmentYear, a.DepartmentID, a.Description)
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

// GetByID fetches an association by its ID. It returns
// ErrAssociationNotFound if no row is found.
func (r *AssociationRepo) GetByID(ctx context.Context, id uint64) (*model.Association, error) {
	const q = `SELECT assoc_id, assoc_name, establishment_year, department_id, description FROM association WHERE assoc_id = ?`
	var a model.Association
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.Name, &a.EstablishmentYear, &a.DepartmentID, &a.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssociationNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns all associations ordered by id.
func (r *AssociationRepo) List(ctx context.Context) ([]model.Association, error) {
	const q = `SELECT assoc_id, assoc_name, establishment_year, department_id, description FROM association ORDER BY assoc_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Association, 0)
	for rows.Next() {
		var a model.Association
		if err := rows.Scan(&a.ID, &a.Name, &a.EstablishmentYear, &a.DepartmentID, &a.Description); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites all mutable columns of an association. It returns
// ErrAssociationNotFound when no row is affected.
func (r *AssociationRepo) Update(ctx context.Context, a *model.Association) error {
	const q = `UPDATE association SET assoc_name = ?, establishment_year = ?, department_id = ?, description = ? WHERE assoc_id = ?`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.EstablishmentYear, a.DepartmentID, a.Description, a.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAssociationNotFound
	}
	return nil
}

// Delete removes an association by id. It returns
// ErrAssociationNotFound when no row is affected.
func (r *AssociationRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM association WHERE assoc_id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAssociationNotFound
	}
	return nil
}
