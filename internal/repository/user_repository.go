package repository

import (
	"context"
	"database/sql"

	"github.com/Deepthi1510/department-association/internal/model"
	"github.com/Deepthi1510/department-association/internal/utils"
)

// UserRepo encapsulates queries for login accounts. Accounts live in
// the users table; the stored role string always round-trips through
// model.ParseRole so an unknown value in the database surfaces as an
// error instead of an unauthorized fall-through.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the provided DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create hashes the password with bcrypt at the given cost and
// inserts the account. A username collision yields ErrUserExists.
func (r *UserRepo) Create(ctx context.Context, username, password string, role model.Role, principalID uint64, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	const q = `INSERT INTO users (username, password_hash, role, principal_id) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, username, hash, role.String(), principalID)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrUserExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches an account by login name. It returns
// sql.ErrNoRows when the username is unknown; callers should treat
// that the same as a bad password to avoid leaking which usernames
// exist.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `SELECT id, username, password_hash, role, principal_id, created_at FROM users WHERE username = ?`
	var (
		u       model.User
		rawRole string
	)
	if err := r.db.QueryRowContext(ctx, q, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &rawRole, &u.PrincipalID, &u.CreatedAt); err != nil {
		return nil, err
	}
	role, err := model.ParseRole(rawRole)
	if err != nil {
		return nil, err
	}
	u.Role = role
	return &u, nil
}

// GetByID fetches an account by primary key. Used by the /me endpoint.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT id, username, password_hash, role, principal_id, created_at FROM users WHERE id = ?`
	var (
		u       model.User
		rawRole string
	)
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Username, &u.PasswordHash, &rawRole, &u.PrincipalID, &u.CreatedAt); err != nil {
		return nil, err
	}
	role, err := model.ParseRole(rawRole)
	if err != nil {
		return nil, err
	}
	u.Role = role
	return &u, nil
}
