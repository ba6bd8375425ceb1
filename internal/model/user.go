package model

import "time"

// User represents an application login record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// may define separate response types with appropriate JSON tags.
// A user always carries a Role and, except for admins, a
// PrincipalID pointing at the student or faculty row the login
// belongs to.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  Role         – role of the account (see Role).
//  PrincipalID  – student_id or faculty_id this login maps to; zero for admins.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	Role         Role      // users.role
	PrincipalID  uint64    // users.principal_id
	CreatedAt    time.Time // users.created_at
}
