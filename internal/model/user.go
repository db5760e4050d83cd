package model

import "time"

// Staff roles stored in users.role and carried in the access token.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// User represents a library staff account as stored in the `users`
// table.  Requesters booking seats do not have accounts; only staff log
// in, and only ADMIN staff may clear seats or edit seat metadata.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	Role         – ADMIN or STAFF.
//	IsActive     – whether the account may log in.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
