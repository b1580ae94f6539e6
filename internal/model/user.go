package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. JSON tags are applied only to fields that are safe to
// return to clients; the password hash is never serialized.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Class        – the school class the user belongs to.
//  Role         – role name, either "user" or "admin".
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Class        string    `json:"class"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"-"`
}

// Role values accepted in the users.role column and in token claims.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
