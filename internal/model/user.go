package model

import (
	"time"
)

type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Role         Role      `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type CreateUserParams struct {
	Email        string
	PasswordHash *string
	FirstName    string
	LastName     string
	Role         Role
}

// UserProfilePatch carries the profile fields a user may change about
// themselves. Nil fields are left untouched.
type UserProfilePatch struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (p UserProfilePatch) IsEmpty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil
}

// AdminUserPatch is what an administrator may change on any account.
// Deactivation (IsActive=false) is the terminal state; accounts are never
// hard-deleted.
type AdminUserPatch struct {
	Role     *Role `json:"role"`
	IsActive *bool `json:"is_active"`
}

func (p AdminUserPatch) IsEmpty() bool {
	return p.Role == nil && p.IsActive == nil
}
