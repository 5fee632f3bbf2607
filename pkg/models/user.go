package models

import (
	"strings"
	"time"
)

// IsActiveStatus interprets the status strings accepted on the users API
// ("Active" enables the account, anything else disables it).
func IsActiveStatus(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), "active")
}

type User struct {
	ID           int     `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Email        string  `json:"email" db:"email"`
	PasswordHash string  `json:"-" db:"password_hash"`
	Role         string  `json:"role" db:"role"`
	Department   *string `json:"department,omitempty" db:"department"`
	Active       bool    `json:"is_active" db:"is_active"`
}

type CreateUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Role       *string `json:"role"`
	Department *string `json:"department"`
	Status     *string `json:"status"`
}

// UserChanges holds resolved column values for a partial user update.
type UserChanges struct {
	Name         *string
	Email        *string
	PasswordHash *string
	RoleID       *int
	DepartmentID *int
	Active       *bool
}

func (c *UserChanges) HasChanges() bool {
	return c.Name != nil || c.Email != nil || c.PasswordHash != nil ||
		c.RoleID != nil || c.DepartmentID != nil || c.Active != nil
}

type PasswordResetRequest struct {
	ID         int        `json:"id" db:"id"`
	UserID     int        `json:"user_id" db:"user_id"`
	UserName   *string    `json:"name,omitempty" db:"user_name"`
	Email      string     `json:"email" db:"email"`
	Role       string     `json:"role" db:"role"`
	Status     string     `json:"status" db:"status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty" db:"resolved_at"`
}
