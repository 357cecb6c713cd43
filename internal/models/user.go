package models

import "time"

// User represents a row in the PostgreSQL users table.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Password      string    `json:"-"` // bcrypt hash, never serialize
	RememberToken string    `json:"-"` // rotated on every sign-in, cleared on sign-out
	Admin         bool      `json:"admin"`
	CreatedAt     time.Time `json:"created_at"`
}
