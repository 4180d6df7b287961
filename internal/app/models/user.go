package models

import "time"

// User is a registered portal account. Records are immutable after registration.
type User struct {
	ID           string    `json:"id" db:"id" example:"5b1d7c7e-3f9a-4c1e-9a7b-2f0c1d2e3f40"`
	Username     string    `json:"username" db:"username" example:"alice"`
	PasswordHash string    `json:"-" db:"password"` // bcrypt hash, never serialised
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
