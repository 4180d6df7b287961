package models

import "time"

// Course represents a unit of study that notes are attached to.
type Course struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	LiveLink    string    `json:"liveLink" db:"live_link"` // external session URL, may be empty
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
