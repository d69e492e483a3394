package models

import "time"

// Text is a practice text owned by exactly one user. OwnerID never
// changes after creation. CategoryID nil means the root folder.
type Text struct {
	ID            int       `json:"id"`
	OwnerID       int       `json:"owner_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	CategoryID    *int      `json:"category_id"`
	ProgressIndex int       `json:"progress_index"`
	OrderIndex    int       `json:"order_index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
