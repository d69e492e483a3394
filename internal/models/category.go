package models

import "time"

// Category is a folder in a user's text tree. ParentID nil means the
// category sits at the root. Categories form a forest per user.
type Category struct {
	ID        int       `json:"id"`
	OwnerID   int       `json:"owner_id"`
	ParentID  *int      `json:"parent_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryPath is a flat-list entry with its depth and slash-joined
// path, used for "move to folder" dropdowns.
type CategoryPath struct {
	Category
	Depth int    `json:"depth"`
	Path  string `json:"path"`
}
