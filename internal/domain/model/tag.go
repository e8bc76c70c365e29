package model

import "time"

// Tag represents a remote tag as returned by the task API.
type Tag struct {
	ID        string
	Name      string
	Color     string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TagDraft holds the fields for creating a tag.
type TagDraft struct {
	Name  string
	Color string
}

// TagPatch holds optional fields for a partial tag update.
type TagPatch struct {
	Name  *string
	Color *string
}
