package model

import "time"

// Project represents a remote project as returned by the task API.
type Project struct {
	ID          string
	Name        string
	Description string
	Color       string
	IsArchived  bool
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated only on the single-project detail endpoint.
	Todos []Todo
}

// ProjectDraft holds the fields for creating a project.
type ProjectDraft struct {
	Name        string
	Description string
	Color       string
	IsArchived  bool
}

// ProjectPatch holds optional fields for a partial project update.
// Nil fields are left unchanged by the server.
type ProjectPatch struct {
	Name        *string
	Description *string
	Color       *string
	IsArchived  *bool
}
