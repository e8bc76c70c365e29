package taskapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ericfisherdev/taskdeck/internal/domain/model"
)

// projectJSON mirrors the project resource shape on the wire.
type projectJSON struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	IsArchived  bool       `json:"is_archived"`
	UserID      string     `json:"user_id"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
	Todos       []todoJSON `json:"todos,omitempty"`
}

// ListProjects retrieves the user's projects, optionally including archived ones.
func (c *Client) ListProjects(ctx context.Context, includeArchived bool) ([]model.Project, error) {
	query := url.Values{}
	query.Set("include_archived", strconv.FormatBool(includeArchived))

	var body []projectJSON
	if err := c.doJSON(ctx, http.MethodGet, "/projects", query, nil, &body); err != nil {
		return nil, err
	}

	projects := make([]model.Project, 0, len(body))
	for _, p := range body {
		mapped, err := mapProject(p)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *mapped)
	}
	return projects, nil
}

// GetProject retrieves a single project with its todos.
func (c *Client) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var body projectJSON
	if err := c.doJSON(ctx, http.MethodGet, "/projects/"+id, nil, nil, &body); err != nil {
		return nil, err
	}
	return mapProject(body)
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, draft model.ProjectDraft) (*model.Project, error) {
	req := struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Color       string `json:"color,omitempty"`
		IsArchived  bool   `json:"is_archived"`
	}{
		Name:        draft.Name,
		Description: draft.Description,
		Color:       draft.Color,
		IsArchived:  draft.IsArchived,
	}

	var body projectJSON
	if err := c.doJSON(ctx, http.MethodPost, "/projects", nil, req, &body); err != nil {
		return nil, err
	}
	return mapProject(body)
}

// UpdateProject applies a partial update; nil patch fields are left unchanged.
func (c *Client) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	req := struct {
		Name        *string `json:"name,omitempty"`
		Description *string `json:"description,omitempty"`
		Color       *string `json:"color,omitempty"`
		IsArchived  *bool   `json:"is_archived,omitempty"`
	}{
		Name:        patch.Name,
		Description: patch.Description,
		Color:       patch.Color,
		IsArchived:  patch.IsArchived,
	}

	var body projectJSON
	if err := c.doJSON(ctx, http.MethodPut, "/projects/"+id, nil, req, &body); err != nil {
		return nil, err
	}
	return mapProject(body)
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/projects/"+id, nil, nil, nil)
}

// mapProject converts a wire project to a domain model Project.
func mapProject(p projectJSON) (*model.Project, error) {
	createdAt, err := parseAPITime(p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("mapping project %q: %w", p.ID, err)
	}
	updatedAt, err := parseAPITime(p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("mapping project %q: %w", p.ID, err)
	}

	var todos []model.Todo
	for _, t := range p.Todos {
		mapped, err := mapTodo(t)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *mapped)
	}

	return &model.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		IsArchived:  p.IsArchived,
		UserID:      p.UserID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		Todos:       todos,
	}, nil
}
