package taskapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ericfisherdev/taskdeck/internal/domain/model"
)

// todoJSON mirrors the todo resource shape on the wire.
type todoJSON struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	Status      string    `json:"status"`
	Priority    int       `json:"priority"`
	DueDate     *string   `json:"due_date"`
	CompletedAt *string   `json:"completed_at"`
	ProjectID   string    `json:"project_id"`
	UserID      string    `json:"user_id"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	Tags        []tagJSON `json:"tags,omitempty"`
}

// ListTodos retrieves todos matching the filter. Unset filter fields are not
// sent, so the server applies no constraint for them.
func (c *Client) ListTodos(ctx context.Context, filter model.TodoFilter) ([]model.Todo, error) {
	query := url.Values{}
	if filter.Status != nil {
		query.Set("status", string(*filter.Status))
	}
	if filter.IsCompleted != nil {
		query.Set("is_completed", strconv.FormatBool(*filter.IsCompleted))
	}
	if filter.Priority != nil {
		query.Set("priority", strconv.Itoa(int(*filter.Priority)))
	}
	if filter.ProjectID != "" {
		query.Set("project_id", filter.ProjectID)
	}
	if filter.TagID != "" {
		query.Set("tag_id", filter.TagID)
	}

	var body []todoJSON
	if err := c.doJSON(ctx, http.MethodGet, "/todos", query, nil, &body); err != nil {
		return nil, err
	}

	todos := make([]model.Todo, 0, len(body))
	for _, t := range body {
		mapped, err := mapTodo(t)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *mapped)
	}
	return todos, nil
}

// GetTodo retrieves a single todo.
func (c *Client) GetTodo(ctx context.Context, id string) (*model.Todo, error) {
	var body todoJSON
	if err := c.doJSON(ctx, http.MethodGet, "/todos/"+id, nil, nil, &body); err != nil {
		return nil, err
	}
	return mapTodo(body)
}

// CreateTodo creates a new todo.
func (c *Client) CreateTodo(ctx context.Context, draft model.TodoDraft) (*model.Todo, error) {
	req := struct {
		Title       string   `json:"title"`
		Description string   `json:"description,omitempty"`
		Status      string   `json:"status,omitempty"`
		Priority    int      `json:"priority,omitempty"`
		DueDate     *string  `json:"due_date,omitempty"`
		ProjectID   string   `json:"project_id"`
		TagIDs      []string `json:"tag_ids,omitempty"`
	}{
		Title:       draft.Title,
		Description: draft.Description,
		Status:      string(draft.Status),
		Priority:    int(draft.Priority),
		DueDate:     formatAPITimePtr(draft.DueDate),
		ProjectID:   draft.ProjectID,
		TagIDs:      draft.TagIDs,
	}

	var body todoJSON
	if err := c.doJSON(ctx, http.MethodPost, "/todos", nil, req, &body); err != nil {
		return nil, err
	}
	return mapTodo(body)
}

// UpdateTodo applies a partial update; nil patch fields are left unchanged.
func (c *Client) UpdateTodo(ctx context.Context, id string, patch model.TodoPatch) (*model.Todo, error) {
	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}
	var priority *int
	if patch.Priority != nil {
		p := int(*patch.Priority)
		priority = &p
	}

	req := struct {
		Title       *string  `json:"title,omitempty"`
		Description *string  `json:"description,omitempty"`
		IsCompleted *bool    `json:"is_completed,omitempty"`
		Status      *string  `json:"status,omitempty"`
		Priority    *int     `json:"priority,omitempty"`
		DueDate     *string  `json:"due_date,omitempty"`
		ProjectID   *string  `json:"project_id,omitempty"`
		TagIDs      []string `json:"tag_ids,omitempty"`
	}{
		Title:       patch.Title,
		Description: patch.Description,
		IsCompleted: patch.IsCompleted,
		Status:      status,
		Priority:    priority,
		DueDate:     formatAPITimePtr(patch.DueDate),
		ProjectID:   patch.ProjectID,
		TagIDs:      patch.TagIDs,
	}

	var body todoJSON
	if err := c.doJSON(ctx, http.MethodPut, "/todos/"+id, nil, req, &body); err != nil {
		return nil, err
	}
	return mapTodo(body)
}

// DeleteTodo removes a todo.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/todos/"+id, nil, nil, nil)
}

// mapTodo converts a wire todo to a domain model Todo.
func mapTodo(t todoJSON) (*model.Todo, error) {
	createdAt, err := parseAPITime(t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("mapping todo %q: %w", t.ID, err)
	}
	updatedAt, err := parseAPITime(t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("mapping todo %q: %w", t.ID, err)
	}
	dueDate, err := parseAPITimePtr(t.DueDate)
	if err != nil {
		return nil, fmt.Errorf("mapping todo %q: %w", t.ID, err)
	}
	completedAt, err := parseAPITimePtr(t.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("mapping todo %q: %w", t.ID, err)
	}

	var description string
	if t.Description != nil {
		description = *t.Description
	}

	var tags []model.Tag
	for _, tag := range t.Tags {
		mapped, err := mapTag(tag)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *mapped)
	}

	return &model.Todo{
		ID:          t.ID,
		Title:       t.Title,
		Description: description,
		IsCompleted: t.IsCompleted,
		Status:      model.TodoStatus(t.Status),
		Priority:    model.TodoPriority(t.Priority),
		DueDate:     dueDate,
		CompletedAt: completedAt,
		ProjectID:   t.ProjectID,
		UserID:      t.UserID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		Tags:        tags,
	}, nil
}

// formatAPITimePtr renders a nullable timestamp for the wire.
func formatAPITimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
