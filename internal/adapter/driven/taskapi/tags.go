package taskapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ericfisherdev/taskdeck/internal/domain/model"
)

// tagJSON mirrors the tag resource shape on the wire.
type tagJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ListTags retrieves the user's tags.
func (c *Client) ListTags(ctx context.Context) ([]model.Tag, error) {
	var body []tagJSON
	if err := c.doJSON(ctx, http.MethodGet, "/tags", nil, nil, &body); err != nil {
		return nil, err
	}

	tags := make([]model.Tag, 0, len(body))
	for _, t := range body {
		mapped, err := mapTag(t)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *mapped)
	}
	return tags, nil
}

// GetTag retrieves a single tag.
func (c *Client) GetTag(ctx context.Context, id string) (*model.Tag, error) {
	var body tagJSON
	if err := c.doJSON(ctx, http.MethodGet, "/tags/"+id, nil, nil, &body); err != nil {
		return nil, err
	}
	return mapTag(body)
}

// CreateTag creates a new tag.
func (c *Client) CreateTag(ctx context.Context, draft model.TagDraft) (*model.Tag, error) {
	req := struct {
		Name  string `json:"name"`
		Color string `json:"color,omitempty"`
	}{
		Name:  draft.Name,
		Color: draft.Color,
	}

	var body tagJSON
	if err := c.doJSON(ctx, http.MethodPost, "/tags", nil, req, &body); err != nil {
		return nil, err
	}
	return mapTag(body)
}

// UpdateTag applies a partial update; nil patch fields are left unchanged.
func (c *Client) UpdateTag(ctx context.Context, id string, patch model.TagPatch) (*model.Tag, error) {
	req := struct {
		Name  *string `json:"name,omitempty"`
		Color *string `json:"color,omitempty"`
	}{
		Name:  patch.Name,
		Color: patch.Color,
	}

	var body tagJSON
	if err := c.doJSON(ctx, http.MethodPut, "/tags/"+id, nil, req, &body); err != nil {
		return nil, err
	}
	return mapTag(body)
}

// DeleteTag removes a tag.
func (c *Client) DeleteTag(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/tags/"+id, nil, nil, nil)
}

// mapTag converts a wire tag to a domain model Tag.
func mapTag(t tagJSON) (*model.Tag, error) {
	createdAt, err := parseAPITime(t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("mapping tag %q: %w", t.ID, err)
	}
	updatedAt, err := parseAPITime(t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("mapping tag %q: %w", t.ID, err)
	}

	return &model.Tag{
		ID:        t.ID,
		Name:      t.Name,
		Color:     t.Color,
		UserID:    t.UserID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
