package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ericfisherdev/taskdeck/internal/adapter/driven/taskapi"
	"github.com/ericfisherdev/taskdeck/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeUpstreamError maps a gateway failure onto a response. The message is
// deliberately generic; upstream detail stays in the logs.
func writeUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, taskapi.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, taskapi.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "session expired")
	default:
		writeError(w, http.StatusBadGateway, "upstream request failed")
	}
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// SessionResponse is the JSON representation of the current session state.
type SessionResponse struct {
	IsAuthenticated bool          `json:"is_authenticated"`
	IsLoading       bool          `json:"is_loading"`
	User            *UserResponse `json:"user,omitempty"`
}

// UserResponse is the JSON representation of the cached profile snapshot.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ProjectResponse is the JSON representation of a project.
type ProjectResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Color       string         `json:"color"`
	IsArchived  bool           `json:"is_archived"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	Todos       []TodoResponse `json:"todos,omitempty"`
}

// TodoResponse is the JSON representation of a todo.
type TodoResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	IsCompleted bool          `json:"is_completed"`
	Status      string        `json:"status"`
	Priority    int           `json:"priority"`
	DueDate     *string       `json:"due_date"`
	CompletedAt *string       `json:"completed_at"`
	ProjectID   string        `json:"project_id"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Tags        []TagResponse `json:"tags"`
}

// TagResponse is the JSON representation of a tag.
type TagResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ProjectRequest is the JSON body for project create/update endpoints.
// Pointer fields distinguish "absent" from zero values on update.
type ProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	IsArchived  *bool   `json:"is_archived"`
}

// TodoRequest is the JSON body for todo create/update endpoints.
type TodoRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	IsCompleted *bool    `json:"is_completed"`
	Status      *string  `json:"status"`
	Priority    *int     `json:"priority"`
	DueDate     *string  `json:"due_date"`
	ProjectID   *string  `json:"project_id"`
	TagIDs      []string `json:"tag_ids"`
}

// TagRequest is the JSON body for tag create/update endpoints.
type TagRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// toSessionResponse converts a domain Session to its JSON representation.
func toSessionResponse(s model.Session) SessionResponse {
	resp := SessionResponse{
		IsAuthenticated: s.Authenticated(),
		IsLoading:       s.IsLoading,
	}
	if s.User != nil {
		resp.User = &UserResponse{
			ID:       s.User.ID,
			Username: s.User.Username,
			Email:    s.User.Email,
		}
	}
	return resp
}

// toProjectResponse converts a domain Project to its JSON representation.
func toProjectResponse(p model.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		IsArchived:  p.IsArchived,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.UTC().Format(time.RFC3339),
	}
	for _, todo := range p.Todos {
		resp.Todos = append(resp.Todos, toTodoResponse(todo))
	}
	return resp
}

// toTodoResponse converts a domain Todo to its JSON representation.
func toTodoResponse(t model.Todo) TodoResponse {
	tags := make([]TagResponse, 0, len(t.Tags))
	for _, tag := range t.Tags {
		tags = append(tags, toTagResponse(tag))
	}

	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		Status:      string(t.Status),
		Priority:    int(t.Priority),
		DueDate:     formatTimePtr(t.DueDate),
		CompletedAt: formatTimePtr(t.CompletedAt),
		ProjectID:   t.ProjectID,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
		Tags:        tags,
	}
}

// toTagResponse converts a domain Tag to its JSON representation.
func toTagResponse(t model.Tag) TagResponse {
	return TagResponse{
		ID:    t.ID,
		Name:  t.Name,
		Color: t.Color,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
