package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ericfisherdev/taskdeck/internal/domain/model"
)

// Session reports the current session state. Unlike the resource endpoints
// this one is unguarded: it is exactly what a client polls to decide what to
// render.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSessionResponse(h.session.Snapshot()))
}

// Health is the liveness endpoint consumed by the healthcheck binary.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// --- Projects ---

// ListProjects proxies the project listing. ?include_archived=true includes
// archived projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"

	projects, err := h.api.ListProjects(r.Context(), includeArchived)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	responses := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, toProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, responses)
}

// GetProject proxies a single project with its todos.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.api.GetProject(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(*project))
}

// CreateProject proxies project creation. Name is the only required field.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == nil || *req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	draft := model.ProjectDraft{Name: *req.Name}
	if req.Description != nil {
		draft.Description = *req.Description
	}
	if req.Color != nil {
		draft.Color = *req.Color
	}
	if req.IsArchived != nil {
		draft.IsArchived = *req.IsArchived
	}

	project, err := h.api.CreateProject(r.Context(), draft)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectResponse(*project))
}

// UpdateProject proxies a partial project update.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	project, err := h.api.UpdateProject(r.Context(), r.PathValue("id"), model.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsArchived:  req.IsArchived,
	})
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(*project))
}

// DeleteProject proxies project deletion.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.api.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		writeUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Todos ---

// ListTodos proxies the todo listing with optional status, is_completed,
// priority, project_id, and tag_id filters.
func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	filter, err := todoFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	todos, err := h.api.ListTodos(r.Context(), filter)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	responses := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		responses = append(responses, toTodoResponse(t))
	}
	writeJSON(w, http.StatusOK, responses)
}

// GetTodo proxies a single todo.
func (h *Handler) GetTodo(w http.ResponseWriter, r *http.Request) {
	todo, err := h.api.GetTodo(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTodoResponse(*todo))
}

// CreateTodo proxies todo creation. Title and project_id are required.
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title == nil || *req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.ProjectID == nil || *req.ProjectID == "" {
		writeError(w, http.StatusBadRequest, "project_id is required")
		return
	}

	draft := model.TodoDraft{
		Title:     *req.Title,
		ProjectID: *req.ProjectID,
		TagIDs:    req.TagIDs,
	}
	if req.Description != nil {
		draft.Description = *req.Description
	}
	if req.Status != nil {
		draft.Status = model.TodoStatus(*req.Status)
	}
	if req.Priority != nil {
		draft.Priority = model.TodoPriority(*req.Priority)
	}
	if req.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "due_date must be RFC 3339")
			return
		}
		draft.DueDate = &due
	}

	todo, err := h.api.CreateTodo(r.Context(), draft)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTodoResponse(*todo))
}

// UpdateTodo proxies a partial todo update.
func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	var req TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	patch := model.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
		ProjectID:   req.ProjectID,
		TagIDs:      req.TagIDs,
	}
	if req.Status != nil {
		status := model.TodoStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := model.TodoPriority(*req.Priority)
		patch.Priority = &priority
	}
	if req.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "due_date must be RFC 3339")
			return
		}
		patch.DueDate = &due
	}

	todo, err := h.api.UpdateTodo(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTodoResponse(*todo))
}

// DeleteTodo proxies todo deletion.
func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := h.api.DeleteTodo(r.Context(), r.PathValue("id")); err != nil {
		writeUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Tags ---

// ListTags proxies the tag listing.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.api.ListTags(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	responses := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		responses = append(responses, toTagResponse(t))
	}
	writeJSON(w, http.StatusOK, responses)
}

// GetTag proxies a single tag.
func (h *Handler) GetTag(w http.ResponseWriter, r *http.Request) {
	tag, err := h.api.GetTag(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTagResponse(*tag))
}

// CreateTag proxies tag creation. Name is required.
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == nil || *req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	draft := model.TagDraft{Name: *req.Name}
	if req.Color != nil {
		draft.Color = *req.Color
	}

	tag, err := h.api.CreateTag(r.Context(), draft)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTagResponse(*tag))
}

// UpdateTag proxies a partial tag update.
func (h *Handler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tag, err := h.api.UpdateTag(r.Context(), r.PathValue("id"), model.TagPatch{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTagResponse(*tag))
}

// DeleteTag proxies tag deletion.
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := h.api.DeleteTag(r.Context(), r.PathValue("id")); err != nil {
		writeUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// todoFilterFromQuery parses the todo listing filters from the query string.
func todoFilterFromQuery(r *http.Request) (model.TodoFilter, error) {
	q := r.URL.Query()
	filter := model.TodoFilter{
		ProjectID: q.Get("project_id"),
		TagID:     q.Get("tag_id"),
	}

	if v := q.Get("status"); v != "" {
		status := model.TodoStatus(v)
		filter.Status = &status
	}
	if v := q.Get("is_completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return model.TodoFilter{}, errInvalidFilter("is_completed")
		}
		filter.IsCompleted = &completed
	}
	if v := q.Get("priority"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return model.TodoFilter{}, errInvalidFilter("priority")
		}
		priority := model.TodoPriority(p)
		filter.Priority = &priority
	}

	return filter, nil
}

type errInvalidFilter string

func (e errInvalidFilter) Error() string {
	return "invalid " + string(e) + " filter"
}
