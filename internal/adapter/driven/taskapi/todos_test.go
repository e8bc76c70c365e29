package taskapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/taskdeck/internal/domain/model"
)

func TestListTodos_FilterQueryEncoding(t *testing.T) {
	var gotQuery url.Values
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/todos", r.URL.Path)
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode([]any{})
	})
	client := newTestClient(t, handler, &fakeCredStore{}, nil)

	status := model.TodoStatusInProgress
	completed := false
	priority := model.TodoPriorityHigh
	_, err := client.ListTodos(context.Background(), model.TodoFilter{
		Status:      &status,
		IsCompleted: &completed,
		Priority:    &priority,
		ProjectID:   "p1",
		TagID:       "t9",
	})

	require.NoError(t, err)
	assert.Equal(t, "in_progress", gotQuery.Get("status"))
	assert.Equal(t, "false", gotQuery.Get("is_completed"))
	assert.Equal(t, "3", gotQuery.Get("priority"))
	assert.Equal(t, "p1", gotQuery.Get("project_id"))
	assert.Equal(t, "t9", gotQuery.Get("tag_id"))
}

func TestListTodos_EmptyFilterSendsNoQuery(t *testing.T) {
	var gotRawQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]any{})
	})
	client := newTestClient(t, handler, &fakeCredStore{}, nil)

	_, err := client.ListTodos(context.Background(), model.TodoFilter{})

	require.NoError(t, err)
	assert.Empty(t, gotRawQuery)
}

func TestGetTodo_ParsesNaiveTimestamps(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/todos/td1", r.URL.Path)
		// The server omits timezone suffixes on some datetimes.
		_, _ = w.Write([]byte(`{
			"id": "td1",
			"title": "Write report",
			"description": null,
			"is_completed": false,
			"status": "todo",
			"priority": 2,
			"due_date": "2026-09-05T12:00:00",
			"completed_at": null,
			"project_id": "p1",
			"user_id": "u1",
			"created_at": "2026-09-01T08:30:00.123456",
			"updated_at": "2026-09-01T08:30:00.123456"
		}`))
	})
	client := newTestClient(t, handler, &fakeCredStore{}, nil)

	todo, err := client.GetTodo(context.Background(), "td1")

	require.NoError(t, err)
	assert.Equal(t, "Write report", todo.Title)
	assert.Equal(t, model.TodoStatusTodo, todo.Status)
	require.NotNil(t, todo.DueDate)
	assert.Equal(t, 5, todo.DueDate.Day())
	assert.Nil(t, todo.CompletedAt)
	assert.Equal(t, 123456000, todo.CreatedAt.Nanosecond())
}

func TestUpdateTodo_OmitsUnsetFields(t *testing.T) {
	var gotBody map[string]json.RawMessage
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{
			"id": "td1",
			"title": "Renamed",
			"status": "todo",
			"priority": 2,
			"project_id": "p1",
			"user_id": "u1",
			"created_at": "2026-09-01T08:30:00Z",
			"updated_at": "2026-09-01T09:00:00Z"
		}`))
	})
	client := newTestClient(t, handler, &fakeCredStore{}, nil)

	title := "Renamed"
	_, err := client.UpdateTodo(context.Background(), "td1", model.TodoPatch{Title: &title})

	require.NoError(t, err)
	assert.Contains(t, gotBody, "title")
	assert.NotContains(t, gotBody, "status")
	assert.NotContains(t, gotBody, "priority")
	assert.NotContains(t, gotBody, "due_date")
}
