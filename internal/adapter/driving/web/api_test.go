package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/taskdeck/internal/domain/model"
)

func TestTodoFilterFromQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/todos?status=done&is_completed=true&priority=4&project_id=p1&tag_id=t2", nil)

	filter, err := todoFilterFromQuery(req)

	require.NoError(t, err)
	require.NotNil(t, filter.Status)
	assert.Equal(t, model.TodoStatusDone, *filter.Status)
	require.NotNil(t, filter.IsCompleted)
	assert.True(t, *filter.IsCompleted)
	require.NotNil(t, filter.Priority)
	assert.Equal(t, model.TodoPriorityUrgent, *filter.Priority)
	assert.Equal(t, "p1", filter.ProjectID)
	assert.Equal(t, "t2", filter.TagID)
}

func TestTodoFilterFromQuery_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/todos", nil)

	filter, err := todoFilterFromQuery(req)

	require.NoError(t, err)
	assert.Nil(t, filter.Status)
	assert.Nil(t, filter.IsCompleted)
	assert.Nil(t, filter.Priority)
	assert.Empty(t, filter.ProjectID)
}

func TestListTodos_InvalidFilterRejected(t *testing.T) {
	h, _ := newTestHandler(t, &fakeAPI{}, newFakeCreds())

	rec := httptest.NewRecorder()
	h.ListTodos(rec, httptest.NewRequest(http.MethodGet, "/api/v1/todos?priority=high", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "priority")
}

func TestCreateProject_RequiresName(t *testing.T) {
	h, _ := newTestHandler(t, &fakeAPI{}, newFakeCreds())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", strings.NewReader(`{"description":"no name"}`))
	h.CreateProject(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
}

func TestCreateTodo_RequiresTitleAndProject(t *testing.T) {
	h, _ := newTestHandler(t, &fakeAPI{}, newFakeCreds())

	rec := httptest.NewRecorder()
	h.CreateTodo(rec, httptest.NewRequest(http.MethodPost, "/api/v1/todos", strings.NewReader(`{"project_id":"p1"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title is required")

	rec = httptest.NewRecorder()
	h.CreateTodo(rec, httptest.NewRequest(http.MethodPost, "/api/v1/todos", strings.NewReader(`{"title":"x"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "project_id is required")
}

func TestCreateTodo_RejectsMalformedDueDate(t *testing.T) {
	h, _ := newTestHandler(t, &fakeAPI{}, newFakeCreds())

	rec := httptest.NewRecorder()
	body := `{"title":"x","project_id":"p1","due_date":"tomorrow"}`
	h.CreateTodo(rec, httptest.NewRequest(http.MethodPost, "/api/v1/todos", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "due_date")
}

func TestRoutes_ResourceAPIGatedSessionOpen(t *testing.T) {
	api := &fakeAPI{
		listProjectsFn: func(_ context.Context, _ bool) ([]model.Project, error) {
			return nil, nil
		},
	}
	h, svc := newTestHandler(t, api, newFakeCreds())
	svc.Logout(context.Background())

	mux := http.NewServeMux()
	RegisterRoutes(mux, h)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/login?from=")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/session", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.IsAuthenticated)
}

func TestRoutes_UnknownPathRedirectsHome(t *testing.T) {
	h, _ := newTestHandler(t, &fakeAPI{}, newFakeCreds())

	mux := http.NewServeMux()
	RegisterRoutes(mux, h)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/page", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}
