package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/taskdeck/internal/application"
	"github.com/ericfisherdev/taskdeck/internal/domain/model"
	"github.com/ericfisherdev/taskdeck/internal/domain/port/driven"
)

// fakeAPI overrides only the calls a test exercises; anything else panics via
// the embedded nil interface.
type fakeAPI struct {
	driven.TaskAPI

	loginFn        func(ctx context.Context, input model.LoginInput) (*model.AuthPayload, error)
	registerFn     func(ctx context.Context, input model.RegisterInput) (*model.User, error)
	listProjectsFn func(ctx context.Context, includeArchived bool) ([]model.Project, error)
	getProjectFn   func(ctx context.Context, id string) (*model.Project, error)
	getTodoFn      func(ctx context.Context, id string) (*model.Todo, error)
}

func (f *fakeAPI) Login(ctx context.Context, input model.LoginInput) (*model.AuthPayload, error) {
	return f.loginFn(ctx, input)
}

func (f *fakeAPI) Register(ctx context.Context, input model.RegisterInput) (*model.User, error) {
	return f.registerFn(ctx, input)
}

func (f *fakeAPI) ListProjects(ctx context.Context, includeArchived bool) ([]model.Project, error) {
	return f.listProjectsFn(ctx, includeArchived)
}

func (f *fakeAPI) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return f.getProjectFn(ctx, id)
}

func (f *fakeAPI) GetTodo(ctx context.Context, id string) (*model.Todo, error) {
	return f.getTodoFn(ctx, id)
}

type fakeCreds struct {
	mu      sync.Mutex
	values  map[string]string
	deletes int
}

func newFakeCreds() *fakeCreds {
	return &fakeCreds{values: map[string]string{}}
}

func (f *fakeCreds) Set(_ context.Context, name, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = value
	return nil
}

func (f *fakeCreds) Get(_ context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name], nil
}

func (f *fakeCreds) Delete(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, name)
	f.deletes++
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestHandler wires a Handler around a fresh session service. The service
// starts in the loading state; tests drive it to a settled state via Login or
// Logout.
func newTestHandler(t *testing.T, api *fakeAPI, creds *fakeCreds) (*Handler, *application.SessionService) {
	t.Helper()

	svc := application.NewSessionService(api, creds, 30*time.Minute, time.Hour)
	return NewHandler(svc, api, testLogger()), svc
}

// loginAs drives the session to authenticated through a successful login.
func loginAs(t *testing.T, svc *application.SessionService, username string) {
	t.Helper()

	_, err := svc.Login(context.Background(), model.LoginInput{Username: username, Password: "pw"})
	require.NoError(t, err)
}

func okLoginAPI() *fakeAPI {
	return &fakeAPI{
		loginFn: func(_ context.Context, _ model.LoginInput) (*model.AuthPayload, error) {
			return &model.AuthPayload{AccessToken: "tok", TokenType: "bearer"}, nil
		},
	}
}

func TestProtected_ServesLoadingPlaceholderBeforeFirstCheck(t *testing.T) {
	h, _ := newTestHandler(t, &fakeAPI{}, newFakeCreds())

	rec := httptest.NewRecorder()
	handler := h.protected(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler must not run while loading")
	})
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Loading")
	assert.Contains(t, rec.Body.String(), `http-equiv="refresh"`)
}

func TestProtected_RedirectsToLoginWithFrom(t *testing.T) {
	h, svc := newTestHandler(t, &fakeAPI{}, newFakeCreds())
	svc.Logout(context.Background())

	rec := httptest.NewRecorder()
	handler := h.protected(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler must not run unauthenticated")
	})
	handler(rec, httptest.NewRequest(http.MethodGet, "/projects/p1/description?x=1", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?from=%2Fprojects%2Fp1%2Fdescription%3Fx%3D1", rec.Header().Get("Location"))
}

func TestProtected_RendersWhenAuthenticated(t *testing.T) {
	h, svc := newTestHandler(t, okLoginAPI(), newFakeCreds())
	loginAs(t, svc, "alice")

	rec := httptest.NewRecorder()
	ran := false
	h.protected(func(w http.ResponseWriter, r *http.Request) { ran = true })(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, ran)
}

func TestProtected_RendersOnCredentialAlone(t *testing.T) {
	// A credential written by another process renders immediately; the next
	// periodic check flips the session state to match.
	creds := newFakeCreds()
	h, svc := newTestHandler(t, &fakeAPI{}, creds)
	svc.Logout(context.Background())
	require.NoError(t, creds.Set(context.Background(), model.AccessTokenName, "tok_external", time.Minute))

	rec := httptest.NewRecorder()
	ran := false
	h.protected(func(w http.ResponseWriter, r *http.Request) { ran = true })(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, ran)
}

func TestPublic_ServesLoadingPlaceholderBeforeFirstCheck(t *testing.T) {
	h, _ := newTestHandler(t, &fakeAPI{}, newFakeCreds())

	rec := httptest.NewRecorder()
	h.public(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler must not run while loading")
	})(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Contains(t, rec.Body.String(), "Loading")
}

func TestPublic_RedirectsAuthenticatedHome(t *testing.T) {
	h, svc := newTestHandler(t, okLoginAPI(), newFakeCreds())
	loginAs(t, svc, "alice")

	rec := httptest.NewRecorder()
	h.public(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler must not run authenticated")
	})(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestPublic_RendersWhenLoggedOut(t *testing.T) {
	h, svc := newTestHandler(t, &fakeAPI{}, newFakeCreds())
	svc.Logout(context.Background())

	rec := httptest.NewRecorder()
	ran := false
	h.public(func(w http.ResponseWriter, r *http.Request) { ran = true })(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.True(t, ran)
}

func TestSafeReturnPath(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty falls back home", "", "/"},
		{"plain path", "/projects", "/projects"},
		{"path with query", "/todos?status=done", "/todos?status=done"},
		{"protocol-relative rejected", "//evil.example", "/"},
		{"absolute URL rejected", "http://evil.example/x", "/"},
		{"scheme without slashes rejected", "javascript:alert(1)", "/"},
		{"relative path rejected", "projects", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safeReturnPath(tt.raw))
		})
	}
}
