// Package web is the driving adapter for the browser: it serves the login,
// registration, and home screens, gates them through the route guard, and
// exposes the JSON pass-through API for the remote task resources.
package web

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/taskdeck/internal/application"
	"github.com/ericfisherdev/taskdeck/internal/domain/model"
	"github.com/ericfisherdev/taskdeck/internal/domain/port/driven"
)

// Generic user-facing failure messages. Server detail is logged, never shown,
// so a failed login does not leak which part of the credential was wrong.
const (
	msgLoginFailed    = "Invalid username or password."
	msgRegisterFailed = "Registration failed. Please check your details and try again."
)

// Handler serves the web screens and the JSON API.
type Handler struct {
	session *application.SessionService
	api     driven.TaskAPI
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(session *application.SessionService, api driven.TaskAPI, logger *slog.Logger) *Handler {
	return &Handler{
		session: session,
		api:     api,
		logger:  logger,
	}
}

var (
	loginTmpl = template.Must(template.New("login").Parse(`<!doctype html>
<html><head><title>Sign in - taskdeck</title></head>
<body>
<h1>Sign in</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/login">
  <input type="hidden" name="from" value="{{.From}}">
  <label>Username or email <input name="username" autocomplete="username"></label>
  <label>Password <input type="password" name="password" autocomplete="current-password"></label>
  <button type="submit">Sign in</button>
</form>
<p><a href="/register">Create an account</a></p>
</body></html>`))

	registerTmpl = template.Must(template.New("register").Parse(`<!doctype html>
<html><head><title>Register - taskdeck</title></head>
<body>
<h1>Create an account</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/register">
  <label>Username <input name="username" autocomplete="username"></label>
  <label>Email <input type="email" name="email" autocomplete="email"></label>
  <label>Password <input type="password" name="password" autocomplete="new-password"></label>
  <button type="submit">Register</button>
</form>
<p><a href="/login">Sign in instead</a></p>
</body></html>`))

	homeTmpl = template.Must(template.New("home").Parse(`<!doctype html>
<html><head><title>taskdeck</title></head>
<body>
<h1>Projects</h1>
<form method="post" action="/logout"><button type="submit">Sign out</button></form>
<ul>
{{range .Projects}}<li style="border-left: 4px solid {{.Color}}"><a href="/projects/{{.ID}}">{{.Name}}</a></li>
{{else}}<li>No projects yet.</li>
{{end}}
</ul>
</body></html>`))
)

type formPage struct {
	Error string
	From  string
}

// LoginPage renders the login form. The "from" parameter carries the
// originally requested path through the form round trip.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, formPage{From: r.URL.Query().Get(fromParam)})
}

// Login handles the login form submission.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	from := r.PostFormValue(fromParam)

	if username == "" || password == "" {
		h.renderLogin(w, formPage{Error: msgLoginFailed, From: from})
		return
	}

	_, err := h.session.Login(r.Context(), model.LoginInput{Username: username, Password: password})
	if err != nil {
		h.logger.Warn("login failed", "username", username, "error", err)
		h.renderLogin(w, formPage{Error: msgLoginFailed, From: from})
		return
	}

	// Return the user to wherever the guard bounced them from.
	http.Redirect(w, r, safeReturnPath(from), http.StatusFound)
}

// RegisterPage renders the registration form.
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, formPage{})
}

// Register handles the registration form submission. A successful
// registration is already logged in (the session service chains the login),
// so the user lands on the home screen directly.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}

	input := model.RegisterInput{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		h.renderRegister(w, formPage{Error: msgRegisterFailed})
		return
	}

	if _, err := h.session.Register(r.Context(), input); err != nil {
		h.logger.Warn("registration failed", "username", input.Username, "error", err)
		h.renderRegister(w, formPage{Error: msgRegisterFailed})
		return
	}

	http.Redirect(w, r, homePath, http.StatusFound)
}

// Logout clears the session and sends the user to the login entry point.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	http.Redirect(w, r, loginPath, http.StatusFound)
}

// Home renders the project list screen.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	projects, err := h.api.ListProjects(r.Context(), false)
	if err != nil {
		h.logger.Error("listing projects failed", "error", err)
		http.Error(w, "failed to load projects", http.StatusBadGateway)
		return
	}

	responses := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, toProjectResponse(p))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := homeTmpl.Execute(w, struct{ Projects []ProjectResponse }{responses}); err != nil {
		h.logger.Error("rendering home failed", "error", err)
	}
}

// ProjectDescription serves a project's description rendered from markdown
// as a sanitized HTML fragment.
func (h *Handler) ProjectDescription(w http.ResponseWriter, r *http.Request) {
	project, err := h.api.GetProject(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(RenderMarkdown(project.Description)))
}

// TodoDescription serves a todo's description rendered from markdown as a
// sanitized HTML fragment.
func (h *Handler) TodoDescription(w http.ResponseWriter, r *http.Request) {
	todo, err := h.api.GetTodo(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(RenderMarkdown(todo.Description)))
}

func (h *Handler) renderLogin(w http.ResponseWriter, page formPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := loginTmpl.Execute(w, page); err != nil {
		h.logger.Error("rendering login failed", "error", err)
	}
}

func (h *Handler) renderRegister(w http.ResponseWriter, page formPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := registerTmpl.Execute(w, page); err != nil {
		h.logger.Error("rendering register failed", "error", err)
	}
}
