package web

import "net/http"

// RegisterRoutes registers all routes on the provided mux. Screens are gated
// through the route guard; the resource API is protected as a whole, while
// the session and health endpoints stay open so clients can always observe
// state.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Public screens: redirect home when already authenticated.
	mux.HandleFunc("GET /login", h.public(h.LoginPage))
	mux.HandleFunc("POST /login", h.public(h.Login))
	mux.HandleFunc("GET /register", h.public(h.RegisterPage))
	mux.HandleFunc("POST /register", h.public(h.Register))

	// Logout is reachable regardless of state; it is idempotent.
	mux.HandleFunc("POST /logout", h.Logout)

	// Protected screens.
	mux.HandleFunc("GET /{$}", h.protected(h.Home))
	mux.HandleFunc("GET /projects/{id}/description", h.protected(h.ProjectDescription))
	mux.HandleFunc("GET /todos/{id}/description", h.protected(h.TodoDescription))

	// Session and health are observation endpoints, never gated.
	mux.HandleFunc("GET /api/v1/session", h.Session)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Resource pass-through API.
	mux.HandleFunc("GET /api/v1/projects", h.protected(h.ListProjects))
	mux.HandleFunc("POST /api/v1/projects", h.protected(h.CreateProject))
	mux.HandleFunc("GET /api/v1/projects/{id}", h.protected(h.GetProject))
	mux.HandleFunc("PUT /api/v1/projects/{id}", h.protected(h.UpdateProject))
	mux.HandleFunc("DELETE /api/v1/projects/{id}", h.protected(h.DeleteProject))

	mux.HandleFunc("GET /api/v1/todos", h.protected(h.ListTodos))
	mux.HandleFunc("POST /api/v1/todos", h.protected(h.CreateTodo))
	mux.HandleFunc("GET /api/v1/todos/{id}", h.protected(h.GetTodo))
	mux.HandleFunc("PUT /api/v1/todos/{id}", h.protected(h.UpdateTodo))
	mux.HandleFunc("DELETE /api/v1/todos/{id}", h.protected(h.DeleteTodo))

	mux.HandleFunc("GET /api/v1/tags", h.protected(h.ListTags))
	mux.HandleFunc("POST /api/v1/tags", h.protected(h.CreateTag))
	mux.HandleFunc("GET /api/v1/tags/{id}", h.protected(h.GetTag))
	mux.HandleFunc("PUT /api/v1/tags/{id}", h.protected(h.UpdateTag))
	mux.HandleFunc("DELETE /api/v1/tags/{id}", h.protected(h.DeleteTag))

	// Anything else lands on the home screen's guard.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, homePath, http.StatusFound)
	})
}
