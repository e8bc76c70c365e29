package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/ericfisherdev/taskdeck/internal/application"
)

const (
	loginPath = "/login"
	homePath  = "/"
	fromParam = "from"
)

// loadingPage is the neutral placeholder served while the session's initial
// check is still settling. It refreshes itself so the browser re-evaluates
// the guard once the check completes.
const loadingPage = `<!doctype html>
<html><head><meta http-equiv="refresh" content="1"><title>taskdeck</title></head>
<body><p>Loading...</p></body></html>`

// protected gates a route that requires authentication. Unauthenticated
// requests are redirected to the login entry point with the originally
// requested location preserved in the "from" parameter.
func (h *Handler) protected(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := h.session.Snapshot()
		hasCred := h.session.HasCredential(r.Context())

		switch application.ProtectedDecision(session, hasCred) {
		case application.GuardLoading:
			writeLoading(w)
		case application.GuardRedirect:
			target := loginPath + "?" + url.Values{fromParam: {r.URL.RequestURI()}}.Encode()
			http.Redirect(w, r, target, http.StatusFound)
		default:
			next(w, r)
		}
	}
}

// public gates a route meant for unauthenticated users. Anyone already
// authenticated (or still holding a credential) is sent home.
func (h *Handler) public(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := h.session.Snapshot()
		hasCred := h.session.HasCredential(r.Context())

		switch application.PublicDecision(session, hasCred) {
		case application.GuardLoading:
			writeLoading(w)
		case application.GuardRedirect:
			http.Redirect(w, r, homePath, http.StatusFound)
		default:
			next(w, r)
		}
	}
}

func writeLoading(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(loadingPage))
}

// safeReturnPath validates a post-login return target taken from the "from"
// parameter. Only same-site absolute paths are allowed; anything else falls
// back to home so the login flow cannot be used as an open redirect.
func safeReturnPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return homePath
	}
	if u, err := url.Parse(raw); err != nil || u.Host != "" || u.Scheme != "" {
		return homePath
	}
	return raw
}
