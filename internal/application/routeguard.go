package application

import "github.com/ericfisherdev/taskdeck/internal/domain/model"

// GuardDecision is the outcome of evaluating a route guard predicate.
type GuardDecision int

const (
	// GuardRender lets the requested content render.
	GuardRender GuardDecision = iota
	// GuardRedirect sends the user to the route's counterpart entry point:
	// the login screen for protected routes, home for public ones.
	GuardRedirect
	// GuardLoading renders a neutral placeholder while the session's initial
	// check or an in-flight login is still settling. No redirect is issued so
	// a slow check cannot bounce an authenticated user to login.
	GuardLoading
)

// ProtectedDecision evaluates access to a route that requires authentication.
// Credential presence is consulted in addition to the session state so that a
// credential written moments ago (e.g. immediately post-login) grants access
// before the next periodic check runs.
func ProtectedDecision(session model.Session, hasCredential bool) GuardDecision {
	if session.IsLoading {
		return GuardLoading
	}
	if !session.Authenticated() && !hasCredential {
		return GuardRedirect
	}
	return GuardRender
}

// PublicDecision evaluates access to a route meant for unauthenticated users
// (login, registration). A user who is authenticated, or who still holds a
// credential, is redirected home.
func PublicDecision(session model.Session, hasCredential bool) GuardDecision {
	if session.IsLoading {
		return GuardLoading
	}
	if session.Authenticated() || hasCredential {
		return GuardRedirect
	}
	return GuardRender
}
