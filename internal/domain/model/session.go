package model

// SessionState represents the session's belief about authentication.
type SessionState string

const (
	SessionUnknown         SessionState = "unknown"
	SessionAuthenticated   SessionState = "authenticated"
	SessionUnauthenticated SessionState = "unauthenticated"
)

// Session is the in-memory projection of authentication status. It is never
// persisted; the stored credential is the authoritative signal and the session
// is reconciled from it on every periodic check.
type Session struct {
	User      *User
	State     SessionState
	IsLoading bool // True during the initial check and in-flight login/registration.
}

// Authenticated reports whether the session currently believes a user is
// logged in.
func (s Session) Authenticated() bool {
	return s.State == SessionAuthenticated
}
