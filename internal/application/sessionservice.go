// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ericfisherdev/taskdeck/internal/domain/model"
	"github.com/ericfisherdev/taskdeck/internal/domain/port/driven"
)

// SessionService owns the in-memory belief about whether a user is
// authenticated. The stored credential is the single source of truth: the
// periodic check reconciles the session to credential presence, so whichever
// of a login, logout, or external credential write completes last determines
// the observable state within one check interval.
//
// The check is trust-on-presence: a stored, non-expired credential is taken
// as proof of authentication without a server round trip. A rejected
// credential surfaces through the gateway's 401 signal instead (Invalidate).
type SessionService struct {
	api      driven.TaskAPI
	creds    driven.CredentialStore
	tokenTTL time.Duration
	interval time.Duration

	mu      sync.Mutex
	session model.Session

	checkCh chan chan struct{}
}

// NewSessionService creates a SessionService. The session starts in the
// unknown state with isLoading set, and stays there until the first check.
func NewSessionService(api driven.TaskAPI, creds driven.CredentialStore, tokenTTL, interval time.Duration) *SessionService {
	return &SessionService{
		api:      api,
		creds:    creds,
		tokenTTL: tokenTTL,
		interval: interval,
		session: model.Session{
			State:     model.SessionUnknown,
			IsLoading: true,
		},
		checkCh: make(chan chan struct{}),
	}
}

// Start begins the periodic session check loop. It runs an immediate check,
// then re-checks on the configured interval, and also serves manual re-check
// requests. Start blocks until the context is canceled, which releases the
// timer; the owning lifecycle is responsible for calling it in a goroutine.
func (s *SessionService) Start(ctx context.Context) {
	s.check(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session check loop stopped")
			return
		case <-ticker.C:
			s.check(ctx)
		case done := <-s.checkCh:
			s.check(ctx)
			done <- struct{}{}
		}
	}
}

// Refresh triggers an immediate session check, bypassing the check interval.
// It blocks until the check completes or the context is canceled. Requires a
// running Start loop.
func (s *SessionService) Refresh(ctx context.Context) error {
	done := make(chan struct{}, 1)

	select {
	case s.checkCh <- done:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// check reconciles the in-memory session with credential presence. A read
// failure is treated as an absent credential rather than propagated; the
// next cycle retries.
func (s *SessionService) check(ctx context.Context) {
	token, err := s.creds.Get(ctx, model.AccessTokenName)
	if err != nil {
		slog.Error("session check: credential read failed", "error", err)
		token = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		s.session.State = model.SessionUnauthenticated
		s.session.User = nil
	} else {
		s.session.State = model.SessionAuthenticated
	}
	s.session.IsLoading = false
}

// Login submits credentials through the gateway, stores the returned bearer
// token, and transitions to authenticated. On failure the session is left
// unauthenticated and the error re-raised; isLoading is restored on every
// path. Post-login navigation is the caller's concern.
func (s *SessionService) Login(ctx context.Context, input model.LoginInput) (*model.AuthPayload, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	payload, err := s.api.Login(ctx, input)
	if err != nil {
		s.setState(model.SessionUnauthenticated)
		return nil, fmt.Errorf("login %q: %w", input.Username, err)
	}

	if err := s.creds.Set(ctx, model.AccessTokenName, payload.AccessToken, s.tokenTTL); err != nil {
		s.setState(model.SessionUnauthenticated)
		return nil, fmt.Errorf("storing credential: %w", err)
	}

	s.setState(model.SessionAuthenticated)
	slog.Info("login succeeded", "username", input.Username)
	return payload, nil
}

// Register creates an account and, on success, chains an internal Login using
// the registration's email and password; registration alone does not
// authenticate. The profile snapshot from the registration response is kept.
func (s *SessionService) Register(ctx context.Context, input model.RegisterInput) (*model.AuthPayload, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	user, err := s.api.Register(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("register %q: %w", input.Username, err)
	}

	s.mu.Lock()
	s.session.User = user
	s.mu.Unlock()

	return s.Login(ctx, model.LoginInput{
		Username: input.Email,
		Password: input.Password,
	})
}

// Logout deletes the stored credential, clears the cached profile, and resets
// the session to unauthenticated. It is idempotent: logging out while already
// unauthenticated is a no-op on the absent credential and raises nothing.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.creds.Delete(ctx, model.AccessTokenName); err != nil {
		// Logout cannot fail from the caller's perspective; the next periodic
		// check reconciles any leftover state.
		slog.Error("logout: credential delete failed", "error", err)
	}

	s.mu.Lock()
	s.session = model.Session{State: model.SessionUnauthenticated}
	s.mu.Unlock()

	slog.Info("logged out")
}

// Invalidate handles the gateway's authorization-failure signal: the stored
// credential is cleared before anything else so a following check cannot
// re-authenticate on the stale token's presence. Repeated triggers while
// already unauthenticated are harmless, so concurrent 401s collapse into a
// single observable transition.
func (s *SessionService) Invalidate(ctx context.Context) {
	if err := s.creds.Delete(ctx, model.AccessTokenName); err != nil {
		slog.Error("invalidate: credential delete failed", "error", err)
	}

	s.mu.Lock()
	already := s.session.State == model.SessionUnauthenticated
	s.session.State = model.SessionUnauthenticated
	s.session.User = nil
	s.mu.Unlock()

	if !already {
		slog.Warn("session invalidated by authorization failure")
	}
}

// Snapshot returns a copy of the current session state.
func (s *SessionService) Snapshot() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// HasCredential reports whether a non-expired credential is currently stored.
// Guards consult this alongside the session state to avoid the window where
// a credential was just written or deleted but the next check has not run.
func (s *SessionService) HasCredential(ctx context.Context) bool {
	token, err := s.creds.Get(ctx, model.AccessTokenName)
	if err != nil {
		slog.Error("credential presence check failed", "error", err)
		return false
	}
	return token != ""
}

func (s *SessionService) setLoading(loading bool) {
	s.mu.Lock()
	s.session.IsLoading = loading
	s.mu.Unlock()
}

func (s *SessionService) setState(state model.SessionState) {
	s.mu.Lock()
	s.session.State = state
	if state == model.SessionUnauthenticated {
		s.session.User = nil
	}
	s.mu.Unlock()
}
