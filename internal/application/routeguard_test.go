package application_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/taskdeck/internal/application"
	"github.com/ericfisherdev/taskdeck/internal/domain/model"
)

func TestProtectedDecision(t *testing.T) {
	tests := []struct {
		name    string
		session model.Session
		hasCred bool
		want    application.GuardDecision
	}{
		{
			name:    "loading renders placeholder",
			session: model.Session{State: model.SessionUnknown, IsLoading: true},
			want:    application.GuardLoading,
		},
		{
			name:    "loading ignores credential presence",
			session: model.Session{State: model.SessionUnknown, IsLoading: true},
			hasCred: true,
			want:    application.GuardLoading,
		},
		{
			name:    "authenticated renders",
			session: model.Session{State: model.SessionAuthenticated},
			want:    application.GuardRender,
		},
		{
			name:    "unauthenticated without credential redirects",
			session: model.Session{State: model.SessionUnauthenticated},
			want:    application.GuardRedirect,
		},
		{
			name:    "unauthenticated with fresh credential renders",
			session: model.Session{State: model.SessionUnauthenticated},
			hasCred: true,
			want:    application.GuardRender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := application.ProtectedDecision(tt.session, tt.hasCred)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPublicDecision(t *testing.T) {
	tests := []struct {
		name    string
		session model.Session
		hasCred bool
		want    application.GuardDecision
	}{
		{
			name:    "loading renders placeholder",
			session: model.Session{State: model.SessionUnknown, IsLoading: true},
			want:    application.GuardLoading,
		},
		{
			name:    "authenticated redirects home",
			session: model.Session{State: model.SessionAuthenticated},
			want:    application.GuardRedirect,
		},
		{
			name:    "credential alone redirects home",
			session: model.Session{State: model.SessionUnauthenticated},
			hasCred: true,
			want:    application.GuardRedirect,
		},
		{
			name:    "unauthenticated without credential renders",
			session: model.Session{State: model.SessionUnauthenticated},
			want:    application.GuardRender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := application.PublicDecision(tt.session, tt.hasCred)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestGuardConsistency exhaustively checks that, once loading settles, the
// protected predicate renders exactly when the public predicate redirects and
// vice versa, for every combination of session state and credential presence.
func TestGuardConsistency(t *testing.T) {
	states := []model.SessionState{
		model.SessionUnknown,
		model.SessionAuthenticated,
		model.SessionUnauthenticated,
	}

	for _, state := range states {
		for _, hasCred := range []bool{false, true} {
			for _, loading := range []bool{false, true} {
				name := fmt.Sprintf("state=%s cred=%t loading=%t", state, hasCred, loading)
				t.Run(name, func(t *testing.T) {
					session := model.Session{State: state, IsLoading: loading}
					protected := application.ProtectedDecision(session, hasCred)
					public := application.PublicDecision(session, hasCred)

					if loading {
						assert.Equal(t, application.GuardLoading, protected)
						assert.Equal(t, application.GuardLoading, public)
						return
					}

					assert.Equal(t, protected == application.GuardRender, public == application.GuardRedirect)
					assert.Equal(t, protected == application.GuardRedirect, public == application.GuardRender)
				})
			}
		}
	}
}
