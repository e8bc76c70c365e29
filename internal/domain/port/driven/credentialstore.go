package driven

import (
	"context"
	"time"
)

// CredentialStore defines the driven port for bearer credential persistence.
// The adapter layer is responsible for encryption at rest; this interface
// operates on plaintext values at the domain boundary.
//
// Presence of a stored credential is the sole signal of "possibly
// authenticated" consumed by the route guard and the session check, so Get
// must treat an expired credential exactly like a missing one.
type CredentialStore interface {
	// Set stores or replaces the credential under name with an expiry of
	// ttl from now.
	Set(ctx context.Context, name, value string, ttl time.Duration) error

	// Get retrieves the plaintext credential for name.
	// Returns ("", nil) if no credential exists or the stored one has expired.
	Get(ctx context.Context, name string) (string, error)

	// Delete removes the credential for name. Deleting an absent credential
	// is not an error.
	Delete(ctx context.Context, name string) error
}
