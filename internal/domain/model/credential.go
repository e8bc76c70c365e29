package model

import "time"

// AccessTokenName is the single credential name used for the remote API
// bearer token. At most one credential exists under this name at a time.
const AccessTokenName = "accessToken"

// Credential holds a named bearer credential with a wall-clock expiry.
// A credential past ExpiresAt is treated as absent by the store.
type Credential struct {
	Name      string
	Value     string
	ExpiresAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the credential's expiry has passed at the given time.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}
