package model

import "time"

// User is the profile snapshot returned by the remote API on registration.
type User struct {
	ID        string
	Username  string
	Email     string
	CreatedAt time.Time
}
