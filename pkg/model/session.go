package model

import "time"

// Credentials is the durable artifact persisted across browser visits:
// an opaque backend token plus, optionally, a cached copy of the identity.
// Records are addressed by the session cookie value.
type Credentials struct {
	ID        string    `json:"id"`
	Token     string    `json:"-"` // backend auth token (never exposed via JSON)
	Identity  *Identity `json:"identity,omitempty"`
	TokenExp  time.Time `json:"-"` // token expiry, zero when unknown
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the credential record has expired.
func (c *Credentials) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// IsTokenExpired reports whether the backend token has expired.
// A zero expiry (opaque token) is treated as not expired.
func (c *Credentials) IsTokenExpired() bool {
	if c.TokenExp.IsZero() {
		return false
	}
	return time.Now().After(c.TokenExp)
}
