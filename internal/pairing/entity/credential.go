package entity

import "time"

// Credential is a code issued for an identity together with its lifetime.
type Credential struct {
	Identity  Identity
	Code      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Live reports whether the credential is still usable at now.
func (c Credential) Live(now time.Time) bool {
	return now.Before(c.ExpiresAt)
}
