package authdomain

import "time"

// Claims represents the domain model for a validated bearer token.
// Roles are deliberately absent: they are loaded fresh from the identity
// store on every request.
type Claims struct {
	UserID    int64
	Username  string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}
