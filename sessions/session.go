// Package sessions resolves, issues, and clears the back-office session
// carried in the secure session cookie.
package sessions

import (
	"time"

	"github.com/cccteam/ccc"
)

// Session is the proof of authentication extracted from request cookies.
// It is issued at login and only read afterwards; the identity provider
// owns its lifecycle.
type Session struct {
	ID        ccc.UUID
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
