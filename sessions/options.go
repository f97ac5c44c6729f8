package sessions

import (
	"time"

	"github.com/crealaunch/gate/internal/cookie"
)

type settings struct {
	lifetime      time.Duration
	refreshWindow time.Duration
	cookieOptions []cookie.Option
}

// Option sets optional session Client settings.
type Option func(*settings)

// WithLifetime sets the session lifetime. (default: 12h)
func WithLifetime(d time.Duration) Option {
	return func(s *settings) {
		s.lifetime = d
	}
}

// WithRefreshWindow sets how close to expiry a session cookie is rewritten
// with an extended expiry. (default: 1h)
func WithRefreshWindow(d time.Duration) Option {
	return func(s *settings) {
		s.refreshWindow = d
	}
}

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(s *settings) {
		s.cookieOptions = append(s.cookieOptions, cookie.WithCookieName(name))
	}
}

// WithCookieDomain sets the Domain attribute for the session cookie.
func WithCookieDomain(domain string) Option {
	return func(s *settings) {
		s.cookieOptions = append(s.cookieOptions, cookie.WithDomain(domain))
	}
}
