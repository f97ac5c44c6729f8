package cookie

// Option sets optional cookie Client settings.
type Option func(*Client)

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(c *Client) {
		c.cookieName = name
	}
}

// WithDomain sets the Domain attribute on cookies written by the Client.
func WithDomain(domain string) Option {
	return func(c *Client) {
		c.domain = domain
	}
}
