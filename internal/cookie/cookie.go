// Package cookie implements the secure-cookie client used to carry the
// back-office session across requests.
package cookie

import (
	"net/http"
	"strconv"

	"github.com/crealaunch/gate/internal/types"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
	"github.com/gorilla/securecookie"
)

var _ Manager = &Client{}

// Client encodes and decodes the session cookie.
type Client struct {
	secureCookie *securecookie.SecureCookie
	cookieName   string
	domain       string
}

// NewClient creates a cookie Client around the given SecureCookie codec.
func NewClient(secureCookie *securecookie.SecureCookie, options ...Option) *Client {
	c := &Client{
		secureCookie: secureCookie,
		cookieName:   types.SCAuthCookieName,
	}
	for _, opt := range options {
		opt(c)
	}

	return c
}

// ReadAuthCookie decodes the session cookie from the request. A missing or
// undecodable cookie is reported as not found, never as an error.
func (c *Client) ReadAuthCookie(r *http.Request) (map[types.SCKey]string, bool) {
	cval := make(map[types.SCKey]string)

	cookie, err := r.Cookie(c.cookieName)
	if err != nil {
		return cval, false
	}
	if err := c.secureCookie.Decode(c.cookieName, cookie.Value, &cval); err != nil {
		logger.Req(r).Error(errors.Wrap(err, "secureCookie.Decode()"))

		return cval, false
	}

	return cval, true
}

// BakeAuthCookie encodes cval into a session cookie without writing it,
// so callers can carry the mutation alongside a routing decision.
func (c *Client) BakeAuthCookie(sameSiteStrict bool, cval map[types.SCKey]string) (*http.Cookie, error) {
	cval[types.SCSameSiteStrict] = strconv.FormatBool(sameSiteStrict)
	encoded, err := c.secureCookie.Encode(c.cookieName, cval)
	if err != nil {
		return nil, errors.Wrap(err, "securecookie.Encode()")
	}

	sameSite := http.SameSiteStrictMode
	if !sameSiteStrict {
		sameSite = http.SameSiteNoneMode
	}

	return &http.Cookie{
		Name:     c.cookieName,
		Value:    encoded,
		Path:     "/",
		Domain:   c.domain,
		Secure:   true,
		HttpOnly: true,
		SameSite: sameSite,
	}, nil
}

// WriteAuthCookie encodes cval and sets the session cookie on the response.
func (c *Client) WriteAuthCookie(w http.ResponseWriter, sameSiteStrict bool, cval map[types.SCKey]string) error {
	cookie, err := c.BakeAuthCookie(sameSiteStrict, cval)
	if err != nil {
		return errors.Wrap(err, "cookie.Client.BakeAuthCookie()")
	}

	http.SetCookie(w, cookie)

	return nil
}

// ExpiredAuthCookie returns a cookie that clears the session cookie.
func (c *Client) ExpiredAuthCookie() *http.Cookie {
	return &http.Cookie{
		Name:     c.cookieName,
		Value:    "",
		Path:     "/",
		Domain:   c.domain,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}
