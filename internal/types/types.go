// Package types defines common types and constants shared across the gate packages.
package types

const (
	// SCAuthCookieName is the cookie name of the Secure Cookie
	SCAuthCookieName = "bo-session"

	// SCSessionID is the key for storing the session ID in the Secure Cookie
	SCSessionID SCKey = "sessionID"

	// SCSubject is the key for storing the identity subject in the Secure Cookie
	SCSubject SCKey = "subject"

	// SCIssuedAt is the key for storing the session issue time in the Secure Cookie
	SCIssuedAt SCKey = "issuedAt"

	// SCExpiresAt is the key for storing the session expiry in the Secure Cookie
	SCExpiresAt SCKey = "expiresAt"

	// SCSameSiteStrict is a key representing the sameSiteStrict cookie setting
	SCSameSiteStrict SCKey = "sameSiteStrict"
)

type (
	// SCKey is a type for storing values in the session cookie
	SCKey string

	// CTXKey is a type for storing values in the request context
	CTXKey string
)

const (
	// CTXSession is the key for storing the resolved session in context
	CTXSession CTXKey = "session"

	// CTXRole is the key for storing the resolved role in context
	CTXRole CTXKey = "role"
)

func (k SCKey) String() string {
	return string(k)
}
