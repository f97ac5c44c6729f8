package sessions

import (
	"net/http"
	"time"

	"github.com/crealaunch/gate/internal/cookie"
	"github.com/crealaunch/gate/internal/types"
	"github.com/cccteam/ccc"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
	"github.com/gorilla/securecookie"
)

const (
	defaultLifetime      = 12 * time.Hour
	defaultRefreshWindow = time.Hour
)

// Client resolves sessions from request cookies and issues new ones at
// login. Resolution never fails on absent or malformed cookies; those
// read as "no session".
type Client struct {
	cookies       cookie.Manager
	lifetime      time.Duration
	refreshWindow time.Duration
}

// NewClient creates a session Client around the given SecureCookie codec.
func NewClient(secureCookie *securecookie.SecureCookie, options ...Option) *Client {
	s := settings{
		lifetime:      defaultLifetime,
		refreshWindow: defaultRefreshWindow,
	}
	for _, opt := range options {
		opt(&s)
	}

	return &Client{
		cookies:       cookie.NewClient(secureCookie, s.cookieOptions...),
		lifetime:      s.lifetime,
		refreshWindow: s.refreshWindow,
	}
}

// Resolve extracts the session from the request cookies. When the session
// is inside its refresh window, the returned mutations contain a rewritten
// cookie with an extended expiry; the caller must apply them to the
// response regardless of the routing decision it makes afterwards.
func (c *Client) Resolve(r *http.Request) (sess *Session, mutations []*http.Cookie, ok bool) {
	cval, found := c.cookies.ReadAuthCookie(r)
	if !found {
		return nil, nil, false
	}

	sess, err := sessionFromCookie(cval)
	if err != nil {
		logger.Req(r).Infof("discarding unreadable session cookie: %s", err)

		return nil, nil, false
	}

	now := time.Now()
	if sess.Expired(now) {
		return nil, nil, false
	}

	if time.Until(sess.ExpiresAt) < c.refreshWindow {
		refreshed, err := c.refresh(sess, now)
		if err != nil {
			// Refresh failure is not fatal; the session remains valid
			// until its original expiry.
			logger.Req(r).Error(errors.Wrap(err, "sessions.Client.refresh()"))
		} else {
			sess = refreshed.session
			mutations = append(mutations, refreshed.cookie)
		}
	}

	return sess, mutations, true
}

type refreshedSession struct {
	session *Session
	cookie  *http.Cookie
}

func (c *Client) refresh(sess *Session, now time.Time) (*refreshedSession, error) {
	extended := &Session{
		ID:        sess.ID,
		Subject:   sess.Subject,
		IssuedAt:  sess.IssuedAt,
		ExpiresAt: now.Add(c.lifetime),
	}

	baked, err := c.cookies.BakeAuthCookie(true, cookieValues(extended))
	if err != nil {
		return nil, errors.Wrap(err, "cookie.Manager.BakeAuthCookie()")
	}

	return &refreshedSession{session: extended, cookie: baked}, nil
}

// Issue creates a new session for subject and writes its cookie to the response.
func (c *Client) Issue(w http.ResponseWriter, subject string) (*Session, error) {
	id, err := ccc.NewUUID()
	if err != nil {
		return nil, errors.Wrap(err, "ccc.NewUUID()")
	}

	now := time.Now()
	sess := &Session{
		ID:        id,
		Subject:   subject,
		IssuedAt:  now,
		ExpiresAt: now.Add(c.lifetime),
	}

	if err := c.cookies.WriteAuthCookie(w, true, cookieValues(sess)); err != nil {
		return nil, errors.Wrap(err, "cookie.Manager.WriteAuthCookie()")
	}

	return sess, nil
}

// Clear expires the session cookie on the response.
func (c *Client) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookies.ExpiredAuthCookie())
}

func cookieValues(sess *Session) map[types.SCKey]string {
	return map[types.SCKey]string{
		types.SCSessionID: sess.ID.String(),
		types.SCSubject:   sess.Subject,
		types.SCIssuedAt:  sess.IssuedAt.Format(time.UnixDate),
		types.SCExpiresAt: sess.ExpiresAt.Format(time.UnixDate),
	}
}

func sessionFromCookie(cval map[types.SCKey]string) (*Session, error) {
	id, err := ccc.UUIDFromString(cval[types.SCSessionID])
	if err != nil {
		return nil, errors.Wrap(err, "ccc.UUIDFromString()")
	}

	subject := cval[types.SCSubject]
	if subject == "" {
		return nil, errors.New("session cookie has no subject")
	}

	issuedAt, err := time.Parse(time.UnixDate, cval[types.SCIssuedAt])
	if err != nil {
		return nil, errors.Wrap(err, "parsing issuedAt")
	}

	expiresAt, err := time.Parse(time.UnixDate, cval[types.SCExpiresAt])
	if err != nil {
		return nil, errors.Wrap(err, "parsing expiresAt")
	}

	return &Session{
		ID:        id,
		Subject:   subject,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}
