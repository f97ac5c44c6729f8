package gate

import (
	"net/http"
	"strings"

	"github.com/crealaunch/gate/oidc"
	"github.com/cccteam/httpio"
	"github.com/cccteam/logger"
	"go.opentelemetry.io/otel"
)

// Auth serves the login flow: it hands the browser to the identity
// provider and turns a verified callback into a session cookie. Routing
// of the freshly authenticated caller to its canonical area is the
// Protect middleware's job.
type Auth struct {
	oidc    oidc.Authenticator
	issuer  SessionIssuer
	landing string
	login   string
	handle  LogHandler
}

// AuthOption sets optional Auth settings.
type AuthOption func(*Auth)

// WithLandingPath sets the post-login landing path. (default: /dashboard)
func WithLandingPath(p string) AuthOption {
	return func(a *Auth) {
		a.landing = p
	}
}

// WithLoginPath sets the path to send logged-out callers to. (default: /login)
func WithLoginPath(p string) AuthOption {
	return func(a *Auth) {
		a.login = p
	}
}

// WithAuthLogHandler sets the LogHandler. (default: Handle)
func WithAuthLogHandler(l LogHandler) AuthOption {
	return func(a *Auth) {
		a.handle = l
	}
}

// NewAuth creates the login-flow handlers.
func NewAuth(authenticator oidc.Authenticator, issuer SessionIssuer, options ...AuthOption) *Auth {
	a := &Auth{
		oidc:    authenticator,
		issuer:  issuer,
		landing: "/dashboard",
		login:   "/login",
		handle:  Handle,
	}
	for _, opt := range options {
		opt(a)
	}

	return a
}

// Login initiates the OIDC authentication flow.
func (a *Auth) Login() http.HandlerFunc {
	return a.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "Auth.Login()")
		defer span.End()

		returnURL := safeReturnPath(r.URL.Query().Get("return"), a.landing)

		authCodeURL, err := a.oidc.AuthCodeURL(w, returnURL)
		if err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		http.Redirect(w, r, authCodeURL, http.StatusTemporaryRedirect)

		return nil
	})
}

// Callback completes the OIDC flow: it verifies the identity provider's
// response, issues the session cookie, and sends the caller to its return
// URL. The Protect middleware reroutes from there if the caller's role
// does not match.
func (a *Auth) Callback() http.HandlerFunc {
	return a.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "Auth.Callback()")
		defer span.End()

		claims := oidc.Claims{}
		returnURL, err := a.oidc.Verify(ctx, w, r, &claims)
		if err != nil {
			logger.Req(r).Error(err)
			http.Redirect(w, r, a.login, http.StatusTemporaryRedirect)

			return nil
		}

		if _, err := a.issuer.Issue(w, claims.Subject); err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		http.Redirect(w, r, safeReturnPath(returnURL, a.landing), http.StatusTemporaryRedirect)

		return nil
	})
}

// Logout destroys the session cookie and sends the caller to the login path.
func (a *Auth) Logout() http.HandlerFunc {
	return a.handle(func(w http.ResponseWriter, r *http.Request) error {
		_, span := otel.Tracer(name).Start(r.Context(), "Auth.Logout()")
		defer span.End()

		a.issuer.Clear(w)
		http.Redirect(w, r, a.login, http.StatusTemporaryRedirect)

		return nil
	})
}

// safeReturnPath keeps post-login redirects inside the application:
// anything but a rooted relative path falls back to the landing path.
func safeReturnPath(raw, fallback string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return fallback
	}

	return raw
}
