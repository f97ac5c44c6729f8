package gate

import (
	"net/http"

	"github.com/crealaunch/gate/sessions"
	"github.com/cccteam/logger"
	"go.opentelemetry.io/otel"
)

// Protect intercepts every request before it reaches any page or API
// handler. It resolves the session, evaluates the access decision, and
// either passes the request through (with session and role stored in the
// context) or redirects. Cookie refreshes produced by the resolver are
// applied to the response on both outcomes.
func (g *Gate) Protect(next http.Handler) http.Handler {
	return g.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "Gate.Protect()")
		defer span.End()

		sess, mutations, ok := g.resolver.Resolve(r)
		for _, c := range mutations {
			http.SetCookie(w, c)
		}
		if !ok {
			sess = nil
		}

		result := g.Evaluate(ctx, sess, r.URL.Path)

		switch result.Decision {
		case RedirectToLogin, RedirectToArea:
			logger.Req(r).Infof("%s: redirecting %s to %s", result.Decision, r.URL.Path, result.Location)
			http.Redirect(w, r, result.Location, http.StatusTemporaryRedirect)

			return nil
		case Allow:
		}

		if sess != nil {
			ctx = sessions.NewCtx(ctx, sess)
			ctx = newRoleCtx(ctx, result.Role)

			// Add identity to logging context
			logger.Req(r).AddRequestAttribute("subject", sess.Subject)
			l := logger.Req(r).WithAttributes().
				AddAttribute("subject", sess.Subject).
				AddAttribute("role", result.Role.String()).Logger()
			ctx = logger.NewCtx(ctx, l)
		}

		next.ServeHTTP(w, r.WithContext(ctx))

		return nil
	})
}
