package gate

import (
	"context"

	"github.com/crealaunch/gate/roles"
	"github.com/crealaunch/gate/sessions"
	"go.opentelemetry.io/otel"
)

// Decision is the terminal outcome of evaluating one request.
type Decision int

const (
	// Allow passes the request through to the requested handler.
	Allow Decision = iota

	// RedirectToLogin sends an unauthenticated caller to the login path.
	RedirectToLogin

	// RedirectToArea sends an authenticated caller to its canonical area.
	RedirectToArea
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirectToLogin"
	case RedirectToArea:
		return "redirectToArea"
	default:
		return "unknown"
	}
}

// FailMode selects how a role-lookup failure is treated.
type FailMode int

const (
	// DegradeToDefaultRole routes the caller as the default role when its
	// stored role cannot be read. Availability is preferred over
	// least-privilege correctness for this internal tool.
	DegradeToDefaultRole FailMode = iota

	// FailClosed treats an unreadable role as unauthenticated: protected
	// paths force a fresh login instead of degraded routing, while entry
	// and public paths pass through so the login page stays reachable.
	FailClosed
)

// Result is the decision for a single request. Location is set for the two
// redirect decisions; Role is the resolved role when a session was present.
type Result struct {
	Decision Decision
	Location string
	Role     roles.Role
}

// Evaluate runs the decision state machine for one request. It is
// deterministic and terminal: the same (session, path) input always yields
// the same single decision, and no failure inside role lookup escapes.
func (g *Gate) Evaluate(ctx context.Context, sess *sessions.Session, path string) Result {
	ctx, span := otel.Tracer(name).Start(ctx, "Gate.Evaluate()")
	defer span.End()

	class := g.classifier.Classify(path)

	if sess == nil {
		if class.Protected {
			return Result{Decision: RedirectToLogin, Location: g.classifier.LoginPath()}
		}

		return Result{Decision: Allow}
	}

	role, err := g.lookupRole(ctx, sess.Subject)
	if err != nil && g.failMode == FailClosed {
		// The caller is treated as unauthenticated. Entry paths fall
		// through to Allow, so the login path never redirects to itself.
		if class.Protected {
			return Result{Decision: RedirectToLogin, Location: g.classifier.LoginPath()}
		}

		return Result{Decision: Allow, Role: role}
	}

	// Entry paths are evaluated before cross-area protection; see the
	// classifier for the tie-break.
	if class.Entry {
		return Result{Decision: RedirectToArea, Location: g.table.Area(role).String(), Role: role}
	}

	if class.Protected && !g.table.Unrestricted(role) && g.table.Area(role) != class.Area {
		return Result{Decision: RedirectToArea, Location: g.table.Area(role).String(), Role: role}
	}

	return Result{Decision: Allow, Role: role}
}
