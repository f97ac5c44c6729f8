// Package gate decides, for every incoming back-office request, whether the
// caller's session may reach the requested area, and where to send it
// otherwise. It combines a cookie session resolver, a role lookup against
// the user-record store, and an immutable role-to-area policy table.
package gate

import (
	"context"
	"net/http"

	"github.com/crealaunch/gate/policy"
	"github.com/crealaunch/gate/roles"
	"github.com/crealaunch/gate/sessions"
	"github.com/crealaunch/gate/userstore"
	"github.com/cccteam/logger"
	"go.opentelemetry.io/otel"
)

const name = "github.com/crealaunch/gate"

// SessionResolver extracts a session from request cookies. Absence of a
// valid session is a normal outcome, not an error. Returned cookie
// mutations (token refreshes) must be applied to the response whatever
// routing decision follows.
type SessionResolver interface {
	Resolve(r *http.Request) (sess *sessions.Session, mutations []*http.Cookie, ok bool)
}

// SessionIssuer creates and destroys sessions. Used by the login flow.
type SessionIssuer interface {
	Issue(w http.ResponseWriter, subject string) (*sessions.Session, error)
	Clear(w http.ResponseWriter)
}

// Gate evaluates the access decision for every request.
type Gate struct {
	resolver   SessionResolver
	store      userstore.Store
	table      policy.Table
	classifier policy.Classifier
	failMode   FailMode
}

// New creates a Gate over the given session resolver and user-record store.
// By default it uses the production policy table and classifier and the
// DegradeToDefaultRole failure policy.
func New(resolver SessionResolver, store userstore.Store, options ...Option) *Gate {
	g := &Gate{
		resolver:   resolver,
		store:      store,
		table:      policy.DefaultTable(),
		classifier: policy.DefaultClassifier(),
		failMode:   DegradeToDefaultRole,
	}
	for _, opt := range options {
		opt(g)
	}

	return g
}

// lookupRole resolves the stored role for the subject. Lookup failures and
// unknown role strings never abort the request; both degrade to the default
// role so the decision stays deterministic. The error is reported so the
// FailClosed policy can act on it.
func (g *Gate) lookupRole(ctx context.Context, subject string) (roles.Role, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Gate.lookupRole()")
	defer span.End()

	raw, err := g.store.UserRole(ctx, subject)
	if err != nil {
		logger.Ctx(ctx).Infof("role lookup failed, degrading to role %s: %s", roles.Default, err)

		return roles.Default, err
	}

	role, known := roles.Parse(raw)
	if !known {
		logger.Ctx(ctx).Infof("unknown stored role %q, degrading to role %s", raw, roles.Default)
	}

	return role, nil
}
