package gate

import (
	"context"
	"net/http"

	"github.com/crealaunch/gate/internal/types"
	"github.com/crealaunch/gate/roles"
)

// newRoleCtx returns a context carrying the resolved role.
func newRoleCtx(ctx context.Context, r roles.Role) context.Context {
	return context.WithValue(ctx, types.CTXRole, r)
}

// RoleFromCtx returns the role resolved by the Protect middleware. It
// returns the default role when the middleware has not run or the request
// carried no session.
func RoleFromCtx(ctx context.Context) roles.Role {
	r, ok := ctx.Value(types.CTXRole).(roles.Role)
	if !ok {
		return roles.Default
	}

	return r
}

// RoleFromRequest returns the role resolved by the Protect middleware.
func RoleFromRequest(r *http.Request) roles.Role {
	return RoleFromCtx(r.Context())
}
