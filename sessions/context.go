package sessions

import (
	"context"
	"net/http"

	"github.com/crealaunch/gate/internal/types"
)

// NewCtx returns a context carrying the session.
func NewCtx(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, types.CTXSession, s)
}

// FromCtx returns the session stored in the context, or nil when the
// request carried no session.
func FromCtx(ctx context.Context) *Session {
	s, ok := ctx.Value(types.CTXSession).(*Session)
	if !ok {
		return nil
	}

	return s
}

// FromRequest returns the session stored in the request context, or nil
// when the request carried no session.
func FromRequest(r *http.Request) *Session {
	return FromCtx(r.Context())
}
