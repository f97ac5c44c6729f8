package main

import (
	"encoding/json"
	"net/http"

	"github.com/cccteam/httpio"
	"github.com/crealaunch/gate"
	"github.com/crealaunch/gate/policy"
	"github.com/crealaunch/gate/roles"
	"github.com/go-chi/chi/v5"
)

// newRouter mounts the gate in front of either the upstream back-office
// application (pass-through mode) or local area stubs.
func newRouter(g *gate.Gate, a *gate.Auth, store roleStore, upstream http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(g.Protect)

	r.Get("/login", a.Login())
	r.Get("/auth/callback", a.Callback())
	r.Get("/auth/logout", a.Logout())

	// Only unauthenticated callers reach the landing path directly; the
	// gate reroutes authenticated ones to their canonical area first.
	landing := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
	}
	if upstream != nil {
		landing = upstream.ServeHTTP
	}
	r.Get("/dashboard", landing)

	for _, area := range policy.DefaultTable().Areas() {
		h := areaHandler(area)
		if upstream != nil {
			h = upstream.ServeHTTP
		}
		r.Get(string(area), h)
		r.Get(string(area)+"/*", h)
	}

	r.Put("/admin/users/{subject}/role", assignRoleHandler(store))

	return r
}

// areaHandler is a placeholder for the area frontends. It reports the area
// and the role the gate resolved for the caller.
func areaHandler(area policy.Area) http.HandlerFunc {
	return gate.Handle(func(w http.ResponseWriter, r *http.Request) error {
		return httpio.NewEncoder(w).Ok(map[string]string{
			"area": string(area),
			"role": gate.RoleFromRequest(r).String(),
		})
	})
}

// assignRoleHandler lets administrators set the stored role for a subject.
// The gate already restricts /admin to the ADMIN role.
func assignRoleHandler(store roleStore) http.HandlerFunc {
	return gate.Handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx := r.Context()

		var body struct {
			Role string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "Invalid request body")
		}

		role, ok := roles.Parse(body.Role)
		if !ok {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "unknown role "+body.Role)
		}

		if err := store.AssignRole(ctx, chi.URLParam(r, "subject"), role.String()); err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		return httpio.NewEncoder(w).Ok(nil)
	})
}
