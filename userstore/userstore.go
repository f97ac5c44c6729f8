// Package userstore looks up and assigns the stored role for back-office
// identities. Drivers exist for PostgreSQL, Spanner, and Redis; all of them
// key user records by the identity subject and are queried by exact match.
package userstore

import (
	"context"
)

const name = "github.com/crealaunch/gate/userstore"

// Store reads the stored role string for a subject. The raw string is
// converted into a Role by the caller; drivers do not interpret it.
type Store interface {
	// UserRole returns the stored role for the subject. A missing record
	// is reported with a not-found error.
	UserRole(ctx context.Context, subject string) (string, error)
}

// Writer assigns roles to subjects. Used by back-office administration,
// not by the request gate.
type Writer interface {
	// AssignRole stores the role for the subject, creating the user
	// record when none exists.
	AssignRole(ctx context.Context, subject, role string) error
}
