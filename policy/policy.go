// Package policy holds the fixed routing configuration for the back-office:
// the area prefixes, the role to canonical-area table, and the route
// classifier that buckets an incoming path.
package policy

import (
	"strings"

	"github.com/crealaunch/gate/roles"
	"github.com/go-playground/errors/v5"
)

// Area is a top-level path prefix representing a role-specific section
// of the application.
type Area string

const (
	AreaAdmin      Area = "/admin"
	AreaHOS        Area = "/hos"
	AreaCommercial Area = "/commercial"
	AreaSetter     Area = "/setter"
	AreaExpert     Area = "/expert"
	AreaClient     Area = "/client"

	// AreaAuth is reachable without a session.
	AreaAuth Area = "/auth"
)

func (a Area) String() string {
	return string(a)
}

// Contains reports whether path falls under the area prefix. Matching is
// case sensitive and segment aware, so "/adminx" is not under "/admin".
func (a Area) Contains(path string) bool {
	prefix := string(a)
	if !strings.HasPrefix(path, prefix) {
		return false
	}

	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// Table is the immutable mapping from every role to its canonical area.
// One role may be flagged unrestricted, granting it access to all areas.
type Table struct {
	areas        map[roles.Role]Area
	unrestricted roles.Role
}

// NewTable builds a Table, enforcing that the mapping is total over the
// closed role set.
func NewTable(areas map[roles.Role]Area, unrestricted roles.Role) (Table, error) {
	for _, r := range roles.All() {
		if _, ok := areas[r]; !ok {
			return Table{}, errors.Newf("policy table is missing an entry for role %q", r)
		}
	}

	copied := make(map[roles.Role]Area, len(areas))
	for r, a := range areas {
		if !r.Valid() {
			return Table{}, errors.Newf("policy table contains unknown role %q", r)
		}
		copied[r] = a
	}

	return Table{areas: copied, unrestricted: unrestricted}, nil
}

// DefaultTable returns the production role to area mapping.
func DefaultTable() Table {
	t, err := NewTable(map[roles.Role]Area{
		roles.Admin:  AreaAdmin,
		roles.HOS:    AreaHOS,
		roles.Closer: AreaCommercial,
		roles.Setter: AreaSetter,
		roles.Expert: AreaExpert,
		roles.Client: AreaClient,
	}, roles.Admin)
	if err != nil {
		panic(err) // static table, exhaustive by construction
	}

	return t
}

// Area returns the canonical area for the role. Roles outside the table
// resolve to the default role's area.
func (t Table) Area(r roles.Role) Area {
	a, ok := t.areas[r]
	if !ok {
		return t.areas[roles.Default]
	}

	return a
}

// Unrestricted reports whether the role may enter every protected area.
func (t Table) Unrestricted(r roles.Role) bool {
	return t.unrestricted != "" && r == t.unrestricted
}

// Areas returns the protected area prefixes covered by the table.
func (t Table) Areas() []Area {
	list := make([]Area, 0, len(t.areas))
	seen := make(map[Area]struct{}, len(t.areas))
	for _, a := range t.areas {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		list = append(list, a)
	}

	return list
}
