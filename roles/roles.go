// Package roles defines the closed set of back-office roles and the
// boundary conversion from raw role strings read from external stores.
package roles

// Role is the categorical permission level assigned to an authenticated identity.
type Role string

const (
	// Admin has unrestricted access to every area.
	Admin Role = "ADMIN"

	// HOS is the head-of-sales role.
	HOS Role = "HOS"

	// Closer is the sales closer role.
	Closer Role = "CLOSER"

	// Setter is the appointment setter role.
	Setter Role = "SETTER"

	// Expert is the coaching expert role.
	Expert Role = "EXPERT"

	// Client is the end-client role and the default for unknown identities.
	Client Role = "CLIENT"
)

// Default is the role every identity degrades to when its stored role
// is missing, unknown, or unreadable.
const Default = Client

var all = []Role{Admin, HOS, Closer, Setter, Expert, Client}

// All returns every role in the closed set.
func All() []Role {
	list := make([]Role, len(all))
	copy(list, all)

	return list
}

// Parse converts a raw role string into a Role. Strings outside the
// closed set coerce to Default, reported by the second return value.
func Parse(s string) (Role, bool) {
	r := Role(s)
	if !r.Valid() {
		return Default, false
	}

	return r, true
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	for _, v := range all {
		if v == r {
			return true
		}
	}

	return false
}

func (r Role) String() string {
	return string(r)
}
