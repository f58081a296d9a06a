package authdomain

import "sort"

// Role is a named permission group held by an identity.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleUser  Role = "user"
)

// IsValid checks if the role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleUser:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// ParseRoles converts stored labels into roles, skipping unknown ones.
func ParseRoles(labels []string) []Role {
	roles := make([]Role, 0, len(labels))
	for _, l := range labels {
		if r := Role(l); r.IsValid() {
			roles = append(roles, r)
		}
	}
	return roles
}

// RoleStrings converts roles to sorted labels.
func RoleStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	sort.Strings(out)
	return out
}
