// Package authservice holds the role authorization gate applied by every
// protected operation.
package authservice

import (
	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
)

// Role sets used across the modules.
var (
	MemberRoles  = []authdomain.Role{authdomain.RoleAdmin, authdomain.RoleStaff, authdomain.RoleUser}
	ManagerRoles = []authdomain.Role{authdomain.RoleAdmin, authdomain.RoleStaff}
	AdminRoles   = []authdomain.Role{authdomain.RoleAdmin}
)

// Authorize reports whether caller may perform an operation permitted to
// allowed. Staff and superusers bypass the role check. There is no wildcard:
// an empty allowed set admits only staff and superusers, and a nil caller is
// always denied.
func Authorize(caller *authdomain.Caller, allowed ...authdomain.Role) bool {
	if caller == nil {
		return false
	}
	if caller.IsStaff() || caller.IsSuperuser() {
		return true
	}
	for _, r := range allowed {
		if caller.HasRole(r) {
			return true
		}
	}
	return false
}

// Guard returns the forbidden outcome and false when Authorize denies.
// Callers short-circuit on false:
//
//	if o, ok := authservice.Guard(caller, authservice.MemberRoles...); !ok {
//		return o, nil
//	}
func Guard(caller *authdomain.Caller, allowed ...authdomain.Role) (outcome.Outcome, bool) {
	if !Authorize(caller, allowed...) {
		return outcome.Forbidden(), false
	}
	return outcome.Outcome{}, true
}
