package userservice

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/Black-And-White-Club/clubhouse/app/eventbus"
	authservice "github.com/Black-And-White-Club/clubhouse/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/operation"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
	"github.com/uptrace/bun"
)

const (
	msgInvalidStaffKey = "Invalid staff key."
	msgNowStaff        = "You are now a staff member."
	msgSelfRoleChange  = "You cannot change your own roles."
	msgSelfDelete      = "You cannot delete your own account."
)

// mutation is what a role mutator decided, carried out of the transaction so
// events are only emitted after commit.
type mutation struct {
	outcome outcome.Outcome
	target  *userdb.User
	changed bool
}

// KindString and IsFailure let the telemetry wrapper classify a mutation.
func (m mutation) KindString() string { return m.outcome.KindString() }
func (m mutation) IsFailure() bool    { return m.outcome.IsFailure() }

// BecomeStaff grants the caller the staff label and flag when key matches
// the configured secret. Granting twice leaves a single label.
func (s *UserService) BecomeStaff(ctx context.Context, caller *authdomain.Caller, key string) (outcome.Outcome, error) {
	if o, ok := authservice.Guard(caller, authservice.MemberRoles...); !ok {
		return o, nil
	}

	m, err := operation.Observe(s.run, ctx, "BecomeStaff", idString(caller.UserID()), func(ctx context.Context, db bun.IDB) (mutation, error) {
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.staffKey)) != 1 {
			return mutation{outcome: outcome.Outcome{Kind: outcome.KindForbidden, Message: msgInvalidStaffKey, Next: nextStaff}}, nil
		}

		user, err := s.repo.GetUserForUpdate(ctx, db, caller.UserID())
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return mutation{outcome: outcome.NotFound(msgUserNotFound)}, nil
			}
			return mutation{}, err
		}
		if err := s.repo.AddRole(ctx, db, user.ID, authdomain.RoleStaff.String()); err != nil {
			return mutation{}, err
		}
		if err := s.repo.SetFlags(ctx, db, user.ID, true, user.IsSuperuser); err != nil {
			return mutation{}, err
		}
		user.IsStaff = true
		user.Roles = withLabel(user.Roles, user.ID, authdomain.RoleStaff)
		return mutation{outcome: outcome.Success(msgNowStaff, nextHome), target: user, changed: true}, nil
	})
	if err != nil {
		return outcome.Outcome{}, err
	}
	s.emitRoleChange(ctx, caller, m)
	return m.outcome, nil
}

// PromoteToSuperuser grants the admin label plus the staff and superuser
// flags to another identity.
func (s *UserService) PromoteToSuperuser(ctx context.Context, actor *authdomain.Caller, targetID int64) (outcome.Outcome, error) {
	if o, ok := authservice.Guard(actor, authservice.AdminRoles...); !ok {
		return o, nil
	}
	if actor.UserID() == targetID {
		return outcome.Error(msgSelfRoleChange, nextUsers), nil
	}

	m, err := operation.Observe(s.run, ctx, "PromoteToSuperuser", idString(targetID), func(ctx context.Context, db bun.IDB) (mutation, error) {
		target, err := s.repo.GetUserForUpdate(ctx, db, targetID)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return mutation{outcome: outcome.NotFound(msgUserNotFound)}, nil
			}
			return mutation{}, err
		}
		if hasLabel(target, authdomain.RoleAdmin) && target.IsSuperuser {
			return mutation{outcome: outcome.Info(target.Username+" is already a superuser.", nextUsers)}, nil
		}

		if err := s.repo.AddRole(ctx, db, target.ID, authdomain.RoleAdmin.String()); err != nil {
			return mutation{}, err
		}
		if err := s.repo.SetFlags(ctx, db, target.ID, true, true); err != nil {
			return mutation{}, err
		}
		target.IsStaff, target.IsSuperuser = true, true
		target.Roles = withLabel(target.Roles, target.ID, authdomain.RoleAdmin)
		return mutation{
			outcome: outcome.Success(target.Username+" has been promoted to superuser.", nextUsers),
			target:  target,
			changed: true,
		}, nil
	})
	if err != nil {
		return outcome.Outcome{}, err
	}
	s.emitRoleChange(ctx, actor, m)
	return m.outcome, nil
}

// RevokeStaff strips the admin and staff labels and clears both flags.
func (s *UserService) RevokeStaff(ctx context.Context, actor *authdomain.Caller, targetID int64) (outcome.Outcome, error) {
	if o, ok := authservice.Guard(actor, authservice.AdminRoles...); !ok {
		return o, nil
	}
	if actor.UserID() == targetID {
		return outcome.Error(msgSelfRoleChange, nextUsers), nil
	}

	m, err := operation.Observe(s.run, ctx, "RevokeStaff", idString(targetID), func(ctx context.Context, db bun.IDB) (mutation, error) {
		target, err := s.repo.GetUserForUpdate(ctx, db, targetID)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return mutation{outcome: outcome.NotFound(msgUserNotFound)}, nil
			}
			return mutation{}, err
		}
		privileged := target.IsStaff || target.IsSuperuser ||
			hasLabel(target, authdomain.RoleAdmin) || hasLabel(target, authdomain.RoleStaff)
		if !privileged {
			return mutation{outcome: outcome.Info(target.Username+" is not a staff member.", nextUsers)}, nil
		}

		if err := s.repo.RemoveRoles(ctx, db, target.ID, authdomain.RoleAdmin.String(), authdomain.RoleStaff.String()); err != nil {
			return mutation{}, err
		}
		if err := s.repo.SetFlags(ctx, db, target.ID, false, false); err != nil {
			return mutation{}, err
		}
		target.IsStaff, target.IsSuperuser = false, false
		target.Roles = withoutLabels(target.Roles, authdomain.RoleAdmin, authdomain.RoleStaff)
		return mutation{
			outcome: outcome.Success("Staff privileges revoked for "+target.Username+".", nextUsers),
			target:  target,
			changed: true,
		}, nil
	})
	if err != nil {
		return outcome.Outcome{}, err
	}
	s.emitRoleChange(ctx, actor, m)
	return m.outcome, nil
}

// DeleteUser removes another identity. Profile, memberships, interest,
// registrations and posts go with it.
func (s *UserService) DeleteUser(ctx context.Context, actor *authdomain.Caller, targetID int64) (outcome.Outcome, error) {
	if o, ok := authservice.Guard(actor, authservice.AdminRoles...); !ok {
		return o, nil
	}
	if actor.UserID() == targetID {
		return outcome.Error(msgSelfDelete, nextUsers), nil
	}

	m, err := operation.Observe(s.run, ctx, "DeleteUser", idString(targetID), func(ctx context.Context, db bun.IDB) (mutation, error) {
		target, err := s.repo.GetUserForUpdate(ctx, db, targetID)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return mutation{outcome: outcome.NotFound(msgUserNotFound)}, nil
			}
			return mutation{}, err
		}
		if err := s.repo.DeleteUser(ctx, db, target.ID); err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return mutation{outcome: outcome.NotFound(msgUserNotFound)}, nil
			}
			return mutation{}, err
		}
		return mutation{
			outcome: outcome.Success("User "+target.Username+" has been deleted.", nextUsers),
			target:  target,
			changed: true,
		}, nil
	})
	if err != nil {
		return outcome.Outcome{}, err
	}
	if m.changed {
		s.events.Emit(ctx, eventbus.TopicUserDeleted, eventbus.UserDeletedPayload{
			ActorID: actor.UserID(),
			UserID:  m.target.ID,
		})
	}
	return m.outcome, nil
}

func (s *UserService) emitRoleChange(ctx context.Context, actor *authdomain.Caller, m mutation) {
	if !m.changed {
		return
	}
	s.events.Emit(ctx, eventbus.TopicRoleChanged, eventbus.RoleChangedPayload{
		ActorID:     actor.UserID(),
		UserID:      m.target.ID,
		Roles:       authdomain.RoleStrings(authdomain.ParseRoles(m.target.RoleLabels())),
		IsStaff:     m.target.IsStaff,
		IsSuperuser: m.target.IsSuperuser,
	})
}

func hasLabel(u *userdb.User, role authdomain.Role) bool {
	for _, r := range u.Roles {
		if r.Role == role.String() {
			return true
		}
	}
	return false
}

func withLabel(roles []*userdb.UserRole, userID int64, role authdomain.Role) []*userdb.UserRole {
	for _, r := range roles {
		if r.Role == role.String() {
			return roles
		}
	}
	return append(roles, &userdb.UserRole{UserID: userID, Role: role.String()})
}

func withoutLabels(roles []*userdb.UserRole, drop ...authdomain.Role) []*userdb.UserRole {
	var out []*userdb.UserRole
	for _, r := range roles {
		keep := true
		for _, d := range drop {
			if r.Role == d.String() {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}
