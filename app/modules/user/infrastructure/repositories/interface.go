package userdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for identities and profiles.
//
// Error semantics:
//   - ErrNotFound: requested user does not exist (Get*, Delete*, Set*)
//   - ErrProfileNotFound: the user has no profile row
//   - unique violations from Create* are returned unwrapped for dberr
//   - other errors: infrastructure failures
type Repository interface {
	// Identity operations
	GetUserByID(ctx context.Context, db bun.IDB, userID int64) (*User, error)
	GetUserForUpdate(ctx context.Context, db bun.IDB, userID int64) (*User, error)
	EmailInUse(ctx context.Context, db bun.IDB, email string) (bool, error)
	CreateUser(ctx context.Context, db bun.IDB, user *User) error
	UpdateUserNames(ctx context.Context, db bun.IDB, userID int64, firstName, lastName, email string) error
	SetFlags(ctx context.Context, db bun.IDB, userID int64, isStaff, isSuperuser bool) error
	DeleteUser(ctx context.Context, db bun.IDB, userID int64) error

	// Role label operations
	ListRoles(ctx context.Context, db bun.IDB, userID int64) ([]string, error)
	AddRole(ctx context.Context, db bun.IDB, userID int64, role string) error
	RemoveRoles(ctx context.Context, db bun.IDB, userID int64, roles ...string) error

	// Profile operations
	GetProfileByUserID(ctx context.Context, db bun.IDB, userID int64) (*Profile, error)
	CreateProfile(ctx context.Context, db bun.IDB, profile *Profile) error
	UpdateProfile(ctx context.Context, db bun.IDB, profile *Profile) error
}
