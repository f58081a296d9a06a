package userservice

import (
	"context"
	"errors"

	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
)

// ErrProfileMissing is returned when an authenticated identity has no
// profile but an operation needs one as the author of a record.
var ErrProfileMissing = errors.New("authenticated user has no profile")

// Service handles identities, profiles and role mutation.
type Service interface {
	// Accounts
	RegisterAccount(ctx context.Context, caller *authdomain.Caller, req RegisterAccountRequest) (outcome.Result[*userdb.User], error)
	ResolveCaller(ctx context.Context, userID int64) (*authdomain.Caller, error)

	// Profiles
	GetProfile(ctx context.Context, caller *authdomain.Caller) (outcome.Result[*userdb.Profile], error)
	UpdateProfile(ctx context.Context, caller *authdomain.Caller, req UpdateProfileRequest) (outcome.Result[*userdb.Profile], error)
	ProfileID(ctx context.Context, userID int64) (int64, error)

	// Role mutation
	BecomeStaff(ctx context.Context, caller *authdomain.Caller, key string) (outcome.Outcome, error)
	PromoteToSuperuser(ctx context.Context, actor *authdomain.Caller, targetID int64) (outcome.Outcome, error)
	RevokeStaff(ctx context.Context, actor *authdomain.Caller, targetID int64) (outcome.Outcome, error)
	DeleteUser(ctx context.Context, actor *authdomain.Caller, targetID int64) (outcome.Outcome, error)
}

// RegisterAccountRequest carries the identity fields of a new account.
// Credentials stay with the identity provider.
type RegisterAccountRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdateProfileRequest carries the editable profile fields. Phone and Info
// keep their stored value when nil.
type UpdateProfileRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Info      *string `json:"info,omitempty"`
}
