package userhandlers

import (
	"context"

	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	userservice "github.com/Black-And-White-Club/clubhouse/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
)

// ------------------------
// Fake User Service
// ------------------------

type FakeUserService struct {
	trace []string

	RegisterAccountFunc    func(ctx context.Context, caller *authdomain.Caller, req userservice.RegisterAccountRequest) (outcome.Result[*userdb.User], error)
	GetProfileFunc         func(ctx context.Context, caller *authdomain.Caller) (outcome.Result[*userdb.Profile], error)
	UpdateProfileFunc      func(ctx context.Context, caller *authdomain.Caller, req userservice.UpdateProfileRequest) (outcome.Result[*userdb.Profile], error)
	BecomeStaffFunc        func(ctx context.Context, caller *authdomain.Caller, key string) (outcome.Outcome, error)
	PromoteToSuperuserFunc func(ctx context.Context, actor *authdomain.Caller, targetID int64) (outcome.Outcome, error)
	RevokeStaffFunc        func(ctx context.Context, actor *authdomain.Caller, targetID int64) (outcome.Outcome, error)
	DeleteUserFunc         func(ctx context.Context, actor *authdomain.Caller, targetID int64) (outcome.Outcome, error)
}

func (f *FakeUserService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserService) RegisterAccount(ctx context.Context, caller *authdomain.Caller, req userservice.RegisterAccountRequest) (outcome.Result[*userdb.User], error) {
	f.record("RegisterAccount")
	if f.RegisterAccountFunc != nil {
		return f.RegisterAccountFunc(ctx, caller, req)
	}
	return outcome.Result[*userdb.User]{}, nil
}

func (f *FakeUserService) ResolveCaller(ctx context.Context, userID int64) (*authdomain.Caller, error) {
	f.record("ResolveCaller")
	return nil, nil
}

func (f *FakeUserService) GetProfile(ctx context.Context, caller *authdomain.Caller) (outcome.Result[*userdb.Profile], error) {
	f.record("GetProfile")
	if f.GetProfileFunc != nil {
		return f.GetProfileFunc(ctx, caller)
	}
	return outcome.Result[*userdb.Profile]{}, nil
}

func (f *FakeUserService) UpdateProfile(ctx context.Context, caller *authdomain.Caller, req userservice.UpdateProfileRequest) (outcome.Result[*userdb.Profile], error) {
	f.record("UpdateProfile")
	if f.UpdateProfileFunc != nil {
		return f.UpdateProfileFunc(ctx, caller, req)
	}
	return outcome.Result[*userdb.Profile]{}, nil
}

func (f *FakeUserService) ProfileID(ctx context.Context, userID int64) (int64, error) {
	f.record("ProfileID")
	return 0, nil
}

func (f *FakeUserService) BecomeStaff(ctx context.Context, caller *authdomain.Caller, key string) (outcome.Outcome, error) {
	f.record("BecomeStaff")
	if f.BecomeStaffFunc != nil {
		return f.BecomeStaffFunc(ctx, caller, key)
	}
	return outcome.Outcome{}, nil
}

func (f *FakeUserService) PromoteToSuperuser(ctx context.Context, actor *authdomain.Caller, targetID int64) (outcome.Outcome, error) {
	f.record("PromoteToSuperuser")
	if f.PromoteToSuperuserFunc != nil {
		return f.PromoteToSuperuserFunc(ctx, actor, targetID)
	}
	return outcome.Outcome{}, nil
}

func (f *FakeUserService) RevokeStaff(ctx context.Context, actor *authdomain.Caller, targetID int64) (outcome.Outcome, error) {
	f.record("RevokeStaff")
	if f.RevokeStaffFunc != nil {
		return f.RevokeStaffFunc(ctx, actor, targetID)
	}
	return outcome.Outcome{}, nil
}

func (f *FakeUserService) DeleteUser(ctx context.Context, actor *authdomain.Caller, targetID int64) (outcome.Outcome, error) {
	f.record("DeleteUser")
	if f.DeleteUserFunc != nil {
		return f.DeleteUserFunc(ctx, actor, targetID)
	}
	return outcome.Outcome{}, nil
}

func (f *FakeUserService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ userservice.Service = (*FakeUserService)(nil)
