package clubhandlers

import (
	"context"

	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	clubservice "github.com/Black-And-White-Club/clubhouse/app/modules/club/application"
	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
)

// ------------------------
// Fake Club Service
// ------------------------

type FakeClubService struct {
	trace []string

	CreateClubFunc    func(ctx context.Context, caller *authdomain.Caller, req clubservice.CreateClubRequest) (outcome.Result[*clubdb.Club], error)
	GetClubFunc       func(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Result[*clubservice.ClubDetail], error)
	GetClubBySlugFunc func(ctx context.Context, caller *authdomain.Caller, slug string) (outcome.Result[*clubservice.ClubDetail], error)
	ListClubsFunc     func(ctx context.Context) (outcome.Result[[]*clubdb.Club], error)
	DeleteClubFunc    func(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Outcome, error)
	JoinClubFunc      func(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Outcome, error)
	LeaveClubFunc     func(ctx context.Context, caller *authdomain.Caller) (outcome.Outcome, error)
	RemoveMemberFunc  func(ctx context.Context, actor *authdomain.Caller, clubID, targetUserID int64) (outcome.Outcome, error)
	ListMembersFunc   func(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Result[[]*clubdb.Member], error)
}

func (f *FakeClubService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeClubService) CreateClub(ctx context.Context, caller *authdomain.Caller, req clubservice.CreateClubRequest) (outcome.Result[*clubdb.Club], error) {
	f.record("CreateClub")
	if f.CreateClubFunc != nil {
		return f.CreateClubFunc(ctx, caller, req)
	}
	return outcome.Result[*clubdb.Club]{}, nil
}

func (f *FakeClubService) GetClub(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Result[*clubservice.ClubDetail], error) {
	f.record("GetClub")
	if f.GetClubFunc != nil {
		return f.GetClubFunc(ctx, caller, clubID)
	}
	return outcome.Result[*clubservice.ClubDetail]{}, nil
}

func (f *FakeClubService) GetClubBySlug(ctx context.Context, caller *authdomain.Caller, slug string) (outcome.Result[*clubservice.ClubDetail], error) {
	f.record("GetClubBySlug")
	if f.GetClubBySlugFunc != nil {
		return f.GetClubBySlugFunc(ctx, caller, slug)
	}
	return outcome.Result[*clubservice.ClubDetail]{}, nil
}

func (f *FakeClubService) ListClubs(ctx context.Context) (outcome.Result[[]*clubdb.Club], error) {
	f.record("ListClubs")
	if f.ListClubsFunc != nil {
		return f.ListClubsFunc(ctx)
	}
	return outcome.Result[[]*clubdb.Club]{}, nil
}

func (f *FakeClubService) DeleteClub(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Outcome, error) {
	f.record("DeleteClub")
	if f.DeleteClubFunc != nil {
		return f.DeleteClubFunc(ctx, caller, clubID)
	}
	return outcome.Outcome{}, nil
}

func (f *FakeClubService) JoinClub(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Outcome, error) {
	f.record("JoinClub")
	if f.JoinClubFunc != nil {
		return f.JoinClubFunc(ctx, caller, clubID)
	}
	return outcome.Outcome{}, nil
}

func (f *FakeClubService) LeaveClub(ctx context.Context, caller *authdomain.Caller) (outcome.Outcome, error) {
	f.record("LeaveClub")
	if f.LeaveClubFunc != nil {
		return f.LeaveClubFunc(ctx, caller)
	}
	return outcome.Outcome{}, nil
}

func (f *FakeClubService) RemoveMember(ctx context.Context, actor *authdomain.Caller, clubID, targetUserID int64) (outcome.Outcome, error) {
	f.record("RemoveMember")
	if f.RemoveMemberFunc != nil {
		return f.RemoveMemberFunc(ctx, actor, clubID, targetUserID)
	}
	return outcome.Outcome{}, nil
}

func (f *FakeClubService) ListMembers(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Result[[]*clubdb.Member], error) {
	f.record("ListMembers")
	if f.ListMembersFunc != nil {
		return f.ListMembersFunc(ctx, caller, clubID)
	}
	return outcome.Result[[]*clubdb.Member]{}, nil
}

// --- Accessors for assertions ---

func (f *FakeClubService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ clubservice.Service = (*FakeClubService)(nil)
