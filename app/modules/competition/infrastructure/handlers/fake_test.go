package competitionhandlers

import (
	"context"

	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	competitionservice "github.com/Black-And-White-Club/clubhouse/app/modules/competition/application"
	competitiondb "github.com/Black-And-White-Club/clubhouse/app/modules/competition/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
)

// ------------------------
// Fake Competition Service
// ------------------------

type FakeCompetitionService struct {
	trace []string

	CreateCompetitionFunc    func(ctx context.Context, caller *authdomain.Caller, req competitionservice.CompetitionRequest) (outcome.Result[*competitiondb.Competition], error)
	UpdateCompetitionFunc    func(ctx context.Context, caller *authdomain.Caller, competitionID int64, req competitionservice.CompetitionRequest) (outcome.Result[*competitiondb.Competition], error)
	GetCompetitionFunc       func(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[*competitionservice.CompetitionDetail], error)
	GetCompetitionBySlugFunc func(ctx context.Context, caller *authdomain.Caller, slug string) (outcome.Result[*competitionservice.CompetitionDetail], error)
	ListCompetitionsFunc     func(ctx context.Context, clubID *int64) (outcome.Result[[]*competitiondb.Competition], error)
	DeleteCompetitionFunc    func(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Outcome, error)
	ExpressInterestFunc      func(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Outcome, error)
	IsInterestedFunc         func(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[bool], error)
	RegisterFunc             func(ctx context.Context, caller *authdomain.Caller, competitionSlug string, req competitionservice.RegisterRequest) (outcome.Result[*competitiondb.Registration], error)
	DeleteRegistrationFunc   func(ctx context.Context, caller *authdomain.Caller, registrationID int64) (outcome.Outcome, error)
	ListRegistrationsFunc    func(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[[]*competitiondb.Registration], error)
	ExportRegistrationsFunc  func(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[*competitionservice.Export], error)
}

func (f *FakeCompetitionService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeCompetitionService) CreateCompetition(ctx context.Context, caller *authdomain.Caller, req competitionservice.CompetitionRequest) (outcome.Result[*competitiondb.Competition], error) {
	f.record("CreateCompetition")
	if f.CreateCompetitionFunc != nil {
		return f.CreateCompetitionFunc(ctx, caller, req)
	}
	return outcome.Result[*competitiondb.Competition]{}, nil
}

func (f *FakeCompetitionService) UpdateCompetition(ctx context.Context, caller *authdomain.Caller, competitionID int64, req competitionservice.CompetitionRequest) (outcome.Result[*competitiondb.Competition], error) {
	f.record("UpdateCompetition")
	if f.UpdateCompetitionFunc != nil {
		return f.UpdateCompetitionFunc(ctx, caller, competitionID, req)
	}
	return outcome.Result[*competitiondb.Competition]{}, nil
}

func (f *FakeCompetitionService) GetCompetition(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[*competitionservice.CompetitionDetail], error) {
	f.record("GetCompetition")
	if f.GetCompetitionFunc != nil {
		return f.GetCompetitionFunc(ctx, caller, competitionID)
	}
	return outcome.Result[*competitionservice.CompetitionDetail]{}, nil
}

func (f *FakeCompetitionService) GetCompetitionBySlug(ctx context.Context, caller *authdomain.Caller, slug string) (outcome.Result[*competitionservice.CompetitionDetail], error) {
	f.record("GetCompetitionBySlug")
	if f.GetCompetitionBySlugFunc != nil {
		return f.GetCompetitionBySlugFunc(ctx, caller, slug)
	}
	return outcome.Result[*competitionservice.CompetitionDetail]{}, nil
}

func (f *FakeCompetitionService) ListCompetitions(ctx context.Context, clubID *int64) (outcome.Result[[]*competitiondb.Competition], error) {
	f.record("ListCompetitions")
	if f.ListCompetitionsFunc != nil {
		return f.ListCompetitionsFunc(ctx, clubID)
	}
	return outcome.Result[[]*competitiondb.Competition]{}, nil
}

func (f *FakeCompetitionService) DeleteCompetition(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Outcome, error) {
	f.record("DeleteCompetition")
	if f.DeleteCompetitionFunc != nil {
		return f.DeleteCompetitionFunc(ctx, caller, competitionID)
	}
	return outcome.Outcome{}, nil
}

func (f *FakeCompetitionService) ExpressInterest(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Outcome, error) {
	f.record("ExpressInterest")
	if f.ExpressInterestFunc != nil {
		return f.ExpressInterestFunc(ctx, caller, competitionID)
	}
	return outcome.Outcome{}, nil
}

func (f *FakeCompetitionService) IsInterested(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[bool], error) {
	f.record("IsInterested")
	if f.IsInterestedFunc != nil {
		return f.IsInterestedFunc(ctx, caller, competitionID)
	}
	return outcome.Result[bool]{}, nil
}

func (f *FakeCompetitionService) Register(ctx context.Context, caller *authdomain.Caller, competitionSlug string, req competitionservice.RegisterRequest) (outcome.Result[*competitiondb.Registration], error) {
	f.record("Register")
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, caller, competitionSlug, req)
	}
	return outcome.Result[*competitiondb.Registration]{}, nil
}

func (f *FakeCompetitionService) DeleteRegistration(ctx context.Context, caller *authdomain.Caller, registrationID int64) (outcome.Outcome, error) {
	f.record("DeleteRegistration")
	if f.DeleteRegistrationFunc != nil {
		return f.DeleteRegistrationFunc(ctx, caller, registrationID)
	}
	return outcome.Outcome{}, nil
}

func (f *FakeCompetitionService) ListRegistrations(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[[]*competitiondb.Registration], error) {
	f.record("ListRegistrations")
	if f.ListRegistrationsFunc != nil {
		return f.ListRegistrationsFunc(ctx, caller, competitionID)
	}
	return outcome.Result[[]*competitiondb.Registration]{}, nil
}

func (f *FakeCompetitionService) ExportRegistrations(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[*competitionservice.Export], error) {
	f.record("ExportRegistrations")
	if f.ExportRegistrationsFunc != nil {
		return f.ExportRegistrationsFunc(ctx, caller, competitionID)
	}
	return outcome.Result[*competitionservice.Export]{}, nil
}

// --- Accessors for assertions ---

func (f *FakeCompetitionService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ competitionservice.Service = (*FakeCompetitionService)(nil)
