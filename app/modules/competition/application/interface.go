package competitionservice

import (
	"context"

	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	competitiondb "github.com/Black-And-White-Club/clubhouse/app/modules/competition/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
)

// Service defines competition management and the competition roster.
type Service interface {
	// Competitions
	CreateCompetition(ctx context.Context, caller *authdomain.Caller, req CompetitionRequest) (outcome.Result[*competitiondb.Competition], error)
	UpdateCompetition(ctx context.Context, caller *authdomain.Caller, competitionID int64, req CompetitionRequest) (outcome.Result[*competitiondb.Competition], error)
	GetCompetition(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[*CompetitionDetail], error)
	GetCompetitionBySlug(ctx context.Context, caller *authdomain.Caller, slug string) (outcome.Result[*CompetitionDetail], error)
	ListCompetitions(ctx context.Context, clubID *int64) (outcome.Result[[]*competitiondb.Competition], error)
	DeleteCompetition(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Outcome, error)

	// Roster
	ExpressInterest(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Outcome, error)
	IsInterested(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[bool], error)
	Register(ctx context.Context, caller *authdomain.Caller, competitionSlug string, req RegisterRequest) (outcome.Result[*competitiondb.Registration], error)
	DeleteRegistration(ctx context.Context, caller *authdomain.Caller, registrationID int64) (outcome.Outcome, error)
	ListRegistrations(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[[]*competitiondb.Registration], error)
	ExportRegistrations(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[*Export], error)
}

// CompetitionRequest carries the editable competition fields. ClubID is only
// read on create. Date is ISO or a natural language phrase.
type CompetitionRequest struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Context string `json:"context"`
	ClubID  int64  `json:"club_id"`
}

// RegisterRequest carries the registration form.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`
}

// CompetitionDetail is a competition as seen by one caller.
type CompetitionDetail struct {
	*competitiondb.Competition
	InterestCount int  `json:"interest_count"`
	IsInterested  bool `json:"is_interested"`
}

// Export is a rendered roster workbook.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}
