package clubservice

import (
	"context"

	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
)

// Service defines club management and the membership ledger.
type Service interface {
	// Clubs
	CreateClub(ctx context.Context, caller *authdomain.Caller, req CreateClubRequest) (outcome.Result[*clubdb.Club], error)
	GetClub(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Result[*ClubDetail], error)
	GetClubBySlug(ctx context.Context, caller *authdomain.Caller, slug string) (outcome.Result[*ClubDetail], error)
	ListClubs(ctx context.Context) (outcome.Result[[]*clubdb.Club], error)
	DeleteClub(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Outcome, error)

	// Membership ledger
	JoinClub(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Outcome, error)
	LeaveClub(ctx context.Context, caller *authdomain.Caller) (outcome.Outcome, error)
	RemoveMember(ctx context.Context, actor *authdomain.Caller, clubID, targetUserID int64) (outcome.Outcome, error)
	ListMembers(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Result[[]*clubdb.Member], error)
}

// ProfileLookup resolves the profile that authors a new club.
type ProfileLookup interface {
	ProfileID(ctx context.Context, userID int64) (int64, error)
}

// CreateClubRequest carries the editable club fields.
type CreateClubRequest struct {
	Title   string `json:"title"`
	Image   string `json:"image"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

// ClubDetail is a club as seen by one caller.
type ClubDetail struct {
	*clubdb.Club
	ShortContent string `json:"short_content"`
	MemberCount  int    `json:"member_count"`
	IsMember     bool   `json:"is_member"`
}
