package clubservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	authservice "github.com/Black-And-White-Club/clubhouse/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/dberr"
	"github.com/Black-And-White-Club/clubhouse/app/shared/operation"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
	"github.com/Black-And-White-Club/clubhouse/app/shared/slug"
	"github.com/uptrace/bun"
)

const (
	msgClubNotFound   = "Club not found."
	msgTitleTaken     = "A club with this title already exists."
	msgTitleRequired  = "Title is required."
	msgTitleTooLong   = "Title must be at most 100 characters."
	msgTitleUnusable  = "Title must contain at least one letter or digit."
	msgSlugTooLong    = "Title is too long to use in a link."
	msgClubDeleted    = "Club deleted."
	maxClubTitleRunes = 100
	maxClubSlugLen    = 120
)

// CreateClub stores a new club authored by the caller's profile. The slug is
// derived from the title here and never changes afterwards.
func (s *ClubService) CreateClub(ctx context.Context, caller *authdomain.Caller, req CreateClubRequest) (outcome.Result[*clubdb.Club], error) {
	if o, ok := authservice.Guard(caller, authservice.ManagerRoles...); !ok {
		return outcome.With[*clubdb.Club](o, nil), nil
	}

	req.Title = strings.TrimSpace(req.Title)
	if msg := validateTitle(req.Title); msg != "" {
		return outcome.With[*clubdb.Club](outcome.Error(msg, nextClubs), nil), nil
	}

	return operation.WithTelemetry(s.run, ctx, "CreateClub", req.Title, func(ctx context.Context) (outcome.Result[*clubdb.Club], error) {
		profileID, err := s.profiles.ProfileID(ctx, caller.UserID())
		if err != nil {
			return outcome.Result[*clubdb.Club]{}, fmt.Errorf("failed to resolve author profile: %w", err)
		}

		club := &clubdb.Club{
			Title:     req.Title,
			Slug:      slug.Make(req.Title),
			Image:     strings.TrimSpace(req.Image),
			Content:   req.Content,
			Owner:     strings.TrimSpace(req.Owner),
			CreatedBy: &profileID,
		}
		result, err := operation.RunInTx(s.run, ctx, func(ctx context.Context, db bun.IDB) (outcome.Result[*clubdb.Club], error) {
			taken, err := s.repo.TitleExists(ctx, db, club.Title)
			if err != nil {
				return outcome.Result[*clubdb.Club]{}, err
			}
			if taken {
				return outcome.With[*clubdb.Club](outcome.Error(msgTitleTaken, nextClubs), nil), nil
			}
			if err := s.repo.Create(ctx, db, club); err != nil {
				return outcome.Result[*clubdb.Club]{}, err
			}
			return outcome.With(outcome.Success("Club "+club.Title+" created.", clubLocation(club)), club), nil
		})
		if err != nil && dberr.IsUniqueViolation(err) {
			// Same title or a title that slugs identically was committed concurrently.
			return outcome.With[*clubdb.Club](outcome.Error(msgTitleTaken, nextClubs), nil), nil
		}
		return result, err
	})
}

// GetClub returns a club with its member count and, for an authenticated
// caller, whether they belong to it.
func (s *ClubService) GetClub(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Result[*ClubDetail], error) {
	return operation.Observe(s.run, ctx, "GetClub", idString(clubID), func(ctx context.Context, db bun.IDB) (outcome.Result[*ClubDetail], error) {
		club, err := s.repo.GetByID(ctx, db, clubID)
		if err != nil {
			if errors.Is(err, clubdb.ErrNotFound) {
				return outcome.With[*ClubDetail](outcome.NotFound(msgClubNotFound), nil), nil
			}
			return outcome.Result[*ClubDetail]{}, err
		}
		return s.detail(ctx, db, caller, club)
	})
}

// GetClubBySlug is GetClub addressed by slug.
func (s *ClubService) GetClubBySlug(ctx context.Context, caller *authdomain.Caller, clubSlug string) (outcome.Result[*ClubDetail], error) {
	return operation.Observe(s.run, ctx, "GetClubBySlug", clubSlug, func(ctx context.Context, db bun.IDB) (outcome.Result[*ClubDetail], error) {
		club, err := s.repo.GetBySlug(ctx, db, clubSlug)
		if err != nil {
			if errors.Is(err, clubdb.ErrNotFound) {
				return outcome.With[*ClubDetail](outcome.NotFound(msgClubNotFound), nil), nil
			}
			return outcome.Result[*ClubDetail]{}, err
		}
		return s.detail(ctx, db, caller, club)
	})
}

func (s *ClubService) detail(ctx context.Context, db bun.IDB, caller *authdomain.Caller, club *clubdb.Club) (outcome.Result[*ClubDetail], error) {
	count, err := s.repo.CountMembers(ctx, db, club.ID)
	if err != nil {
		return outcome.Result[*ClubDetail]{}, err
	}
	d := &ClubDetail{Club: club, ShortContent: club.ShortContent(), MemberCount: count}
	if caller != nil {
		m, err := s.repo.GetMembership(ctx, db, caller.UserID())
		switch {
		case err == nil:
			d.IsMember = m.ClubID == club.ID
		case !errors.Is(err, clubdb.ErrNotMember):
			return outcome.Result[*ClubDetail]{}, err
		}
	}
	return outcome.With(outcome.Success("", ""), d), nil
}

// ListClubs returns every club.
func (s *ClubService) ListClubs(ctx context.Context) (outcome.Result[[]*clubdb.Club], error) {
	return operation.Observe(s.run, ctx, "ListClubs", "", func(ctx context.Context, db bun.IDB) (outcome.Result[[]*clubdb.Club], error) {
		clubs, err := s.repo.List(ctx, db)
		if err != nil {
			return outcome.Result[[]*clubdb.Club]{}, err
		}
		return outcome.With(outcome.Success("", ""), clubs), nil
	})
}

// DeleteClub removes a club together with its memberships and competitions.
func (s *ClubService) DeleteClub(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Outcome, error) {
	if o, ok := authservice.Guard(caller, authservice.ManagerRoles...); !ok {
		return o, nil
	}

	return operation.Observe(s.run, ctx, "DeleteClub", idString(clubID), func(ctx context.Context, db bun.IDB) (outcome.Outcome, error) {
		if err := s.repo.Delete(ctx, db, clubID); err != nil {
			if errors.Is(err, clubdb.ErrNotFound) {
				return outcome.NotFound(msgClubNotFound), nil
			}
			return outcome.Outcome{}, err
		}
		return outcome.Success(msgClubDeleted, nextClubs), nil
	})
}

func validateTitle(title string) string {
	switch {
	case title == "":
		return msgTitleRequired
	case utf8.RuneCountInString(title) > maxClubTitleRunes:
		return msgTitleTooLong
	}
	switch s := slug.Make(title); {
	case s == "":
		return msgTitleUnusable
	case len(s) > maxClubSlugLen:
		return msgSlugTooLong
	}
	return ""
}
