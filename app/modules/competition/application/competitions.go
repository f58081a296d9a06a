package competitionservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	authservice "github.com/Black-And-White-Club/clubhouse/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	competitiondb "github.com/Black-And-White-Club/clubhouse/app/modules/competition/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/dberr"
	"github.com/Black-And-White-Club/clubhouse/app/shared/operation"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
	"github.com/Black-And-White-Club/clubhouse/app/shared/slug"
	"github.com/uptrace/bun"
)

const (
	msgCompetitionNotFound = "Competition not found."
	msgClubNotFound        = "Club not found."
	msgCompetitionTaken    = "A competition with this title already exists."
	msgTitleRequired       = "Title is required."
	msgTitleTooLong        = "Title must be at most 100 characters."
	msgTitleUnusable       = "Title must contain at least one letter or digit."
	msgSlugTooLong         = "Title is too long to use in a link."
	msgInvalidDate         = "Enter a valid date, for example 2026-05-30 or next saturday."
	msgCompetitionUpdated  = "Competition updated."
	msgCompetitionDeleted  = "Competition deleted."
	maxTitleRunes          = 100
	maxSlugLen             = 120
)

// CreateCompetition stores a competition hosted by req.ClubID.
func (s *CompetitionService) CreateCompetition(ctx context.Context, caller *authdomain.Caller, req CompetitionRequest) (outcome.Result[*competitiondb.Competition], error) {
	if o, ok := authservice.Guard(caller, authservice.ManagerRoles...); !ok {
		return outcome.With[*competitiondb.Competition](o, nil), nil
	}

	c, msg := s.buildCompetition(ctx, req)
	if msg != "" {
		return outcome.With[*competitiondb.Competition](outcome.Error(msg, nextCompetitions), nil), nil
	}
	c.Slug = slug.Make(c.Title)
	c.ClubID = req.ClubID

	return operation.WithTelemetry(s.run, ctx, "CreateCompetition", c.Slug, func(ctx context.Context) (outcome.Result[*competitiondb.Competition], error) {
		result, err := operation.RunInTx(s.run, ctx, func(ctx context.Context, db bun.IDB) (outcome.Result[*competitiondb.Competition], error) {
			if err := s.repo.Create(ctx, db, c); err != nil {
				return outcome.Result[*competitiondb.Competition]{}, err
			}
			return outcome.With(outcome.Success("Competition "+c.Title+" created.", competitionLocation(c)), c), nil
		})
		switch {
		case err == nil:
			return result, nil
		case dberr.IsForeignKeyViolation(err):
			return outcome.With[*competitiondb.Competition](outcome.NotFound(msgClubNotFound), nil), nil
		case dberr.IsUniqueViolation(err):
			return outcome.With[*competitiondb.Competition](outcome.Error(msgCompetitionTaken, nextCompetitions), nil), nil
		default:
			return result, err
		}
	})
}

// UpdateCompetition rewrites title, date and context. The slug keeps its
// original value.
func (s *CompetitionService) UpdateCompetition(ctx context.Context, caller *authdomain.Caller, competitionID int64, req CompetitionRequest) (outcome.Result[*competitiondb.Competition], error) {
	if o, ok := authservice.Guard(caller, authservice.ManagerRoles...); !ok {
		return outcome.With[*competitiondb.Competition](o, nil), nil
	}

	edit, msg := s.buildCompetition(ctx, req)
	if msg != "" {
		return outcome.With[*competitiondb.Competition](outcome.Error(msg, nextCompetitions), nil), nil
	}

	return operation.Observe(s.run, ctx, "UpdateCompetition", idString(competitionID), func(ctx context.Context, db bun.IDB) (outcome.Result[*competitiondb.Competition], error) {
		c, err := s.repo.GetByID(ctx, db, competitionID)
		if err != nil {
			if errors.Is(err, competitiondb.ErrNotFound) {
				return outcome.With[*competitiondb.Competition](outcome.NotFound(msgCompetitionNotFound), nil), nil
			}
			return outcome.Result[*competitiondb.Competition]{}, err
		}
		c.Title, c.Date, c.Context = edit.Title, edit.Date, edit.Context
		if err := s.repo.Update(ctx, db, c); err != nil {
			return outcome.Result[*competitiondb.Competition]{}, err
		}
		return outcome.With(outcome.Success(msgCompetitionUpdated, competitionLocation(c)), c), nil
	})
}

// GetCompetition returns a competition with its interest count and, for an
// authenticated caller, whether they are in its InterestSet.
func (s *CompetitionService) GetCompetition(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[*CompetitionDetail], error) {
	return operation.Observe(s.run, ctx, "GetCompetition", idString(competitionID), func(ctx context.Context, db bun.IDB) (outcome.Result[*CompetitionDetail], error) {
		c, err := s.repo.GetByID(ctx, db, competitionID)
		if err != nil {
			if errors.Is(err, competitiondb.ErrNotFound) {
				return outcome.With[*CompetitionDetail](outcome.NotFound(msgCompetitionNotFound), nil), nil
			}
			return outcome.Result[*CompetitionDetail]{}, err
		}
		return s.detail(ctx, db, caller, c)
	})
}

// GetCompetitionBySlug is GetCompetition addressed by slug.
func (s *CompetitionService) GetCompetitionBySlug(ctx context.Context, caller *authdomain.Caller, competitionSlug string) (outcome.Result[*CompetitionDetail], error) {
	return operation.Observe(s.run, ctx, "GetCompetitionBySlug", competitionSlug, func(ctx context.Context, db bun.IDB) (outcome.Result[*CompetitionDetail], error) {
		c, err := s.repo.GetBySlug(ctx, db, competitionSlug)
		if err != nil {
			if errors.Is(err, competitiondb.ErrNotFound) {
				return outcome.With[*CompetitionDetail](outcome.NotFound(msgCompetitionNotFound), nil), nil
			}
			return outcome.Result[*CompetitionDetail]{}, err
		}
		return s.detail(ctx, db, caller, c)
	})
}

func (s *CompetitionService) detail(ctx context.Context, db bun.IDB, caller *authdomain.Caller, c *competitiondb.Competition) (outcome.Result[*CompetitionDetail], error) {
	count, err := s.repo.CountInterest(ctx, db, c.ID)
	if err != nil {
		return outcome.Result[*CompetitionDetail]{}, err
	}
	d := &CompetitionDetail{Competition: c, InterestCount: count}
	if caller != nil {
		d.IsInterested, err = s.repo.IsInterested(ctx, db, c.ID, caller.UserID())
		if err != nil {
			return outcome.Result[*CompetitionDetail]{}, err
		}
	}
	return outcome.With(outcome.Success("", ""), d), nil
}

// ListCompetitions returns every competition, or only those of clubID.
func (s *CompetitionService) ListCompetitions(ctx context.Context, clubID *int64) (outcome.Result[[]*competitiondb.Competition], error) {
	id := ""
	if clubID != nil {
		id = idString(*clubID)
	}
	return operation.Observe(s.run, ctx, "ListCompetitions", id, func(ctx context.Context, db bun.IDB) (outcome.Result[[]*competitiondb.Competition], error) {
		competitions, err := s.repo.List(ctx, db, clubID)
		if err != nil {
			return outcome.Result[[]*competitiondb.Competition]{}, err
		}
		return outcome.With(outcome.Success("", ""), competitions), nil
	})
}

// DeleteCompetition removes a competition with its roster.
func (s *CompetitionService) DeleteCompetition(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Outcome, error) {
	if o, ok := authservice.Guard(caller, authservice.ManagerRoles...); !ok {
		return o, nil
	}

	return operation.Observe(s.run, ctx, "DeleteCompetition", idString(competitionID), func(ctx context.Context, db bun.IDB) (outcome.Outcome, error) {
		if err := s.repo.Delete(ctx, db, competitionID); err != nil {
			if errors.Is(err, competitiondb.ErrNotFound) {
				return outcome.NotFound(msgCompetitionNotFound), nil
			}
			return outcome.Outcome{}, err
		}
		return outcome.Success(msgCompetitionDeleted, nextCompetitions), nil
	})
}

// buildCompetition validates the form and returns the editable fields, or a
// message for the caller.
func (s *CompetitionService) buildCompetition(ctx context.Context, req CompetitionRequest) (*competitiondb.Competition, string) {
	title := strings.TrimSpace(req.Title)
	switch {
	case title == "":
		return nil, msgTitleRequired
	case utf8.RuneCountInString(title) > maxTitleRunes:
		return nil, msgTitleTooLong
	}
	switch s := slug.Make(title); {
	case s == "":
		return nil, msgTitleUnusable
	case len(s) > maxSlugLen:
		return nil, msgSlugTooLong
	}

	date, err := s.dates.ParseDate(req.Date, s.clock)
	if err != nil {
		s.logger.InfoContext(ctx, "Rejected competition date",
			slog.String("input", req.Date),
			slog.Any("error", err),
		)
		return nil, msgInvalidDate
	}

	return &competitiondb.Competition{
		Title:   title,
		Date:    date,
		Context: strings.TrimSpace(req.Context),
	}, ""
}
