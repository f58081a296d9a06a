package competitionservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/Black-And-White-Club/clubhouse/app/eventbus"
	authservice "github.com/Black-And-White-Club/clubhouse/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	competitionexport "github.com/Black-And-White-Club/clubhouse/app/modules/competition/infrastructure/export"
	competitiondb "github.com/Black-And-White-Club/clubhouse/app/modules/competition/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/dberr"
	"github.com/Black-And-White-Club/clubhouse/app/shared/operation"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
	"github.com/uptrace/bun"
)

const (
	msgAlreadyInterested    = "This competition is already in your profile."
	msgInterestAdded        = "Competition added to your profile."
	msgNameRequired         = "First and last name are required."
	msgNameTooLong          = "Names must be at most 50 characters."
	msgAgeNegative          = "Age must be zero or more."
	msgAgeTooLarge          = "Enter a valid age."
	msgRegistrationNotFound = "Registration not found."
	msgRegistrationDeleted  = "Registration deleted."
	maxNameRunes            = 50
)

// interestResult carries the decision out of the transaction.
type interestResult struct {
	outcome outcome.Outcome
	added   bool
}

func (i interestResult) KindString() string { return i.outcome.KindString() }
func (i interestResult) IsFailure() bool    { return i.outcome.IsFailure() }

// ExpressInterest adds the competition to the caller's InterestSet. A user
// may be interested in any number of competitions.
func (s *CompetitionService) ExpressInterest(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Outcome, error) {
	if o, ok := authservice.Guard(caller, authservice.MemberRoles...); !ok {
		return o, nil
	}

	res, err := operation.WithTelemetry(s.run, ctx, "ExpressInterest", idString(competitionID), func(ctx context.Context) (interestResult, error) {
		var location string
		res, err := operation.RunInTx(s.run, ctx, func(ctx context.Context, db bun.IDB) (interestResult, error) {
			c, err := s.repo.GetByID(ctx, db, competitionID)
			if err != nil {
				if errors.Is(err, competitiondb.ErrNotFound) {
					return interestResult{outcome: outcome.NotFound(msgCompetitionNotFound)}, nil
				}
				return interestResult{}, err
			}
			location = competitionLocation(c)

			interested, err := s.repo.IsInterested(ctx, db, c.ID, caller.UserID())
			if err != nil {
				return interestResult{}, err
			}
			if interested {
				return interestResult{outcome: outcome.Info(msgAlreadyInterested, location)}, nil
			}
			if err := s.repo.AddInterest(ctx, db, c.ID, caller.UserID()); err != nil {
				return interestResult{}, err
			}
			return interestResult{outcome: outcome.Success(msgInterestAdded, location), added: true}, nil
		})
		if err != nil && dberr.IsUniqueViolation(err) {
			// The same entry was committed concurrently.
			return interestResult{outcome: outcome.Info(msgAlreadyInterested, location)}, nil
		}
		return res, err
	})
	if err != nil {
		return outcome.Outcome{}, err
	}
	if res.added {
		s.events.Emit(ctx, eventbus.TopicInterestAdded, eventbus.InterestPayload{
			CompetitionID: competitionID,
			UserID:        caller.UserID(),
		})
	}
	return res.outcome, nil
}

// IsInterested reports whether the caller is in the competition's InterestSet.
func (s *CompetitionService) IsInterested(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[bool], error) {
	if o, ok := authservice.Guard(caller, authservice.MemberRoles...); !ok {
		return outcome.With(o, false), nil
	}

	return operation.Observe(s.run, ctx, "IsInterested", idString(competitionID), func(ctx context.Context, db bun.IDB) (outcome.Result[bool], error) {
		if _, err := s.repo.GetByID(ctx, db, competitionID); err != nil {
			if errors.Is(err, competitiondb.ErrNotFound) {
				return outcome.With(outcome.NotFound(msgCompetitionNotFound), false), nil
			}
			return outcome.Result[bool]{}, err
		}
		interested, err := s.repo.IsInterested(ctx, db, competitionID, caller.UserID())
		if err != nil {
			return outcome.Result[bool]{}, err
		}
		return outcome.With(outcome.Success("", ""), interested), nil
	})
}

// Register records a formal sign-up for the competition at competitionSlug.
// An unknown slug or an invalid form is reported back to the form. Once the
// registration is committed the caller's InterestSet entry for the same
// competition is removed; that cleanup is best-effort and never undoes the
// registration.
func (s *CompetitionService) Register(ctx context.Context, caller *authdomain.Caller, competitionSlug string, req RegisterRequest) (outcome.Result[*competitiondb.Registration], error) {
	if o, ok := authservice.Guard(caller, authservice.MemberRoles...); !ok {
		return outcome.With[*competitiondb.Registration](o, nil), nil
	}

	form := registerLocation(competitionSlug)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	res, err := operation.Observe(s.run, ctx, "Register", competitionSlug, func(ctx context.Context, db bun.IDB) (outcome.Result[*competitiondb.Registration], error) {
		c, err := s.repo.GetBySlug(ctx, db, competitionSlug)
		if err != nil {
			if errors.Is(err, competitiondb.ErrNotFound) {
				return outcome.With[*competitiondb.Registration](outcome.Error(msgCompetitionNotFound, form), nil), nil
			}
			return outcome.Result[*competitiondb.Registration]{}, err
		}
		if msg := validateRegistration(req); msg != "" {
			return outcome.With[*competitiondb.Registration](outcome.Error(msg, form), nil), nil
		}

		reg := &competitiondb.Registration{
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			Age:           req.Age,
			UserID:        caller.UserID(),
			CompetitionID: c.ID,
		}
		if err := s.repo.CreateRegistration(ctx, db, reg); err != nil {
			return outcome.Result[*competitiondb.Registration]{}, err
		}
		return outcome.With(outcome.Success("You are registered for "+c.Title+"!", competitionLocation(c)), reg), nil
	})
	if err != nil || !res.IsSuccess() {
		return res, err
	}

	s.clearInterest(ctx, res.Value.CompetitionID, caller.UserID())
	s.events.Emit(ctx, eventbus.TopicRegistrationCreated, eventbus.RegistrationPayload{
		RegistrationID: res.Value.ID,
		CompetitionID:  res.Value.CompetitionID,
		UserID:         caller.UserID(),
	})
	return res, nil
}

// clearInterest removes the InterestSet entry in its own transaction. Errors
// are logged and dropped.
func (s *CompetitionService) clearInterest(ctx context.Context, competitionID, userID int64) {
	removed, err := operation.RunInTx(s.run, ctx, func(ctx context.Context, db bun.IDB) (bool, error) {
		return s.repo.RemoveInterest(ctx, db, competitionID, userID)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to clear interest after registration",
			slog.Int64("competition_id", competitionID),
			slog.Int64("user_id", userID),
			slog.Any("error", err),
		)
		return
	}
	if removed {
		s.logger.DebugContext(ctx, "Interest cleared after registration",
			slog.Int64("competition_id", competitionID),
			slog.Int64("user_id", userID),
		)
	}
}

func validateRegistration(req RegisterRequest) string {
	switch {
	case req.FirstName == "" || req.LastName == "":
		return msgNameRequired
	case utf8.RuneCountInString(req.FirstName) > maxNameRunes || utf8.RuneCountInString(req.LastName) > maxNameRunes:
		return msgNameTooLong
	case req.Age < 0:
		return msgAgeNegative
	case req.Age > math.MaxInt32:
		// age is an INTEGER column.
		return msgAgeTooLarge
	}
	return ""
}

// DeleteRegistration removes a registration by id. InterestSet and club
// membership are not touched.
func (s *CompetitionService) DeleteRegistration(ctx context.Context, caller *authdomain.Caller, registrationID int64) (outcome.Outcome, error) {
	if o, ok := authservice.Guard(caller, authservice.ManagerRoles...); !ok {
		return o, nil
	}

	var deleted *competitiondb.Registration
	o, err := operation.Observe(s.run, ctx, "DeleteRegistration", idString(registrationID), func(ctx context.Context, db bun.IDB) (outcome.Outcome, error) {
		reg, err := s.repo.DeleteRegistration(ctx, db, registrationID)
		if err != nil {
			if errors.Is(err, competitiondb.ErrRegistrationNotFound) {
				return outcome.NotFound(msgRegistrationNotFound), nil
			}
			return outcome.Outcome{}, err
		}
		deleted = reg
		return outcome.Success(msgRegistrationDeleted, nextCompetitions), nil
	})
	if err != nil {
		return outcome.Outcome{}, err
	}
	if deleted != nil {
		s.events.Emit(ctx, eventbus.TopicRegistrationDeleted, eventbus.RegistrationPayload{
			RegistrationID: deleted.ID,
			CompetitionID:  deleted.CompetitionID,
			UserID:         deleted.UserID,
		})
	}
	return o, nil
}

// ListRegistrations returns the competition's registrations.
func (s *CompetitionService) ListRegistrations(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[[]*competitiondb.Registration], error) {
	if o, ok := authservice.Guard(caller, authservice.ManagerRoles...); !ok {
		return outcome.With[[]*competitiondb.Registration](o, nil), nil
	}

	return operation.Observe(s.run, ctx, "ListRegistrations", idString(competitionID), func(ctx context.Context, db bun.IDB) (outcome.Result[[]*competitiondb.Registration], error) {
		_, regs, o, err := s.roster(ctx, db, competitionID)
		return outcome.With(o, regs), err
	})
}

// ExportRegistrations renders the competition's registrations as an xlsx
// workbook.
func (s *CompetitionService) ExportRegistrations(ctx context.Context, caller *authdomain.Caller, competitionID int64) (outcome.Result[*Export], error) {
	if o, ok := authservice.Guard(caller, authservice.ManagerRoles...); !ok {
		return outcome.With[*Export](o, nil), nil
	}

	return operation.Observe(s.run, ctx, "ExportRegistrations", idString(competitionID), func(ctx context.Context, db bun.IDB) (outcome.Result[*Export], error) {
		c, regs, o, err := s.roster(ctx, db, competitionID)
		if err != nil || o.IsFailure() {
			return outcome.With[*Export](o, nil), err
		}
		data, err := competitionexport.Registrations(regs)
		if err != nil {
			return outcome.Result[*Export]{}, fmt.Errorf("failed to render registrations: %w", err)
		}
		return outcome.With(o, &Export{
			Filename:    competitionexport.Filename(c),
			ContentType: competitionexport.ContentType,
			Data:        data,
		}), nil
	})
}

// roster loads a competition and its registrations.
func (s *CompetitionService) roster(ctx context.Context, db bun.IDB, competitionID int64) (*competitiondb.Competition, []*competitiondb.Registration, outcome.Outcome, error) {
	c, err := s.repo.GetByID(ctx, db, competitionID)
	if err != nil {
		if errors.Is(err, competitiondb.ErrNotFound) {
			return nil, nil, outcome.NotFound(msgCompetitionNotFound), nil
		}
		return nil, nil, outcome.Outcome{}, err
	}
	regs, err := s.repo.ListRegistrations(ctx, db, c.ID)
	if err != nil {
		return nil, nil, outcome.Outcome{}, err
	}
	return c, regs, outcome.Success("", ""), nil
}
