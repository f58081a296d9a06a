package clubservice

import (
	"context"
	"errors"

	"github.com/Black-And-White-Club/clubhouse/app/eventbus"
	authservice "github.com/Black-And-White-Club/clubhouse/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/dberr"
	"github.com/Black-And-White-Club/clubhouse/app/shared/operation"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
	"github.com/uptrace/bun"
)

const (
	msgAlreadyMember = "You are already a member of this club."
	msgLeaveFirst    = "You must leave your current club before joining another one."
	msgLeftClub      = "You have left your club."
	msgMemberRemoved = "Member removed from the club."
)

// joinResult carries the decision out of the transaction.
type joinResult struct {
	outcome outcome.Outcome
	joined  bool
}

func (j joinResult) KindString() string { return j.outcome.KindString() }
func (j joinResult) IsFailure() bool    { return j.outcome.IsFailure() }

// JoinClub adds the caller to a club. The checks run in a fixed order:
// already in this club, then in another club, then insert. Re-joining the
// same club is therefore reported as informational, never as a conflict.
func (s *ClubService) JoinClub(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Outcome, error) {
	if o, ok := authservice.Guard(caller, authservice.MemberRoles...); !ok {
		return o, nil
	}

	res, err := operation.WithTelemetry(s.run, ctx, "JoinClub", idString(clubID), func(ctx context.Context) (joinResult, error) {
		join := func(ctx context.Context, db bun.IDB) (joinResult, error) {
			return s.join(ctx, db, caller.UserID(), clubID)
		}
		res, err := operation.RunInTx(s.run, ctx, join)
		if err != nil && dberr.IsUniqueViolation(err) {
			// A concurrent join committed first; the re-check now sees it.
			s.logger.InfoContext(ctx, "Membership insert raced, re-checking",
				"club_id", clubID, "user_id", caller.UserID())
			return operation.RunInTx(s.run, ctx, join)
		}
		return res, err
	})
	if err != nil {
		return outcome.Outcome{}, err
	}
	if res.joined {
		s.events.Emit(ctx, eventbus.TopicClubMemberJoined, eventbus.MembershipPayload{
			ClubID: clubID,
			UserID: caller.UserID(),
		})
	}
	return res.outcome, nil
}

func (s *ClubService) join(ctx context.Context, db bun.IDB, userID, clubID int64) (joinResult, error) {
	club, err := s.repo.GetByID(ctx, db, clubID)
	if err != nil {
		if errors.Is(err, clubdb.ErrNotFound) {
			return joinResult{outcome: outcome.NotFound(msgClubNotFound)}, nil
		}
		return joinResult{}, err
	}

	current, err := s.repo.LockMembership(ctx, db, userID)
	switch {
	case err == nil && current.ClubID == club.ID:
		return joinResult{outcome: outcome.Info(msgAlreadyMember, clubLocation(club))}, nil
	case err == nil:
		return joinResult{outcome: outcome.Error(msgLeaveFirst, clubLocation(club))}, nil
	case !errors.Is(err, clubdb.ErrNotMember):
		return joinResult{}, err
	}

	if err := s.repo.AddMember(ctx, db, club.ID, userID); err != nil {
		return joinResult{}, err
	}
	return joinResult{
		outcome: outcome.Success("You have joined "+club.Title+"!", clubLocation(club)),
		joined:  true,
	}, nil
}

// LeaveClub removes every membership of the caller. Leaving without a club
// succeeds as well.
func (s *ClubService) LeaveClub(ctx context.Context, caller *authdomain.Caller) (outcome.Outcome, error) {
	if o, ok := authservice.Guard(caller, authservice.MemberRoles...); !ok {
		return o, nil
	}

	var left []int64
	o, err := operation.Observe(s.run, ctx, "LeaveClub", idString(caller.UserID()), func(ctx context.Context, db bun.IDB) (outcome.Outcome, error) {
		clubIDs, err := s.repo.RemoveMemberships(ctx, db, caller.UserID())
		if err != nil {
			return outcome.Outcome{}, err
		}
		left = clubIDs
		return outcome.Success(msgLeftClub, nextClubs), nil
	})
	if err != nil {
		return outcome.Outcome{}, err
	}
	for _, clubID := range left {
		s.events.Emit(ctx, eventbus.TopicClubMemberLeft, eventbus.MembershipPayload{
			ClubID: clubID,
			UserID: caller.UserID(),
		})
	}
	return o, nil
}

// RemoveMember deletes one membership relation. The member's identity is
// left untouched.
func (s *ClubService) RemoveMember(ctx context.Context, actor *authdomain.Caller, clubID, targetUserID int64) (outcome.Outcome, error) {
	if o, ok := authservice.Guard(actor, authservice.AdminRoles...); !ok {
		return o, nil
	}

	var removed bool
	o, err := operation.Observe(s.run, ctx, "RemoveMember", idString(clubID), func(ctx context.Context, db bun.IDB) (outcome.Outcome, error) {
		club, err := s.repo.GetByID(ctx, db, clubID)
		if err != nil {
			if errors.Is(err, clubdb.ErrNotFound) {
				return outcome.NotFound(msgClubNotFound), nil
			}
			return outcome.Outcome{}, err
		}
		removed, err = s.repo.RemoveMember(ctx, db, club.ID, targetUserID)
		if err != nil {
			return outcome.Outcome{}, err
		}
		return outcome.Success(msgMemberRemoved, clubLocation(club)+"/members"), nil
	})
	if err != nil {
		return outcome.Outcome{}, err
	}
	if removed {
		s.events.Emit(ctx, eventbus.TopicClubMemberRemoved, eventbus.MembershipPayload{
			ClubID:  clubID,
			UserID:  targetUserID,
			ActorID: actor.UserID(),
		})
	}
	return o, nil
}

// ListMembers returns a club's members.
func (s *ClubService) ListMembers(ctx context.Context, caller *authdomain.Caller, clubID int64) (outcome.Result[[]*clubdb.Member], error) {
	if o, ok := authservice.Guard(caller, authservice.MemberRoles...); !ok {
		return outcome.With[[]*clubdb.Member](o, nil), nil
	}

	return operation.Observe(s.run, ctx, "ListMembers", idString(clubID), func(ctx context.Context, db bun.IDB) (outcome.Result[[]*clubdb.Member], error) {
		if _, err := s.repo.GetByID(ctx, db, clubID); err != nil {
			if errors.Is(err, clubdb.ErrNotFound) {
				return outcome.With[[]*clubdb.Member](outcome.NotFound(msgClubNotFound), nil), nil
			}
			return outcome.Result[[]*clubdb.Member]{}, err
		}
		members, err := s.repo.ListMembers(ctx, db, clubID)
		if err != nil {
			return outcome.Result[[]*clubdb.Member]{}, err
		}
		return outcome.With(outcome.Success("", ""), members), nil
	})
}
