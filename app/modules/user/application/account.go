package userservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Black-And-White-Club/clubhouse/app/eventbus"
	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/auth/infrastructure/handlers"
	userdb "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/dberr"
	"github.com/Black-And-White-Club/clubhouse/app/shared/operation"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
	"github.com/uptrace/bun"
)

const (
	msgAlreadySignedIn = "You are already signed in."
	msgMissingFields   = "Username and email are required."
	msgEmailTaken      = "This email is already registered in our system."
	msgAccountFailed   = "There was an error creating your account. Please try again."
)

// RegisterAccount creates an identity, grants it the "user" label and
// attaches a profile. The three writes commit together or not at all.
func (s *UserService) RegisterAccount(ctx context.Context, caller *authdomain.Caller, req RegisterAccountRequest) (outcome.Result[*userdb.User], error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	return operation.WithTelemetry(s.run, ctx, "RegisterAccount", req.Username, func(ctx context.Context) (outcome.Result[*userdb.User], error) {
		if caller != nil {
			return outcome.With[*userdb.User](outcome.Info(msgAlreadySignedIn, nextHome), nil), nil
		}
		if req.Username == "" || req.Email == "" {
			return outcome.With[*userdb.User](outcome.Error(msgMissingFields, nextSignup), nil), nil
		}

		inUse, err := s.repo.EmailInUse(ctx, nil, req.Email)
		if err != nil {
			return outcome.Result[*userdb.User]{}, err
		}
		if inUse {
			return outcome.With[*userdb.User](outcome.Error(msgEmailTaken, nextSignup), nil), nil
		}

		user, err := operation.RunInTx(s.run, ctx, func(ctx context.Context, db bun.IDB) (*userdb.User, error) {
			return s.createAccount(ctx, db, req)
		})
		if err != nil {
			if dberr.IsIntegrityViolation(err) {
				return outcome.With[*userdb.User](outcome.Error(msgAccountFailed, nextSignup), nil), nil
			}
			return outcome.Result[*userdb.User]{}, err
		}

		s.events.Emit(ctx, eventbus.TopicAccountCreated, eventbus.AccountCreatedPayload{
			UserID:   user.ID,
			Username: user.Username,
		})
		return outcome.With(outcome.Success("Account created for "+user.Username, nextLogin), user), nil
	})
}

func (s *UserService) createAccount(ctx context.Context, db bun.IDB, req RegisterAccountRequest) (*userdb.User, error) {
	user := &userdb.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.repo.CreateUser(ctx, db, user); err != nil {
		return nil, err
	}
	if err := s.repo.AddRole(ctx, db, user.ID, authdomain.RoleUser.String()); err != nil {
		return nil, err
	}
	profile := &userdb.Profile{
		UserID:    user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
	if err := s.repo.CreateProfile(ctx, db, profile); err != nil {
		return nil, err
	}
	user.Roles = []*userdb.UserRole{{UserID: user.ID, Role: authdomain.RoleUser.String()}}
	return user, nil
}

// ResolveCaller loads a fresh snapshot of userID's labels and flags.
func (s *UserService) ResolveCaller(ctx context.Context, userID int64) (*authdomain.Caller, error) {
	user, err := s.repo.GetUserByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, authhandlers.ErrUnknownCaller)
		}
		return nil, fmt.Errorf("failed to resolve caller: %w", err)
	}
	return authdomain.NewCaller(
		user.ID,
		user.Username,
		authdomain.ParseRoles(user.RoleLabels()),
		user.IsStaff,
		user.IsSuperuser,
	), nil
}
