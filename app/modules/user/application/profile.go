package userservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	authservice "github.com/Black-And-White-Club/clubhouse/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/dberr"
	"github.com/Black-And-White-Club/clubhouse/app/shared/operation"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
	"github.com/uptrace/bun"
)

const (
	msgProfileUpdated = "Profile updated successfully!"
	msgUserNotFound   = "User not found."
	msgNameLetters    = "Your name must contain letters only!"
	msgEmailRequired  = "Email is required."
	msgPhoneTooLong   = "Phone number must be at most 13 characters."

	maxPhoneLength = 13
)

// GetProfile returns the caller's profile, creating it from the identity
// record on first access.
func (s *UserService) GetProfile(ctx context.Context, caller *authdomain.Caller) (outcome.Result[*userdb.Profile], error) {
	if o, ok := authservice.Guard(caller, authservice.MemberRoles...); !ok {
		return outcome.With[*userdb.Profile](o, nil), nil
	}

	return operation.Observe(s.run, ctx, "GetProfile", idString(caller.UserID()), func(ctx context.Context, db bun.IDB) (outcome.Result[*userdb.Profile], error) {
		profile, err := s.ensureProfile(ctx, db, caller.UserID())
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return outcome.With[*userdb.Profile](outcome.NotFound(msgUserNotFound), nil), nil
			}
			return outcome.Result[*userdb.Profile]{}, err
		}
		return outcome.With(outcome.Success("", ""), profile), nil
	})
}

// UpdateProfile writes names and email to both the identity and the profile,
// and phone and info to the profile only.
func (s *UserService) UpdateProfile(ctx context.Context, caller *authdomain.Caller, req UpdateProfileRequest) (outcome.Result[*userdb.Profile], error) {
	if o, ok := authservice.Guard(caller, authservice.MemberRoles...); !ok {
		return outcome.With[*userdb.Profile](o, nil), nil
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	if msg := validateProfile(req); msg != "" {
		return outcome.With[*userdb.Profile](outcome.Error(msg, nextProfile), nil), nil
	}

	return operation.WithTelemetry(s.run, ctx, "UpdateProfile", idString(caller.UserID()), func(ctx context.Context) (outcome.Result[*userdb.Profile], error) {
		result, err := operation.RunInTx(s.run, ctx, func(ctx context.Context, db bun.IDB) (outcome.Result[*userdb.Profile], error) {
			return s.updateProfile(ctx, db, caller.UserID(), req)
		})
		if err != nil && dberr.IsUniqueViolation(err) {
			return outcome.With[*userdb.Profile](outcome.Error(msgEmailTaken, nextProfile), nil), nil
		}
		return result, err
	})
}

func (s *UserService) updateProfile(ctx context.Context, db bun.IDB, userID int64, req UpdateProfileRequest) (outcome.Result[*userdb.Profile], error) {
	profile, err := s.ensureProfile(ctx, db, userID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return outcome.With[*userdb.Profile](outcome.NotFound(msgUserNotFound), nil), nil
		}
		return outcome.Result[*userdb.Profile]{}, err
	}

	if err := s.repo.UpdateUserNames(ctx, db, userID, req.FirstName, req.LastName, req.Email); err != nil {
		return outcome.Result[*userdb.Profile]{}, fmt.Errorf("failed to update identity: %w", err)
	}

	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.Email = req.Email
	if req.Phone != nil {
		profile.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Info != nil {
		profile.Info = *req.Info
	}
	if err := s.repo.UpdateProfile(ctx, db, profile); err != nil {
		return outcome.Result[*userdb.Profile]{}, err
	}
	return outcome.With(outcome.Success(msgProfileUpdated, nextProfile), profile), nil
}

// ProfileID returns the id of userID's profile without creating one.
// It returns ErrProfileMissing when the user has none.
func (s *UserService) ProfileID(ctx context.Context, userID int64) (int64, error) {
	profile, err := s.repo.GetProfileByUserID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, userdb.ErrProfileNotFound) {
			return 0, ErrProfileMissing
		}
		return 0, err
	}
	return profile.ID, nil
}

func (s *UserService) ensureProfile(ctx context.Context, db bun.IDB, userID int64) (*userdb.Profile, error) {
	profile, err := s.repo.GetProfileByUserID(ctx, db, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, userdb.ErrProfileNotFound) {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	email := user.Email
	if email == "" {
		email = fmt.Sprintf("default_email_%d@example.com", user.ID)
	}
	profile = &userdb.Profile{
		UserID:    user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     email,
	}
	if err := s.repo.CreateProfile(ctx, db, profile); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Created missing profile", "user_id", userID, "profile_id", profile.ID)
	return profile, nil
}

func validateProfile(req UpdateProfileRequest) string {
	if !lettersOnly(req.FirstName) || !lettersOnly(req.LastName) {
		return msgNameLetters
	}
	if req.Email == "" {
		return msgEmailRequired
	}
	if req.Phone != nil && len([]rune(strings.TrimSpace(*req.Phone))) > maxPhoneLength {
		return msgPhoneTooLong
	}
	return ""
}

// lettersOnly accepts the empty string so names can be cleared.
func lettersOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
