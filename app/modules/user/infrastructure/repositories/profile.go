package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// GetProfileByUserID retrieves the profile attached to userID.
func (r *Impl) GetProfileByUserID(ctx context.Context, db bun.IDB, userID int64) (*Profile, error) {
	db = r.resolveDB(db)
	profile := new(Profile)
	err := db.NewSelect().
		Model(profile).
		Where("p.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// CreateProfile inserts profile unless the user already has one, in which
// case the existing row is loaded into profile.
func (r *Impl) CreateProfile(ctx context.Context, db bun.IDB, profile *Profile) error {
	db = r.resolveDB(db)
	result, err := db.NewInsert().
		Model(profile).
		On("CONFLICT (user_id) DO NOTHING").
		Returning("id, created_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		existing, err := r.GetProfileByUserID(ctx, db, profile.UserID)
		if err != nil {
			return err
		}
		*profile = *existing
	}
	return nil
}

// UpdateProfile writes the editable profile columns.
func (r *Impl) UpdateProfile(ctx context.Context, db bun.IDB, profile *Profile) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model(profile).
		Column("first_name", "last_name", "phone", "email", "info").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrProfileNotFound
	}
	return nil
}
