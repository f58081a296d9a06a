package competitiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// IsInterested reports whether userID is in the competition's InterestSet.
func (r *Impl) IsInterested(ctx context.Context, db bun.IDB, competitionID, userID int64) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*Participant)(nil)).
		Where("cp.competition_id = ?", competitionID).
		Where("cp.user_id = ?", userID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check interest: %w", err)
	}
	return exists, nil
}

// AddInterest inserts an InterestSet entry.
func (r *Impl) AddInterest(ctx context.Context, db bun.IDB, competitionID, userID int64) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(&Participant{CompetitionID: competitionID, UserID: userID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add interest: %w", err)
	}
	return nil
}

// RemoveInterest deletes the entry for (competitionID, userID) and reports
// whether one existed.
func (r *Impl) RemoveInterest(ctx context.Context, db bun.IDB, competitionID, userID int64) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Participant)(nil)).
		Where("competition_id = ?", competitionID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to remove interest: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// CountInterest returns the size of the competition's InterestSet.
func (r *Impl) CountInterest(ctx context.Context, db bun.IDB, competitionID int64) (int, error) {
	db = r.resolveDB(db)
	n, err := db.NewSelect().
		Model((*Participant)(nil)).
		Where("cp.competition_id = ?", competitionID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count interest: %w", err)
	}
	return n, nil
}

// CreateRegistration inserts registration and fills its generated columns.
func (r *Impl) CreateRegistration(ctx context.Context, db bun.IDB, registration *Registration) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(registration).Returning("id, created_at").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

// DeleteRegistration removes a registration by id and returns the deleted row.
func (r *Impl) DeleteRegistration(ctx context.Context, db bun.IDB, registrationID int64) (*Registration, error) {
	db = r.resolveDB(db)
	deleted := new(Registration)
	err := db.NewDelete().
		Model(deleted).
		Where("id = ?", registrationID).
		Returning("*").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to delete registration: %w", err)
	}
	return deleted, nil
}

// ListRegistrations returns the competition's registrations in sign-up order.
func (r *Impl) ListRegistrations(ctx context.Context, db bun.IDB, competitionID int64) ([]*Registration, error) {
	db = r.resolveDB(db)
	registrations := []*Registration{}
	err := db.NewSelect().
		Model(&registrations).
		Where("r.competition_id = ?", competitionID).
		Order("r.created_at ASC", "r.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return registrations, nil
}
