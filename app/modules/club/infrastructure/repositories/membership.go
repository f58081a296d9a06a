package clubdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// GetMembership returns the user's membership.
func (r *Impl) GetMembership(ctx context.Context, db bun.IDB, userID int64) (*ClubMember, error) {
	return r.selectMembership(ctx, db, userID, false)
}

// LockMembership returns the user's membership, locking the row for the rest
// of the transaction.
func (r *Impl) LockMembership(ctx context.Context, db bun.IDB, userID int64) (*ClubMember, error) {
	return r.selectMembership(ctx, db, userID, true)
}

func (r *Impl) selectMembership(ctx context.Context, db bun.IDB, userID int64, lock bool) (*ClubMember, error) {
	db = r.resolveDB(db)
	member := new(ClubMember)
	q := db.NewSelect().
		Model(member).
		Where("cm.user_id = ?", userID)
	if lock {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotMember
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return member, nil
}

// AddMember inserts a membership relation.
func (r *Impl) AddMember(ctx context.Context, db bun.IDB, clubID, userID int64) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(&ClubMember{ClubID: clubID, UserID: userID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMemberships deletes every membership of userID and returns the ids of
// the clubs left. Removing nothing is not an error.
func (r *Impl) RemoveMemberships(ctx context.Context, db bun.IDB, userID int64) ([]int64, error) {
	db = r.resolveDB(db)
	var clubIDs []int64
	err := db.NewDelete().
		Model((*ClubMember)(nil)).
		Where("user_id = ?", userID).
		Returning("club_id").
		Scan(ctx, &clubIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to remove memberships: %w", err)
	}
	return clubIDs, nil
}

// RemoveMember deletes one relation and reports whether it existed.
func (r *Impl) RemoveMember(ctx context.Context, db bun.IDB, clubID, userID int64) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*ClubMember)(nil)).
		Where("club_id = ?", clubID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to remove member: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// ListMembers returns the club's members in join order.
func (r *Impl) ListMembers(ctx context.Context, db bun.IDB, clubID int64) ([]*Member, error) {
	db = r.resolveDB(db)
	members := []*Member{}
	err := db.NewSelect().
		Model((*ClubMember)(nil)).
		ColumnExpr("cm.user_id, cm.joined_at").
		ColumnExpr("u.username").
		Join("JOIN users AS u ON u.id = cm.user_id").
		Where("cm.club_id = ?", clubID).
		OrderExpr("cm.joined_at ASC, cm.id ASC").
		Scan(ctx, &members)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// CountMembers returns the number of members of clubID.
func (r *Impl) CountMembers(ctx context.Context, db bun.IDB, clubID int64) (int, error) {
	db = r.resolveDB(db)
	n, err := db.NewSelect().
		Model((*ClubMember)(nil)).
		Where("cm.club_id = ?", clubID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return n, nil
}
