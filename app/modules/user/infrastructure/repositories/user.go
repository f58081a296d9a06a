package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new user repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// GetUserByID retrieves a user together with its role labels.
func (r *Impl) GetUserByID(ctx context.Context, db bun.IDB, userID int64) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Relation("Roles").
		Where("u.id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetUserForUpdate locks the user row for the rest of the transaction and
// loads its role labels.
func (r *Impl) GetUserForUpdate(ctx context.Context, db bun.IDB, userID int64) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Where("u.id = ?", userID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}

	roles, err := r.ListRoles(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		user.Roles = append(user.Roles, &UserRole{UserID: userID, Role: role})
	}
	return user, nil
}

// EmailInUse reports whether any identity or profile already uses email.
func (r *Impl) EmailInUse(ctx context.Context, db bun.IDB, email string) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*User)(nil)).
		Where("lower(u.email) = lower(?)", email).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	if exists {
		return true, nil
	}

	exists, err = db.NewSelect().
		Model((*Profile)(nil)).
		Where("lower(p.email) = lower(?)", email).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check profile email: %w", err)
	}
	return exists, nil
}

// CreateUser inserts user and fills its generated columns.
func (r *Impl) CreateUser(ctx context.Context, db bun.IDB, user *User) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(user).Returning("id, created_at").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateUserNames updates the identity's name and email.
func (r *Impl) UpdateUserNames(ctx context.Context, db bun.IDB, userID int64, firstName, lastName, email string) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*User)(nil)).
		Set("first_name = ?", firstName).
		Set("last_name = ?", lastName).
		Set("email = ?", email).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRow(result)
}

// SetFlags overwrites the staff and superuser flags.
func (r *Impl) SetFlags(ctx context.Context, db bun.IDB, userID int64, isStaff, isSuperuser bool) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*User)(nil)).
		Set("is_staff = ?", isStaff).
		Set("is_superuser = ?", isSuperuser).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set user flags: %w", err)
	}
	return requireRow(result)
}

// DeleteUser removes the identity; dependent rows go with it via ON DELETE CASCADE.
func (r *Impl) DeleteUser(ctx context.Context, db bun.IDB, userID int64) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*User)(nil)).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireRow(result)
}

// ListRoles returns the user's role labels.
func (r *Impl) ListRoles(ctx context.Context, db bun.IDB, userID int64) ([]string, error) {
	db = r.resolveDB(db)
	var roles []string
	err := db.NewSelect().
		Model((*UserRole)(nil)).
		Column("role").
		Where("user_id = ?", userID).
		Order("role ASC").
		Scan(ctx, &roles)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// AddRole grants a label. Granting a held label is a no-op.
func (r *Impl) AddRole(ctx context.Context, db bun.IDB, userID int64, role string) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(&UserRole{UserID: userID, Role: role}).
		On("CONFLICT (user_id, role) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add role: %w", err)
	}
	return nil
}

// RemoveRoles revokes the given labels. Revoking an absent label is a no-op.
func (r *Impl) RemoveRoles(ctx context.Context, db bun.IDB, userID int64, roles ...string) error {
	if len(roles) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	_, err := db.NewDelete().
		Model((*UserRole)(nil)).
		Where("user_id = ?", userID).
		Where("role IN (?)", bun.In(roles)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove roles: %w", err)
	}
	return nil
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
