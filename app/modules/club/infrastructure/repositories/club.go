package clubdb

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

// NewRepository creates a new club repository.
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

// GetByID retrieves a club by its ID.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, clubID int64) (*Club, error) {
	db = r.resolveDB(db)
	club := new(Club)
	err := db.NewSelect().
		Model(club).
		Where("c.id = ?", clubID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get club by id: %w", err)
	}
	return club, nil
}

// GetBySlug retrieves a club by its slug.
func (r *Impl) GetBySlug(ctx context.Context, db bun.IDB, slug string) (*Club, error) {
	db = r.resolveDB(db)
	club := new(Club)
	err := db.NewSelect().
		Model(club).
		Where("c.slug = ?", slug).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get club by slug: %w", err)
	}
	return club, nil
}

// List returns every club ordered by title.
func (r *Impl) List(ctx context.Context, db bun.IDB) ([]*Club, error) {
	db = r.resolveDB(db)
	var clubs []*Club
	if err := db.NewSelect().Model(&clubs).Order("c.title ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, nil
}

// TitleExists reports whether a club already uses title.
func (r *Impl) TitleExists(ctx context.Context, db bun.IDB, title string) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*Club)(nil)).
		Where("c.title = ?", title).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check club title: %w", err)
	}
	return exists, nil
}

// Create inserts club and fills its generated columns.
func (r *Impl) Create(ctx context.Context, db bun.IDB, club *Club) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(club).Returning("id, created_at, updated_at").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create club: %w", err)
	}
	return nil
}

// Delete removes a club; memberships and competitions cascade.
func (r *Impl) Delete(ctx context.Context, db bun.IDB, clubID int64) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Club)(nil)).
		Where("id = ?", clubID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete club: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
