package competitiondb

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

// NewRepository creates a new competition repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// GetByID retrieves a competition by its ID.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, competitionID int64) (*Competition, error) {
	db = r.resolveDB(db)
	c := new(Competition)
	err := db.NewSelect().
		Model(c).
		Where("co.id = ?", competitionID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get competition by id: %w", err)
	}
	return c, nil
}

// GetBySlug retrieves a competition by its slug.
func (r *Impl) GetBySlug(ctx context.Context, db bun.IDB, slug string) (*Competition, error) {
	db = r.resolveDB(db)
	c := new(Competition)
	err := db.NewSelect().
		Model(c).
		Where("co.slug = ?", slug).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get competition by slug: %w", err)
	}
	return c, nil
}

// List returns competitions by date, optionally limited to one club.
func (r *Impl) List(ctx context.Context, db bun.IDB, clubID *int64) ([]*Competition, error) {
	db = r.resolveDB(db)
	competitions := []*Competition{}
	q := db.NewSelect().Model(&competitions).Order("co.date ASC", "co.id ASC")
	if clubID != nil {
		q = q.Where("co.club_id = ?", *clubID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	return competitions, nil
}

// Create inserts competition and fills its generated columns.
func (r *Impl) Create(ctx context.Context, db bun.IDB, competition *Competition) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(competition).Returning("id, created_at").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create competition: %w", err)
	}
	return nil
}

// Update writes the editable columns. The slug is never rewritten.
func (r *Impl) Update(ctx context.Context, db bun.IDB, competition *Competition) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model(competition).
		Column("title", "date", "context").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update competition: %w", err)
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

// Delete removes a competition; interest entries and registrations cascade.
func (r *Impl) Delete(ctx context.Context, db bun.IDB, competitionID int64) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Competition)(nil)).
		Where("id = ?", competitionID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete competition: %w", err)
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
