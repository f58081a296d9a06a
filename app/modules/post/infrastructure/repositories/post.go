package postdb

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

// NewRepository creates a new post repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, postID int64) (*Post, error) {
	return r.getOne(ctx, db, "po.id = ?", postID)
}

func (r *Impl) GetBySlug(ctx context.Context, db bun.IDB, slug string) (*Post, error) {
	return r.getOne(ctx, db, "po.slug = ?", slug)
}

func (r *Impl) getOne(ctx context.Context, db bun.IDB, where string, arg any) (*Post, error) {
	db = r.resolveDB(db)
	post := new(Post)
	if err := db.NewSelect().Model(post).Where(where, arg).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// List returns every post, newest first.
func (r *Impl) List(ctx context.Context, db bun.IDB) ([]*Post, error) {
	db = r.resolveDB(db)
	posts := []*Post{}
	if err := db.NewSelect().Model(&posts).Order("po.uploaded_at DESC", "po.id DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (r *Impl) TitleExists(ctx context.Context, db bun.IDB, title string) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*Post)(nil)).
		Where("po.title = ?", title).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check post title: %w", err)
	}
	return exists, nil
}

func (r *Impl) Create(ctx context.Context, db bun.IDB, post *Post) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(post).Returning("id, uploaded_at").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *Impl) Delete(ctx context.Context, db bun.IDB, postID int64) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Post)(nil)).
		Where("id = ?", postID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
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
