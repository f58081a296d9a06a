package postdb

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a post is not found.
var ErrNotFound = errors.New("post not found")

// Repository defines the contract for post persistence.
type Repository interface {
	GetByID(ctx context.Context, db bun.IDB, postID int64) (*Post, error)
	GetBySlug(ctx context.Context, db bun.IDB, slug string) (*Post, error)
	List(ctx context.Context, db bun.IDB) ([]*Post, error)
	TitleExists(ctx context.Context, db bun.IDB, title string) (bool, error)
	Create(ctx context.Context, db bun.IDB, post *Post) error
	Delete(ctx context.Context, db bun.IDB, postID int64) error
}
