package clubdb

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
)

var (
	// ErrNotFound is returned when a club is not found.
	ErrNotFound = errors.New("club not found")

	// ErrNotMember is returned when a user holds no membership.
	ErrNotMember = errors.New("user is not a club member")
)

// Repository defines the contract for club and membership persistence.
//
// Error semantics:
//   - ErrNotFound: club lookups and Delete on a missing club
//   - ErrNotMember: GetMembership and LockMembership for a user without a club
//   - unique violations from Create and AddMember are returned wrapped, for dberr
//   - other errors: infrastructure failures
type Repository interface {
	// Clubs
	GetByID(ctx context.Context, db bun.IDB, clubID int64) (*Club, error)
	GetBySlug(ctx context.Context, db bun.IDB, slug string) (*Club, error)
	List(ctx context.Context, db bun.IDB) ([]*Club, error)
	TitleExists(ctx context.Context, db bun.IDB, title string) (bool, error)
	Create(ctx context.Context, db bun.IDB, club *Club) error
	Delete(ctx context.Context, db bun.IDB, clubID int64) error

	// Memberships
	GetMembership(ctx context.Context, db bun.IDB, userID int64) (*ClubMember, error)
	LockMembership(ctx context.Context, db bun.IDB, userID int64) (*ClubMember, error)
	AddMember(ctx context.Context, db bun.IDB, clubID, userID int64) error
	RemoveMemberships(ctx context.Context, db bun.IDB, userID int64) ([]int64, error)
	RemoveMember(ctx context.Context, db bun.IDB, clubID, userID int64) (bool, error)
	ListMembers(ctx context.Context, db bun.IDB, clubID int64) ([]*Member, error)
	CountMembers(ctx context.Context, db bun.IDB, clubID int64) (int, error)
}
