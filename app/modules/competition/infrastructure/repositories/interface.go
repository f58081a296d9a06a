package competitiondb

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
)

var (
	// ErrNotFound is returned when a competition is not found.
	ErrNotFound = errors.New("competition not found")

	// ErrRegistrationNotFound is returned when a registration is not found.
	ErrRegistrationNotFound = errors.New("registration not found")
)

// Repository defines the contract for competition and roster persistence.
//
// Error semantics:
//   - ErrNotFound: competition lookups, Update and Delete on a missing competition
//   - ErrRegistrationNotFound: DeleteRegistration on a missing id
//   - Create returns a wrapped foreign key violation for a missing club and a
//     unique violation for a taken slug, for dberr
//   - other errors: infrastructure failures
type Repository interface {
	// Competitions
	GetByID(ctx context.Context, db bun.IDB, competitionID int64) (*Competition, error)
	GetBySlug(ctx context.Context, db bun.IDB, slug string) (*Competition, error)
	List(ctx context.Context, db bun.IDB, clubID *int64) ([]*Competition, error)
	Create(ctx context.Context, db bun.IDB, competition *Competition) error
	Update(ctx context.Context, db bun.IDB, competition *Competition) error
	Delete(ctx context.Context, db bun.IDB, competitionID int64) error

	// InterestSet
	IsInterested(ctx context.Context, db bun.IDB, competitionID, userID int64) (bool, error)
	AddInterest(ctx context.Context, db bun.IDB, competitionID, userID int64) error
	RemoveInterest(ctx context.Context, db bun.IDB, competitionID, userID int64) (bool, error)
	CountInterest(ctx context.Context, db bun.IDB, competitionID int64) (int, error)

	// Registrations
	CreateRegistration(ctx context.Context, db bun.IDB, registration *Registration) error
	DeleteRegistration(ctx context.Context, db bun.IDB, registrationID int64) (*Registration, error)
	ListRegistrations(ctx context.Context, db bun.IDB, competitionID int64) ([]*Registration, error)
}
