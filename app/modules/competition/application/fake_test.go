package competitionservice

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	competitiondb "github.com/Black-And-White-Club/clubhouse/app/modules/competition/infrastructure/repositories"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Competition Repo
// ------------------------

type interestKey struct {
	competitionID int64
	userID        int64
}

// FakeCompetitionRepo keeps competitions, interest entries and registrations
// in memory. Clubs listed in clubs exist; any other club id is a foreign key
// violation on Create.
type FakeCompetitionRepo struct {
	mu    sync.Mutex
	trace []string

	nextID    int64
	nextRegID int64
	clubs     map[int64]struct{}
	comps     map[int64]*competitiondb.Competition
	interest  map[interestKey]struct{}
	regs      map[int64]*competitiondb.Registration

	IsInterestedFunc       func(ctx context.Context, db bun.IDB, competitionID, userID int64) (bool, error)
	RemoveInterestFunc     func(ctx context.Context, db bun.IDB, competitionID, userID int64) (bool, error)
	CreateRegistrationFunc func(ctx context.Context, db bun.IDB, registration *competitiondb.Registration) error
}

func NewFakeCompetitionRepo(clubIDs ...int64) *FakeCompetitionRepo {
	f := &FakeCompetitionRepo{
		trace:    []string{},
		clubs:    map[int64]struct{}{},
		comps:    map[int64]*competitiondb.Competition{},
		interest: map[interestKey]struct{}{},
		regs:     map[int64]*competitiondb.Registration{},
	}
	for _, id := range clubIDs {
		f.clubs[id] = struct{}{}
	}
	return f
}

func (f *FakeCompetitionRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// --- Seeding helpers ---

func (f *FakeCompetitionRepo) seed(title, slug string, clubID int64) *competitiondb.Competition {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c := &competitiondb.Competition{
		ID:     f.nextID,
		Title:  title,
		Slug:   slug,
		ClubID: clubID,
		Date:   time.Date(2026, time.November, 7, 0, 0, 0, 0, time.UTC),
	}
	f.comps[c.ID] = c
	cp := *c
	return &cp
}

func (f *FakeCompetitionRepo) seedInterest(competitionID, userID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interest[interestKey{competitionID, userID}] = struct{}{}
}

func (f *FakeCompetitionRepo) interested(competitionID, userID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.interest[interestKey{competitionID, userID}]
	return ok
}

func (f *FakeCompetitionRepo) registrationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.regs)
}

func (f *FakeCompetitionRepo) competition(id int64) *competitiondb.Competition {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.comps[id]; ok {
		cp := *c
		return &cp
	}
	return nil
}

// --- Repository Interface Implementation ---

func (f *FakeCompetitionRepo) GetByID(ctx context.Context, db bun.IDB, competitionID int64) (*competitiondb.Competition, error) {
	f.record("GetByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comps[competitionID]
	if !ok {
		return nil, competitiondb.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *FakeCompetitionRepo) GetBySlug(ctx context.Context, db bun.IDB, slug string) (*competitiondb.Competition, error) {
	f.record("GetBySlug")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.comps {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, competitiondb.ErrNotFound
}

func (f *FakeCompetitionRepo) List(ctx context.Context, db bun.IDB, clubID *int64) ([]*competitiondb.Competition, error) {
	f.record("List")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*competitiondb.Competition{}
	for _, c := range f.comps {
		if clubID != nil && c.ClubID != *clubID {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *FakeCompetitionRepo) Create(ctx context.Context, db bun.IDB, competition *competitiondb.Competition) error {
	f.record("Create")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clubs[competition.ClubID]; !ok {
		return fmt.Errorf("failed to create competition: %w", &pgconn.PgError{Code: "23503", ConstraintName: "competitions_club_id_fkey"})
	}
	for _, c := range f.comps {
		if c.Slug == competition.Slug {
			return fmt.Errorf("failed to create competition: %w", &pgconn.PgError{Code: "23505", ConstraintName: "competitions_slug_key"})
		}
	}
	f.nextID++
	competition.ID = f.nextID
	competition.CreatedAt = time.Now()
	cp := *competition
	f.comps[competition.ID] = &cp
	return nil
}

func (f *FakeCompetitionRepo) Update(ctx context.Context, db bun.IDB, competition *competitiondb.Competition) error {
	f.record("Update")
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comps[competition.ID]
	if !ok {
		return competitiondb.ErrNotFound
	}
	c.Title, c.Date, c.Context = competition.Title, competition.Date, competition.Context
	return nil
}

func (f *FakeCompetitionRepo) Delete(ctx context.Context, db bun.IDB, competitionID int64) error {
	f.record("Delete")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comps[competitionID]; !ok {
		return competitiondb.ErrNotFound
	}
	delete(f.comps, competitionID)
	for k := range f.interest {
		if k.competitionID == competitionID {
			delete(f.interest, k)
		}
	}
	for id, r := range f.regs {
		if r.CompetitionID == competitionID {
			delete(f.regs, id)
		}
	}
	return nil
}

func (f *FakeCompetitionRepo) IsInterested(ctx context.Context, db bun.IDB, competitionID, userID int64) (bool, error) {
	f.record("IsInterested")
	if f.IsInterestedFunc != nil {
		return f.IsInterestedFunc(ctx, db, competitionID, userID)
	}
	return f.interested(competitionID, userID), nil
}

func (f *FakeCompetitionRepo) AddInterest(ctx context.Context, db bun.IDB, competitionID, userID int64) error {
	f.record("AddInterest")
	f.mu.Lock()
	defer f.mu.Unlock()
	k := interestKey{competitionID, userID}
	if _, ok := f.interest[k]; ok {
		return fmt.Errorf("failed to add interest: %w", &pgconn.PgError{Code: "23505", ConstraintName: "competition_participants_key"})
	}
	f.interest[k] = struct{}{}
	return nil
}

func (f *FakeCompetitionRepo) RemoveInterest(ctx context.Context, db bun.IDB, competitionID, userID int64) (bool, error) {
	f.record("RemoveInterest")
	if f.RemoveInterestFunc != nil {
		return f.RemoveInterestFunc(ctx, db, competitionID, userID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	k := interestKey{competitionID, userID}
	_, ok := f.interest[k]
	delete(f.interest, k)
	return ok, nil
}

func (f *FakeCompetitionRepo) CountInterest(ctx context.Context, db bun.IDB, competitionID int64) (int, error) {
	f.record("CountInterest")
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for k := range f.interest {
		if k.competitionID == competitionID {
			n++
		}
	}
	return n, nil
}

func (f *FakeCompetitionRepo) CreateRegistration(ctx context.Context, db bun.IDB, registration *competitiondb.Registration) error {
	f.record("CreateRegistration")
	if f.CreateRegistrationFunc != nil {
		return f.CreateRegistrationFunc(ctx, db, registration)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextRegID++
	registration.ID = f.nextRegID
	registration.CreatedAt = time.Date(2026, time.October, 1, 12, 0, 0, int(f.nextRegID), time.UTC)
	cp := *registration
	f.regs[registration.ID] = &cp
	return nil
}

func (f *FakeCompetitionRepo) DeleteRegistration(ctx context.Context, db bun.IDB, registrationID int64) (*competitiondb.Registration, error) {
	f.record("DeleteRegistration")
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.regs[registrationID]
	if !ok {
		return nil, competitiondb.ErrRegistrationNotFound
	}
	delete(f.regs, registrationID)
	return r, nil
}

func (f *FakeCompetitionRepo) ListRegistrations(ctx context.Context, db bun.IDB, competitionID int64) ([]*competitiondb.Registration, error) {
	f.record("ListRegistrations")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*competitiondb.Registration{}
	for _, r := range f.regs {
		if r.CompetitionID == competitionID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Accessors for assertions ---

func (f *FakeCompetitionRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ competitiondb.Repository = (*FakeCompetitionRepo)(nil)

// ------------------------
// Recording Emitter
// ------------------------

type emitted struct {
	Topic   string
	Payload any
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []emitted
}

func (r *recordingEmitter) Emit(_ context.Context, topic string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, emitted{Topic: topic, Payload: payload})
}

func (r *recordingEmitter) topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []string{}
	for _, e := range r.events {
		out = append(out, e.Topic)
	}
	return out
}
