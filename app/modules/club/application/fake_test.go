package clubservice

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Club Repo
// ------------------------

// FakeClubRepo keeps clubs and memberships in memory and enforces the same
// uniqueness rules as the schema: one membership per user, unique titles and
// slugs.
type FakeClubRepo struct {
	mu    sync.Mutex
	trace []string

	nextClubID   int64
	nextMemberID int64
	clubs        map[int64]*clubdb.Club
	members      map[int64]*clubdb.ClubMember // keyed by user id

	GetMembershipFunc  func(ctx context.Context, db bun.IDB, userID int64) (*clubdb.ClubMember, error)
	LockMembershipFunc func(ctx context.Context, db bun.IDB, userID int64) (*clubdb.ClubMember, error)
	AddMemberFunc      func(ctx context.Context, db bun.IDB, clubID, userID int64) error
	TitleExistsFunc    func(ctx context.Context, db bun.IDB, title string) (bool, error)
	RemoveMemberFunc   func(ctx context.Context, db bun.IDB, clubID, userID int64) (bool, error)
}

func NewFakeClubRepo() *FakeClubRepo {
	return &FakeClubRepo{
		trace:   []string{},
		clubs:   map[int64]*clubdb.Club{},
		members: map[int64]*clubdb.ClubMember{},
	}
}

func (f *FakeClubRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// --- Seeding helpers ---

func (f *FakeClubRepo) seedClub(title, slug string) *clubdb.Club {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextClubID++
	c := &clubdb.Club{ID: f.nextClubID, Title: title, Slug: slug, Content: "About " + title}
	f.clubs[c.ID] = c
	cp := *c
	return &cp
}

func (f *FakeClubRepo) seedMember(clubID, userID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextMemberID++
	f.members[userID] = &clubdb.ClubMember{ID: f.nextMemberID, ClubID: clubID, UserID: userID, JoinedAt: time.Now()}
}

// membershipsOf returns the club ids userID belongs to.
func (f *FakeClubRepo) membershipsOf(userID int64) []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []int64{}
	if m, ok := f.members[userID]; ok {
		out = append(out, m.ClubID)
	}
	return out
}

func (f *FakeClubRepo) clubCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clubs)
}

// --- Repository Interface Implementation ---

func (f *FakeClubRepo) GetByID(ctx context.Context, db bun.IDB, clubID int64) (*clubdb.Club, error) {
	f.record("GetByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clubs[clubID]
	if !ok {
		return nil, clubdb.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *FakeClubRepo) GetBySlug(ctx context.Context, db bun.IDB, slug string) (*clubdb.Club, error) {
	f.record("GetBySlug")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clubs {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, clubdb.ErrNotFound
}

func (f *FakeClubRepo) List(ctx context.Context, db bun.IDB) ([]*clubdb.Club, error) {
	f.record("List")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*clubdb.Club{}
	for _, c := range f.clubs {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (f *FakeClubRepo) TitleExists(ctx context.Context, db bun.IDB, title string) (bool, error) {
	f.record("TitleExists")
	if f.TitleExistsFunc != nil {
		return f.TitleExistsFunc(ctx, db, title)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clubs {
		if c.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (f *FakeClubRepo) Create(ctx context.Context, db bun.IDB, club *clubdb.Club) error {
	f.record("Create")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clubs {
		if c.Title == club.Title || c.Slug == club.Slug {
			return fmt.Errorf("failed to create club: %w", &pgconn.PgError{Code: "23505", ConstraintName: "clubs_slug_key"})
		}
	}
	f.nextClubID++
	club.ID = f.nextClubID
	club.CreatedAt = time.Now()
	club.UpdatedAt = club.CreatedAt
	cp := *club
	f.clubs[club.ID] = &cp
	return nil
}

func (f *FakeClubRepo) Delete(ctx context.Context, db bun.IDB, clubID int64) error {
	f.record("Delete")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clubs[clubID]; !ok {
		return clubdb.ErrNotFound
	}
	delete(f.clubs, clubID)
	for userID, m := range f.members {
		if m.ClubID == clubID {
			delete(f.members, userID)
		}
	}
	return nil
}

func (f *FakeClubRepo) GetMembership(ctx context.Context, db bun.IDB, userID int64) (*clubdb.ClubMember, error) {
	f.record("GetMembership")
	if f.GetMembershipFunc != nil {
		return f.GetMembershipFunc(ctx, db, userID)
	}
	return f.membership(userID)
}

func (f *FakeClubRepo) LockMembership(ctx context.Context, db bun.IDB, userID int64) (*clubdb.ClubMember, error) {
	f.record("LockMembership")
	if f.LockMembershipFunc != nil {
		return f.LockMembershipFunc(ctx, db, userID)
	}
	return f.membership(userID)
}

func (f *FakeClubRepo) membership(userID int64) (*clubdb.ClubMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[userID]
	if !ok {
		return nil, clubdb.ErrNotMember
	}
	cp := *m
	return &cp, nil
}

func (f *FakeClubRepo) AddMember(ctx context.Context, db bun.IDB, clubID, userID int64) error {
	f.record("AddMember")
	if f.AddMemberFunc != nil {
		return f.AddMemberFunc(ctx, db, clubID, userID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.members[userID]; ok {
		return fmt.Errorf("failed to add member: %w", &pgconn.PgError{Code: "23505", ConstraintName: "club_members_user_key"})
	}
	f.nextMemberID++
	f.members[userID] = &clubdb.ClubMember{ID: f.nextMemberID, ClubID: clubID, UserID: userID, JoinedAt: time.Now()}
	return nil
}

func (f *FakeClubRepo) RemoveMemberships(ctx context.Context, db bun.IDB, userID int64) ([]int64, error) {
	f.record("RemoveMemberships")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []int64{}
	if m, ok := f.members[userID]; ok {
		out = append(out, m.ClubID)
		delete(f.members, userID)
	}
	return out, nil
}

func (f *FakeClubRepo) RemoveMember(ctx context.Context, db bun.IDB, clubID, userID int64) (bool, error) {
	f.record("RemoveMember")
	if f.RemoveMemberFunc != nil {
		return f.RemoveMemberFunc(ctx, db, clubID, userID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[userID]
	if !ok || m.ClubID != clubID {
		return false, nil
	}
	delete(f.members, userID)
	return true, nil
}

func (f *FakeClubRepo) ListMembers(ctx context.Context, db bun.IDB, clubID int64) ([]*clubdb.Member, error) {
	f.record("ListMembers")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*clubdb.Member{}
	for _, m := range f.members {
		if m.ClubID == clubID {
			out = append(out, &clubdb.Member{UserID: m.UserID, Username: fmt.Sprintf("user%d", m.UserID), JoinedAt: m.JoinedAt})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *FakeClubRepo) CountMembers(ctx context.Context, db bun.IDB, clubID int64) (int, error) {
	f.record("CountMembers")
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.members {
		if m.ClubID == clubID {
			n++
		}
	}
	return n, nil
}

// --- Accessors for assertions ---

func (f *FakeClubRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ clubdb.Repository = (*FakeClubRepo)(nil)

// ------------------------
// Fake Profile Lookup
// ------------------------

type FakeProfileLookup struct {
	ProfileIDFunc func(ctx context.Context, userID int64) (int64, error)
}

func (f *FakeProfileLookup) ProfileID(ctx context.Context, userID int64) (int64, error) {
	if f.ProfileIDFunc != nil {
		return f.ProfileIDFunc(ctx, userID)
	}
	return userID + 1000, nil
}

var _ ProfileLookup = (*FakeProfileLookup)(nil)

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
