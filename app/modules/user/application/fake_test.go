package userservice

import (
	"context"
	"sort"
	"strings"
	"sync"

	userdb "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake User Repo
// ------------------------

// FakeUserRepo keeps identities in memory. Any Func field overrides the
// in-memory behaviour of its method.
type FakeUserRepo struct {
	mu    sync.Mutex
	trace []string

	nextID   int64
	users    map[int64]*userdb.User
	roles    map[int64]map[string]struct{}
	profiles map[int64]*userdb.Profile

	EmailInUseFunc    func(ctx context.Context, db bun.IDB, email string) (bool, error)
	CreateUserFunc    func(ctx context.Context, db bun.IDB, user *userdb.User) error
	CreateProfileFunc func(ctx context.Context, db bun.IDB, profile *userdb.Profile) error
	GetUserByIDFunc   func(ctx context.Context, db bun.IDB, userID int64) (*userdb.User, error)
	SetFlagsFunc      func(ctx context.Context, db bun.IDB, userID int64, isStaff, isSuperuser bool) error
	UpdateNamesFunc   func(ctx context.Context, db bun.IDB, userID int64, firstName, lastName, email string) error
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		trace:    []string{},
		users:    map[int64]*userdb.User{},
		roles:    map[int64]map[string]struct{}{},
		profiles: map[int64]*userdb.Profile{},
	}
}

func (f *FakeUserRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Seeding helpers ---

func (f *FakeUserRepo) seed(username string, isStaff, isSuperuser bool, roles ...string) *userdb.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u := &userdb.User{
		ID:          f.nextID,
		Username:    username,
		Email:       username + "@example.com",
		IsStaff:     isStaff,
		IsSuperuser: isSuperuser,
	}
	f.users[u.ID] = u
	f.roles[u.ID] = map[string]struct{}{}
	for _, r := range roles {
		f.roles[u.ID][r] = struct{}{}
	}
	return u
}

func (f *FakeUserRepo) roleSet(userID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedRoles(userID)
}

func (f *FakeUserRepo) user(userID int64) *userdb.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		cp := *u
		return &cp
	}
	return nil
}

func (f *FakeUserRepo) profile(userID int64) *userdb.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[userID]; ok {
		cp := *p
		return &cp
	}
	return nil
}

func (f *FakeUserRepo) sortedRoles(userID int64) []string {
	out := []string{}
	for r := range f.roles[userID] {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

func (f *FakeUserRepo) withRoles(u *userdb.User) *userdb.User {
	cp := *u
	cp.Roles = nil
	for _, r := range f.sortedRoles(u.ID) {
		cp.Roles = append(cp.Roles, &userdb.UserRole{UserID: u.ID, Role: r})
	}
	return &cp
}

// --- Repository Interface Implementation ---

func (f *FakeUserRepo) GetUserByID(ctx context.Context, db bun.IDB, userID int64) (*userdb.User, error) {
	f.record("GetUserByID")
	if f.GetUserByIDFunc != nil {
		return f.GetUserByIDFunc(ctx, db, userID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, userdb.ErrNotFound
	}
	return f.withRoles(u), nil
}

func (f *FakeUserRepo) GetUserForUpdate(ctx context.Context, db bun.IDB, userID int64) (*userdb.User, error) {
	f.record("GetUserForUpdate")
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, userdb.ErrNotFound
	}
	return f.withRoles(u), nil
}

func (f *FakeUserRepo) EmailInUse(ctx context.Context, db bun.IDB, email string) (bool, error) {
	f.record("EmailInUse")
	if f.EmailInUseFunc != nil {
		return f.EmailInUseFunc(ctx, db, email)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	for _, p := range f.profiles {
		if strings.EqualFold(p.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *FakeUserRepo) CreateUser(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.record("CreateUser")
	if f.CreateUserFunc != nil {
		return f.CreateUserFunc(ctx, db, user)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.users[user.ID] = &cp
	f.roles[user.ID] = map[string]struct{}{}
	return nil
}

func (f *FakeUserRepo) UpdateUserNames(ctx context.Context, db bun.IDB, userID int64, firstName, lastName, email string) error {
	f.record("UpdateUserNames")
	if f.UpdateNamesFunc != nil {
		return f.UpdateNamesFunc(ctx, db, userID, firstName, lastName, email)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return userdb.ErrNotFound
	}
	u.FirstName, u.LastName, u.Email = firstName, lastName, email
	return nil
}

func (f *FakeUserRepo) SetFlags(ctx context.Context, db bun.IDB, userID int64, isStaff, isSuperuser bool) error {
	f.record("SetFlags")
	if f.SetFlagsFunc != nil {
		return f.SetFlagsFunc(ctx, db, userID, isStaff, isSuperuser)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return userdb.ErrNotFound
	}
	u.IsStaff, u.IsSuperuser = isStaff, isSuperuser
	return nil
}

func (f *FakeUserRepo) DeleteUser(ctx context.Context, db bun.IDB, userID int64) error {
	f.record("DeleteUser")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[userID]; !ok {
		return userdb.ErrNotFound
	}
	delete(f.users, userID)
	delete(f.roles, userID)
	delete(f.profiles, userID)
	return nil
}

func (f *FakeUserRepo) ListRoles(ctx context.Context, db bun.IDB, userID int64) ([]string, error) {
	f.record("ListRoles")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedRoles(userID), nil
}

func (f *FakeUserRepo) AddRole(ctx context.Context, db bun.IDB, userID int64, role string) error {
	f.record("AddRole")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.roles[userID] == nil {
		f.roles[userID] = map[string]struct{}{}
	}
	f.roles[userID][role] = struct{}{}
	return nil
}

func (f *FakeUserRepo) RemoveRoles(ctx context.Context, db bun.IDB, userID int64, roles ...string) error {
	f.record("RemoveRoles")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range roles {
		delete(f.roles[userID], r)
	}
	return nil
}

func (f *FakeUserRepo) GetProfileByUserID(ctx context.Context, db bun.IDB, userID int64) (*userdb.Profile, error) {
	f.record("GetProfileByUserID")
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, userdb.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *FakeUserRepo) CreateProfile(ctx context.Context, db bun.IDB, profile *userdb.Profile) error {
	f.record("CreateProfile")
	if f.CreateProfileFunc != nil {
		return f.CreateProfileFunc(ctx, db, profile)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.profiles[profile.UserID]; ok {
		*profile = *existing
		return nil
	}
	profile.ID = profile.UserID + 1000
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func (f *FakeUserRepo) UpdateProfile(ctx context.Context, db bun.IDB, profile *userdb.Profile) error {
	f.record("UpdateProfile")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[profile.UserID]; !ok {
		return userdb.ErrProfileNotFound
	}
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

// --- Accessors for assertions ---

func (f *FakeUserRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ userdb.Repository = (*FakeUserRepo)(nil)

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
