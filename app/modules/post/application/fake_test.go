package postservice

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	postdb "github.com/Black-And-White-Club/clubhouse/app/modules/post/infrastructure/repositories"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Post Repo
// ------------------------

type FakePostRepo struct {
	mu     sync.Mutex
	trace  []string
	nextID int64
	posts  map[int64]*postdb.Post

	TitleExistsFunc func(ctx context.Context, db bun.IDB, title string) (bool, error)
}

func NewFakePostRepo() *FakePostRepo {
	return &FakePostRepo{trace: []string{}, posts: map[int64]*postdb.Post{}}
}

func (f *FakePostRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakePostRepo) seed(title, slug, content string) *postdb.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p := &postdb.Post{
		ID:         f.nextID,
		Title:      title,
		Slug:       slug,
		Content:    content,
		ProfileID:  1,
		UploadedAt: time.Date(2026, time.October, 1, 0, 0, int(f.nextID), 0, time.UTC),
	}
	f.posts[p.ID] = p
	cp := *p
	return &cp
}

func (f *FakePostRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.posts)
}

func (f *FakePostRepo) GetByID(ctx context.Context, db bun.IDB, postID int64) (*postdb.Post, error) {
	f.record("GetByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.posts[postID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, postdb.ErrNotFound
}

func (f *FakePostRepo) GetBySlug(ctx context.Context, db bun.IDB, slug string) (*postdb.Post, error) {
	f.record("GetBySlug")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, postdb.ErrNotFound
}

func (f *FakePostRepo) List(ctx context.Context, db bun.IDB) ([]*postdb.Post, error) {
	f.record("List")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*postdb.Post{}
	for _, p := range f.posts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *FakePostRepo) TitleExists(ctx context.Context, db bun.IDB, title string) (bool, error) {
	f.record("TitleExists")
	if f.TitleExistsFunc != nil {
		return f.TitleExistsFunc(ctx, db, title)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (f *FakePostRepo) Create(ctx context.Context, db bun.IDB, post *postdb.Post) error {
	f.record("Create")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Title == post.Title || p.Slug == post.Slug {
			return fmt.Errorf("failed to create post: %w", &pgconn.PgError{Code: "23505", ConstraintName: "posts_slug_key"})
		}
	}
	f.nextID++
	post.ID = f.nextID
	post.UploadedAt = time.Now()
	cp := *post
	f.posts[post.ID] = &cp
	return nil
}

func (f *FakePostRepo) Delete(ctx context.Context, db bun.IDB, postID int64) error {
	f.record("Delete")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[postID]; !ok {
		return postdb.ErrNotFound
	}
	delete(f.posts, postID)
	return nil
}

func (f *FakePostRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ postdb.Repository = (*FakePostRepo)(nil)

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
