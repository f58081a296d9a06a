// Package postservice implements news posts authored by staff profiles.
package postservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Black-And-White-Club/clubhouse/app/metrics"
	authservice "github.com/Black-And-White-Club/clubhouse/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	postdb "github.com/Black-And-White-Club/clubhouse/app/modules/post/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/dberr"
	"github.com/Black-And-White-Club/clubhouse/app/shared/operation"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
	"github.com/Black-And-White-Club/clubhouse/app/shared/slug"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const (
	nextPosts        = "/posts"
	msgPostNotFound  = "Post not found."
	msgTitleTaken    = "A post with this title already exists."
	msgTitleLength   = "Title must be between 5 and 50 characters."
	msgTitleUnusable = "Title must contain at least one letter or digit."
	msgSlugTooLong   = "Title is too long to use in a link."
	msgPostDeleted   = "Post deleted."
	minTitleRunes    = 5
	maxTitleRunes    = 50
	maxSlugLen       = 60
)

// PostService implements the Service interface.
type PostService struct {
	repo     postdb.Repository
	profiles ProfileLookup
	logger   *slog.Logger
	run      *operation.Runner
}

// NewPostService creates a new PostService.
func NewPostService(
	repo postdb.Repository,
	profiles ProfileLookup,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *PostService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostService{
		repo:     repo,
		profiles: profiles,
		logger:   logger,
		run: &operation.Runner{
			Service: "PostService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
			DB:      db,
		},
	}
}

var _ Service = (*PostService)(nil)

// CreatePost stores a post authored by the caller's profile. A caller without
// a profile is a fatal error, not an outcome.
func (s *PostService) CreatePost(ctx context.Context, caller *authdomain.Caller, req CreatePostRequest) (outcome.Result[*postdb.Post], error) {
	if o, ok := authservice.Guard(caller, authservice.ManagerRoles...); !ok {
		return outcome.With[*postdb.Post](o, nil), nil
	}

	title := strings.TrimSpace(req.Title)
	if n := utf8.RuneCountInString(title); n < minTitleRunes || n > maxTitleRunes {
		return outcome.With[*postdb.Post](outcome.Error(msgTitleLength, nextPosts), nil), nil
	}
	postSlug := slug.Make(title)
	switch {
	case postSlug == "":
		return outcome.With[*postdb.Post](outcome.Error(msgTitleUnusable, nextPosts), nil), nil
	case len(postSlug) > maxSlugLen:
		return outcome.With[*postdb.Post](outcome.Error(msgSlugTooLong, nextPosts), nil), nil
	}

	return operation.WithTelemetry(s.run, ctx, "CreatePost", title, func(ctx context.Context) (outcome.Result[*postdb.Post], error) {
		profileID, err := s.profiles.ProfileID(ctx, caller.UserID())
		if err != nil {
			return outcome.Result[*postdb.Post]{}, fmt.Errorf("failed to resolve author profile: %w", err)
		}

		post := &postdb.Post{
			Title:     title,
			ImageURL:  strings.TrimSpace(req.ImageURL),
			Content:   req.Content,
			Slug:      postSlug,
			ProfileID: profileID,
		}
		result, err := operation.RunInTx(s.run, ctx, func(ctx context.Context, db bun.IDB) (outcome.Result[*postdb.Post], error) {
			taken, err := s.repo.TitleExists(ctx, db, post.Title)
			if err != nil {
				return outcome.Result[*postdb.Post]{}, err
			}
			if taken {
				return outcome.With[*postdb.Post](outcome.Error(msgTitleTaken, nextPosts), nil), nil
			}
			if err := s.repo.Create(ctx, db, post); err != nil {
				return outcome.Result[*postdb.Post]{}, err
			}
			return outcome.With(outcome.Success("Post "+post.Title+" published.", postLocation(post)), post), nil
		})
		if err != nil && dberr.IsUniqueViolation(err) {
			return outcome.With[*postdb.Post](outcome.Error(msgTitleTaken, nextPosts), nil), nil
		}
		return result, err
	})
}

func (s *PostService) GetPostBySlug(ctx context.Context, caller *authdomain.Caller, postSlug string) (outcome.Result[*PostView], error) {
	if o, ok := authservice.Guard(caller, authservice.MemberRoles...); !ok {
		return outcome.With[*PostView](o, nil), nil
	}

	return operation.Observe(s.run, ctx, "GetPostBySlug", postSlug, func(ctx context.Context, db bun.IDB) (outcome.Result[*PostView], error) {
		post, err := s.repo.GetBySlug(ctx, db, postSlug)
		if err != nil {
			if errors.Is(err, postdb.ErrNotFound) {
				return outcome.With[*PostView](outcome.NotFound(msgPostNotFound), nil), nil
			}
			return outcome.Result[*PostView]{}, err
		}
		return outcome.With(outcome.Success("", ""), newView(post)), nil
	})
}

func (s *PostService) ListPosts(ctx context.Context, caller *authdomain.Caller) (outcome.Result[[]*PostView], error) {
	if o, ok := authservice.Guard(caller, authservice.MemberRoles...); !ok {
		return outcome.With[[]*PostView](o, nil), nil
	}

	return operation.Observe(s.run, ctx, "ListPosts", "", func(ctx context.Context, db bun.IDB) (outcome.Result[[]*PostView], error) {
		posts, err := s.repo.List(ctx, db)
		if err != nil {
			return outcome.Result[[]*PostView]{}, err
		}
		views := make([]*PostView, 0, len(posts))
		for _, p := range posts {
			views = append(views, newView(p))
		}
		return outcome.With(outcome.Success("", ""), views), nil
	})
}

func (s *PostService) DeletePost(ctx context.Context, caller *authdomain.Caller, postID int64) (outcome.Outcome, error) {
	if o, ok := authservice.Guard(caller, authservice.ManagerRoles...); !ok {
		return o, nil
	}

	return operation.Observe(s.run, ctx, "DeletePost", strconv.FormatInt(postID, 10), func(ctx context.Context, db bun.IDB) (outcome.Outcome, error) {
		if err := s.repo.Delete(ctx, db, postID); err != nil {
			if errors.Is(err, postdb.ErrNotFound) {
				return outcome.NotFound(msgPostNotFound), nil
			}
			return outcome.Outcome{}, err
		}
		return outcome.Success(msgPostDeleted, nextPosts), nil
	})
}

func postLocation(p *postdb.Post) string {
	return nextPosts + "/" + p.Slug
}
