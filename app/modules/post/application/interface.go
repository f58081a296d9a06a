package postservice

import (
	"context"

	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	postdb "github.com/Black-And-White-Club/clubhouse/app/modules/post/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
)

// Service defines post management.
type Service interface {
	CreatePost(ctx context.Context, caller *authdomain.Caller, req CreatePostRequest) (outcome.Result[*postdb.Post], error)
	GetPostBySlug(ctx context.Context, caller *authdomain.Caller, slug string) (outcome.Result[*PostView], error)
	ListPosts(ctx context.Context, caller *authdomain.Caller) (outcome.Result[[]*PostView], error)
	DeletePost(ctx context.Context, caller *authdomain.Caller, postID int64) (outcome.Outcome, error)
}

// ProfileLookup resolves the profile that authors a post.
type ProfileLookup interface {
	ProfileID(ctx context.Context, userID int64) (int64, error)
}

type CreatePostRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Content  string `json:"content"`
}

// PostView is a post with its teaser.
type PostView struct {
	*postdb.Post
	ShortContent string `json:"short_content"`
}

func newView(p *postdb.Post) *PostView {
	return &PostView{Post: p, ShortContent: p.ShortContent()}
}
