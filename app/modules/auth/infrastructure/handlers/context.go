package authhandlers

import (
	"context"

	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
)

type callerKey struct{}

// WithCaller stores the request's caller snapshot.
func WithCaller(ctx context.Context, c *authdomain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFromContext returns the snapshot stored by CallerMiddleware, or nil
// for anonymous requests.
func CallerFromContext(ctx context.Context) *authdomain.Caller {
	c, _ := ctx.Value(callerKey{}).(*authdomain.Caller)
	return c
}
