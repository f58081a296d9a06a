package authhandlers

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/clubhouse/app/modules/auth/infrastructure/jwt"
)

// ------------------------
// Fake Token Provider
// ------------------------

type FakeProvider struct {
	trace []string

	GenerateTokenFunc func(claims *authdomain.Claims, ttl time.Duration) (string, error)
	ValidateTokenFunc func(tokenString string) (*authdomain.Claims, error)
}

func (f *FakeProvider) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeProvider) GenerateToken(claims *authdomain.Claims, ttl time.Duration) (string, error) {
	f.record("GenerateToken")
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(claims, ttl)
	}
	return "", nil
}

func (f *FakeProvider) ValidateToken(tokenString string) (*authdomain.Claims, error) {
	f.record("ValidateToken")
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(tokenString)
	}
	return nil, authjwt.ErrInvalidToken
}

func (f *FakeProvider) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// ------------------------
// Fake Caller Resolver
// ------------------------

type FakeResolver struct {
	ResolveCallerFunc func(ctx context.Context, userID int64) (*authdomain.Caller, error)
}

func (f *FakeResolver) ResolveCaller(ctx context.Context, userID int64) (*authdomain.Caller, error) {
	if f.ResolveCallerFunc != nil {
		return f.ResolveCallerFunc(ctx, userID)
	}
	return nil, ErrUnknownCaller
}

var (
	_ authjwt.Provider = (*FakeProvider)(nil)
	_ CallerResolver   = (*FakeResolver)(nil)
)
