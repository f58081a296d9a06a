package auth

import (
	"log/slog"
	"net/http"
	"time"

	authdomain "github.com/Black-And-White-Club/clubhouse/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/clubhouse/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/clubhouse/config"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// Module represents the auth module: token validation and the HTTP
// middlewares that turn a bearer token into a Caller snapshot.
type Module struct {
	tokens  authjwt.Provider
	limiter *authhandlers.IPRateLimiter
	origins []string
	ttl     time.Duration
	logger  *slog.Logger
}

// NewModule creates a new auth module.
func NewModule(cfg *config.Config, logger *slog.Logger) *Module {
	logger.Info("Initializing auth module")
	return &Module{
		tokens:  authjwt.NewProvider(cfg.JWT.Secret),
		limiter: authhandlers.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst),
		origins: cfg.HTTP.AllowedOrigins,
		ttl:     cfg.JWT.DefaultTTL,
		logger:  logger,
	}
}

// Mount installs the API-wide middlewares on r.
func (m *Module) Mount(r chi.Router) {
	r.Use(authhandlers.CORSMiddleware(m.origins))
	r.Use(authhandlers.RateLimitMiddleware(m.limiter))
}

// RequireCaller rejects requests without a resolvable bearer token.
func (m *Module) RequireCaller(resolver authhandlers.CallerResolver) func(http.Handler) http.Handler {
	return authhandlers.CallerMiddleware(m.tokens, resolver, m.logger, true)
}

// OptionalCaller attaches a caller when a valid token is present.
func (m *Module) OptionalCaller(resolver authhandlers.CallerResolver) func(http.Handler) http.Handler {
	return authhandlers.CallerMiddleware(m.tokens, resolver, m.logger, false)
}

// IssueToken signs a token for userID. Production tokens come from the
// identity provider; this backs the CLI token command for local use.
func (m *Module) IssueToken(userID int64, username string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = m.ttl
	}
	return m.tokens.GenerateToken(&authdomain.Claims{UserID: userID, Username: username}, ttl)
}
