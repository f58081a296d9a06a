// Package userservice implements account registration, lazy profiles and
// the administrative role mutator.
package userservice

import (
	"log/slog"

	"github.com/Black-And-White-Club/clubhouse/app/eventbus"
	"github.com/Black-And-White-Club/clubhouse/app/metrics"
	userdb "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/operation"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Redirect targets suggested to the client.
const (
	nextHome    = "/home"
	nextLogin   = "/login"
	nextProfile = "/profile"
	nextUsers   = "/admin/users"
	nextStaff   = "/staff/elevate"
	nextSignup  = "/register"
)

// UserService implements the Service interface.
type UserService struct {
	repo     userdb.Repository
	events   eventbus.Emitter
	staffKey string
	logger   *slog.Logger
	run      *operation.Runner
}

// NewUserService creates a new UserService. staffKey is the configured
// staff elevation secret.
func NewUserService(
	repo userdb.Repository,
	events eventbus.Emitter,
	staffKey string,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if events == nil {
		events = eventbus.Nop{}
	}
	return &UserService{
		repo:     repo,
		events:   events,
		staffKey: staffKey,
		logger:   logger,
		run: &operation.Runner{
			Service: "UserService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
			DB:      db,
		},
	}
}

var _ Service = (*UserService)(nil)
