// Package clubservice implements club management and the club membership
// ledger: a user belongs to at most one club at a time.
package clubservice

import (
	"log/slog"
	"strconv"

	"github.com/Black-And-White-Club/clubhouse/app/eventbus"
	"github.com/Black-And-White-Club/clubhouse/app/metrics"
	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	"github.com/Black-And-White-Club/clubhouse/app/shared/operation"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const nextClubs = "/clubs"

// ClubService implements the Service interface.
type ClubService struct {
	repo     clubdb.Repository
	profiles ProfileLookup
	events   eventbus.Emitter
	logger   *slog.Logger
	run      *operation.Runner
}

// NewClubService creates a new ClubService.
func NewClubService(
	repo clubdb.Repository,
	profiles ProfileLookup,
	events eventbus.Emitter,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ClubService {
	if logger == nil {
		logger = slog.Default()
	}
	if events == nil {
		events = eventbus.Nop{}
	}
	return &ClubService{
		repo:     repo,
		profiles: profiles,
		events:   events,
		logger:   logger,
		run: &operation.Runner{
			Service: "ClubService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
			DB:      db,
		},
	}
}

var _ Service = (*ClubService)(nil)

// clubLocation is the detail page of a club.
func clubLocation(c *clubdb.Club) string {
	return nextClubs + "/" + c.Slug
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
