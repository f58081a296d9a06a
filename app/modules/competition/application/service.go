// Package competitionservice implements competition management and the
// competition roster: the InterestSet and formal registrations.
package competitionservice

import (
	"log/slog"
	"net/url"
	"strconv"

	"github.com/Black-And-White-Club/clubhouse/app/eventbus"
	"github.com/Black-And-White-Club/clubhouse/app/metrics"
	competitiondb "github.com/Black-And-White-Club/clubhouse/app/modules/competition/infrastructure/repositories"
	competitiontime "github.com/Black-And-White-Club/clubhouse/app/modules/competition/time_utils"
	"github.com/Black-And-White-Club/clubhouse/app/shared/operation"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const nextCompetitions = "/competitions"

// CompetitionService implements the Service interface.
type CompetitionService struct {
	repo   competitiondb.Repository
	dates  competitiontime.DateParserInterface
	clock  competitiontime.Clock
	events eventbus.Emitter
	logger *slog.Logger
	run    *operation.Runner
}

// NewCompetitionService creates a new CompetitionService.
func NewCompetitionService(
	repo competitiondb.Repository,
	events eventbus.Emitter,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *CompetitionService {
	if logger == nil {
		logger = slog.Default()
	}
	if events == nil {
		events = eventbus.Nop{}
	}
	return &CompetitionService{
		repo:   repo,
		dates:  competitiontime.NewDateParser(),
		clock:  competitiontime.RealClock{},
		events: events,
		logger: logger,
		run: &operation.Runner{
			Service: "CompetitionService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
			DB:      db,
		},
	}
}

var _ Service = (*CompetitionService)(nil)

func competitionLocation(c *competitiondb.Competition) string {
	return nextCompetitions + "/" + c.Slug
}

// registerLocation is the registration form for a slug.
func registerLocation(slug string) string {
	return nextCompetitions + "/" + url.PathEscape(slug) + "/register"
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
