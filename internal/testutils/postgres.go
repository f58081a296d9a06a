package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/Black-And-White-Club/clubhouse/db/bundb"
	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	pgImage    = "postgres:16-alpine"
	pgDatabase = "testdb"
	pgUser     = "testuser"
	pgPassword = "testpass"
)

// NewPostgres starts a disposable Postgres container, applies every module's
// migrations and returns a connected bun.DB. The test is skipped under -short
// or when no container runtime is available.
func NewPostgres(t *testing.T) *bun.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Postgres integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := postgres.Run(ctx,
		pgImage,
		postgres.WithDatabase(pgDatabase),
		postgres.WithUsername(pgUser),
		postgres.WithPassword(pgPassword),
		testcontainers.WithWaitStrategy(
			wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
					pgUser, pgPassword, host, port.Port(), pgDatabase)
			}).WithStartupTimeout(45*time.Second),
		),
	)
	if err != nil {
		if container != nil {
			_ = container.Terminate(context.Background())
		}
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })

	for _, m := range bundb.Migrators(db) {
		if err := m.Migrator.Init(ctx); err != nil {
			t.Fatalf("failed to init %s migrations: %v", m.Module, err)
		}
		if _, err := m.Migrator.Migrate(ctx); err != nil {
			t.Fatalf("failed to run %s migrations: %v", m.Module, err)
		}
	}
	return db
}

// Truncate empties the domain tables between subtests.
func Truncate(t *testing.T, db *bun.DB) {
	t.Helper()
	_, err := db.ExecContext(context.Background(), `
		TRUNCATE posts, registrations, competition_participants, competitions,
			club_members, clubs, profiles, user_roles, users
		RESTART IDENTITY CASCADE;
	`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}
