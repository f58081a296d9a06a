package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/clubhouse/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open connects to Postgres with the configured driver and verifies the
// connection.
func Open(ctx context.Context, cfg config.PostgresConfig) (*bun.DB, error) {
	sqldb, err := openSQL(cfg)
	if err != nil {
		return nil, err
	}

	sqldb.SetMaxOpenConns(20)
	sqldb.SetMaxIdleConns(5)
	sqldb.SetConnMaxIdleTime(5 * time.Minute)

	db := bun.NewDB(sqldb, pgdialect.New())

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func openSQL(cfg config.PostgresConfig) (*sql.DB, error) {
	switch cfg.Driver {
	case "", "pgdriver":
		return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN))), nil
	case "pgx":
		sqldb, err := sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open pgx connection: %w", err)
		}
		return sqldb, nil
	default:
		return nil, fmt.Errorf("unsupported postgres driver %q", cfg.Driver)
	}
}
