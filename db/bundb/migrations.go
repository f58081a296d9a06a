package bundb

import (
	clubmigrations "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories/migrations"
	competitionmigrations "github.com/Black-And-White-Club/clubhouse/app/modules/competition/infrastructure/repositories/migrations"
	postmigrations "github.com/Black-And-White-Club/clubhouse/app/modules/post/infrastructure/repositories/migrations"
	usermigrations "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrator pairs a module name with its migrator.
type ModuleMigrator struct {
	Module   string
	Migrator *migrate.Migrator
}

// Migrators returns one migrator per module in foreign-key dependency order.
// Each module keeps its own bookkeeping tables so modules migrate independently.
func Migrators(db *bun.DB) []ModuleMigrator {
	return []ModuleMigrator{
		{"user", migrate.NewMigrator(db, usermigrations.Migrations,
			migrate.WithTableName("user_migrations"), migrate.WithLocksTableName("user_migration_locks"))},
		{"club", migrate.NewMigrator(db, clubmigrations.Migrations,
			migrate.WithTableName("club_migrations"), migrate.WithLocksTableName("club_migration_locks"))},
		{"competition", migrate.NewMigrator(db, competitionmigrations.Migrations,
			migrate.WithTableName("competition_migrations"), migrate.WithLocksTableName("competition_migration_locks"))},
		{"post", migrate.NewMigrator(db, postmigrations.Migrations,
			migrate.WithTableName("post_migrations"), migrate.WithLocksTableName("post_migration_locks"))},
	}
}
