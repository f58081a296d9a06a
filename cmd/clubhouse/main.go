package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Black-And-White-Club/clubhouse/app"
	"github.com/Black-And-White-Club/clubhouse/app/modules/auth"
	"github.com/Black-And-White-Club/clubhouse/config"
	"github.com/Black-And-White-Club/clubhouse/db/bundb"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "clubhouse",
		Usage: "club membership and competition server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			tokenCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			logger := app.NewLogger(os.Stdout, cfg.Observability)

			ctx, cancel := context.WithCancel(c.Context)
			defer cancel()

			application, err := app.NewApp(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer func() {
				if err := application.Close(); err != nil {
					logger.Error("Error during shutdown", "error", err)
				}
			}()

			return application.Start(ctx)
		},
	}
}

func withDB(c *cli.Context, fn func(db *bun.DB) error) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := bundb.Open(c.Context, cfg.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withDB(c, func(db *bun.DB) error {
						for _, m := range bundb.Migrators(db) {
							fmt.Printf("Initializing migrations for module: %s\n", m.Module)
							if err := m.Migrator.Init(c.Context); err != nil {
								return fmt.Errorf("module %s: %w", m.Module, err)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					return withDB(c, func(db *bun.DB) error {
						for _, m := range bundb.Migrators(db) {
							if err := m.Migrator.Lock(c.Context); err != nil {
								return fmt.Errorf("module %s: %w", m.Module, err)
							}
							group, err := m.Migrator.Migrate(c.Context)
							m.Migrator.Unlock(c.Context) //nolint:errcheck
							if err != nil {
								return fmt.Errorf("module %s: %w", m.Module, err)
							}
							if group.IsZero() {
								fmt.Printf("No new migrations to run for module: %s\n", m.Module)
							} else {
								fmt.Printf("Migrated module: %s to %s\n", m.Module, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					return withDB(c, func(db *bun.DB) error {
						migrators := bundb.Migrators(db)
						// Dependents first.
						for i := len(migrators) - 1; i >= 0; i-- {
							m := migrators[i]
							group, err := m.Migrator.Rollback(c.Context)
							if err != nil {
								return fmt.Errorf("module %s: %w", m.Module, err)
							}
							if group.IsZero() {
								fmt.Printf("No groups to roll back for module: %s\n", m.Module)
							} else {
								fmt.Printf("Rolled back module: %s to %s\n", m.Module, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return withDB(c, func(db *bun.DB) error {
						for _, m := range bundb.Migrators(db) {
							ms, err := m.Migrator.MigrationsWithStatus(c.Context)
							if err != nil {
								return fmt.Errorf("module %s: %w", m.Module, err)
							}
							fmt.Printf("Module: %s\n", m.Module)
							fmt.Printf("  migrations: %s\n", ms)
							fmt.Printf("  unapplied migrations: %s\n", ms.Unapplied())
							fmt.Printf("  last migration group: %s\n", ms.LastGroup())
						}
						return nil
					})
				},
			},
			{
				Name:  "create_go",
				Usage: "create Go migration for a module",
				Action: func(c *cli.Context) error {
					return withDB(c, func(db *bun.DB) error {
						moduleName := c.Args().First()
						for _, m := range bundb.Migrators(db) {
							if m.Module != moduleName {
								continue
							}
							name := strings.Join(c.Args().Tail(), "_")
							mf, err := m.Migrator.CreateGoMigration(c.Context, name)
							if err != nil {
								return err
							}
							fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
							return nil
						}
						return fmt.Errorf("invalid module name: %s", moduleName)
					})
				},
			},
		},
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "sign a bearer token for local use",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "user-id", Required: true},
			&cli.StringFlag{Name: "username", Required: true},
			&cli.DurationFlag{Name: "ttl", Value: time.Hour},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			logger := app.NewLogger(os.Stderr, cfg.Observability)
			token, err := auth.NewModule(cfg, logger).IssueToken(c.Int64("user-id"), c.String("username"), c.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
}
