package usermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating users, user_roles and profiles tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS users (
					id BIGSERIAL PRIMARY KEY,
					username VARCHAR(150) NOT NULL UNIQUE,
					email VARCHAR(254) NOT NULL UNIQUE,
					first_name VARCHAR(150) NOT NULL DEFAULT '',
					last_name VARCHAR(150) NOT NULL DEFAULT '',
					is_staff BOOLEAN NOT NULL DEFAULT FALSE,
					is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (lower(email));
			`); err != nil {
				return fmt.Errorf("failed to create users table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS user_roles (
					id BIGSERIAL PRIMARY KEY,
					user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					role VARCHAR(32) NOT NULL,
					UNIQUE (user_id, role)
				);
			`); err != nil {
				return fmt.Errorf("failed to create user_roles table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS profiles (
					id BIGSERIAL PRIMARY KEY,
					user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
					username VARCHAR(50) NOT NULL DEFAULT '',
					first_name VARCHAR(30) NOT NULL DEFAULT '',
					last_name VARCHAR(30) NOT NULL DEFAULT '',
					phone VARCHAR(13) NOT NULL DEFAULT '',
					email VARCHAR(50) NOT NULL DEFAULT '',
					info TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create profiles table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping profiles, user_roles and users tables...")

		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS profiles;
			DROP TABLE IF EXISTS user_roles;
			DROP TABLE IF EXISTS users;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop identity tables: %w", err)
		}
		return nil
	})
}
