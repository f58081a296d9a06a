package clubmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating clubs and club_members tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS clubs (
					id BIGSERIAL PRIMARY KEY,
					title VARCHAR(100) NOT NULL UNIQUE,
					slug VARCHAR(120) NOT NULL UNIQUE,
					image TEXT NOT NULL DEFAULT '',
					content TEXT NOT NULL DEFAULT '',
					owner VARCHAR(100) NOT NULL DEFAULT '',
					created_by BIGINT REFERENCES profiles(id) ON DELETE CASCADE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create clubs table: %w", err)
			}

			// One club per user: user_id alone is unique.
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS club_members (
					id BIGSERIAL PRIMARY KEY,
					club_id BIGINT NOT NULL REFERENCES clubs(id) ON DELETE CASCADE,
					user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT club_members_user_key UNIQUE (user_id),
					CONSTRAINT club_members_club_user_key UNIQUE (club_id, user_id)
				);
				CREATE INDEX IF NOT EXISTS idx_club_members_club_id ON club_members(club_id);
			`); err != nil {
				return fmt.Errorf("failed to create club_members table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping club_members and clubs tables...")

		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS club_members;
			DROP TABLE IF EXISTS clubs;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop club tables: %w", err)
		}
		return nil
	})
}
