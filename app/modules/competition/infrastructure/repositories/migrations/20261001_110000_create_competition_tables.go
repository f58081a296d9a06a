package competitionmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating competitions, competition_participants and registrations tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS competitions (
					id BIGSERIAL PRIMARY KEY,
					title VARCHAR(100) NOT NULL,
					date DATE NOT NULL,
					context TEXT NOT NULL DEFAULT '',
					slug VARCHAR(120) NOT NULL UNIQUE,
					club_id BIGINT NOT NULL REFERENCES clubs(id) ON DELETE CASCADE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_competitions_club_id ON competitions(club_id);
			`); err != nil {
				return fmt.Errorf("failed to create competitions table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS competition_participants (
					id BIGSERIAL PRIMARY KEY,
					competition_id BIGINT NOT NULL REFERENCES competitions(id) ON DELETE CASCADE,
					user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT competition_participants_key UNIQUE (competition_id, user_id)
				);
			`); err != nil {
				return fmt.Errorf("failed to create competition_participants table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS registrations (
					id BIGSERIAL PRIMARY KEY,
					first_name VARCHAR(50) NOT NULL,
					last_name VARCHAR(50) NOT NULL,
					age INTEGER NOT NULL CHECK (age >= 0),
					user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					competition_id BIGINT NOT NULL REFERENCES competitions(id) ON DELETE CASCADE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_registrations_competition_id ON registrations(competition_id);
			`); err != nil {
				return fmt.Errorf("failed to create registrations table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping registrations, competition_participants and competitions tables...")

		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS registrations;
			DROP TABLE IF EXISTS competition_participants;
			DROP TABLE IF EXISTS competitions;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop competition tables: %w", err)
		}
		return nil
	})
}
