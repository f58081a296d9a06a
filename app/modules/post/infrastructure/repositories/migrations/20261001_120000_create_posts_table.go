package postmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating posts table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS posts (
				id BIGSERIAL PRIMARY KEY,
				title VARCHAR(50) NOT NULL UNIQUE CHECK (char_length(title) >= 5),
				image_url TEXT NOT NULL DEFAULT '',
				content TEXT NOT NULL DEFAULT '',
				slug VARCHAR(60) NOT NULL UNIQUE,
				uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE
			);
			CREATE INDEX IF NOT EXISTS idx_posts_uploaded_at ON posts(uploaded_at DESC);
		`)
		if err != nil {
			return fmt.Errorf("failed to create posts table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping posts table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS posts;`); err != nil {
			return fmt.Errorf("failed to drop posts table: %w", err)
		}
		return nil
	})
}
