package migrations

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Migration struct {
	ID    string
	UpSQL string
}

// All возвращает миграции в порядке применения.
func All() []Migration {
	out := make([]Migration, len(allMigrations))
	copy(out, allMigrations)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

var allMigrations = []Migration{
	{
		ID: "20241002153000_create_news_schema",
		UpSQL: `
		CREATE SCHEMA IF NOT EXISTS news;`,
	},
	{
		ID: "20241002153100_create_feed_table",
		UpSQL: `
		CREATE TABLE news.feed(
		id BIGSERIAL PRIMARY KEY,
		url TEXT NOT NULL,
		loaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX feed_url_idx ON news.feed(url);`,
	},
	{
		ID: "20241002153200_create_item_table",
		UpSQL: `
		CREATE TABLE news.item(
		feed_id BIGINT NOT NULL REFERENCES news.feed(id) ON DELETE CASCADE,
		position INT NOT NULL,
		title TEXT,
		description TEXT,
		guid TEXT,
		link TEXT,
		published_at TIMESTAMP,
		PRIMARY KEY (feed_id, position)
		);`,
	},
}

// Apply применяет все необходимые миграции к базе данных.
func Apply(ctx context.Context, log *slog.Logger, pool *pgxpool.Pool) error {
	log = log.With(slog.String("component", "migrations"))
	log.Info("Starting database migrations check...")
	_, err := pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
	id TEXT PRIMARY KEY
	);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	rows, err := pool.Query(ctx, "SELECT id FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("failed to query applied migrations: %w", err)
	}
	appliedMigrations := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration id: %w", err)
		}
		appliedMigrations[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)
	appliedCount := 0
	for _, m := range All() {
		if appliedMigrations[m.ID] {
			continue
		}
		log.Info("Applying migration", slog.String("id", m.ID))
		if _, err := tx.Exec(ctx, m.UpSQL); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.ID, err)
		}
		if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (id) VALUES ($1)", m.ID); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.ID, err)
		}
		appliedCount++
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migrations transaction: %w", err)
	}
	if appliedCount > 0 {
		log.Info("Database migrations applied successfully", slog.Int("count", appliedCount))
	} else {
		log.Info("Database is up to date, no new migrations found.")
	}
	return nil
}
