package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newsfeed/internal/config"
	"newsfeed/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresFeedDB хранит ленты в таблицах news.feed и news.item.
// Каждая загрузка сохраняется отдельной строкой news.feed вместе со
// своими записями; отсутствующие поля записей пишутся как NULL.
type PostgresFeedDB struct {
	pool             *pgxpool.Pool
	log              *slog.Logger
	defaultNewsLimit int
}

func NewPostgresFeedDB(pool *pgxpool.Pool, appCfg config.AppConfig, log *slog.Logger) *PostgresFeedDB {
	log.Info("Initializing Postgres feed storage")
	return &PostgresFeedDB{
		pool:             pool,
		log:              log,
		defaultNewsLimit: appCfg.DefaultNewsLimit,
	}
}

func (db *PostgresFeedDB) Close() {
	db.log.Info("Closing database connection pool")
	db.pool.Close()
}

// SaveFeed сохраняет ленту и все ее записи в одной транзакции.
// Возвращает количество сохраненных записей.
func (db *PostgresFeedDB) SaveFeed(ctx context.Context, url string, feed *domain.Feed) (n int, err error) {
	const op = "storage.postgres.SaveFeed"
	log := db.log.With(slog.String("op", op), slog.String("url", url))
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(context.Background()); rollbackErr != nil {
				log.Error("Failed to rollback transaction", slog.Any("error", rollbackErr))
			}
		}
	}()

	var feedID int64
	err = tx.QueryRow(ctx, `
	INSERT INTO news.feed (url) VALUES ($1) RETURNING id;
	`, url).Scan(&feedID)
	if err != nil {
		log.Error("Failed to insert feed", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to insert feed: %w", op, err)
	}

	if len(feed.Items) > 0 {
		batch := &pgx.Batch{}
		query := `
		INSERT INTO news.item (feed_id, position, title, description, guid, link, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
		`
		for i, item := range feed.Items {
			batch.Queue(
				query,
				feedID,
				i,
				item.Title,
				item.Description,
				item.ID,
				item.Link,
				item.PublishedAt,
			)
		}
		if err = tx.SendBatch(ctx, batch).Close(); err != nil {
			log.Error("Failed to execute batch", slog.Any("error", err))
			return 0, fmt.Errorf("%s: failed to execute batch: %w", op, err)
		}
	}
	if err = tx.Commit(ctx); err != nil {
		log.Error("Failed to commit transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}
	log.Debug("Feed saved", slog.Int64("feed_id", feedID), slog.Int("count", len(feed.Items)))
	return len(feed.Items), nil
}

// GetItems возвращает записи последних загрузок, новые первыми.
// При n <= 0 используется лимит по умолчанию из конфигурации.
func (db *PostgresFeedDB) GetItems(ctx context.Context, n int) ([]domain.StoredItem, error) {
	limit := n
	if limit <= 0 {
		limit = db.defaultNewsLimit
	}
	const op = "storage.postgres.GetItems"
	log := db.log.With(slog.String("op", op), slog.Int("limit", limit))
	query := `
	SELECT f.url, f.loaded_at, i.title, i.description, i.guid, i.link, i.published_at
	FROM news.item i
	JOIN news.feed f ON f.id = i.feed_id
	ORDER BY f.loaded_at DESC, f.id DESC, i.position
	LIMIT $1;
	`
	rows, err := db.pool.Query(ctx, query, limit)
	if err != nil {
		log.Error("Database query failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.StoredItem, error) {
		var item domain.StoredItem
		var published *time.Time
		err := row.Scan(
			&item.FeedURL,
			&item.LoadedAt,
			&item.Title,
			&item.Description,
			&item.ID,
			&item.Link,
			&published,
		)
		if published != nil {
			utc := published.UTC()
			item.PublishedAt = &utc
		}
		return item, err
	})
	if err != nil {
		log.Error("Failed to collect rows", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
	}
	log.Info("Successfully retrieved items", slog.Int("count", len(items)))
	return items, nil
}
