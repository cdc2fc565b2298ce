package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newsfeed/internal/domain"
	"newsfeed/internal/metrics"
)

// FeedLoader реализует основной сценарий: URL -> байты -> дерево -> записи -> лента.
// Каждый вызов независим и не разделяет состояние с другими вызовами.
type FeedLoader struct {
	fetcher FeedFetcher
	parser  FeedParser
	log     *slog.Logger
	metrics *metrics.Metrics
}

func NewFeedLoader(fetcher FeedFetcher, parser FeedParser, log *slog.Logger, m *metrics.Metrics) *FeedLoader {
	if m == nil {
		m = metrics.New(nil)
	}
	return &FeedLoader{
		fetcher: fetcher,
		parser:  parser,
		log:     log,
		metrics: m,
	}
}

// LoadFeed загружает документ по url и возвращает ленту из первого канала.
// Любая ошибка прерывает загрузку целиком, частичный результат не возвращается.
func (l *FeedLoader) LoadFeed(ctx context.Context, url string) (feed *domain.Feed, err error) {
	const op = "usecase.LoadFeed"
	start := time.Now()
	log := l.log.With(
		slog.String("component", "loader"),
		slog.String("op", op),
		slog.String("url", url),
	)
	defer func() {
		l.metrics.Loads.WithLabelValues(metrics.Outcome(err)).Inc()
	}()

	data, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		log.Error("Feed fetch failed",
			slog.String("stage", "fetch"),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Debug("Feed fetched", slog.Int("bytes", len(data)))

	feed, err = l.parser.Parse(ctx, data)
	if err != nil {
		log.Error("Feed parsing failed",
			slog.String("stage", "parse"),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	l.metrics.ItemsLoaded.Add(float64(len(feed.Items)))
	log.Info("Feed loaded",
		slog.Int("items_found", len(feed.Items)),
		slog.Duration("duration", time.Since(start)),
	)
	return feed, nil
}
