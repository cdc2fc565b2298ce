package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"newsfeed/internal/metrics"
)

// FeedProcessingUseCase загружает ленту и сохраняет ее в хранилище.
// Используется воркером для периодического опроса настроенных лент.
type FeedProcessingUseCase struct {
	loader    Loader
	storage   FeedStorage
	log       *slog.Logger
	metrics   *metrics.Metrics
	feedNames map[string]string
}

// NewFeedProcessingUseCase создает новый экземпляр UseCase для обработки лент.
// Принимает загрузчик, хранилище, логгер, метрики и маппинг URL на имена.
func NewFeedProcessingUseCase(
	loader Loader,
	storage FeedStorage,
	log *slog.Logger,
	m *metrics.Metrics,
	feedNames map[string]string,
) *FeedProcessingUseCase {
	if m == nil {
		m = metrics.New(nil)
	}
	return &FeedProcessingUseCase{
		loader:    loader,
		storage:   storage,
		log:       log,
		metrics:   m,
		feedNames: feedNames,
	}
}

// ProcessFeed выполняет полный цикл: загрузка ленты и сохранение записей.
// Возвращает ошибку в случае сбоя любой из операций.
func (uc *FeedProcessingUseCase) ProcessFeed(ctx context.Context, url string) error {
	start := time.Now()
	feedName := uc.extractFeedName(url)
	log := uc.log.With(
		slog.String("component", "feed-processor"),
		slog.String("feed", feedName),
		slog.String("url", url),
	)

	log.Info("Processing feed started")

	feed, err := uc.loader.LoadFeed(ctx, url)
	if err != nil {
		log.Error("Feed load failed",
			slog.String("stage", "load"),
			slog.Any("error", err),
		)
		return fmt.Errorf("load failed for %s: %w", feedName, err)
	}

	savedCount, err := uc.storage.SaveFeed(ctx, url, feed)
	if err != nil {
		log.Error("Feed save failed",
			slog.String("stage", "save"),
			slog.Any("error", err),
		)
		return fmt.Errorf("save failed for %s: %w", feedName, err)
	}
	uc.metrics.ItemsSaved.Add(float64(savedCount))

	log.Info("Feed processing completed successfully",
		slog.Int("items_found", len(feed.Items)),
		slog.Int("items_saved", savedCount),
		slog.Duration("duration", time.Since(start)),
	)

	return nil
}

// extractFeedName извлекает читаемое имя ленты.
// Использует заданный маппинг или, как запасной вариант, хост из URL.
func (uc *FeedProcessingUseCase) extractFeedName(rawURL string) string {
	if name, ok := uc.feedNames[rawURL]; ok {
		return name
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "Unknown"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
