package usecase

import (
	"context"
	"newsfeed/internal/domain"
)

// FeedFetcher определяет интерфейс для загрузки документа ленты.
// Возвращает тело ответа целиком.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FeedParser определяет интерфейс для преобразования документа в доменную модель.
type FeedParser interface {
	Parse(ctx context.Context, data []byte) (*domain.Feed, error)
}

// FeedStorage определяет интерфейс для сохранения загруженной ленты.
// Возвращает количество сохраненных записей.
type FeedStorage interface {
	SaveFeed(ctx context.Context, url string, feed *domain.Feed) (int, error)
}

// Loader загружает ленту по URL.
type Loader interface {
	LoadFeed(ctx context.Context, url string) (*domain.Feed, error)
}
