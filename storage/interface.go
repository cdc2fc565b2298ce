package storage

import (
	"context"
	"newsfeed/internal/domain"
)

// Storage определяет общий интерфейс хранилища загруженных лент.
// Объединяет методы сохранения и чтения записей, а также закрытия соединения.
type Storage interface {
	SaveFeed(ctx context.Context, url string, feed *domain.Feed) (int, error)
	GetItems(ctx context.Context, n int) ([]domain.StoredItem, error)
	Close()
}
