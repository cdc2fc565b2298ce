package usecase

import (
	"context"
	"newsfeed/internal/domain"
)

// ItemsStorage определяет интерфейс для чтения сохраненных записей.
type ItemsStorage interface {
	GetItems(ctx context.Context, n int) ([]domain.StoredItem, error)
}

// ItemsGetterUseCase предоставляет сохраненные записи для API.
type ItemsGetterUseCase struct {
	storage ItemsStorage
}

func NewItemsGetterUseCase(s ItemsStorage) *ItemsGetterUseCase {
	return &ItemsGetterUseCase{storage: s}
}

// GetItems возвращает последние записи с ограничением по количеству.
func (us *ItemsGetterUseCase) GetItems(ctx context.Context, limit int) ([]domain.StoredItem, error) {
	return us.storage.GetItems(ctx, limit)
}
