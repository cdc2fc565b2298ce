package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"newsfeed/internal/domain"
	"newsfeed/internal/metrics"
	"newsfeed/internal/usecase"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	feed *domain.Feed
	err  error
}

func (l *stubLoader) LoadFeed(ctx context.Context, url string) (*domain.Feed, error) {
	return l.feed, l.err
}

type stubStorage struct {
	savedURL  string
	savedFeed *domain.Feed
	err       error
	items     []domain.StoredItem
	limit     int
}

func (s *stubStorage) SaveFeed(ctx context.Context, url string, feed *domain.Feed) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.savedURL = url
	s.savedFeed = feed
	return len(feed.Items), nil
}

func (s *stubStorage) GetItems(ctx context.Context, n int) ([]domain.StoredItem, error) {
	s.limit = n
	return s.items, s.err
}

func TestFeedProcessing_ProcessFeed_Saves(t *testing.T) {
	title := "t"
	feed := &domain.Feed{Items: []domain.Item{{Title: &title}, {}}}
	storage := &stubStorage{}
	m := metrics.New(nil)
	uc := usecase.NewFeedProcessingUseCase(&stubLoader{feed: feed}, storage, discardLogger(), m, nil)

	err := uc.ProcessFeed(context.Background(), "https://example.com/rss")

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/rss", storage.savedURL)
	assert.Same(t, feed, storage.savedFeed)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.ItemsSaved))
}

func TestFeedProcessing_ProcessFeed_LoadError(t *testing.T) {
	loadErr := domain.NewStageError(domain.StageWalk, domain.ErrNoChannel, "", nil)
	storage := &stubStorage{}
	uc := usecase.NewFeedProcessingUseCase(&stubLoader{err: loadErr}, storage, discardLogger(), nil,
		map[string]string{"https://example.com/rss": "Example"})

	err := uc.ProcessFeed(context.Background(), "https://example.com/rss")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoChannel))
	assert.Contains(t, err.Error(), "load failed for Example")
	assert.Nil(t, storage.savedFeed)
}

func TestFeedProcessing_ProcessFeed_SaveError(t *testing.T) {
	dbErr := errors.New("db down")
	uc := usecase.NewFeedProcessingUseCase(
		&stubLoader{feed: &domain.Feed{Items: []domain.Item{}}},
		&stubStorage{err: dbErr},
		discardLogger(), nil, nil,
	)

	err := uc.ProcessFeed(context.Background(), "https://www.example.org/feed")

	assert.True(t, errors.Is(err, dbErr))
	assert.Contains(t, err.Error(), "save failed for example.org")
}

func TestItemsGetter_GetItems(t *testing.T) {
	storage := &stubStorage{items: []domain.StoredItem{{FeedURL: "u"}}}
	uc := usecase.NewItemsGetterUseCase(storage)

	items, err := uc.GetItems(context.Background(), 5)

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 5, storage.limit)
}

func TestFeedProcessing_ProcessFeed_LoadErrorLogsFeedName(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	loadErr := domain.NewStageError(domain.StageFetch, domain.ErrFetch, "https://www.example.com/rss", errors.New("refused"))
	names := map[string]string{"https://www.example.com/rss": "Example"}
	uc := usecase.NewFeedProcessingUseCase(&stubLoader{err: loadErr}, &stubStorage{}, log, nil, names)

	err := uc.ProcessFeed(context.Background(), "https://www.example.com/rss")

	require.Error(t, err)
	out := buf.String()
	assert.Contains(t, out, "Feed load failed")
	assert.Contains(t, out, "stage=load")
	assert.Contains(t, out, "feed=Example")
	assert.Contains(t, out, "component=feed-processor")
}
