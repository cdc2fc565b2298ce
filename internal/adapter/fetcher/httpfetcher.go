package fetcher

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"newsfeed/internal/domain"
	"newsfeed/internal/metrics"
)

// maxPreallocBytes ограничивает предварительное выделение буфера по
// Content-Length: заголовок сервера не гарантирует размер тела.
const maxPreallocBytes = 1 << 20

// HTTPFetcher реализует интерфейс FeedFetcher для загрузки лент по HTTP.
// Тело ответа целиком накапливается в памяти; код статуса не проверяется,
// разбор содержимого остается за парсером.
type HTTPFetcher struct {
	client  *http.Client
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewHTTPFetcher создает новый экземпляр HTTPFetcher.
// Нулевой timeout означает отсутствие ограничения по времени на уровне клиента.
func NewHTTPFetcher(log *slog.Logger, timeout time.Duration, m *metrics.Metrics) *HTTPFetcher {
	if m == nil {
		m = metrics.New(nil)
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		log:     log,
		metrics: m,
	}
}

// Fetch выполняет один GET-запрос и возвращает полное тело ответа.
// Ошибки построения запроса оборачиваются в domain.ErrInit,
// сетевые ошибки и ошибки чтения тела - в domain.ErrFetch.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	log := f.log.With(slog.String("url", url))
	if url == "" {
		return nil, domain.NewStageError(domain.StageInit, domain.ErrInit, url, errors.New("empty url"))
	}
	log.Info("Fetching URL")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("Failed to create HTTP request", slog.Any("error", err))
		return nil, domain.NewStageError(domain.StageInit, domain.ErrInit, url, err)
	}
	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		f.metrics.FetchDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		log.Error(
			"HTTP request failed",
			slog.Any("error", err),
		)
		return nil, domain.NewStageError(domain.StageFetch, domain.ErrFetch, url, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if resp.ContentLength > 0 {
		buf.Grow(int(min(resp.ContentLength, maxPreallocBytes)))
	}
	n, err := buf.ReadFrom(resp.Body)
	f.metrics.FetchedBytes.Add(float64(n))
	if err != nil {
		f.metrics.FetchDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		log.Error("Failed to read response body",
			slog.Int64("bytes_read", n),
			slog.Any("error", err),
		)
		return nil, domain.NewStageError(domain.StageFetch, domain.ErrFetch, url, err)
	}
	f.metrics.FetchDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	if resp.StatusCode != http.StatusOK {
		log.Warn("Unexpected status code, passing body to parser",
			slog.Int("status_code", resp.StatusCode),
		)
	}
	log.Info("Successfully fetched URL",
		slog.Int("status_code", resp.StatusCode),
		slog.Int64("bytes", n),
	)
	return buf.Bytes(), nil
}
