package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// FeedProcessor определяет интерфейс для обработки отдельной ленты.
type FeedProcessor interface {
	ProcessFeed(ctx context.Context, url string) error
}

// Worker периодически обрабатывает набор лент.
// Каждый цикл обрабатывает все ленты параллельно, каждую со своим таймаутом.
type Worker struct {
	processor      FeedProcessor
	urls           []string
	interval       time.Duration
	requestTimeout time.Duration
	log            *slog.Logger
	cancel         context.CancelFunc
	done           chan struct{}
}

// New создает нового воркера. Принимает процессор, список URL,
// интервал опроса, таймаут обработки одной ленты и логгер.
func New(processor FeedProcessor, urls []string, interval, requestTimeout time.Duration, log *slog.Logger) *Worker {
	return &Worker{
		processor:      processor,
		urls:           urls,
		interval:       interval,
		requestTimeout: requestTimeout,
		log:            log,
	}
}

// Start запускает воркер в отдельной горутине. Первый цикл выполняется сразу.
func (w *Worker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.run(ctx)
}

// Stop отменяет контекст воркера и ждет завершения текущего цикла.
func (w *Worker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)
	w.log.Info("Feed processing worker started",
		slog.String("component", "worker"),
		slog.String("interval", w.interval.String()),
		slog.Int("feed_count", len(w.urls)),
	)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	w.ProcessAll(ctx)
	for {
		select {
		case <-ticker.C:
			w.ProcessAll(ctx)
		case <-ctx.Done():
			w.log.Info("Worker stopping", slog.String("component", "worker"))
			return
		}
	}
}

// ProcessAll обрабатывает все ленты параллельно и возвращает число
// успешных и неудачных обработок.
func (w *Worker) ProcessAll(ctx context.Context) (successful, failed int) {
	start := time.Now()
	w.log.Info("Feed processing cycle started",
		slog.String("component", "worker"),
		slog.Int("feeds_to_process", len(w.urls)),
	)
	var wg sync.WaitGroup
	var successCount, errorCount atomic.Int64
	for _, url := range w.urls {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			opCtx, opCancel := context.WithTimeout(ctx, w.requestTimeout)
			defer opCancel()
			if err := w.processor.ProcessFeed(opCtx, u); err != nil {
				errorCount.Add(1)
				w.log.Error("Feed processing failed",
					slog.String("component", "worker"),
					slog.String("url", u),
					slog.Any("error", err),
				)
				return
			}
			successCount.Add(1)
		}(url)
	}
	wg.Wait()
	successful, failed = int(successCount.Load()), int(errorCount.Load())
	w.log.Info("Feed processing cycle completed",
		slog.String("component", "worker"),
		slog.Int("successful", successful),
		slog.Int("errors", failed),
		slog.Int("total", len(w.urls)),
		slog.Duration("duration", time.Since(start)),
	)
	return successful, failed
}

// URLs возвращает список URL, которые обрабатывает воркер.
func (w *Worker) URLs() []string { return w.urls }

// Interval возвращает интервал опроса лент.
func (w *Worker) Interval() time.Duration { return w.interval }
