package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"newsfeed/internal/adapter/fetcher"
	"newsfeed/internal/adapter/parser"
	"newsfeed/internal/config"
	"newsfeed/internal/logger"
	"newsfeed/internal/metrics"
	"newsfeed/internal/migrations"
	server "newsfeed/internal/transport/http"
	"newsfeed/internal/usecase"
	"newsfeed/internal/worker"
	"newsfeed/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App координирует HTTP-сервер, воркер опроса лент, базу данных и логирование.
type App struct {
	config   *config.Config
	logger   *slog.Logger
	server   *http.Server
	worker   *worker.Worker
	storage  storage.Storage
	stopChan chan os.Signal
	wg       sync.WaitGroup
}

// NewLoader собирает загрузчик лент без хранилища: HTTP-клиент и XML-парсер.
// m может быть nil.
func NewLoader(cfg config.AppConfig, log *slog.Logger, m *metrics.Metrics) *usecase.FeedLoader {
	httpFetcher := fetcher.NewHTTPFetcher(log, cfg.FetchTimeoutDuration(), m)
	xmlParser := parser.NewXMLParser(log)
	return usecase.NewFeedLoader(httpFetcher, xmlParser, log, m)
}

// OpenDB подключается к PostgreSQL, проверяет соединение и применяет миграции.
func OpenDB(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*pgxpool.Pool, error) {
	dbPool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	log.Info("Database connection established", slog.String("component", "database"))
	if err := migrations.Apply(ctx, log, dbPool); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}
	return dbPool, nil
}

// New создает и инициализирует приложение: логгер, подключение к БД,
// миграции, метрики и все зависимости.
func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	slog.SetDefault(appLogger)

	dbPool, err := OpenDB(context.Background(), cfg.Database, appLogger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	feedNames := make(map[string]string)
	urls := make([]string, 0, len(cfg.App.FeedURLs))
	for _, feed := range cfg.App.FeedURLs {
		feedNames[feed.URL] = feed.Name
		urls = append(urls, feed.URL)
	}
	dbStorage := storage.NewPostgresFeedDB(dbPool, cfg.App, appLogger)

	loader := NewLoader(cfg.App, appLogger, m)
	feedProcessor := usecase.NewFeedProcessingUseCase(loader, dbStorage, appLogger, m, feedNames)
	itemsGetter := usecase.NewItemsGetterUseCase(dbStorage)

	handler := server.NewHandler(appLogger, itemsGetter, loader, cfg.App.DefaultNewsLimit)
	router := server.NewServer(appLogger, handler, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	w := worker.New(
		feedProcessor,
		urls,
		cfg.App.IntervalDuration(),
		cfg.App.RequestTimeoutDuration(),
		appLogger,
	)

	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &App{
		config:   cfg,
		logger:   appLogger,
		server:   httpServer,
		worker:   w,
		storage:  dbStorage,
		stopChan: make(chan os.Signal, 1),
	}, nil
}

// Run запускает воркер и HTTP-сервер и блокируется до сигнала завершения
// или падения сервера.
func (a *App) Run() error {
	a.logger.Info("Starting feed loader service",
		slog.String("component", "app"),
		slog.Int("feed_count", len(a.worker.URLs())),
		slog.String("processing_interval", a.worker.Interval().String()),
	)
	listener, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		a.storage.Close()
		return fmt.Errorf("failed to create listener: %w", err)
	}
	a.worker.Start(context.Background())
	a.logger.Info("HTTP server ready",
		slog.String("component", "server"),
		slog.String("address", listener.Addr().String()),
	)

	serverErr := make(chan error, 1)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server failed",
				slog.String("component", "server"),
				slog.Any("error", err),
			)
			serverErr <- err
		}
	}()

	signal.Notify(a.stopChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(a.stopChan)
	var runErr error
	select {
	case sig := <-a.stopChan:
		a.logger.Info("Shutdown signal received",
			slog.String("component", "app"),
			slog.String("signal", sig.String()),
		)
	case runErr = <-serverErr:
	}
	if err := a.Shutdown(); err != nil {
		return err
	}
	return runErr
}

// Shutdown останавливает воркер, HTTP-сервер (таймаут 10 секунд)
// и закрывает соединение с БД.
func (a *App) Shutdown() error {
	a.logger.Info("Starting graceful shutdown", slog.String("component", "app"))
	if a.worker != nil {
		a.worker.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var shutdownErr error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown failed",
			slog.String("component", "server"),
			slog.Any("error", err),
		)
		shutdownErr = fmt.Errorf("server shutdown: %w", err)
	}
	if a.storage != nil {
		a.storage.Close()
	}
	a.wg.Wait()
	a.logger.Info("Application stopped gracefully", slog.String("component", "app"))
	return shutdownErr
}
