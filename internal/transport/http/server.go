package http

import (
	"log/slog"
	"net/http"
)

// NewServer создает роутер API: загрузка ленты по запросу, сохраненные
// записи, проверка состояния и метрики. metrics может быть nil.
func NewServer(log *slog.Logger, h *Handler, metrics http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/feed", h.getFeed)
	mux.HandleFunc("GET /api/items", h.getItems)
	mux.HandleFunc("GET /api/health", h.healthCheck)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	var handler http.Handler = mux
	handler = loggingMiddleware(log)(handler)
	handler = requestIDMiddleware()(handler)
	handler = corsMiddleware()(handler)
	return handler
}
