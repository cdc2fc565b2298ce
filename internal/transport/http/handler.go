package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"newsfeed/internal/domain"
)

const maxItemsLimit = 100

type itemsGetter interface {
	GetItems(ctx context.Context, limit int) ([]domain.StoredItem, error)
}

type feedLoader interface {
	LoadFeed(ctx context.Context, url string) (*domain.Feed, error)
}

type Handler struct {
	log          *slog.Logger
	itemsGetter  itemsGetter
	loader       feedLoader
	defaultLimit int
}

func NewHandler(log *slog.Logger, getter itemsGetter, loader feedLoader, defaultLimit int) *Handler {
	return &Handler{
		log:          log,
		itemsGetter:  getter,
		loader:       loader,
		defaultLimit: defaultLimit,
	}
}

// getFeed - хендлер GET /api/feed?url=...: загружает ленту по запросу.
func (h *Handler) getFeed(w http.ResponseWriter, r *http.Request) {
	const op = "transport.http/getFeed"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", requestID(r)),
	)
	feedURL := r.URL.Query().Get("url")
	if feedURL == "" {
		log.Warn("missing url parameter")
		respondWithError(w, http.StatusBadRequest, "Missing 'url' parameter")
		return
	}
	feed, err := h.loader.LoadFeed(r.Context(), feedURL)
	if err != nil {
		code := statusForError(err)
		log.Warn("Feed load failed",
			slog.String("url", feedURL),
			slog.Int("status", code),
			slog.Any("error", err),
		)
		respondWithError(w, code, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, feed)
}

// getItems - хендлер GET /api/items?limit=N.
func (h *Handler) getItems(w http.ResponseWriter, r *http.Request) {
	const op = "transport.http/getItems"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", requestID(r)),
	)
	limit := h.defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			log.Warn("invalid limit parameter", slog.String("limit", limitStr))
			respondWithError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
			return
		}
	}
	if limit > maxItemsLimit {
		limit = maxItemsLimit
	}

	items, err := h.itemsGetter.GetItems(r.Context(), limit)
	if err != nil {
		log.Error("Failed to get items", slog.Any("error", err))
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if items == nil {
		items = []domain.StoredItem{}
	}
	respondWithJSON(w, http.StatusOK, items)
}

// healthCheck - хендлер для проверки состояния сервиса.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusForError сопоставляет этап ошибки загрузки с кодом ответа.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInit):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrFetch):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrParse),
		errors.Is(err, domain.ErrNoChannel),
		errors.Is(err, domain.ErrDateFormat):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
