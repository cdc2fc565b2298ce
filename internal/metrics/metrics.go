package metrics

import (
	"errors"

	"newsfeed/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "newsfeed"

// Metrics объединяет коллекторы Prometheus для загрузки лент.
type Metrics struct {
	FetchDuration *prometheus.HistogramVec
	FetchedBytes  prometheus.Counter
	Loads         *prometheus.CounterVec
	ItemsLoaded   prometheus.Counter
	ItemsSaved    prometheus.Counter
}

// New создает коллекторы и регистрирует их в reg.
// Если reg равен nil, коллекторы не регистрируются (удобно в тестах).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of feed HTTP fetches.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"result"}),
		FetchedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetched_bytes_total",
			Help:      "Total bytes read from feed responses.",
		}),
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_loads_total",
			Help:      "Feed loads by outcome.",
		}, []string{"outcome"}),
		ItemsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_loaded_total",
			Help:      "Items extracted from loaded feeds.",
		}),
		ItemsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_saved_total",
			Help:      "Items written to storage.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.FetchDuration, m.FetchedBytes, m.Loads, m.ItemsLoaded, m.ItemsSaved)
	}
	return m
}

// Outcome возвращает метку исхода загрузки для ошибки err.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInit):
		return "init_error"
	case errors.Is(err, domain.ErrFetch):
		return "fetch_error"
	case errors.Is(err, domain.ErrParse):
		return "parse_error"
	case errors.Is(err, domain.ErrNoChannel):
		return "no_channel"
	case errors.Is(err, domain.ErrDateFormat):
		return "date_format_error"
	default:
		return "error"
	}
}
